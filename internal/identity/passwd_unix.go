//go:build unix

package identity

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// Default returns the user-database resolver keyed on the effective uid.
func Default() Resolver {
	return &PasswdResolver{
		UID:    func() uint32 { return uint32(unix.Geteuid()) },
		Lookup: getpwuid,
	}
}

// classify maps a getpwuid_r return value, for a call that left the result
// pointer NULL, onto a Status. The "not found" set is the one listed in
// getpwuid_r(3).
func classify(errno syscall.Errno) Status {
	switch errno {
	case 0, unix.ENOENT, unix.ESRCH, unix.EBADF, unix.EPERM:
		return NoEntry
	case unix.ERANGE:
		return BufferTooSmall
	default:
		return Failed
	}
}

// lookupPasswdFile answers a lookup from a passwd(5) file the way the files
// backend of getpwuid_r does: every field of the entry is copied,
// NUL-terminated, into the scratch buffer.
func lookupPasswdFile(path string, uid uint32, size int) Lookup {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Lookup{Status: NoEntry, Code: int(unix.ENOENT)}
		}
		return Lookup{Status: Failed, Code: errnoOf(err)}
	}
	defer f.Close()

	want := []byte(strconv.FormatUint(uint64(uid), 10))
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := bytes.SplitN(line, []byte{':'}, 4)
		if len(fields) < 4 || !bytes.Equal(fields[2], want) {
			continue
		}
		// ':' separators become NUL terminators, plus one for the last field.
		if len(line)+1 > size {
			return Lookup{Status: BufferTooSmall, Code: int(unix.ERANGE)}
		}
		return Lookup{Status: Found, Name: bytes.Clone(fields[0])}
	}
	if err := scanner.Err(); err != nil {
		return Lookup{Status: Failed, Code: errnoOf(err)}
	}
	return Lookup{Status: NoEntry}
}

func errnoOf(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return int(unix.EIO)
}
