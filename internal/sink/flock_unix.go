//go:build unix

package sink

import (
	"os"

	"golang.org/x/sys/unix"
)

const defaultPath = "/tmp/lyrebird.log"

func lockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
