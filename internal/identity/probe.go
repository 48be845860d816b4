package identity

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SizedCall is a native query that writes a NUL-terminated UTF-16 string
// into buf. On input size holds len(buf); on output it holds the number of
// units required (on failure) or written (on success), terminator included.
type SizedCall func(buf []uint16, size *uint32) error

// ProbeResolver resolves the process owner through a current-user API that
// reports its required buffer size, such as GetUserNameW.
type ProbeResolver struct {
	Call SizedCall
}

// Resolve probes for the required size, allocates exactly that, and makes
// the real call. Any deviation from that protocol panics.
func (r *ProbeResolver) Resolve() (string, bool) {
	var size uint32
	// The zero-length probe fails by contract; only the size matters.
	_ = r.Call(nil, &size)
	if size == 0 {
		panic("lyrebird: GetUserNameW reported a required size of 0")
	}

	buf := make([]uint16, size)
	n := size
	if err := r.Call(buf, &n); err != nil {
		panic(fmt.Sprintf("lyrebird: GetUserNameW failed: %v", err))
	}
	if n > size {
		n = size
	}

	name, err := decodeUTF16(buf[:n])
	if err != nil {
		panic(fmt.Sprintf("lyrebird: user name returned by the system is not valid UTF-16: %v", err))
	}
	return textName([]byte(name)), true
}

// decodeUTF16 decodes units up to the first NUL, rejecting unpaired
// surrogates instead of replacing them.
func decodeUTF16(units []uint16) (string, error) {
	if i := slices.Index(units, 0); i >= 0 {
		units = units[:i]
	}

	var b strings.Builder
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			b.WriteRune(u)
			continue
		}
		if i+1 == len(units) {
			return "", fmt.Errorf("unpaired surrogate %#04x at %d", u, i)
		}
		r := utf16.DecodeRune(u, rune(units[i+1]))
		if r == utf8.RuneError {
			return "", fmt.Errorf("unpaired surrogate %#04x at %d", u, i)
		}
		b.WriteRune(r)
		i++
	}
	return b.String(), nil
}
