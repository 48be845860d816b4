// Package identity resolves the name of the user that owns the current
// process. Platform resolvers are selected at build time; Default returns the
// one for the running platform.
package identity

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Resolver determines the human-readable name of the current process owner.
// ok is false when no name could be found.
type Resolver interface {
	Resolve() (name string, ok bool)
}

type fixed struct {
	name string
	ok   bool
}

func (f fixed) Resolve() (string, bool) { return f.name, f.ok }

// Fixed returns a Resolver that always reports name.
func Fixed(name string) Resolver {
	return fixed{name: name, ok: true}
}

// Unknown returns a Resolver that never finds a name.
func Unknown() Resolver {
	return fixed{}
}

// Current resolves the current process owner using the platform resolver.
func Current() (string, bool) {
	return Default().Resolve()
}

// textName converts a name returned by the native layer into a Go string.
// Names that are not valid UTF-8 violate the native contract and panic.
func textName(raw []byte) string {
	if !utf8.Valid(raw) {
		panic("lyrebird: user name returned by the system is not valid UTF-8")
	}
	// NFC so the same account is spelled identically on every platform.
	return norm.NFC.String(string(raw))
}
