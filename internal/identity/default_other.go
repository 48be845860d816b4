//go:build !unix && !windows

package identity

// Default returns a resolver that never finds a name; this platform has no
// supported user database.
func Default() Resolver {
	return Unknown()
}
