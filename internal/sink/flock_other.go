//go:build !unix

package sink

import "os"

const defaultPath = "lyrebird.log"

// lockFile is a no-op without flock; the in-process mutex still serializes
// writers within one lyrebird process.
func lockFile(_ *os.File) error   { return nil }
func unlockFile(_ *os.File) error { return nil }
