// Package sink opens the destination the action log writes to.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
)

// Special targets accepted by Open.
const (
	Stdout  = "-"
	Discard = "discard"
	Null    = "null"
)

// Open returns the sink named by target: "-" for standard output, "discard"
// or "null" for a sink that accepts and drops everything, anything else is a
// file path opened for appending.
func Open(target string) (io.WriteCloser, error) {
	switch target {
	case Stdout:
		return nopCloser{os.Stdout}, nil
	case Discard, Null:
		return nopCloser{io.Discard}, nil
	case "":
		return nil, errclass.ErrSinkOpen.WithMessage("log target is empty")
	}
	return OpenFile(target)
}

// OpenFile opens path for appending, creating it and its parent directory
// when missing.
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errclass.ErrSinkOpen.Wrap("create log dir", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errclass.ErrSinkOpen.Wrap(fmt.Sprintf("open log %s", path), err)
	}
	return &File{f: f}, nil
}

// File is an append-only log file. Each Write holds an exclusive advisory
// lock so records from concurrent processes never interleave.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// Name returns the path the file was opened with.
func (s *File) Name() string {
	return s.f.Name()
}

func (s *File) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := lockFile(s.f); err != nil {
		return 0, fmt.Errorf("lock %s: %w", s.f.Name(), err)
	}
	defer unlockFile(s.f)

	return s.f.Write(p)
}

// Sync commits the file to stable storage.
func (s *File) Sync() error {
	return s.f.Sync()
}

func (s *File) Close() error {
	return s.f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// DefaultPath returns the platform default log location.
func DefaultPath() string {
	return defaultPath
}
