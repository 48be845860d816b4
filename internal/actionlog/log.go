// Package actionlog writes the append-only record of simulated actions.
//
// Every record is one JSON object on its own line carrying the action kind,
// a UTC RFC 3339 timestamp, the process id, the process owner and the
// command line the process was started with.
package actionlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/RomanHargrave/lyrebird/internal/identity"
	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

// Flusher is implemented by sinks that buffer writes, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Log appends action records to a sink it exclusively owns.
type Log struct {
	mu     sync.Mutex
	sink   io.Writer
	user   *string
	cmd    []string
	now    func() time.Time
	pid    func() int
	closed bool
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithPID overrides the source of the process id.
func WithPID(pid func() int) Option {
	return func(l *Log) { l.pid = pid }
}

// New creates a Log writing to sink, owned by the user the platform resolver
// reports and invoked as os.Args.
func New(sink io.Writer) *Log {
	return NewWith(sink, identity.Default(), os.Args)
}

// NewWith creates a Log writing to sink. The resolver is consulted exactly
// once and argv is copied; both are fixed for the lifetime of the Log.
func NewWith(sink io.Writer, r identity.Resolver, argv []string, opts ...Option) *Log {
	l := &Log{
		sink: sink,
		cmd:  append(make([]string, 0, len(argv)), argv...),
		now:  time.Now,
		pid:  os.Getpid,
	}
	if name, ok := r.Resolve(); ok {
		l.user = &name
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// User returns the process owner recorded in every event.
func (l *Log) User() (string, bool) {
	if l.user == nil {
		return "", false
	}
	return *l.user, true
}

// Cmd returns a copy of the command line recorded in every event.
func (l *Log) Cmd() []string {
	return append([]string(nil), l.cmd...)
}

// Record appends p under its own kind.
func (l *Log) Record(p model.Payload) error {
	return l.RecordAction(p.Kind(), p)
}

// RecordAction appends one record of the given kind with data as its
// payload. Nothing is written unless the whole record could be encoded, and
// the call does not return until the line has been handed to the sink.
func (l *Log) RecordAction(kind model.EventKind, data any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return errclass.ErrSinkWrite.WithMessage("action log is closed")
	}

	ts, err := l.now().UTC().MarshalText()
	if err != nil {
		return errclass.ErrTimestampFormat.Wrap("format record time", err)
	}

	if err := l.validate(kind); err != nil {
		return err
	}

	record := &model.Event{
		Type: kind,
		Time: string(ts),
		PID:  uint32(l.pid()),
		User: l.user,
		Cmd:  l.cmd,
		Data: data,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return errclass.ErrRecordEncode.Wrap(fmt.Sprintf("marshal %s record", kind), err)
	}

	line = append(line, '\n')
	n, err := l.sink.Write(line)
	if err != nil {
		return errclass.ErrSinkWrite.Wrap("write record", err)
	}
	if n != len(line) {
		return errclass.ErrSinkWrite.Wrap("write record", io.ErrShortWrite)
	}

	if f, ok := l.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return errclass.ErrSinkWrite.Wrap("flush record", err)
		}
	}

	return nil
}

// validate rejects strings encoding/json would silently rewrite.
func (l *Log) validate(kind model.EventKind) error {
	if kind == "" {
		return errclass.ErrRecordEncode.WithMessage("record kind is empty")
	}
	if !utf8.ValidString(string(kind)) {
		return errclass.ErrRecordEncode.WithMessagef("record kind %q is not valid UTF-8", kind)
	}
	for i, arg := range l.cmd {
		if !utf8.ValidString(arg) {
			return errclass.ErrRecordEncode.WithMessagef("argument %d %q is not valid UTF-8", i, arg)
		}
	}
	return nil
}

// Close flushes the sink and closes it if it is an io.Closer. Later calls
// to RecordAction fail.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var flushErr error
	if f, ok := l.sink.(Flusher); ok {
		flushErr = f.Flush()
	}
	if c, ok := l.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return errclass.ErrSinkWrite.Wrap("close sink", err)
		}
	}
	if flushErr != nil {
		return errclass.ErrSinkWrite.Wrap("flush sink", flushErr)
	}
	return nil
}
