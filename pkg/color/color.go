// Package color provides terminal color output for lyrebird's own messages.
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// stays off when stderr is not a terminal.
package color

import (
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

var state struct {
	once       sync.Once
	enabled    atomic.Bool
	overridden atomic.Bool
}

// Init decides whether color is used. Only the first call has an effect
// unless Enable or Disable overrode the decision.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if state.overridden.Load() {
			return
		}
		enabled := !noColorFlag && term.IsTerminal(int(os.Stderr.Fd()))
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			enabled = false
		}
		if os.Getenv("TERM") == "dumb" {
			enabled = false
		}
		state.enabled.Store(enabled)
	})
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	Init(false)
	return state.enabled.Load()
}

// Disable turns off color output.
func Disable() {
	state.overridden.Store(true)
	state.enabled.Store(false)
}

// Enable turns on color output.
func Enable() {
	state.overridden.Store(true)
	state.enabled.Store(true)
}

// ANSI color codes
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func wrap(code, s string) string {
	if !Enabled() {
		return s
	}
	return code + s + Reset
}

// Success formats a success message in green.
func Success(s string) string { return wrap(Green, s) }

// Error formats an error message in bold red.
func Error(s string) string { return wrap(Bold+Red, s) }

// Warning formats a warning in yellow.
func Warning(s string) string { return wrap(Yellow, s) }

// Highlight formats a value the user should notice in cyan.
func Highlight(s string) string { return wrap(Cyan, s) }
