package color

import (
	"strings"
	"sync"
	"testing"
)

func reset() {
	state.once = sync.Once{}
	state.overridden.Store(false)
	state.enabled.Store(false)
}

func TestEnableDisable(t *testing.T) {
	t.Cleanup(reset)

	Enable()
	if !Enabled() {
		t.Error("expected colors enabled after Enable()")
	}
	Disable()
	if Enabled() {
		t.Error("expected colors disabled after Disable()")
	}
}

func TestFormatters(t *testing.T) {
	t.Cleanup(reset)

	Enable()
	for name, fn := range map[string]func(string) string{
		"Success":   Success,
		"Error":     Error,
		"Warning":   Warning,
		"Highlight": Highlight,
	} {
		got := fn("text")
		if !strings.HasPrefix(got, "\033[") || !strings.HasSuffix(got, Reset) || !strings.Contains(got, "text") {
			t.Errorf("%s() enabled = %q", name, got)
		}
	}

	Disable()
	if got := Error("text"); got != "text" {
		t.Errorf("Error() disabled should return plain text, got %q", got)
	}
}

func TestInitRespectsNoColorEnv(t *testing.T) {
	t.Cleanup(reset)
	reset()
	t.Setenv("NO_COLOR", "1")

	Init(false)
	if Enabled() {
		t.Error("expected colors to be disabled when NO_COLOR is set")
	}
}

func TestInitRespectsNoColorFlag(t *testing.T) {
	t.Cleanup(reset)
	reset()

	Init(true)
	if Enabled() {
		t.Error("expected colors to be disabled when noColorFlag is true")
	}
}

func TestInitRespectsOverride(t *testing.T) {
	t.Cleanup(reset)
	reset()

	Enable()
	Init(true)
	if !Enabled() {
		t.Error("explicit Enable() must survive Init")
	}
}
