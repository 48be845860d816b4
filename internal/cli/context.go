package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/RomanHargrave/lyrebird/internal/action"
	"github.com/RomanHargrave/lyrebird/internal/actionlog"
	"github.com/RomanHargrave/lyrebird/internal/sink"
	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/logging"
)

// withLog opens the configured sink, lends fn a fresh action log and closes
// it afterwards. A close failure is joined to fn's error.
func withLog(ctx context.Context, fn func(ctx context.Context, rec action.Recorder) error) (err error) {
	w, err := sink.Open(cfg.Log)
	if err != nil {
		return err
	}
	log := actionlog.New(w)
	defer func() {
		err = errors.Join(err, log.Close())
	}()

	user, ok := log.User()
	if !ok {
		user = "unknown"
	}
	logging.Debug("action log opened", map[string]any{"target": cfg.Log, "user": user})

	return fn(ctx, log)
}

func fmtErr(format string, args ...any) {
	prefix := "lyrebird: "
	if color.Enabled() {
		prefix = color.Error("lyrebird:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
