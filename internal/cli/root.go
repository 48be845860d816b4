package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RomanHargrave/lyrebird/internal/sink"
	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/config"
	"github.com/RomanHargrave/lyrebird/pkg/logging"
)

type globalOptions struct {
	logTarget  string
	configPath string
	logLevel   string
	noColor    bool
	jsonOutput bool
}

var (
	opts globalOptions
	// cfg is the effective configuration, set before any subcommand runs.
	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	opts = globalOptions{}
	cfg = nil

	cmd := &cobra.Command{
		Use:   "lyrebird",
		Short: "Lyrebird - endpoint activity simulator",
		Long: `Lyrebird performs file, process and network activity on demand and
writes a JSON line describing each action to an append-only log, so that
endpoint telemetry can be compared against ground truth.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logTarget, "log", "", `action log target: a path, "-" for stdout or "discard" (default `+sink.DefaultPath()+`)`)
	pf.StringVar(&opts.configPath, "config", "", "configuration file (default "+config.DefaultPath()+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	cmd.AddCommand(newFileCmd())
	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newNetCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// setup resolves the effective configuration: defaults, then the config
// file, then LYREBIRD_* variables, then flags.
func setup(cmd *cobra.Command, _ []string) error {
	color.Init(opts.noColor)

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if opts.logLevel != "" {
		c.LogLevel = opts.logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if opts.logTarget != "" {
		c.Log = opts.logTarget
	}
	if c.Log == "" {
		c.Log = sink.DefaultPath()
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logging.SetGlobal(logging.NewLogger(level))
	logging.Debug("configuration loaded", map[string]any{"config": path, "log": c.Log})

	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
}

// report prints v as JSON if --json is set, otherwise prints text.
func report(w io.Writer, v any, text string) error {
	if !opts.jsonOutput {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
