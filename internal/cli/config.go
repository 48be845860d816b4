package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Manage lyrebird configuration",
		Long: `Manage lyrebird configuration.

Configuration keys (environment override in parentheses):
  log           - action log target (LYREBIRD_LOG)
  log_level     - diagnostic log level (LYREBIRD_LOG_LEVEL)
  file.content  - content written by file create and file modify (LYREBIRD_FILE_CONTENT)
  net.message   - data sent by net tcp and net udp (LYREBIRD_NET_MESSAGE)
  net.timeout   - connect timeout in seconds (LYREBIRD_NET_TIMEOUT)`,
		DisableFlagsInUseLine: true,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jsonOutput {
				return report(cmd.OutOrStdout(), cfg, "")
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no configuration directory; pass a path")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), map[string]string{"path": path}, color.Success("wrote")+" "+path)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}
