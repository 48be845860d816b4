package cli

import (
	"github.com/spf13/cobra"

	"github.com/RomanHargrave/lyrebird/internal/identity"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the user recorded in log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := identity.Current()
			out := struct {
				User *string `json:"user"`
			}{}
			text := "unknown"
			if ok {
				out.User = &name
				text = name
			}
			return report(cmd.OutOrStdout(), out, text)
		},
	}
}
