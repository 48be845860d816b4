package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RomanHargrave/lyrebird/internal/action"
	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

func newExecCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "exec [--wait] <executable> [args...]",
		Short: "Start a process",
		Long: `Start a process and record its pid. Everything after the executable is
passed to it unchanged. By default the process is left running; with --wait
lyrebird waits for it and fails if it exits non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, rest := args[0], args[1:]
			var pid int
			err := withLog(cmd.Context(), func(ctx context.Context, rec action.Recorder) error {
				var err error
				pid, err = action.StartProcess(ctx, rec, exe, rest, wait)
				return err
			})
			if err != nil {
				return err
			}
			payload := model.ProcessStart{Cmd: exe, Args: append([]string{}, rest...), PID: pid}
			return report(cmd.OutOrStdout(), payload, fmt.Sprintf("%s %s (pid %d)", color.Success("started"), exe, pid))
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the process to exit")
	return cmd
}
