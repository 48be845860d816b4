package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/RomanHargrave/lyrebird/internal/action"
	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

func newFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <command>",
		Short: "Create, modify or delete files",
	}

	var createContent string
	createCmd := &cobra.Command{
		Use:   "create [path]",
		Short: "Create a new file",
		Long: `Create a new file and record it. The file must not exist yet.
Without a path a uniquely named file is created in the temporary directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			content := cfg.File.Content
			if cmd.Flags().Changed("content") {
				content = createContent
			}
			return runFileAction(cmd, model.FileCreate, func(ctx context.Context, rec action.Recorder) (string, error) {
				return action.CreateFile(ctx, rec, path, content)
			})
		},
	}
	createCmd.Flags().StringVarP(&createContent, "content", "c", "", "file content (default from configuration)")

	var modifyContent string
	modifyCmd := &cobra.Command{
		Use:   "modify <path>",
		Short: "Append to an existing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := cfg.File.Content
			if cmd.Flags().Changed("content") {
				content = modifyContent
			}
			return runFileAction(cmd, model.FileModify, func(ctx context.Context, rec action.Recorder) (string, error) {
				return action.ModifyFile(ctx, rec, args[0], content)
			})
		},
	}
	modifyCmd.Flags().StringVarP(&modifyContent, "content", "c", "", "content to append (default from configuration)")

	deleteCmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileAction(cmd, model.FileDelete, func(ctx context.Context, rec action.Recorder) (string, error) {
				return action.DeleteFile(ctx, rec, args[0])
			})
		},
	}

	cmd.AddCommand(createCmd, modifyCmd, deleteCmd)
	return cmd
}

func runFileAction(cmd *cobra.Command, op model.FileOp, fn func(context.Context, action.Recorder) (string, error)) error {
	var abs string
	err := withLog(cmd.Context(), func(ctx context.Context, rec action.Recorder) error {
		var err error
		abs, err = fn(ctx, rec)
		return err
	})
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), model.FileAction{Action: op, File: abs}, color.Success(string(op))+" "+abs)
}
