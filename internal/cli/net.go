package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RomanHargrave/lyrebird/internal/action"
	"github.com/RomanHargrave/lyrebird/pkg/color"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

func newNetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "net <command>",
		Short: "Send data over the network",
	}
	cmd.AddCommand(newSendCmd("tcp"), newSendCmd("udp"))
	return cmd
}

func newSendCmd(proto string) *cobra.Command {
	var timeout int

	cmd := &cobra.Command{
		Use:   proto + " <host:port> [data]",
		Short: fmt.Sprintf("Send data to a %s peer", proto),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := action.NetRequest{
				Proto:   proto,
				Dest:    args[0],
				Data:    cfg.Net.Message,
				Timeout: time.Duration(cfg.Net.Timeout) * time.Second,
			}
			if len(args) == 2 {
				req.Data = args[1]
			}
			if cmd.Flags().Changed("timeout") {
				req.Timeout = time.Duration(timeout) * time.Second
			}

			var sent model.NetSend
			err := withLog(cmd.Context(), func(ctx context.Context, rec action.Recorder) error {
				var err error
				sent, err = action.Send(ctx, rec, req)
				return err
			})
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), sent, fmt.Sprintf("%s %d bytes %s:%d -> %s:%d",
				color.Success("sent"), sent.Bytes, sent.SrcAddr, sent.SrcPort, sent.DstAddr, sent.DstPort))
		},
	}
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "connect timeout in seconds (default from configuration)")
	return cmd
}
