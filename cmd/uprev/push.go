package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/messages"
)

func newPushCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PushUse,
		Short: messages.PushShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner("push", opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runner.Push(cmd.Context())
		},
	}
}
