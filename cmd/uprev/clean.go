package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/messages"
)

func newCleanCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner("clean", opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runner.Clean(cmd.Context())
		},
	}
}
