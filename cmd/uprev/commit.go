package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/messages"
)

func newCommitCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CommitUse,
		Short: messages.CommitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner("commit", opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runner.Commit(cmd.Context())
		},
	}
}
