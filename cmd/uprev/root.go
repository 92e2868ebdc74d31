package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/uprev/internal/cmdrun"
	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/logging"
	"github.com/conn-castle/uprev/internal/messages"
	"github.com/conn-castle/uprev/internal/uprev"
	"github.com/conn-castle/uprev/internal/warnings"
)

func newRootCmd() *cobra.Command {
	opts := &config.Options{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.All, "all", false, messages.FlagAll)
	flags.StringVarP(&opts.Board, "board", "b", "", messages.FlagBoard)
	flags.BoolVar(&opts.DryRun, "dry-run", false, messages.FlagDryRun)
	flags.StringVarP(&opts.Overlays, "overlays", "o", "", messages.FlagOverlays)
	flags.StringVarP(&opts.Packages, "packages", "p", "", messages.FlagPackages)
	flags.StringVarP(&opts.SrcRoot, "srcroot", "r", config.DefaultSrcRoot(), messages.FlagSrcRoot)
	flags.StringVarP(&opts.TrackingBranch, "tracking-branch", "t", config.DefaultTrackingBranch, messages.FlagTrackingBranch)
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, messages.FlagVerbose)
	flags.StringVar(&opts.ExemptionsPath, "exemptions", "", messages.FlagExemptions)

	cmd.AddCommand(newCleanCmd(opts))
	cmd.AddCommand(newCommitCmd(opts))
	cmd.AddCommand(newPushCmd(opts))
	return cmd
}

// newRunner validates the flags for command and wires up a runner against
// the real subprocess executor.
func newRunner(command string, opts *config.Options, out, errOut io.Writer) (*uprev.Runner, error) {
	logging.Setup(opts.Verbose, errOut)
	cfg, usedDefaults, err := config.New(command, *opts)
	if err != nil {
		return nil, err
	}
	if usedDefaults {
		warnings.NewEmitter(errOut).Emitf(
			warnings.CodeMissingOverlaysFlag, "", messages.WarnMissingOverlaysFlag)
	}
	return uprev.New(cfg, cmdrun.Exec{}, out, errOut), nil
}
