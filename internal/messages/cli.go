package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "uprev"
	// RootShort is the short description for the root command.
	RootShort = "Promote 9999 ebuilds to pinned stable revisions"
	RootLong  = "uprev marks cros-workon ebuilds as stable by pinning them to the current\ncommit of their source repository, collecting the changes on a local\nstabilizing branch, and optionally pushing them to the tracking branch."

	CleanUse   = "clean"
	CleanShort = "Clean up previous calls to either commit or push"

	CommitUse   = "commit"
	CommitShort = "Mark given ebuilds as stable locally"

	PushUse   = "push"
	PushShort = "Push previous marking of ebuilds to the remote repo"

	FlagAll            = "Mark all packages as stable"
	FlagBoard          = "Board for which the package belongs"
	FlagDryRun         = "Pass --dry-run to git push when pushing a change"
	FlagOverlays       = "Colon-separated list of overlays to modify"
	FlagPackages       = "Colon-separated list of packages to mark as stable"
	FlagSrcRoot        = "Path to root src directory"
	FlagTrackingBranch = "Branch to track against when committing"
	FlagVerbose        = "Print verbose information about what is going on"
	FlagExemptions     = "Optional TOML file with legacy exemption allow-lists"
)

// Validation messages for CLI argument checks.
const (
	ErrMissingPackages   = "please specify at least one package (or --all)"
	ErrMissingBoard      = "please specify a board"
	ErrBadSrcRootFmt     = "srcroot %q is not a valid path"
	ErrMissingOverlayFmt = "cannot find overlay: %s"
)
