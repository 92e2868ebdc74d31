package messages

// Run-time messages emitted while resolving, promoting, and publishing.
const (
	WarnMissingOverlaysFlag   = "missing --overlays argument, using default overlay roots"
	WarnSkippingOverlayFmt    = "skipping %s"
	WarnMultipleStableFmt     = "found multiple stable ebuilds in %s"
	WarnMissingStableFmt      = "missing stable ebuild in %s"
	WarnCannotUprevFmt        = "cannot uprev %s; you will have to go into %s and reset the git repo yourself"
	WarnPushRetryFmt          = "failed to push change, performing retry (%d/%d)"
	InfoNotOnBranchFmt        = "not on branch %s so no work found to push, exiting"
	InfoCleaningStaleFmt      = "cleaning up stale packages %v"
	WarnCleanStaleFailedFmt   = "stale package cleanup failed: %v"
	ErrMultipleUnstableFmt    = "found multiple unstable ebuilds in %s"
	ErrMissingUnstableFmt     = "missing unstable ebuild: %s"
	ErrCreateBranchFmt        = "unable to create stabilizing branch in %s"
	ErrCreateMergeBranch      = "unable to create merge branch"
	ErrMissingSrcDirFmt       = "cannot find commit id for %s"
	ErrMissingCommitIDFmt     = "missing commit id for %s"
	ErrProjectNameMismatchFmt = "project name mismatch for %s (%s != %s)"

	// PushBanner is the first line of every published squash commit.
	PushBanner = "Marking set of ebuilds as stable"
	// CommitMessageFmt takes a package name and a commit id.
	CommitMessageFmt = "Marking 9999 ebuild for %s with commit %s as stable."
)
