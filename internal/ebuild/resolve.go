package ebuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/uprev/internal/messages"
	"github.com/conn-castle/uprev/internal/warnings"
)

// CompareFunc orders two package version strings. A negative result sorts a
// before b. The package-manager ordering is authoritative; the resolver only
// consumes it.
type CompareFunc func(a, b string) int

// Best returns the ebuild with the highest version according to cmp.
func Best(ebuilds []*Ebuild, cmp CompareFunc) *Ebuild {
	winner := ebuilds[0]
	for _, e := range ebuilds[1:] {
		if cmp(winner.Version, e.Version) < 0 {
			winner = e
		}
	}
	return winner
}

// FindUprevCandidate selects the single ebuild in a package directory that
// should be promoted, or nil when the directory holds nothing promotable.
//
// A directory containing a live-tracking (workon, unstable) ebuild is subject
// to sanity rules: exactly one live-tracking ebuild must exist, multiple
// stable ebuilds reduce to the highest version with an advisory warning
// (unless the package is exempt), and a missing stable ebuild returns the
// live-tracking one as a bootstrap candidate with a warning. Directories
// without a live-tracking ebuild return their highest stable ebuild silently.
//
// files is the directory's file listing; symbolic links and non-ebuild files
// are ignored. exempt suppresses the multiple-stable warning per package.
// An error is fatal for the whole run.
func FindUprevCandidate(files []string, cmp CompareFunc, exempt func(pkg string) bool) (*Ebuild, []warnings.Warning, error) {
	var tracking, stable []*Ebuild
	var dir string
	for _, path := range files {
		if !strings.HasSuffix(path, Suffix) || isSymlink(path) {
			continue
		}
		e, err := Parse(path)
		if err != nil {
			return nil, nil, err
		}
		dir = filepath.Dir(path)
		switch {
		case e.Stable:
			stable = append(stable, e)
		case e.Workon:
			tracking = append(tracking, e)
		}
	}

	if len(tracking) == 0 {
		if len(stable) > 0 {
			return Best(stable, cmp), nil, nil
		}
		return nil, nil, nil
	}

	if len(tracking) > 1 {
		return nil, nil, fmt.Errorf(messages.ErrMultipleUnstableFmt, dir)
	}

	var warns []warnings.Warning
	if len(stable) > 1 {
		best := Best(stable, cmp)
		// Keeping several stable ebuilds around is error-prone because the
		// older ones never get revved again.
		if exempt == nil || !exempt(best.Package) {
			warns = append(warns, warnings.New(
				warnings.CodeMultipleStableEbuilds, best.Package,
				messages.WarnMultipleStableFmt, dir))
		}
		stable = []*Ebuild{best}
	}

	if len(stable) == 0 {
		// Bootstrap: the package has a 9999 ebuild but was never stabilized.
		warns = append(warns, warnings.New(
			warnings.CodeMissingStableEbuild, tracking[0].Package,
			messages.WarnMissingStableFmt, dir))
		return tracking[0], warns, nil
	}
	return stable[0], warns, nil
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
