package ebuild

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/uprev/internal/logging"
	"github.com/conn-castle/uprev/internal/messages"
)

// Stager stages file additions and removals for the next local commit.
// *gitrepo.Repo satisfies it.
type Stager interface {
	Add(ctx context.Context, path string) error
	Remove(ctx context.Context, path string) error
}

// stabilizeRule rewrites one matched line into zero or more output lines.
type stabilizeRule struct {
	match func(line string) bool
	emit  func(line string) []string
}

// stabilizeRules builds the ordered rewrite rules that turn an unstable
// ebuild body into its stable form. Rules are evaluated top to bottom; the
// first match wins per line.
func stabilizeRules(keyword, value string) []stabilizeRule {
	return []stabilizeRule{
		{
			// Remove the ~ instability markers so the keywords become stable.
			match: func(line string) bool { return strings.HasPrefix(line, "KEYWORDS") },
			emit:  func(line string) []string { return []string{strings.ReplaceAll(line, "~", "")} },
		},
		{
			// Bind the commit keyword directly after the EAPI declaration.
			match: func(line string) bool { return strings.HasPrefix(line, "EAPI") },
			emit:  func(line string) []string { return []string{line, fmt.Sprintf("%s=%q", keyword, value)} },
		},
		{
			// Drop a binding left over from a previous promotion.
			match: func(line string) bool { return strings.HasPrefix(line, keyword) },
			emit:  func(line string) []string { return nil },
		},
	}
}

// StabilizeLines is the pure rewrite of an unstable ebuild's lines into the
// stable form with keyword bound to value.
func StabilizeLines(lines []string, keyword, value string) []string {
	rules := stabilizeRules(keyword, value)
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		matched := false
		for _, rule := range rules {
			if rule.match(line) {
				out = append(out, rule.emit(line)...)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, line)
		}
	}
	return out
}

// Marker revs one ebuild and stages the result.
type Marker struct {
	ebuild *Ebuild
	stager Stager
}

// NewMarker returns a marker for the given promotion candidate.
func NewMarker(e *Ebuild, stager Stager) *Marker {
	return &Marker{ebuild: e, stager: stager}
}

// NextStablePath computes where the new stable ebuild will be written: the
// next revision of the candidate's version line, or revision 1 of the
// bootstrap version when the candidate has never been stabilized.
func (m *Marker) NextStablePath() string {
	e := m.ebuild
	if e.Stable {
		return fmt.Sprintf("%s-r%d%s", e.PathNoRevision, e.CurrentRevision+1, Suffix)
	}
	return fmt.Sprintf("%s-%s-r%d%s", e.PathNoVersion, BootstrapVersion, e.CurrentRevision+1, Suffix)
}

// Rev creates the next stable ebuild pinned to commitID and reports whether
// it differs meaningfully from the current candidate. On a real change the
// new file is staged for commit and, when the candidate was itself stable,
// the old file is staged for removal. On no change the new file is deleted.
//
// A missing 9999 ebuild is fatal: there is no source of truth to promote.
func (m *Marker) Rev(ctx context.Context, commitID string) (bool, error) {
	e := m.ebuild
	newPath := m.NextStablePath()
	log := logging.GetLogger("markstable")
	log.Debug().Str("package", e.Package).Msgf("creating new stable ebuild %s", newPath)

	unstablePath := e.UnstablePath()
	info, err := os.Stat(unstablePath)
	if err != nil {
		return false, fmt.Errorf(messages.ErrMissingUnstableFmt, unstablePath)
	}
	data, err := os.ReadFile(unstablePath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", unstablePath, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	stable := StabilizeLines(lines, CommitKeyword, commitID)
	content := strings.Join(stable, "\n") + "\n"
	if err := os.WriteFile(newPath, []byte(content), info.Mode()); err != nil {
		return false, fmt.Errorf("write %s: %w", newPath, err)
	}

	oldData, err := os.ReadFile(e.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", e.Path, err)
	}

	// Blank-line-only differences do not count as a change.
	diff := udiff.Unified(e.Path, newPath, dropBlankLines(string(oldData)), dropBlankLines(content))
	if diff == "" {
		if err := os.Remove(newPath); err != nil {
			return false, fmt.Errorf("remove unchanged %s: %w", newPath, err)
		}
		return false, nil
	}
	log.Debug().Msg(diff)

	log.Debug().Msgf("adding new stable ebuild %s", newPath)
	if err := m.stager.Add(ctx, newPath); err != nil {
		return false, err
	}
	if e.Stable {
		log.Debug().Msgf("removing old ebuild %s", e.Path)
		if err := m.stager.Remove(ctx, e.Path); err != nil {
			return false, err
		}
	}
	return true, nil
}

func dropBlankLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n") + "\n"
}
