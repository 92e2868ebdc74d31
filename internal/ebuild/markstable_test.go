package ebuild

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/conn-castle/uprev/internal/testutil"
)

type fakeStager struct {
	added   []string
	removed []string
}

func (s *fakeStager) Add(_ context.Context, path string) error {
	s.added = append(s.added, path)
	return nil
}

func (s *fakeStager) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func TestStabilizeLines(t *testing.T) {
	t.Parallel()
	in := []string{
		`EAPI=2`,
		`inherit cros-workon`,
		`KEYWORDS="~amd64 ~arm ~x86"`,
		`SRC_URI=""`,
	}
	want := []string{
		`EAPI=2`,
		`CROS_WORKON_COMMIT="abc123"`,
		`inherit cros-workon`,
		`KEYWORDS="amd64 arm x86"`,
		`SRC_URI=""`,
	}
	got := StabilizeLines(in, CommitKeyword, "abc123")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StabilizeLines = %q, want %q", got, want)
	}
}

func TestStabilizeLinesReplacesOldCommitBinding(t *testing.T) {
	t.Parallel()
	in := []string{
		`EAPI=2`,
		`CROS_WORKON_COMMIT="old456"`,
		`inherit cros-workon`,
		`KEYWORDS="~amd64"`,
	}
	got := StabilizeLines(in, CommitKeyword, "new789")

	count := 0
	for _, line := range got {
		if line == `CROS_WORKON_COMMIT="new789"` {
			count++
		}
		if line == `CROS_WORKON_COMMIT="old456"` {
			t.Fatalf("old binding survived: %q", got)
		}
	}
	if count != 1 {
		t.Fatalf("want exactly one commit binding, got %q", got)
	}
	if got[0] != `EAPI=2` || got[1] != `CROS_WORKON_COMMIT="new789"` {
		t.Fatalf("binding must directly follow the EAPI line: %q", got)
	}
}

func TestRevStableCandidate(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	testutil.WriteEbuild(t, dir, "foo-9999.ebuild", testutil.WorkonLines(false)...)
	oldStable := testutil.WriteEbuild(t, dir, "foo-1.0-r1.ebuild",
		StabilizeLines(testutil.WorkonLines(false), CommitKeyword, "old456")...)

	e, err := Parse(oldStable)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	stager := &fakeStager{}
	changed, err := NewMarker(e, stager).Rev(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Rev error: %v", err)
	}
	if !changed {
		t.Fatalf("expected a real change")
	}

	newPath := filepath.Join(dir, "foo-1.0-r2.ebuild")
	data, err := os.ReadFile(newPath)
	if err != nil {
		t.Fatalf("new stable ebuild missing: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `CROS_WORKON_COMMIT="abc123"`) {
		t.Fatalf("new ebuild not pinned to commit: %s", content)
	}
	if strings.Contains(content, "~") {
		t.Fatalf("new ebuild still carries unstable keywords: %s", content)
	}
	if len(stager.added) != 1 || stager.added[0] != newPath {
		t.Fatalf("added = %v, want %q", stager.added, newPath)
	}
	if len(stager.removed) != 1 || stager.removed[0] != oldStable {
		t.Fatalf("removed = %v, want %q", stager.removed, oldStable)
	}
}

func TestRevIdempotentUnderSameCommit(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	testutil.WriteEbuild(t, dir, "foo-9999.ebuild", testutil.WorkonLines(false)...)
	stable := testutil.WriteEbuild(t, dir, "foo-1.0-r2.ebuild",
		StabilizeLines(testutil.WorkonLines(false), CommitKeyword, "abc123")...)

	e, err := Parse(stable)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	stager := &fakeStager{}
	changed, err := NewMarker(e, stager).Rev(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Rev error: %v", err)
	}
	if changed {
		t.Fatalf("identical content must not count as a change")
	}
	if _, err := os.Stat(filepath.Join(dir, "foo-1.0-r3.ebuild")); !os.IsNotExist(err) {
		t.Fatalf("unchanged promotion must not leave a new file behind")
	}
	if len(stager.added) != 0 || len(stager.removed) != 0 {
		t.Fatalf("nothing should be staged, got %v %v", stager.added, stager.removed)
	}
}

func TestRevBootstrapCandidate(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	unstable := testutil.WriteEbuild(t, dir, "foo-9999.ebuild", testutil.WorkonLines(false)...)

	e, err := Parse(unstable)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	stager := &fakeStager{}
	changed, err := NewMarker(e, stager).Rev(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Rev error: %v", err)
	}
	if !changed {
		t.Fatalf("bootstrap must produce a change")
	}
	newPath := filepath.Join(dir, "foo-0.0.1-r1.ebuild")
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("bootstrap ebuild missing: %v", err)
	}
	if len(stager.removed) != 0 {
		t.Fatalf("bootstrap must not remove anything, got %v", stager.removed)
	}
}

func TestRevMissingUnstableIsFatal(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	stable := testutil.WriteEbuild(t, dir, "foo-1.0-r1.ebuild", testutil.WorkonLines(true)...)

	e, err := Parse(stable)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, err := NewMarker(e, &fakeStager{}).Rev(context.Background(), "abc123"); err == nil {
		t.Fatalf("expected error for missing 9999 ebuild")
	}
}

func TestRevIgnoresBlankLineDifferences(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	testutil.WriteEbuild(t, dir, "foo-9999.ebuild", testutil.WorkonLines(false)...)
	stableLines := StabilizeLines(testutil.WorkonLines(false), CommitKeyword, "abc123")
	spaced := append([]string{stableLines[0], ""}, stableLines[1:]...)
	stable := testutil.WriteEbuild(t, dir, "foo-1.0-r1.ebuild", spaced...)

	e, err := Parse(stable)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	changed, err := NewMarker(e, &fakeStager{}).Rev(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Rev error: %v", err)
	}
	if changed {
		t.Fatalf("blank-line-only differences must not count as a change")
	}
}
