package ebuild

import (
	"path/filepath"
	"testing"

	"github.com/conn-castle/uprev/internal/testutil"
)

func TestParseStableEbuild(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	path := testutil.WriteEbuild(t, dir, "foo-1.0-r1.ebuild", testutil.WorkonLines(true)...)

	e, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if e.Package != "chromeos-base/foo" {
		t.Fatalf("Package = %q", e.Package)
	}
	if e.VersionNoRev != "1.0" || e.Version != "1.0-r1" || e.CurrentRevision != 1 {
		t.Fatalf("version fields = %q %q %d", e.VersionNoRev, e.Version, e.CurrentRevision)
	}
	if e.PathNoVersion != filepath.Join(dir, "foo") {
		t.Fatalf("PathNoVersion = %q", e.PathNoVersion)
	}
	if e.PathNoRevision != filepath.Join(dir, "foo-1.0") {
		t.Fatalf("PathNoRevision = %q", e.PathNoRevision)
	}
	if !e.Workon || !e.Stable {
		t.Fatalf("flags = workon %v stable %v", e.Workon, e.Stable)
	}
}

func TestParseUnstableEbuild(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	path := testutil.WriteEbuild(t, dir, "foo-9999.ebuild", testutil.WorkonLines(false)...)

	e, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if e.VersionNoRev != "9999" || e.CurrentRevision != 0 || e.Version != "9999-r0" {
		t.Fatalf("version fields = %q %d %q", e.VersionNoRev, e.CurrentRevision, e.Version)
	}
	if !e.Workon || e.Stable {
		t.Fatalf("flags = workon %v stable %v", e.Workon, e.Stable)
	}
	if e.UnstablePath() != path {
		t.Fatalf("UnstablePath = %q, want %q", e.UnstablePath(), path)
	}
}

func TestParseHyphenatedPackageName(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "x11-drivers", "xf86-video-msm")
	path := testutil.WriteEbuild(t, dir, "xf86-video-msm-0.2.1-r12.ebuild", testutil.WorkonLines(true)...)

	e, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if e.Package != "x11-drivers/xf86-video-msm" {
		t.Fatalf("Package = %q", e.Package)
	}
	if e.VersionNoRev != "0.2.1" || e.CurrentRevision != 12 {
		t.Fatalf("version fields = %q %d", e.VersionNoRev, e.CurrentRevision)
	}
}

func TestParseRejectsVersionlessName(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	path := testutil.WriteEbuild(t, dir, "foo.ebuild", testutil.WorkonLines(true)...)

	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for versionless ebuild name")
	}
}

func TestParseKeywordsWithTildeIsNotStable(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "chromeos-base", "foo")
	path := testutil.WriteEbuild(t, dir, "foo-1.0-r1.ebuild",
		`EAPI=2`,
		`inherit cros-workon`,
		`KEYWORDS="amd64 ~arm x86"`,
	)

	e, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if e.Stable {
		t.Fatalf("ebuild with ~ keywords must not be stable")
	}
}
