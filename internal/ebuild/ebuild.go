// Package ebuild models on-disk ebuild definitions and implements the
// promotion of cros-workon 9999 ebuilds to pinned stable revisions.
package ebuild

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Suffix is the ebuild file extension.
	Suffix = ".ebuild"
	// UnstableVersion is the reserved placeholder version of a live-tracking
	// ebuild that perpetually follows the tip of its source repository.
	UnstableVersion = "9999"
	// BootstrapVersion is the version assigned to the first stabilization of
	// a package that has never had a stable ebuild.
	BootstrapVersion = "0.0.1"
	// CommitKeyword is the variable binding a stable ebuild to the source
	// commit it was built from.
	CommitKeyword = "CROS_WORKON_COMMIT"
)

var (
	revisionRe = regexp.MustCompile(`-r(\d+)$`)
	versionRe  = regexp.MustCompile(`-(\d[^-]*)$`)
)

// Ebuild is one parsed ebuild file. It is immutable after Parse; promotion
// creates a new file rather than mutating the record.
type Ebuild struct {
	// Path is the location of the ebuild file.
	Path string
	// Category and PkgName identify the package; Package is category/pkgname.
	Category string
	PkgName  string
	Package  string
	// VersionNoRev is the version without the -rN revision suffix.
	VersionNoRev string
	// Version includes the revision suffix (r0 when the file carries none).
	Version string
	// CurrentRevision is the parsed revision number, zero when absent.
	CurrentRevision int
	// PathNoVersion is the sibling path prefix without any version.
	PathNoVersion string
	// PathNoRevision is the sibling path prefix without the revision suffix.
	PathNoRevision string
	// Workon is set when the ebuild inherits the cros-workon eclass.
	Workon bool
	// Stable is set when the ebuild declares released (un-~'d) keywords.
	Stable bool
}

// Parse reads one ebuild file into a record. The file name must follow the
// <pkgname>-<version>[-r<revision>].ebuild convention.
func Parse(path string) (*Ebuild, error) {
	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), Suffix)

	revision := 0
	if m := revisionRe.FindStringSubmatch(name); m != nil {
		revision, _ = strconv.Atoi(m[1])
		name = strings.TrimSuffix(name, m[0])
	}
	m := versionRe.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("cannot parse ebuild name %s", path)
	}
	versionNoRev := m[1]

	pkgName := filepath.Base(dir)
	category := filepath.Base(filepath.Dir(dir))

	e := &Ebuild{
		Path:            path,
		Category:        category,
		PkgName:         pkgName,
		Package:         category + "/" + pkgName,
		VersionNoRev:    versionNoRev,
		Version:         fmt.Sprintf("%s-r%d", versionNoRev, revision),
		CurrentRevision: revision,
		PathNoVersion:   filepath.Join(dir, pkgName),
		PathNoRevision:  filepath.Join(dir, pkgName+"-"+versionNoRev),
	}

	if err := e.scanMetadata(); err != nil {
		return nil, err
	}
	return e, nil
}

// scanMetadata reads the ebuild body for the inherit and KEYWORDS lines that
// decide the workon and stable flags.
func (e *Ebuild) scanMetadata() error {
	f, err := os.Open(e.Path)
	if err != nil {
		return fmt.Errorf("read ebuild %s: %w", e.Path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "inherit ") && strings.Contains(line, "cros-workon"):
			e.Workon = true
		case strings.HasPrefix(line, "KEYWORDS=") && !strings.Contains(line, "~") &&
			(strings.Contains(line, "amd64") || strings.Contains(line, "x86") || strings.Contains(line, "arm")):
			e.Stable = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ebuild %s: %w", e.Path, err)
	}
	return nil
}

// UnstablePath returns the expected location of the package's 9999 ebuild.
func (e *Ebuild) UnstablePath() string {
	return e.PathNoVersion + "-" + UnstableVersion + Suffix
}
