package ebuild

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conn-castle/uprev/internal/cmdrun"
	"github.com/conn-castle/uprev/internal/messages"
)

// SourceInfo is the cros-workon metadata a 9999 ebuild declares about its
// companion source repository.
type SourceInfo struct {
	// Project is the declared remote project identity.
	Project string
	// LocalName is the checkout directory name under the source root.
	LocalName string
	// SubDir optionally nests the checkout one level deeper.
	SubDir string
}

var workonVarRe = regexp.MustCompile(`^CROS_WORKON_(PROJECT|LOCALNAME|SUBDIR)=["']?([^"']*)["']?\s*$`)

// ParseWorkonVars extracts the CROS_WORKON variables from the ebuild at path.
// Project and LocalName default to pkgName when the ebuild does not set them.
func ParseWorkonVars(path, pkgName string) (SourceInfo, error) {
	info := SourceInfo{Project: pkgName, LocalName: pkgName}
	f, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("read workon vars from %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := workonVarRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		switch m[1] {
		case "PROJECT":
			info.Project = m[2]
		case "LOCALNAME":
			info.LocalName = m[2]
		case "SUBDIR":
			info.SubDir = m[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return info, fmt.Errorf("read workon vars from %s: %w", path, err)
	}
	return info, nil
}

// CommitID resolves the current head commit of the ebuild's companion source
// repository under srcroot. The checkout's recorded project name must pass
// accepted against the declared one; a mismatch or a missing checkout is
// fatal for this package.
func (e *Ebuild) CommitID(ctx context.Context, run cmdrun.Runner, srcroot string, accepted func(declared, actual string) bool) (string, error) {
	unstablePath := e.UnstablePath()
	info, err := ParseWorkonVars(unstablePath, e.PkgName)
	if err != nil {
		return "", err
	}

	base := "third_party"
	if e.Category == "chromeos-base" {
		base = "platform"
	}
	srcdir := filepath.Join(srcroot, base, info.LocalName, info.SubDir)

	// The kernel ebuild declares its localname behind shell conditionals the
	// variable scan cannot follow, so its checkout lives in a fixed spot.
	if !isDir(srcdir) && info.LocalName == "kernel" && info.SubDir == "" {
		srcdir = filepath.Join(srcroot, "third_party", "kernel", "files")
	}
	if !isDir(srcdir) {
		return "", fmt.Errorf(messages.ErrMissingSrcDirFmt, e.Path)
	}

	actual, err := run.Output(ctx, srcdir, "git", "config", "--get", "remote.cros.projectname")
	if err != nil {
		return "", fmt.Errorf("read project name in %s: %w", srcdir, err)
	}
	actual = strings.TrimSpace(actual)
	if accepted == nil {
		accepted = func(declared, a string) bool { return declared == a }
	}
	if !accepted(info.Project, actual) {
		return "", fmt.Errorf(messages.ErrProjectNameMismatchFmt, unstablePath, info.Project, actual)
	}

	head, err := run.Output(ctx, srcdir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve head in %s: %w", srcdir, err)
	}
	head = strings.TrimSpace(head)
	if head == "" {
		return "", fmt.Errorf(messages.ErrMissingCommitIDFmt, e.Path)
	}
	return head, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
