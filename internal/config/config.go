// Package config holds the immutable run configuration built once from CLI
// flags and passed to every component that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/conn-castle/uprev/internal/messages"
)

// DefaultTrackingBranch is the remote branch stabilizing branches are cut from.
const DefaultTrackingBranch = "cros/master"

// Config is the validated, immutable configuration for one invocation.
type Config struct {
	// Board identifies the target board for stale-package cleanup.
	Board string
	// All promotes every candidate found rather than only listed packages.
	All bool
	// DryRun suppresses the real network push.
	DryRun bool
	// Overlays are the overlay root directories to scan.
	Overlays []string
	// Packages filters candidates by package identity (category/name).
	Packages []string
	// SrcRoot is the absolute path to the root src directory.
	SrcRoot string
	// TrackingBranch is the remote ref local branches are created from.
	TrackingBranch string
	// Verbose enables debug logging.
	Verbose bool
	// Exemptions carries the legacy allow-lists.
	Exemptions Exemptions
}

// Options are the raw flag values before validation.
type Options struct {
	Board          string
	All            bool
	DryRun         bool
	Overlays       string
	Packages       string
	SrcRoot        string
	TrackingBranch string
	Verbose        bool
	ExemptionsPath string
}

// DefaultSrcRoot returns ~/trunk/src with the home directory expanded.
func DefaultSrcRoot() string {
	root, err := homedir.Expand("~/trunk/src")
	if err != nil {
		return "trunk/src"
	}
	return root
}

// New validates opts for the given command and builds the Config.
// usedDefaultOverlays reports that no --overlays flag was given and the two
// well-known roots under srcroot were substituted; the caller should warn.
func New(command string, opts Options) (cfg *Config, usedDefaultOverlays bool, err error) {
	if command == "commit" && opts.Packages == "" && !opts.All {
		return nil, false, fmt.Errorf(messages.ErrMissingPackages)
	}
	if command == "commit" && opts.Board == "" {
		return nil, false, fmt.Errorf(messages.ErrMissingBoard)
	}

	srcroot := opts.SrcRoot
	if srcroot == "" {
		srcroot = DefaultSrcRoot()
	}
	info, err := os.Stat(srcroot)
	if err != nil || !info.IsDir() {
		return nil, false, fmt.Errorf(messages.ErrBadSrcRootFmt, srcroot)
	}
	srcroot, err = filepath.Abs(srcroot)
	if err != nil {
		return nil, false, fmt.Errorf("resolve srcroot: %w", err)
	}

	var overlays []string
	if opts.Overlays != "" {
		overlays = splitColonList(opts.Overlays)
		for _, overlay := range overlays {
			if command == "clean" {
				continue
			}
			if info, err := os.Stat(overlay); err != nil || !info.IsDir() {
				return nil, false, fmt.Errorf(messages.ErrMissingOverlayFmt, overlay)
			}
		}
	} else {
		usedDefaultOverlays = true
		overlays = []string{
			filepath.Join(srcroot, "private-overlays", "chromeos-overlay"),
			filepath.Join(srcroot, "third_party", "chromiumos-overlay"),
		}
	}

	exemptions := DefaultExemptions()
	if opts.ExemptionsPath != "" {
		exemptions, err = LoadExemptions(opts.ExemptionsPath)
		if err != nil {
			return nil, false, err
		}
	}

	tracking := opts.TrackingBranch
	if tracking == "" {
		tracking = DefaultTrackingBranch
	}

	return &Config{
		Board:          opts.Board,
		All:            opts.All,
		DryRun:         opts.DryRun,
		Overlays:       overlays,
		Packages:       splitColonList(opts.Packages),
		SrcRoot:        srcroot,
		TrackingBranch: tracking,
		Verbose:        opts.Verbose,
		Exemptions:     exemptions,
	}, usedDefaultOverlays, nil
}

// WantsPackage reports whether a resolved candidate should be promoted.
func (c *Config) WantsPackage(pkg string) bool {
	if c.All {
		return true
	}
	for _, p := range c.Packages {
		if p == pkg {
			return true
		}
	}
	return false
}

func splitColonList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ":") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
