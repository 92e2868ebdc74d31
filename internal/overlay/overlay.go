// Package overlay discovers promotion candidates across overlay directory
// trees.
package overlay

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/ebuild"
	"github.com/conn-castle/uprev/internal/vercmp"
	"github.com/conn-castle/uprev/internal/warnings"
)

// Candidates maps each overlay root to the ebuilds selected for promotion,
// in directory-walk order.
type Candidates map[string][]*ebuild.Ebuild

// Build walks every overlay root in cfg and resolves at most one candidate
// per package directory, keeping those matching the package filter. Overlay
// roots that do not exist are left empty; the orchestrator warns when it
// skips them. Resolver errors are fatal for the whole run.
func Build(cfg *config.Config, emit *warnings.Emitter) (Candidates, error) {
	candidates := make(Candidates, len(cfg.Overlays))
	for _, root := range cfg.Overlays {
		candidates[root] = nil
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			found, err := resolveDir(path, cfg, emit)
			if err != nil {
				return err
			}
			if found != nil && cfg.WantsPackage(found.Package) {
				candidates[root] = append(candidates[root], found)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan overlay %s: %w", root, err)
		}
	}
	return candidates, nil
}

func resolveDir(dir string, cfg *config.Config, emit *warnings.Emitter) (*ebuild.Ebuild, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	found, warns, err := ebuild.FindUprevCandidate(files, vercmp.Compare, cfg.Exemptions.MultipleStableExempt)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		emit.Emit(w)
	}
	return found, nil
}
