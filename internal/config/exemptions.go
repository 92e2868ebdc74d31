package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Exemptions are the legacy allow-lists. Both exist for historical reasons
// only; new entries should not be added without a migration plan.
type Exemptions struct {
	// MultipleStablePackages suppresses the multiple-stable-ebuilds warning
	// for the listed package identities.
	MultipleStablePackages []string `toml:"multiple_stable_packages"`
	// ProjectNameAliases are declared project names accepted even when the
	// source checkout's recorded project name disagrees.
	ProjectNameAliases []string `toml:"project_name_aliases"`
}

// DefaultExemptions returns the built-in allow-lists matching the historical
// hard-coded identities.
func DefaultExemptions() Exemptions {
	return Exemptions{
		MultipleStablePackages: []string{"x11-drivers/xf86-video-msm"},
		ProjectNameAliases:     []string{"chromeos-kernel"},
	}
}

// LoadExemptions reads an exemptions TOML file.
func LoadExemptions(path string) (Exemptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Exemptions{}, fmt.Errorf("read exemptions file: %w", err)
	}
	var e Exemptions
	if err := toml.Unmarshal(data, &e); err != nil {
		return Exemptions{}, fmt.Errorf("parse exemptions file %s: %w", path, err)
	}
	return e, nil
}

// MultipleStableExempt reports whether pkg may carry multiple stable ebuilds
// without a warning.
func (e Exemptions) MultipleStableExempt(pkg string) bool {
	return contains(e.MultipleStablePackages, pkg)
}

// ProjectNameAccepted reports whether the declared project name passes
// verification against the checkout's actual project name. Declared names on
// the alias list pass regardless of the actual name.
func (e Exemptions) ProjectNameAccepted(declared, actual string) bool {
	return declared == actual || contains(e.ProjectNameAliases, declared)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
