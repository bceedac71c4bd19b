// Package manifest reads the project name and release version from a JSON
// manifest such as package.json.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Manifest is the subset of a project manifest the changelog tools need.
type Manifest struct {
	Path    string
	Name    string
	Version string
}

// Load reads name and the given version field from the manifest at path.
// The version must be a valid semantic version; it is kept in its original form.
func Load(path, versionField string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking manifest: %w", err)
	}

	k := koanf.New("|")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	m := &Manifest{
		Path:    path,
		Name:    k.String("name"),
		Version: k.String(versionField),
	}

	if m.Version == "" {
		return nil, fmt.Errorf("manifest %s has no %q field", path, versionField)
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return nil, fmt.Errorf("manifest %s: invalid version %q: %w", path, m.Version, err)
	}

	return m, nil
}

// ProjectName returns the manifest name, or "" when the manifest is missing or
// unreadable. Rendering only needs the name as a title hint.
func ProjectName(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	k := koanf.New("|")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return ""
	}
	return k.String("name")
}
