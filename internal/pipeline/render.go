package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ht-tools/commitlog/internal/changelog"
	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/manifest"
)

// RenderOptions configures one render of the change log.
type RenderOptions struct {
	// LogPath is the persisted commit log.
	LogPath string
	// Filter keeps only matching messages. Nil keeps everything.
	Filter *commitlog.Filter
	// Project is the document title. Empty falls back to the manifest name.
	Project string
	// Manifest is consulted for the project name when Project is empty.
	Manifest string
	// Location is the time zone for version dates. Nil means local time.
	Location *time.Location
}

// Render loads the commit log and renders it.
func Render(opts RenderOptions) (changelog.Document, error) {
	records, err := commitlog.NewStore(opts.LogPath).Load()
	if err != nil {
		return nil, err
	}

	project := opts.Project
	if project == "" && opts.Manifest != "" {
		project = manifest.ProjectName(opts.Manifest)
	}

	r := changelog.Renderer{Project: project, Location: opts.Location}
	return r.Render(opts.Filter.Apply(records)), nil
}

// WriteDocument replaces the file at path with doc.
func WriteDocument(path string, doc changelog.Document) error {
	return commitlog.WriteFileAtomic(path, []byte(doc.String()))
}

// ResolveLogPath finds the commit log named by arg. A name without an
// extension also matches the same name with ".json", so "commitLog" finds
// commitLog.json.
func ResolveLogPath(arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	if filepath.Ext(arg) == "" {
		withExt := arg + ".json"
		if _, err := os.Stat(withExt); err == nil {
			return withExt
		}
	}
	return arg
}
