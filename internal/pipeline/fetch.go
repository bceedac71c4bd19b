package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/config"
	"github.com/ht-tools/commitlog/internal/git"
	"github.com/ht-tools/commitlog/internal/manifest"
	"github.com/ht-tools/commitlog/internal/revrange"
	"github.com/ht-tools/commitlog/internal/stats"
)

// Git is the version-control collaborator used by Fetch.
// *git.Client satisfies it.
type Git interface {
	VersionBumps(ctx context.Context, manifest, field string) ([]string, error)
	Log(ctx context.Context, base, top, format string) (string, error)
	stats.Differ
}

// FetchOptions selects what a fetch covers.
type FetchOptions struct {
	Request revrange.Request
	// Filter keeps only matching messages. Nil keeps everything.
	Filter *commitlog.Filter
	// Progress is notified as diff stats complete. May be nil.
	Progress stats.ProgressFunc
}

// FetchResult is the outcome of a fetch before persistence.
type FetchResult struct {
	Range   revrange.Range
	Version string
	Records []commitlog.Record
}

// Fetcher collects commit records from the repository.
type Fetcher struct {
	Git Git
	// Revisions verifies user-supplied identifiers. May be nil.
	Revisions revrange.RevisionResolver
	Config    *config.Configuration
	Logger    *log.Logger
}

// Fetch runs the fetch pipeline. Records come back newest first, filtered,
// versioned (unless the mode says otherwise) and with diff stats.
func (f *Fetcher) Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	logger := f.logger()

	resolver := &revrange.Resolver{
		Bumps:     bumpLister{git: f.Git, manifest: f.Config.Manifest, field: f.Config.VersionField},
		Revisions: f.Revisions,
	}
	rng, err := resolver.Resolve(ctx, opts.Request)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved range", "mode", opts.Request.Mode, "range", rng.Spec())

	out, err := f.Git.Log(ctx, rng.Base, rng.Top, commitlog.FormatTemplate)
	if err != nil {
		return nil, fmt.Errorf("listing commits in %s: %w", rng.Spec(), err)
	}

	records := commitlog.ParseRecords(out)
	parsed := len(records)
	records = opts.Filter.Apply(records)
	logger.Debug("parsed commits", "parsed", parsed, "kept", len(records), "filter", opts.Filter.String())

	result := &FetchResult{Range: rng}
	if opts.Request.Mode.AssignsVersion() {
		m, err := manifest.Load(f.Config.Manifest, f.Config.VersionField)
		if err != nil {
			return nil, err
		}
		result.Version = m.Version
		records = commitlog.WithVersion(records, m.Version)
	}

	enricher := stats.NewResolver(f.Git,
		stats.WithExcludes(f.Config.DiffIgnore),
		stats.WithMaxParallel(f.Config.MaxParallel),
		stats.WithProgress(opts.Progress),
	)
	records, err = enricher.Enrich(ctx, records)
	if err != nil {
		return nil, err
	}

	result.Records = records
	return result, nil
}

// Persist merges records into the configured commit log. It returns the
// number of records now stored.
func (f *Fetcher) Persist(records []commitlog.Record) (int, error) {
	store := commitlog.NewStore(f.Config.CommitLog)
	merged, err := store.MergeAndSave(records)
	if err != nil {
		return 0, err
	}
	f.logger().Debug("saved commit log", "path", store.Path, "new", len(records), "total", len(merged))
	return len(merged), nil
}

func (f *Fetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.New(io.Discard)
	}
	return f.Logger
}

// bumpLister binds the manifest location to the git query.
type bumpLister struct {
	git      Git
	manifest string
	field    string
}

func (b bumpLister) VersionBumps(ctx context.Context) ([]string, error) {
	return b.git.VersionBumps(ctx, b.manifest, b.field)
}

var _ Git = (*git.Client)(nil)
