// Package stats attaches insertion and deletion counts to commit records.
package stats

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/git"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxParallel bounds concurrent diff lookups when no limit is configured.
const DefaultMaxParallel = 8

// Differ summarizes the changes between two commits.
// *git.Client satisfies it.
type Differ interface {
	ShortStat(ctx context.Context, from, to string, excludes []string) (git.DiffStat, error)
}

// ProgressFunc is called after each completed lookup.
type ProgressFunc func(done, total int)

// Resolver enriches records with diff statistics.
type Resolver struct {
	// differ performs one lookup per record.
	differ Differ
	// excludes are path globs left out of every diff.
	excludes []string
	// maxParallel is the maximum number of in-flight lookups.
	maxParallel int
	// progress is notified as lookups complete. May be nil.
	progress ProgressFunc
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithExcludes sets the path globs excluded from diffs.
func WithExcludes(globs []string) ResolverOption {
	return func(r *Resolver) {
		r.excludes = globs
	}
}

// WithMaxParallel sets the concurrent lookup limit. Values below 1 are ignored.
func WithMaxParallel(n int) ResolverOption {
	return func(r *Resolver) {
		if n >= 1 {
			r.maxParallel = n
		}
	}
}

// WithProgress registers a completion callback.
func WithProgress(fn ProgressFunc) ResolverOption {
	return func(r *Resolver) {
		r.progress = fn
	}
}

// NewResolver creates a Resolver backed by differ.
func NewResolver(differ Differ, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		differ:      differ,
		maxParallel: DefaultMaxParallel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enrich returns a copy of records with Insertions and Deletions filled in.
// Each record is diffed against its first parent. Lookups run concurrently
// but results keep the input order. The first failed lookup cancels the rest
// and is returned; no partial result is produced.
func (r *Resolver) Enrich(ctx context.Context, records []commitlog.Record) ([]commitlog.Record, error) {
	out := make([]commitlog.Record, len(records))
	copy(out, records)
	if len(out) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxParallel)

	var done atomic.Int64
	total := len(out)

	for i := range out {
		g.Go(func() error {
			rec := &out[i]
			stat, err := r.differ.ShortStat(ctx, rec.FirstParent(), rec.Hash, r.excludes)
			if err != nil {
				return fmt.Errorf("diff stats for %s: %w", rec.Hash, err)
			}
			rec.Insertions = stat.Insertions
			rec.Deletions = stat.Deletions

			n := done.Add(1)
			if r.progress != nil {
				r.progress(int(n), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
