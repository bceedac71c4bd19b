// Package revrange decides which commits a fetch covers.
//
// A range is half-open: it contains the commits reachable from Top but not
// from Base, exactly what `git log Base..Top` lists.
package revrange

import (
	"context"
	"errors"
	"fmt"
)

// ErrInsufficientHistory is returned when the manifest has too few version
// bumps to bound the requested range.
var ErrInsufficientHistory = errors.New("insufficient version history")

// Mode selects how the range endpoints are chosen.
type Mode int

const (
	// Auto spans the two most recent version bumps.
	Auto Mode = iota
	// Current spans the latest version bump up to a given commit.
	Current
	// Between spans two given commits.
	Between
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Current:
		return "current"
	case Between:
		return "between"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// AssignsVersion reports whether records fetched in this mode are tagged
// with the manifest version.
func (m Mode) AssignsVersion() bool {
	return m != Between
}

// Request is a user's range selection.
type Request struct {
	Mode Mode
	// Top is the newest commit included (Current, Between).
	Top string
	// Base is the excluded lower bound (Between).
	Base string
}

// Range is the resolved (Base, Top] window.
type Range struct {
	Top  string
	Base string
}

// Spec returns the range in git's base..top notation.
func (r Range) Spec() string {
	return r.Base + ".." + r.Top
}

// BumpLister lists the commits that changed the manifest version, newest first.
type BumpLister interface {
	VersionBumps(ctx context.Context) ([]string, error)
}

// RevisionResolver expands a user-supplied identifier to a full commit hash.
type RevisionResolver interface {
	ResolveCommit(rev string) (string, error)
}

// RevisionError reports a user identifier that names no commit.
type RevisionError struct {
	Rev string
	Err error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("unknown revision %q: %v", e.Rev, e.Err)
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}

// Resolver turns Requests into Ranges.
type Resolver struct {
	Bumps BumpLister
	// Revisions verifies user identifiers. When nil they are passed through as given.
	Revisions RevisionResolver
}

// Resolve computes the range for req.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Range, error) {
	switch req.Mode {
	case Auto:
		bumps, err := r.Bumps.VersionBumps(ctx)
		if err != nil {
			return Range{}, err
		}
		if len(bumps) < 2 {
			return Range{}, fmt.Errorf("%w: need two version bumps, found %d", ErrInsufficientHistory, len(bumps))
		}
		return Range{Top: bumps[0], Base: bumps[1]}, nil

	case Current:
		top, err := r.verify(req.Top)
		if err != nil {
			return Range{}, err
		}
		bumps, err := r.Bumps.VersionBumps(ctx)
		if err != nil {
			return Range{}, err
		}
		if len(bumps) < 1 {
			return Range{}, fmt.Errorf("%w: no version bump found", ErrInsufficientHistory)
		}
		return Range{Top: top, Base: bumps[0]}, nil

	case Between:
		top, err := r.verify(req.Top)
		if err != nil {
			return Range{}, err
		}
		base, err := r.verify(req.Base)
		if err != nil {
			return Range{}, err
		}
		return Range{Top: top, Base: base}, nil

	default:
		return Range{}, fmt.Errorf("unsupported range mode %s", req.Mode)
	}
}

// verify rejects empty identifiers and, when possible, expands rev to a
// full commit hash.
func (r *Resolver) verify(rev string) (string, error) {
	if rev == "" {
		return "", &RevisionError{Rev: rev, Err: errors.New("empty commit identifier")}
	}
	if r.Revisions == nil {
		return rev, nil
	}
	hash, err := r.Revisions.ResolveCommit(rev)
	if err != nil {
		return "", &RevisionError{Rev: rev, Err: err}
	}
	return hash, nil
}
