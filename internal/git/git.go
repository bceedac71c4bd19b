// Package git is the version-control collaborator for the commitlog pipeline.
// Repository discovery and revision checks use the go-git library; history
// queries and diff summaries shell out to the git binary, whose pathspec
// exclusions and -G pickaxe have no go-git equivalent.
package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repo is an opened repository used for identifier checks.
type Repo struct {
	repo *git.Repository
	root string
}

// OpenRepo opens the git repository containing path, walking up the tree
// to find the .git directory. If path is empty, the current working
// directory is used.
func OpenRepo(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] repository root: %s", root)
	return &Repo{repo: repo, root: root}, nil
}

// Root returns the absolute path of the working tree root.
func (r *Repo) Root() string {
	return r.root
}

// ResolveCommit resolves a revision (full or abbreviated hash, branch, tag,
// HEAD~n) to a full commit hash.
func (r *Repo) ResolveCommit(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", rev, err)
	}
	if _, err := r.repo.CommitObject(*hash); err != nil {
		return "", fmt.Errorf("%q is not a commit: %w", rev, err)
	}

	logDebug("[git] resolved %s -> %s", rev, hash.String())
	return hash.String(), nil
}

// Head returns the hash HEAD points to.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return ref.Hash().String(), nil
}
