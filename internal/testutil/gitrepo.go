// Package testutil provides test helpers shared across packages.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Commit is one step of a fixture history: the files to write, then the commit.
type Commit struct {
	Message string
	Files   map[string]string
}

// Author is the signature name used for every fixture commit.
const Author = "Test User"

// Epoch is the author time of the first fixture commit; each later commit is
// one minute after the previous.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// RequireGitBinary skips the test when the git executable is not on PATH.
func RequireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// NewGitRepo initializes a repository in a temp directory, applies history
// and returns the directory and the commit hashes in creation order.
func NewGitRepo(t *testing.T, history []Commit) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	hashes := make([]string, 0, len(history))
	for i, c := range history {
		for name, content := range c.Files {
			path := filepath.Join(dir, name)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := wt.Add(name)
			require.NoError(t, err)
		}

		sig := &object.Signature{
			Name:  Author,
			Email: "test@example.com",
			When:  Epoch.Add(time.Duration(i) * time.Minute),
		}
		hash, err := wt.Commit(c.Message, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}

	return dir, hashes
}

// PackageJSON returns a minimal manifest with the given name and version.
func PackageJSON(name, version string) string {
	return "{\n  \"name\": \"" + name + "\",\n  \"version\": \"" + version + "\"\n}\n"
}
