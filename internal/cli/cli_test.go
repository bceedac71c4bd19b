// Package cli tests the commitlog and ht-changelog command lines.
// Related: internal/cli/commitlog.go, internal/cli/changelog.go
// Tags: cli, commands, flags, exit-codes

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/config"
	clierrors "github.com/ht-tools/commitlog/internal/errors"
	"github.com/ht-tools/commitlog/internal/git"
	"github.com/ht-tools/commitlog/internal/manifest"
	"github.com/ht-tools/commitlog/internal/revrange"
	"github.com/ht-tools/commitlog/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user config layer and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildRequest(t *testing.T) {
	tests := map[string]struct {
		opts     fetchOptions
		args     []string
		want     revrange.Request
		wantCode int
	}{
		"auto": {
			want: revrange.Request{Mode: revrange.Auto},
		},
		"current": {
			opts: fetchOptions{current: "abc123"},
			want: revrange.Request{Mode: revrange.Current, Top: "abc123"},
		},
		"between": {
			opts: fetchOptions{between: true},
			args: []string{"top", "base"},
			want: revrange.Request{Mode: revrange.Between, Top: "top", Base: "base"},
		},
		"between with one commit": {
			opts:     fetchOptions{between: true},
			args:     []string{"top"},
			wantCode: ExitInvalidArguments,
		},
		"both modes": {
			opts:     fetchOptions{current: "abc", between: true},
			args:     []string{"top", "base"},
			wantCode: ExitInvalidArguments,
		},
		"stray arguments": {
			args:     []string{"top"},
			wantCode: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := buildRequest(&tt.opts, tt.args)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":            {err: nil, want: ExitSuccess},
		"exit error":     {err: NewExitError(ExitInvalidConfig), want: ExitInvalidConfig},
		"generic":        {err: errors.New("boom"), want: ExitFailure},
		"argument":       {err: clierrors.ConflictingModes(), want: ExitInvalidArguments},
		"configuration":  {err: clierrors.InvalidConfig(errors.New("x")), want: ExitInvalidConfig},
		"prerequisite":   {err: clierrors.CommitLogNotFound("commitLog.json"), want: ExitMissingDependencies},
		"runtime":        {err: clierrors.GitCommandFailed(errors.New("x")), want: ExitFailure},
		"wrapped errors": {err: errors.Join(errors.New("ctx"), clierrors.ConflictingModes()), want: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFetchError(t *testing.T) {
	cfg := &config.Configuration{Manifest: "package.json"}
	revErr := &revrange.RevisionError{Rev: "zzz", Err: errors.New("not found")}

	tests := map[string]struct {
		err          error
		wantCategory clierrors.ErrorCategory
		wantMessage  string
	}{
		"insufficient history": {
			err:          fmt.Errorf("resolving: %w", revrange.ErrInsufficientHistory),
			wantCategory: clierrors.Prerequisite,
			wantMessage:  "insufficient version history",
		},
		"unknown revision": {
			err:          revErr,
			wantCategory: clierrors.Argument,
			wantMessage:  "zzz",
		},
		"missing manifest": {
			err:          fmt.Errorf("%w: package.json", manifest.ErrNotFound),
			wantCategory: clierrors.Prerequisite,
		},
		"git failure": {
			err:          &git.CommandError{Args: []string{"log"}, Err: errors.New("exit status 128")},
			wantCategory: clierrors.Runtime,
			wantMessage:  "git command failed",
		},
		"other": {
			err:          errors.New("boom"),
			wantCategory: clierrors.Runtime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := clierrors.AsCLIError(fetchError(tt.err, cfg))
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Contains(t, got.Message, tt.wantMessage)
		})
	}
}

func TestCommitlogCmd_Flags(t *testing.T) {
	cmd := NewCommitlogCmd()

	tests := map[string]string{
		"list":           "l",
		"current-commit": "c",
		"between-two":    "b",
		"filter":         "f",
	}
	for name, short := range tests {
		t.Run(name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(name)
			require.NotNil(t, flag)
			assert.Equal(t, short, flag.Shorthand)
		})
	}

	for _, name := range []string{"config", "debug", "plain"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestCommitlogCmd_Version(t *testing.T) {
	stdout, _, err := run(t, NewCommitlogCmd(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "commitlog "))
	assert.Contains(t, stdout, "platform: ")
}

func TestCommitlogCmd_UnknownFlagIsArgumentError(t *testing.T) {
	isolate(t)
	_, _, err := run(t, NewCommitlogCmd(), "--nope")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestCommitlogCmd_BadFilter(t *testing.T) {
	dir := isolate(t)
	t.Chdir(dir)

	_, _, err := run(t, NewCommitlogCmd(), "-f", "(")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestCommitlogCmd_NotARepository(t *testing.T) {
	dir := isolate(t)
	t.Chdir(dir)

	_, _, err := run(t, NewCommitlogCmd())
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
}

// newProject creates a repository with two version bumps, makes it the
// working directory and returns it with the commit hashes in creation order:
//
//	0 chore: release 1.0.0
//	1 feat(ui): add button
//	2 fix: off by one
//	3 chore: release 1.1.0
func newProject(t *testing.T) (string, []string) {
	t.Helper()
	testutil.RequireGitBinary(t)
	isolate(t)

	dir, hashes := testutil.NewGitRepo(t, []testutil.Commit{
		{Message: "chore: release 1.0.0", Files: map[string]string{"package.json": testutil.PackageJSON("demo", "1.0.0")}},
		{Message: "feat(ui): add button", Files: map[string]string{"button.go": "package ui\n"}},
		{Message: "fix: off by one", Files: map[string]string{"button.go": "package ui\n\nconst N = 1\n"}},
		{Message: "chore: release 1.1.0", Files: map[string]string{"package.json": testutil.PackageJSON("demo", "1.1.0")}},
	})

	t.Chdir(dir)
	return dir, hashes
}

func TestCommitlogCmd_FetchAndRender(t *testing.T) {
	dir, hashes := newProject(t)

	_, stderr, err := run(t, NewCommitlogCmd(), "--plain")
	require.NoError(t, err)
	assert.Contains(t, stderr, "3 commits merged into commitLog.json (3 total)")

	records, err := commitlog.NewStore(filepath.Join(dir, "commitLog.json")).Load()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{hashes[3], hashes[2], hashes[1]},
		[]string{records[0].Hash, records[1].Hash, records[2].Hash})
	for _, r := range records {
		assert.Equal(t, "1.1.0", r.Version)
		assert.Equal(t, testutil.Author, r.Author)
	}
	assert.Equal(t, 2, records[1].Insertions, "fix adds two lines to button.go")

	// A second run is idempotent.
	_, stderr, err = run(t, NewCommitlogCmd(), "--plain")
	require.NoError(t, err)
	assert.Contains(t, stderr, "(3 total)")

	stdout, _, err := run(t, NewChangelogCmd(), "--plain", "-p", "commitLog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# demo\n")
	assert.Contains(t, stdout, "### fix\n* off by one. (auth: Test User)\n")
	assert.Contains(t, stdout, "### feat\n* ui add button. (auth: Test User)\n")
	assert.Contains(t, stdout, "### chore\n* release 1.1.0. (auth: Test User)\n")

	stdout, _, err = run(t, NewChangelogCmd())
	require.NoError(t, err)
	assert.Equal(t, "✓ wrote changelog.md\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, "changelog.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# demo\n## v-1.1.0 ("))
	assert.True(t, strings.HasSuffix(string(data), "---\n"))
}

func TestCommitlogCmd_ListBetween(t *testing.T) {
	dir, hashes := newProject(t)

	stdout, _, err := run(t, NewCommitlogCmd(), "--plain", "-l", "-b", hashes[2], hashes[0][:10])
	require.NoError(t, err)

	records, err := commitlog.Decode(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, hashes[2], records[0].Hash)
	assert.Equal(t, hashes[1], records[1].Hash)
	for _, r := range records {
		assert.Empty(t, r.Version)
	}

	_, err = os.Stat(filepath.Join(dir, "commitLog.json"))
	assert.True(t, os.IsNotExist(err), "--list must not persist")
}

func TestCommitlogCmd_UnknownCommit(t *testing.T) {
	newProject(t)

	_, _, err := run(t, NewCommitlogCmd(), "--plain", "-c", "no-such-commit")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestChangelogCmd_MissingLog(t *testing.T) {
	dir := isolate(t)
	t.Chdir(dir)

	_, _, err := run(t, NewChangelogCmd(), "--plain")
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, err.Error(), "commit log not found")
}

func TestChangelogCmd_OutputFlag(t *testing.T) {
	dir := isolate(t)
	t.Chdir(dir)

	require.NoError(t, commitlog.NewStore("commitLog.json").Save([]commitlog.Record{
		{Hash: "a", Author: testutil.Author, Date: "Mon Jun 3 10:00:00 2024 +0000", Message: "fix: x", Version: "1.0.0"},
	}))

	out := filepath.Join(dir, "docs", "CHANGES.md")
	stdout, _, err := run(t, NewChangelogCmd(), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Change Log\n")
	assert.Contains(t, string(data), "* x. (auth: Test User)\n")
}
