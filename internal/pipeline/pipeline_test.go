package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/config"
	"github.com/ht-tools/commitlog/internal/git"
	"github.com/ht-tools/commitlog/internal/revrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bump1 = strings.Repeat("a", 40)
	bump2 = strings.Repeat("b", 40)
)

type fakeGit struct {
	bumps     []string
	log       string
	bumpCalls int
	logRange  string
}

func (f *fakeGit) VersionBumps(ctx context.Context, manifest, field string) ([]string, error) {
	f.bumpCalls++
	return f.bumps, nil
}

func (f *fakeGit) Log(ctx context.Context, base, top, format string) (string, error) {
	f.logRange = base + ".." + top
	return f.log, nil
}

func (f *fakeGit) ShortStat(ctx context.Context, from, to string, excludes []string) (git.DiffStat, error) {
	return git.DiffStat{FilesChanged: 1, Insertions: len(to), Deletions: 1}, nil
}

func logLine(hash, parent, message string) string {
	return fmt.Sprintf("hash::%s@_@parent::%s@_@auth::Dev@_@date::Fri Mar 1 12:00:00 2024 +0000@_@message::%s", hash, parent, message)
}

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"name": "demo", "version": "2.1.0"}`), 0o644))

	return &config.Configuration{
		DiffIgnore:   []string{"*.svg"},
		Manifest:     manifestPath,
		VersionField: "version",
		CommitLog:    filepath.Join(dir, "commitLog.json"),
		Changelog:    filepath.Join(dir, "changelog.md"),
		MaxParallel:  2,
	}
}

func TestFetcher_Fetch(t *testing.T) {
	tests := map[string]struct {
		request     revrange.Request
		filter      string
		wantRange   string
		wantVersion string
		wantHashes  []string
		wantBumps   bool
	}{
		"auto assigns the manifest version": {
			request:     revrange.Request{Mode: revrange.Auto},
			wantRange:   bump2 + ".." + bump1,
			wantVersion: "2.1.0",
			wantHashes:  []string{"c3", "c2", "c1"},
			wantBumps:   true,
		},
		"current assigns the manifest version": {
			request:     revrange.Request{Mode: revrange.Current, Top: "HEAD"},
			wantRange:   bump1 + "..HEAD",
			wantVersion: "2.1.0",
			wantHashes:  []string{"c3", "c2", "c1"},
			wantBumps:   true,
		},
		"between leaves version empty": {
			request:    revrange.Request{Mode: revrange.Between, Top: "HEAD", Base: "v1"},
			wantRange:  "v1..HEAD",
			wantHashes: []string{"c3", "c2", "c1"},
		},
		"filter applies before stats": {
			request:     revrange.Request{Mode: revrange.Auto},
			filter:      "^feat",
			wantRange:   bump2 + ".." + bump1,
			wantVersion: "2.1.0",
			wantHashes:  []string{"c2"},
			wantBumps:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := &fakeGit{
				bumps: []string{bump1, bump2},
				log: strings.Join([]string{
					logLine("c3", "c2", "fix: three"),
					logLine("c2", "c1", "feat: two"),
					logLine("c1", "", "chore: one"),
				}, "\n"),
			}
			filter, err := commitlog.NewFilter(tt.filter)
			require.NoError(t, err)

			f := &Fetcher{Git: g, Config: testConfig(t)}
			result, err := f.Fetch(context.Background(), FetchOptions{Request: tt.request, Filter: filter})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRange, g.logRange)
			assert.Equal(t, tt.wantBumps, g.bumpCalls > 0)
			assert.Equal(t, tt.wantVersion, result.Version)

			var hashes []string
			for _, r := range result.Records {
				hashes = append(hashes, r.Hash)
				assert.Equal(t, tt.wantVersion, r.Version)
				assert.Equal(t, 2, r.Insertions)
				assert.Equal(t, 1, r.Deletions)
			}
			assert.Equal(t, tt.wantHashes, hashes)
		})
	}
}

func TestFetcher_Fetch_InsufficientHistory(t *testing.T) {
	f := &Fetcher{Git: &fakeGit{bumps: []string{bump1}}, Config: testConfig(t)}

	_, err := f.Fetch(context.Background(), FetchOptions{Request: revrange.Request{Mode: revrange.Auto}})
	assert.ErrorIs(t, err, revrange.ErrInsufficientHistory)
}

func TestFetcher_Persist_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	g := &fakeGit{
		bumps: []string{bump1, bump2},
		log:   logLine("c2", "c1", "feat: two") + "\n" + logLine("c1", "", "chore: one"),
	}
	f := &Fetcher{Git: g, Config: cfg}

	for range 2 {
		result, err := f.Fetch(context.Background(), FetchOptions{Request: revrange.Request{Mode: revrange.Auto}})
		require.NoError(t, err)
		total, err := f.Persist(result.Records)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	}

	saved, err := commitlog.NewStore(cfg.CommitLog).Load()
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestRender(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, commitlog.NewStore(cfg.CommitLog).Save([]commitlog.Record{
		{Hash: "c2", Author: "Dev", Date: "Fri Mar 1 12:00:00 2024 +0000", Message: "feat(cli): add flag", Version: "2.1.0"},
		{Hash: "c1", Author: "Dev", Date: "Fri Mar 1 11:00:00 2024 +0000", Message: "fix: typo", Version: "2.1.0"},
	}))

	tests := map[string]struct {
		project string
		filter  string
		want    []string
	}{
		"title from manifest": {
			want: []string{
				"# demo",
				"## v-2.1.0 (2024-3-1)",
				"### fix",
				"* typo. (auth: Dev)",
				"",
				"### feat",
				"* cli add flag. (auth: Dev)",
				"",
				"---",
			},
		},
		"configured title and filter": {
			project: "Demo App",
			filter:  "^feat",
			want: []string{
				"# Demo App",
				"## v-2.1.0 (2024-3-1)",
				"### feat",
				"* cli add flag. (auth: Dev)",
				"",
				"---",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			filter, err := commitlog.NewFilter(tt.filter)
			require.NoError(t, err)

			doc, err := Render(RenderOptions{
				LogPath:  cfg.CommitLog,
				Filter:   filter,
				Project:  tt.project,
				Manifest: cfg.Manifest,
				Location: time.UTC,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, []string(doc))
		})
	}
}

func TestRender_MissingLog(t *testing.T) {
	_, err := Render(RenderOptions{LogPath: filepath.Join(t.TempDir(), "commitLog.json")})
	assert.ErrorIs(t, err, commitlog.ErrLogNotFound)
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one\n"), 0o644))

	require.NoError(t, WriteDocument(path, []string{"# demo", "---"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# demo\n---\n", string(data))
}

func TestResolveLogPath(t *testing.T) {
	dir := t.TempDir()
	withExt := filepath.Join(dir, "commitLog.json")
	require.NoError(t, os.WriteFile(withExt, []byte("[]\n"), 0o644))

	tests := map[string]struct {
		arg  string
		want string
	}{
		"exact":             {arg: withExt, want: withExt},
		"bare name":         {arg: filepath.Join(dir, "commitLog"), want: withExt},
		"missing kept":      {arg: filepath.Join(dir, "other"), want: filepath.Join(dir, "other")},
		"other ext missing": {arg: filepath.Join(dir, "log.txt"), want: filepath.Join(dir, "log.txt")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLogPath(tt.arg))
		})
	}
}
