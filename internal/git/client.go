package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// EmptyTree is git's well-known empty tree object. Diffing a root commit
// against it yields the commit's full contents.
const EmptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// commitHashRegex matches full 40-character commit identifiers.
var commitHashRegex = regexp.MustCompile(`\b[0-9a-f]{40}\b`)

// CommandError is returned when the git binary exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Client runs git commands in Dir.
type Client struct {
	// Dir is the working directory for git invocations ("" = current directory).
	Dir string
	// Binary is the git executable (default "git").
	Binary string
}

// NewClient creates a client rooted at dir.
func NewClient(dir string) *Client {
	return &Client{Dir: dir, Binary: "git"}
}

// run executes git with args and returns stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = "git"
	}

	logDebug("[git] %s %s", binary, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// VersionBumps returns, newest first, the hashes of commits that changed the
// version field of manifest.
func (c *Client) VersionBumps(ctx context.Context, manifest, field string) ([]string, error) {
	pattern := fmt.Sprintf(`"%s": "[0-9]`, regexp.QuoteMeta(field))
	out, err := c.run(ctx, "log", "--format=%H", "-G"+pattern, "--follow", "--", manifest)
	if err != nil {
		return nil, err
	}

	hashes := commitHashRegex.FindAllString(out, -1)
	logDebug("[git] %d version bumps in %s", len(hashes), manifest)
	return hashes, nil
}

// Log returns `git log base..top` formatted with format, one commit per line.
func (c *Client) Log(ctx context.Context, base, top, format string) (string, error) {
	return c.run(ctx, "log", base+".."+top, "--pretty=format:"+format)
}

// ShortStat returns the diff summary between from and to, ignoring paths that
// match any of the exclude globs. An empty from diffs against the empty tree.
func (c *Client) ShortStat(ctx context.Context, from, to string, excludes []string) (DiffStat, error) {
	if from == "" {
		from = EmptyTree
	}

	args := []string{"diff", from, to, "--shortstat", "--", "."}
	for _, glob := range excludes {
		args = append(args, ":!"+glob)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return DiffStat{}, err
	}
	return ParseShortStat(out), nil
}
