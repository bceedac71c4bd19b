package errors

import "fmt"

// Common error messages for the commitlog CLIs.
// These templates ensure consistent, actionable error messages.

// InsufficientVersionHistory is returned when too few version-bump commits exist
// to compute a commit window.
func InsufficientVersionHistory(err error, manifest string) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"insufficient version history",
		fmt.Sprintf("Bump the version field in %s at least twice, or", manifest),
		"Pass an explicit window: commitlog -c <commit> or commitlog -b <top> <base>",
	)
}

// CommitLogNotFound is returned when the render pipeline cannot find its input.
func CommitLogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("commit log not found: %s", path),
		"Run 'commitlog' first to create it",
		"Or pass the path explicitly: ht-changelog <commit_log_path>",
	)
}

// GitCommandFailed wraps a failed version-control invocation.
func GitCommandFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"git command failed",
		"Check that you are inside a git repository",
		"Verify the commit identifiers exist: git rev-parse <commit>",
	)
}

// UnknownRevision is returned when a user-supplied identifier does not resolve.
func UnknownRevision(rev string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("unknown commit %q", rev),
		"List recent commits with: git log --oneline",
	)
}

// InvalidFilterPattern is returned when --filter does not compile.
func InvalidFilterPattern(pattern string, err error) *CLIError {
	cliErr := WrapWithMessage(err, Argument,
		fmt.Sprintf("invalid filter pattern %q", pattern),
		"Patterns use RE2 syntax, e.g. --filter '^feat'",
	)
	cliErr.Usage = "--filter <pattern>"
	return cliErr
}

// BetweenRequiresTwoCommits is returned when -b is given without exactly two identifiers.
func BetweenRequiresTwoCommits(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("--between-two requires exactly 2 commits, got %d", got),
		"commitlog -b <top> <base>",
		"The range is exclusive of <base>: commits in base..top",
	)
}

// ConflictingModes is returned when both explicit range modes are requested.
func ConflictingModes() *CLIError {
	return NewArgumentErrorWithUsage(
		"--current-commit and --between-two cannot be combined",
		"commitlog [-c <commit> | -b <top> <base>]",
		"Use -c to fetch from the latest version bump up to <commit>",
		"Use -b to fetch an arbitrary window",
	)
}

// NotAGitRepository is returned when the working directory is outside a repository.
func NotAGitRepository(err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"not inside a git repository",
		"Run commitlog from the project root, or any directory below it",
	)
}

// ManifestUnavailable is returned when the version manifest cannot be read.
func ManifestUnavailable(err error, path string) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot read version from %s", path),
		"Set 'manifest' and 'version_field' in .commitlog.yml if the project keeps its version elsewhere",
	)
}

// InvalidConfig wraps a configuration load or validation failure.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .commitlog.yml and COMMITLOG_* environment variables",
	)
}

// UnexpectedArguments is returned when positional arguments are given to a
// mode that takes none.
func UnexpectedArguments(args []string, usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unexpected arguments: %v", args),
		usage,
		"Positional commits are only accepted with --between-two",
	)
}
