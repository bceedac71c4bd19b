package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/config"
	clierrors "github.com/ht-tools/commitlog/internal/errors"
	"github.com/ht-tools/commitlog/internal/git"
	"github.com/ht-tools/commitlog/internal/lifecycle"
	"github.com/ht-tools/commitlog/internal/manifest"
	"github.com/ht-tools/commitlog/internal/pipeline"
	"github.com/ht-tools/commitlog/internal/progress"
	"github.com/ht-tools/commitlog/internal/revrange"
	"github.com/spf13/cobra"
)

const fetchUsage = "commitlog [-c <commit> | -b <top> <base>] [-l] [-f <pattern>]"

type fetchOptions struct {
	globalOptions
	list    bool
	current string
	between bool
	filter  string
}

// NewCommitlogCmd creates the commitlog root command.
func NewCommitlogCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "commitlog [<top> <base>]",
		Short: "Collect the commits of the current version into commitLog.json",
		Long: `Collect the commits between two version bumps of the project manifest,
annotate them with insertions and deletions, and merge them into commitLog.json.

Without flags the window runs from the second most recent version bump
(exclusive) to the most recent one. Records are tagged with the manifest's
current version unless --between-two is used.`,
		Example: `  # Merge the current version's commits into commitLog.json
  commitlog

  # Print instead of saving
  commitlog -l

  # From the latest version bump up to a commit
  commitlog -c 3f2a9c1

  # An arbitrary window, exclusive of <base>
  commitlog -b HEAD v1.2.0

  # Only features
  commitlog -f '^feat'`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.apply()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "Print the fetched commits instead of saving them")
	cmd.Flags().StringVarP(&opts.current, "current-commit", "c", "", "Fetch from the latest version bump up to `commit`")
	cmd.Flags().BoolVarP(&opts.between, "between-two", "b", false, "Fetch commits between two positional commits: <top> <base>")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Keep only commits whose message matches `pattern` (RE2)")
	cmd.SetFlagErrorFunc(flagError)

	cmd.AddCommand(newVersionCmd("commitlog"))
	return cmd
}

// buildRequest maps the mode flags and positional arguments to a range request.
func buildRequest(opts *fetchOptions, args []string) (revrange.Request, error) {
	switch {
	case opts.current != "" && opts.between:
		return revrange.Request{}, clierrors.ConflictingModes()
	case opts.between:
		if len(args) != 2 {
			return revrange.Request{}, clierrors.BetweenRequiresTwoCommits(len(args))
		}
		return revrange.Request{Mode: revrange.Between, Top: args[0], Base: args[1]}, nil
	case len(args) > 0:
		return revrange.Request{}, clierrors.UnexpectedArguments(args, fetchUsage)
	case opts.current != "":
		return revrange.Request{Mode: revrange.Current, Top: opts.current}, nil
	default:
		return revrange.Request{Mode: revrange.Auto}, nil
	}
}

// messageFilter compiles the --filter flag, falling back to the configured default.
func messageFilter(cmd *cobra.Command, flagValue string, cfg *config.Configuration) (*commitlog.Filter, error) {
	pattern := cfg.MessageFilter
	if cmd.Flags().Changed("filter") {
		pattern = flagValue
	}
	filter, err := commitlog.NewFilter(pattern)
	if err != nil {
		return nil, clierrors.InvalidFilterPattern(pattern, err)
	}
	return filter, nil
}

func runFetch(cmd *cobra.Command, opts *fetchOptions, args []string) error {
	req, err := buildRequest(opts, args)
	if err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.newLogger(cmd.ErrOrStderr(), "commitlog")

	filter, err := messageFilter(cmd, opts.filter, cfg)
	if err != nil {
		return err
	}

	repo, err := git.OpenRepo("")
	if err != nil {
		return clierrors.NotAGitRepository(err)
	}

	fetcher := &pipeline.Fetcher{
		Git:       git.NewClient(""),
		Revisions: repo,
		Config:    cfg,
		Logger:    logger,
	}

	caps := progress.DetectTerminalCapabilities()
	if opts.plain {
		caps = progress.TerminalCapabilities{}
	}
	display := progress.NewDisplay(cmd.ErrOrStderr(), caps)
	display.Start("fetching commits")

	var result *pipeline.FetchResult
	err = lifecycle.RunContext(cmd.Context(), logCompletion{logger: logger}, "fetch", func(ctx context.Context) error {
		var err error
		result, err = fetcher.Fetch(ctx, pipeline.FetchOptions{
			Request:  req,
			Filter:   filter,
			Progress: display.Update,
		})
		return err
	})
	if err != nil {
		display.Stop()
		return fetchError(err, cfg)
	}

	if opts.list {
		display.Stop()
		data, err := commitlog.Encode(result.Records)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	total, err := fetcher.Persist(result.Records)
	if err != nil {
		display.Stop()
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			fmt.Sprintf("saving %s", cfg.CommitLog),
			"The previous file was left untouched")
	}

	display.Done(fmt.Sprintf("%d commits merged into %s (%d total)", len(result.Records), cfg.CommitLog, total))
	return nil
}

// fetchError maps pipeline failures to categorized CLI errors.
func fetchError(err error, cfg *config.Configuration) error {
	var revErr *revrange.RevisionError
	var cmdErr *git.CommandError

	switch {
	case clierrors.IsCLIError(err):
		return err
	case errors.Is(err, revrange.ErrInsufficientHistory):
		return clierrors.InsufficientVersionHistory(err, cfg.Manifest)
	case errors.As(err, &revErr):
		return clierrors.UnknownRevision(revErr.Rev, revErr.Err)
	case errors.Is(err, manifest.ErrNotFound):
		return clierrors.ManifestUnavailable(err, cfg.Manifest)
	case errors.As(err, &cmdErr):
		return clierrors.GitCommandFailed(err)
	case errors.Is(err, context.Canceled):
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "interrupted")
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}
