package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/ht-tools/commitlog/internal/build"
	"github.com/ht-tools/commitlog/internal/changelog"
	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/ht-tools/commitlog/internal/config"
	clierrors "github.com/ht-tools/commitlog/internal/errors"
	"github.com/ht-tools/commitlog/internal/lifecycle"
	"github.com/ht-tools/commitlog/internal/output"
	"github.com/ht-tools/commitlog/internal/pipeline"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	globalOptions
	filter string
	print  bool
	output string
	watch  bool
}

// NewChangelogCmd creates the ht-changelog root command.
func NewChangelogCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "ht-changelog [commit_log_path]",
		Short: "Render commitLog.json into changelog.md",
		Long: `Render a commit log written by commitlog as a Markdown change log.

Commits are grouped by version in the order they appear in the log, then
by category (fix, feat, refactor, style, chore). Commits without a
conventional prefix are left out.`,
		Example: `  # Write changelog.md from commitLog.json
  ht-changelog

  # Print to the terminal instead
  ht-changelog -p

  # Only fixes, from another log
  ht-changelog build/commitLog.json -f '^fix'

  # Re-render whenever commitlog updates the log
  ht-changelog --watch`,
		Version:       build.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.apply()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Keep only commits whose message matches `pattern` (RE2)")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false, "Print the change log instead of writing it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output `path` (default from config, changelog.md)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-render whenever the commit log changes")
	cmd.SetFlagErrorFunc(flagError)

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.newLogger(cmd.ErrOrStderr(), "ht-changelog")

	filter, err := messageFilter(cmd, opts.filter, cfg)
	if err != nil {
		return err
	}

	logPath := cfg.CommitLog
	if len(args) == 1 {
		logPath = args[0]
	}
	logPath = pipeline.ResolveLogPath(logPath)

	renderOpts := pipeline.RenderOptions{
		LogPath:  logPath,
		Filter:   filter,
		Project:  cfg.ProjectName,
		Manifest: cfg.Manifest,
	}
	outPath := outputPath(opts, cfg)
	completion := logCompletion{logger: logger}

	render := func() error {
		var doc changelog.Document
		err := lifecycle.Run(completion, "render", func() error {
			var err error
			doc, err = pipeline.Render(renderOpts)
			return err
		})
		if err != nil {
			return renderError(err, logPath)
		}

		if opts.print {
			return changelog.FormatTerminal(doc, cmd.OutOrStdout(), changelog.FormatOptions{
				Plain: opts.plain || color.NoColor,
			})
		}

		if err := pipeline.WriteDocument(outPath, doc); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, fmt.Sprintf("writing %s", outPath))
		}
		output.PrintSuccess(cmd.OutOrStdout(), "wrote "+outPath)
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	watcher, err := changelog.NewWatcher(logPath)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	defer watcher.Close()

	output.PrintWatching(cmd.ErrOrStderr(), logPath)
	return watcher.Watch(cmd.Context(), func() {
		if err := render(); err != nil {
			logger.Error("render failed", "err", err)
		}
	})
}

func outputPath(opts *renderOptions, cfg *config.Configuration) string {
	if opts.output != "" {
		return opts.output
	}
	return cfg.Changelog
}

// renderError maps render pipeline failures to categorized CLI errors.
func renderError(err error, logPath string) error {
	switch {
	case errors.Is(err, commitlog.ErrLogNotFound):
		return clierrors.CommitLogNotFound(logPath)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, fmt.Sprintf("reading %s", logPath))
	}
}
