// Package cli implements the commitlog and ht-changelog command lines.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/ht-tools/commitlog/internal/config"
	clierrors "github.com/ht-tools/commitlog/internal/errors"
	"github.com/ht-tools/commitlog/internal/git"
	"github.com/spf13/cobra"
)

// globalOptions are the flags both binaries share.
type globalOptions struct {
	configPath string
	debug      bool
	plain      bool
}

func (g *globalOptions) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Project config file (default .commitlog.yml)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&g.plain, "plain", false, "Disable colors and the spinner")
}

// apply configures global state from the parsed flags.
func (g *globalOptions) apply() {
	if g.plain {
		color.NoColor = true
	}
}

// loadConfig loads the layered configuration.
func (g *globalOptions) loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(config.LoadOptions{ProjectConfigPath: g.configPath})
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}
	return cfg, nil
}

// newLogger creates the stderr logger for binary. With debug, git commands
// are logged too.
func (g *globalOptions) newLogger(w io.Writer, binary string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          binary,
		ReportTimestamp: false,
	})
	if g.debug {
		logger.SetLevel(log.DebugLevel)
		git.SetDebugLogger(logger.Debugf)
	} else {
		git.SetDebugLogger(nil)
	}
	return logger
}

// logCompletion reports command durations at debug level.
type logCompletion struct {
	logger *log.Logger
}

func (l logCompletion) OnCommandComplete(name string, err error, duration time.Duration) {
	if err != nil {
		l.logger.Debug("command failed", "command", name, "duration", duration, "err", err)
		return
	}
	l.logger.Debug("command complete", "command", name, "duration", duration)
}

// flagError turns cobra flag parsing failures into argument errors.
func flagError(cmd *cobra.Command, err error) error {
	return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
		"Run '"+cmd.CommandPath()+" --help' for usage")
}

// execute runs cmd until completion or interrupt, prints any error and
// returns the exit code.
func execute(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	plain, _ := cmd.PersistentFlags().GetBool("plain")
	clierrors.Fprint(cmd.ErrOrStderr(), err, plain)
	return ExitCode(err)
}

// ExecuteCommitlog runs the commitlog command line.
func ExecuteCommitlog() int {
	return execute(NewCommitlogCmd())
}

// ExecuteChangelog runs the ht-changelog command line.
func ExecuteChangelog() int {
	return execute(NewChangelogCmd())
}
