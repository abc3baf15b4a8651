package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/draftlens/internal/core/draft"
	"github.com/colonyops/draftlens/internal/core/logging"
	"github.com/colonyops/draftlens/internal/profiler"
	"github.com/colonyops/draftlens/internal/tui"
	"github.com/colonyops/draftlens/pkg/logutils"
)

type TuiCmd struct {
	flags *Flags
	build tui.BuildInfo
	file  string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		build: build,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "draft to select on startup",
			Destination: &cmd.file,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("DRAFTLENS_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	// Console logs would draw over the alt screen; hold them until exit.
	if cmd.flags.LogFile == "" {
		held := &logutils.Deferred{}
		prev := log.Logger
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: held})
		defer func() {
			log.Logger = prev
			_ = held.Flush(os.Stderr)
		}()
	}

	logger := logging.Component("tui")

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logger)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	session := draft.NewSession(cmd.flags.Client(), logging.Component("session"))

	m := tui.New(tui.Options{
		Session:     session,
		InitialPath: cmd.file,
		Build:       cmd.build,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
