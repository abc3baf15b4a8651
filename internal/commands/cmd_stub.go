package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/draftlens/internal/core/logging"
	"github.com/colonyops/draftlens/internal/stubservice"
)

type StubCmd struct {
	flags *Flags
	addr  string
}

// NewStubCmd creates a new stub command
func NewStubCmd(flags *Flags) *StubCmd {
	return &StubCmd{flags: flags}
}

// Register adds the stub command to the application
func (cmd *StubCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stub",
		Usage:     "Run a local stand-in for the analysis service",
		UsageText: "draftlens stub [--addr host:port]",
		Description: `Serves /analyze and /feedback with canned legal issues so the client can be
tried without the real service. Feedback is kept in memory only.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to stub.addr from config)",
				Sources:     cli.EnvVars("DRAFTLENS_STUB_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StubCmd) run(ctx context.Context, _ *cli.Command) error {
	addr := cmd.addr
	if addr == "" {
		addr = cmd.flags.Config.Stub.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := stubservice.New(cmd.flags.Config.Stub.AllowedOrigins, logging.Component("stub"))
	return srv.ListenAndServe(ctx, addr)
}
