package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/draftlens/internal/core/draft"
	"github.com/colonyops/draftlens/internal/core/logging"
	"github.com/colonyops/draftlens/internal/printer"
	"github.com/colonyops/draftlens/pkg/iojson"
)

type FeedbackCmd struct {
	flags *Flags
	input iojson.FileReader[draft.Feedback]
}

// NewFeedbackCmd creates a new feedback command
func NewFeedbackCmd(flags *Flags) *FeedbackCmd {
	return &FeedbackCmd{
		flags: flags,
		input: iojson.FileReader[draft.Feedback]{
			Usage:    "path to feedback JSON with draft_text, predicted and corrected (reads from stdin if not provided)",
			Required: []string{"draft_text", "predicted", "corrected"},
		},
	}
}

// Register adds the feedback command to the application
func (cmd *FeedbackCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "feedback",
		Usage:     "Submit corrected questions for a draft",
		UsageText: "draftlens feedback [-f feedback.json]",
		Description: `Reads a JSON document with draft_text, predicted and corrected fields from
a file or stdin and submits it to the feedback endpoint.`,
		Flags:  []cli.Flag{cmd.input.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *FeedbackCmd) run(ctx context.Context, _ *cli.Command) error {
	fb, err := cmd.input.Read()
	if err != nil {
		return err
	}

	if err := cmd.flags.Client().SubmitFeedback(ctx, fb); err != nil {
		logging.Component("feedback").Warn().Err(err).Msg("submit feedback failed")
	}

	printer.Ctx(ctx).Successf(draft.FeedbackNotice)
	return nil
}
