package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/draftlens/internal/core/draft"
	"github.com/colonyops/draftlens/internal/core/logging"
	"github.com/colonyops/draftlens/internal/core/styles"
	"github.com/colonyops/draftlens/internal/printer"
	"github.com/colonyops/draftlens/pkg/iojson"
)

// CorrectionFunc lets the user edit the predicted questions. It returns the
// corrected text and whether the feedback should be sent.
type CorrectionFunc func(predicted string) (string, bool, error)

type AnalyzeCmd struct {
	flags    *Flags
	json     bool
	feedback bool
	correct  CorrectionFunc
}

// analyzeRecord is one line of JSON output.
type analyzeRecord struct {
	File   string               `json:"file"`
	Result draft.AnalysisResult `json:"result"`
}

// NewAnalyzeCmd creates a new analyze command
func NewAnalyzeCmd(flags *Flags) *AnalyzeCmd {
	return &AnalyzeCmd{
		flags:   flags,
		correct: correctionForm,
	}
}

// Register adds the analyze command to the application
func (cmd *AnalyzeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze drafts without the interactive view",
		UsageText: "draftlens analyze [options] <path|glob>...",
		Description: `Sends each draft to the analysis service and prints the predicted legal
questions with their suggested case laws.

Arguments may be doublestar globs such as 'drafts/**/*.pdf'. Output is
rendered markdown on a terminal and JSON lines otherwise or with --json.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "write one JSON object per draft",
				Destination: &cmd.json,
			},
			&cli.BoolFlag{
				Name:        "feedback",
				Usage:       "edit the predicted questions and submit feedback (single draft only)",
				Destination: &cmd.feedback,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AnalyzeCmd) run(ctx context.Context, c *cli.Command) error {
	paths, err := expandDrafts(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no drafts given. Run 'draftlens analyze --help' for usage")
	}
	if cmd.feedback && len(paths) != 1 {
		return fmt.Errorf("--feedback needs exactly one draft, got %d", len(paths))
	}

	out := c.Root().Writer
	asJSON := cmd.json || !isTerminal(out)
	client := cmd.flags.Client()
	logger := logging.Component("analyze")
	p := printer.Ctx(ctx)

	failed := 0
	for _, path := range paths {
		session := draft.NewSession(client, logger)

		f, err := draft.OpenFile(path)
		if err != nil {
			failed++
			cmd.reportFailure(ctx, c, path, err, asJSON)
			continue
		}
		session.SelectFile(f)

		st, err := session.Analyze(ctx)
		if err != nil {
			failed++
			cmd.reportFailure(ctx, c, path, err, asJSON)
			continue
		}

		result, _ := st.Result()
		if asJSON {
			if err := iojson.WriteLine(out, analyzeRecord{File: path, Result: result}); err != nil {
				return err
			}
		} else {
			writeResult(out, path, result)
		}

		if cmd.feedback {
			if err := cmd.sendFeedback(ctx, session, p); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d drafts failed", failed, len(paths))
	}
	return nil
}

func (cmd *AnalyzeCmd) reportFailure(ctx context.Context, c *cli.Command, path string, err error, asJSON bool) {
	if asJSON {
		_ = iojson.WriteErrorTo(c.Root().ErrWriter, "analyze failed", map[string]any{
			"file":  path,
			"error": err.Error(),
		})
		return
	}
	printer.Ctx(ctx).Errorf("%s: %v", path, err)
}

func (cmd *AnalyzeCmd) sendFeedback(ctx context.Context, session *draft.Session, p *printer.Printer) error {
	corrected, ok, err := cmd.correct(session.Snapshot().Corrected())
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("form: %w", err)
	}
	if !ok {
		p.Infof("Feedback not sent")
		return nil
	}

	session.EditCorrected(corrected)
	_, _ = session.SendFeedback(ctx)
	p.Successf(draft.FeedbackNotice)
	return nil
}

func correctionForm(predicted string) (string, bool, error) {
	corrected := predicted
	submit := true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Corrected questions").
				Description("One question per line").
				Lines(8).
				Value(&corrected),
			huh.NewConfirm().
				Title("Submit feedback?").
				Value(&submit),
		),
	).WithTheme(styles.FormTheme()).Run()

	return corrected, submit, err
}

// expandDrafts resolves glob arguments and keeps plain paths as given.
// A glob that matches nothing is an error.
func expandDrafts(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no drafts match %q", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func writeResult(w io.Writer, path string, result draft.AnalysisResult) {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", path)
	for i, q := range result.Questions {
		fmt.Fprintf(&md, "%d. %s\n", i+1, q)
	}
	md.WriteString("\n")
	md.WriteString(result.CaseLawMarkdown())

	rendered, err := styles.RenderMarkdown(md.String(), width)
	if err != nil {
		rendered = md.String()
	}
	_, _ = fmt.Fprintln(w, rendered)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
