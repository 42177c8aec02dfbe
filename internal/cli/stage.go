package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"idealauncher/internal/advisor"
	"idealauncher/internal/idea"
)

func newStageCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Write, lock and get advice on the idea stages",
	}

	cmd.AddCommand(
		newStageShowCommand(app),
		newStageWriteCommand(app),
		newStageLockCommand(app),
		newStageSuggestCommand(app),
		newStageReviewCommand(app),
	)
	return cmd
}

func newStageShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [stage-id]",
		Short: "Show one stage or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Session.State()
			if len(args) == 0 {
				for i, stage := range st.OrderedStages() {
					if i > 0 {
						app.Printer.Blank()
					}
					app.showStage(st, stage)
				}
				return nil
			}

			stage, ok := st.Stage(idea.StageID(args[0]))
			if !ok {
				return app.fail(fmt.Errorf("%w: %s", idea.ErrUnknownStage, args[0]))
			}
			app.showStage(st, stage)
			return nil
		},
	}
}

func (app *App) showStage(st *idea.State, stage idea.Stage) {
	p := app.Printer
	p.Title(fmt.Sprintf("%s (%s)", stage.Label, stage.ID))
	switch {
	case stage.Locked:
		p.Success("locked")
	case st.IsReadyToLock(stage.ID):
		p.Info("Ready to lock")
	default:
		p.Muted("%d more characters before it can lock", st.Remaining(stage.ID))
	}
	if !stage.Locked {
		if q := st.ActivePrompt(stage.ID); q != "" {
			p.Muted("%s", q)
		}
	}
	if stage.Text != "" {
		p.Raw(stage.Text)
	}
}

func newStageWriteCommand(app *App) *cobra.Command {
	var appendText, fromStdin bool

	cmd := &cobra.Command{
		Use:   "write <stage-id> [text...]",
		Short: "Replace (or extend) the text of a stage",
		Long: `Replace the text of an unlocked stage. Words after the stage id are joined
with spaces. Use --stdin to read the text from standard input.

Examples:
  idealauncher stage write why "I keep forgetting my habits after two days"
  idealauncher stage write who --append "Mostly students during exams."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := idea.StageID(args[0])
			text := strings.Join(args[1:], " ")
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return app.fail(fmt.Errorf("failed to read stdin: %w", err))
				}
				text = strings.TrimRight(string(data), "\n")
			}

			if appendText {
				current, ok := app.Session.State().Stage(id)
				if !ok {
					return app.fail(fmt.Errorf("%w: %s", idea.ErrUnknownStage, id))
				}
				if current.Text != "" && text != "" {
					text = current.Text + " " + text
				} else {
					text = current.Text + text
				}
			}

			if err := app.Session.UpdateText(id, text); err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, id))
			}

			st := app.Session.State()
			if st.IsReadyToLock(id) {
				app.Printer.Success("Saved %s. Ready to lock.", id)
			} else {
				app.Printer.Success("Saved %s. %d more characters before it can lock.", id, st.Remaining(id))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&appendText, "append", "a", false, "Append to the current text instead of replacing it")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the text from standard input")
	return cmd
}

func newStageLockCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <stage-id>",
		Short: "Lock a stage for good",
		Long: `Lock a stage once its text reaches the length threshold. A locked stage
can not be edited again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := idea.StageID(args[0])
			if err := app.Session.Lock(id); err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, id))
			}
			app.Printer.Success("Locked %s", id)
			return nil
		},
	}
}

func newStageSuggestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [stage-id]",
		Short: "Get suggestions for a stage, or for every open stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				res, err := app.Session.Suggest(ctx, idea.StageID(args[0]))
				if err != nil {
					return app.fail(fmt.Errorf("%w: %s", err, args[0]))
				}
				app.printSuggestions(res)
				return nil
			}

			all := app.Session.SuggestAll(ctx)
			if len(all) == 0 {
				app.Printer.Info("Every stage is locked.")
				return nil
			}
			for i, res := range all {
				if i > 0 {
					app.Printer.Blank()
				}
				app.printSuggestions(res)
			}
			return nil
		},
	}
}

func (app *App) printSuggestions(res advisor.Suggestions) {
	app.Printer.Title(string(res.StageID))
	for _, item := range res.Items {
		app.Printer.Bullet("%s", item)
	}
	if res.Source == advisor.SourceLocal {
		app.Printer.Muted("(offline suggestions)")
	}
}

func newStageReviewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review <stage-id>",
		Short: "Ask whether a stage reads as ready",
		Long: `Ask for a quick review of a stage. The answer is advice only; locking
still depends on the length threshold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := app.Session.Review(cmd.Context(), idea.StageID(args[0]))
			if err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, args[0]))
			}
			if fb.Ready {
				app.Printer.Success("%s", fb.Message)
			} else {
				app.Printer.Info("%s", fb.Message)
			}
			return nil
		},
	}
}
