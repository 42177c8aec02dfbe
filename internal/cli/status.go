package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"idealauncher/internal/idea"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the session stands",
		Long: `Show the current view, the entry selection, the AI model and the workshop
timer, every stage with its lock state, the approved instructions per category
and what blocks the next step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Session.State()
			p := app.Printer

			p.Title(viewTitles[st.View])
			p.KeyValue("view", st.View)
			name := st.DisplayName
			if name == "" {
				name = "(not named yet)"
			}
			p.KeyValue("name", name)
			p.KeyValue("started from", describeSelection(st))
			if app.AI != nil {
				p.KeyValue("ai", "gemini "+app.AI.Model())
			} else {
				p.KeyValue("ai", "off")
			}
			app.printTimer()
			p.Blank()

			p.Title("Stages")
			for _, stage := range st.OrderedStages() {
				switch {
				case stage.Locked:
					p.Check(true, "%s (%s)", stage.Label, stage.ID)
				case st.IsReadyToLock(stage.ID):
					p.Check(false, "%s (%s), ready to lock", stage.Label, stage.ID)
				default:
					p.Check(false, "%s (%s), %d more characters", stage.Label, stage.ID, st.Remaining(stage.ID))
				}
			}
			p.Blank()

			p.Title("Build details")
			ready := st.ApprovedByCategory()
			for _, c := range st.Blueprint().Categories {
				approved := 0
				for _, in := range st.InstructionsIn(c.ID) {
					if in.IsApproved {
						approved++
					}
				}
				p.Check(ready[c.ID], "%s: %d approved", c.ID, approved)
			}
			p.Blank()

			if st.Prompt != nil {
				state := "not confirmed"
				if st.PromptConfirmed {
					state = "confirmed"
				}
				p.KeyValue("prompt", string(st.Prompt.Source)+", "+state)
			}

			app.printGate(st)
			return nil
		},
	}
}

func describeSelection(st *idea.State) string {
	sel := st.Selection
	switch {
	case sel.TemplateID != "":
		if c, ok := st.Blueprint().Concept(sel.TemplateID); ok {
			return "template " + c.Title
		}
		return "template " + sel.TemplateID
	case len(sel.Sparks) > 0:
		return "sparks: " + strings.Join(sel.Sparks, ", ")
	case sel.Skipped:
		return "skipped"
	default:
		return "nothing yet"
	}
}
