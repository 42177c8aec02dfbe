package cli

import (
	"idealauncher/internal/idea"
)

// viewTitles are the headings shown for each view.
var viewTitles = map[idea.View]string{
	idea.ViewEntrySelection:    "Pick a starting point",
	idea.ViewStageWorkspace:    "Shape the idea",
	idea.ViewInstructionReview: "Choose the build details",
	idea.ViewFinalAssembly:     "Your prompt",
}

// printGate prints whether the session can move on from its current view.
func (app *App) printGate(st *idea.State) {
	for _, g := range app.Session.Router().Gates(st) {
		if g.From != st.View {
			continue
		}
		if g.Open() {
			app.Printer.Muted("Ready for %s. Run `idealauncher next`.", g.To)
		} else {
			app.Printer.Muted("Before %s: %v", g.To, g.Err)
		}
		return
	}
}
