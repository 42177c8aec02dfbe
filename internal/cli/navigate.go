package cli

import (
	"github.com/spf13/cobra"

	"idealauncher/internal/idea"
)

func newNextCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Move on to the next step",
		Long: `Move on to the next view when its requirements are met:

  entry-selection     needs a template, sparks or skip
  stage-workspace     needs every stage locked
  instruction-review  needs enough approved instructions

Entering final assembly builds the prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Session.Advance(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			app.Printer.Success("%s (%s)", viewTitles[view], view)
			if view == idea.ViewFinalAssembly {
				app.Printer.Blank()
				app.printPrompt()
			}
			return nil
		},
	}
}

func newBackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Go back one step",
		Long:  `Go back to the previous view. Nothing you wrote or picked is lost.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Session.Back()
			if err != nil {
				return app.fail(err)
			}
			app.Printer.Success("%s (%s)", viewTitles[view], view)
			return nil
		},
	}
}

func newResetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Throw the session away and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Reset(); err != nil {
				return app.fail(err)
			}
			app.Printer.Success("Started a fresh session")
			return nil
		},
	}
}
