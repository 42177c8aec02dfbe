package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTemplatesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the curated ideas you can start from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			concepts := app.Session.State().Blueprint().Concepts
			if len(concepts) == 0 {
				app.Printer.Info("No templates configured. Use `idealauncher spark` or `idealauncher skip`.")
				return nil
			}

			var b strings.Builder
			for _, c := range concepts {
				fmt.Fprintf(&b, "## %s (`%s`)\n\n", c.Title, c.ID)
				if c.Description != "" {
					fmt.Fprintf(&b, "%s\n\n", c.Description)
				}
				if c.ProblemAngle != "" {
					fmt.Fprintf(&b, "- **Problem:** %s\n", c.ProblemAngle)
				}
				if c.Audience != "" {
					fmt.Fprintf(&b, "- **For:** %s\n", c.Audience)
				}
				if c.CoreFunction != "" {
					fmt.Fprintf(&b, "- **Core:** %s\n", c.CoreFunction)
				}
				b.WriteString("\n")
			}
			app.Printer.Markdown(b.String())
			app.Printer.Muted("Start from one with `idealauncher pick <id>`.")
			return nil
		},
	}
}

func newPickCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <template-id>",
		Short: "Start from a curated idea",
		Long: `Start the session from a curated idea. If the session has no name yet,
the idea's title becomes the name.

Example:
  idealauncher pick streak-keeper`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.SelectTemplate(args[0]); err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, args[0]))
			}
			app.Printer.Success("Starting from %s", describeSelection(app.Session.State()))
			return nil
		},
	}
}

func newSparkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "spark <idea> [idea...]",
		Short: "Start from your own idea sparks",
		Long: `Start the session from short free-text sparks, one per argument.

Example:
  idealauncher spark "study with friends" "hate cramming"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.SelectSparks(args); err != nil {
				if need := app.Session.State().Blueprint().MinSparks; need > 1 {
					return app.fail(fmt.Errorf("%w (need at least %d)", err, need))
				}
				return app.fail(err)
			}
			app.Printer.Success("Starting from %s", describeSelection(app.Session.State()))
			return nil
		},
	}
}

func newSkipCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Start without a template or sparks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.SkipSelection(); err != nil {
				return app.fail(err)
			}
			app.Printer.Success("Starting from a blank page")
			return nil
		},
	}
}
