package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idealauncher/internal/idea"
)

func newInstructionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instructions",
		Aliases: []string{"inst"},
		Short:   "Pick the build details that go into the prompt",
	}

	cmd.AddCommand(
		newInstructionsListCommand(app),
		newInstructionsToggleCommand(app),
		newInstructionsAddCommand(app),
		newInstructionsRemoveCommand(app),
	)
	return cmd
}

func newInstructionsListCommand(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instructions by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Session.State()
			bp := st.Blueprint()

			categories := bp.Categories
			if category != "" {
				c, ok := bp.Category(idea.Category(category))
				if !ok {
					return app.fail(fmt.Errorf("%w: %s", idea.ErrUnknownCategory, category))
				}
				categories = []idea.CategorySpec{c}
			}

			for i, c := range categories {
				if i > 0 {
					app.Printer.Blank()
				}
				app.Printer.Title(fmt.Sprintf("%s (%s)", c.Heading, c.ID))
				items := st.InstructionsIn(c.ID)
				if len(items) == 0 {
					app.Printer.Muted("  nothing yet; falls back to %q", c.Placeholder)
					continue
				}
				for _, in := range items {
					label := in.Text
					if in.IsCustom {
						label += " (custom)"
					}
					app.Printer.Check(in.IsApproved, "%s  %s", in.ID, label)
				}
			}

			switch bp.Policy {
			case idea.PolicyMinTotal:
				app.Printer.Muted("%d of %d approved", st.ApprovedCount(), bp.MinApproved)
			default:
				app.Printer.Muted("Approve at least one per category")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category")
	return cmd
}

func newInstructionsToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id> [id...]",
		Short: "Approve or un-approve instructions",
		Long: `Flip the approval of one or more instructions. Ids are shown by
"idealauncher instructions list". All ids are applied together: if one is
unknown, nothing changes. Changing the selection drops any generated prompt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Toggle(args...); err != nil {
				return app.fail(err)
			}
			st := app.Session.State()
			for _, id := range args {
				in, _ := st.Instruction(id)
				if in.IsApproved {
					app.Printer.Success("Approved %s", in.Text)
				} else {
					app.Printer.Info("Dropped %s", in.Text)
				}
			}
			return nil
		},
	}
}

func newInstructionsAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <text...>",
		Short: "Add your own instruction",
		Long: `Add a custom instruction to a category. It starts approved.

Example:
  idealauncher instructions add screens "A home screen with today's streak"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := app.Session.AddCustom(idea.Category(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, args[0]))
			}
			app.Printer.Success("Added %s (%s)", in.Text, in.ID)
			return nil
		},
	}
}

func newInstructionsRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Remove(args[0]); err != nil {
				return app.fail(fmt.Errorf("%w: %s", err, args[0]))
			}
			app.Printer.Success("Removed %s", args[0])
			return nil
		},
	}
}
