package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"idealauncher/internal/idea"
	"idealauncher/internal/lifecycle"
)

func newNameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "name <display-name...>",
		Short: "Name the app",
		Long: `Set the name used in the prompt header. Renaming drops any generated
prompt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := app.Session.SetDisplayName(name); err != nil {
				return app.fail(err)
			}
			app.Printer.Success("Named %q", app.Session.State().DisplayName)
			return nil
		},
	}
}

func (app *App) printPrompt() {
	st := app.Session.State()
	if st.Prompt == nil {
		app.Printer.Info("No prompt yet. Run `idealauncher generate`.")
		return
	}

	app.Printer.Raw(st.Prompt.Text)
	app.Printer.Blank()
	if st.Prompt.Source == idea.SourceEnhanced {
		app.Printer.Muted("Tidied by Gemini")
	} else {
		app.Printer.Muted("Built from your answers")
	}
	switch {
	case st.PromptConfirmed:
		app.Printer.Muted("Confirmed. Run `idealauncher copy` to copy it.")
	default:
		app.Printer.Muted("Run `idealauncher confirm`, then `idealauncher copy`.")
	}
}

func newGenerateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Show the assembled prompt, building it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session.State().View != idea.ViewFinalAssembly {
				return app.fail(lifecycle.ErrNotAtAssembly)
			}
			if _, err := app.Session.Prompt(); err == nil {
				app.printPrompt()
				return nil
			}
			return app.generate(cmd)
		},
	}
}

func newRegenerateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Build the prompt again from the current answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.generate(cmd)
		},
	}
}

func (app *App) generate(cmd *cobra.Command) error {
	res, err := app.Session.Generate(cmd.Context())
	if err != nil {
		return app.fail(err)
	}
	if res.Err != nil {
		app.Printer.Warning("Gemini could not tidy the prompt; using the built-in version")
	}
	app.printPrompt()
	return nil
}

func newConfirmCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the prompt is ready to copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Confirm(); err != nil {
				return app.fail(err)
			}
			app.Printer.Success("Prompt confirmed")
			return nil
		},
	}
}

func newCopyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the prompt to the clipboard",
		Long: `Copy the confirmed prompt to the clipboard. When the clipboard is not
available the prompt is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.Session.Copy()
			switch {
			case errors.Is(err, lifecycle.ErrExportFailed):
				app.Printer.Warning("Clipboard unavailable; copy the prompt below")
				app.Printer.Blank()
				app.Printer.Raw(text)
				return nil
			case err != nil:
				return app.fail(err)
			}
			app.Printer.Success("Prompt copied. Paste it into your AI app builder.")
			return nil
		},
	}
}

// exportDoc is the YAML shape written by the export command.
type exportDoc struct {
	Name         string              `yaml:"name,omitempty"`
	View         idea.View           `yaml:"view"`
	StartedFrom  exportSelection     `yaml:"started_from"`
	Stages       []exportStage       `yaml:"stages"`
	Instructions []exportInstruction `yaml:"instructions"`
	Prompt       *exportPrompt       `yaml:"prompt,omitempty"`
}

type exportSelection struct {
	Template string   `yaml:"template,omitempty"`
	Sparks   []string `yaml:"sparks,omitempty"`
	Skipped  bool     `yaml:"skipped,omitempty"`
}

type exportStage struct {
	ID     idea.StageID `yaml:"id"`
	Label  string       `yaml:"label"`
	Text   string       `yaml:"text"`
	Locked bool         `yaml:"locked"`
}

type exportInstruction struct {
	ID       string        `yaml:"id"`
	Category idea.Category `yaml:"category"`
	Text     string        `yaml:"text"`
	Approved bool          `yaml:"approved"`
	Custom   bool          `yaml:"custom,omitempty"`
}

type exportPrompt struct {
	Text        string              `yaml:"text"`
	Source      idea.ArtifactSource `yaml:"source"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Confirmed   bool                `yaml:"confirmed"`
}

func buildExport(st *idea.State) exportDoc {
	doc := exportDoc{
		Name: st.DisplayName,
		View: st.View,
		StartedFrom: exportSelection{
			Template: st.Selection.TemplateID,
			Sparks:   st.Selection.Sparks,
			Skipped:  st.Selection.Skipped,
		},
	}
	for _, s := range st.OrderedStages() {
		doc.Stages = append(doc.Stages, exportStage{ID: s.ID, Label: s.Label, Text: s.Text, Locked: s.Locked})
	}
	for _, in := range st.Instructions {
		doc.Instructions = append(doc.Instructions, exportInstruction{
			ID:       in.ID,
			Category: in.Category,
			Text:     in.Text,
			Approved: in.IsApproved,
			Custom:   in.IsCustom,
		})
	}
	if st.Prompt != nil {
		doc.Prompt = &exportPrompt{
			Text:        st.Prompt.Text,
			Source:      st.Prompt.Source,
			GeneratedAt: st.Prompt.GeneratedAt,
			Confirmed:   st.PromptConfirmed,
		}
	}
	return doc
}

func newExportCommand(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole session as YAML",
		Long: `Write the session (answers, instructions and prompt) as YAML to stdout
or to a file.

Example:
  idealauncher export -o streakmate.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(buildExport(app.Session.State()))
			if err != nil {
				return app.fail(fmt.Errorf("failed to encode session: %w", err))
			}

			if outPath == "" {
				app.Printer.Raw(string(data))
				return nil
			}
			if err := afero.WriteFile(app.Fs, outPath, data, 0644); err != nil {
				return app.fail(fmt.Errorf("failed to write %s: %w", outPath, err))
			}
			app.Printer.Success("Exported to %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
