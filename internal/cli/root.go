// Package cli provides the command-line interface for idealauncher.
//
// Every command performs one action on the saved session and exits. The
// session walks through four views:
//
//	entry-selection → stage-workspace → instruction-review → final-assembly
//
// Key types:
//   - [App] holds the dependencies shared by all commands
//   - [ExitError] carries a non-zero exit code without calling os.Exit
//   - [ExecuteResult] is returned by [RunWithConfig] for testable execution
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"idealauncher/internal/advisor"
	"idealauncher/internal/assembler"
	"idealauncher/internal/clipboard"
	"idealauncher/internal/config"
	"idealauncher/internal/gemini"
	"idealauncher/internal/idea"
	"idealauncher/internal/lifecycle"
	"idealauncher/internal/output"
	"idealauncher/internal/router"
	"idealauncher/internal/store"
)

// App holds the dependencies shared by all commands.
//
// Tests build an App directly with an in-memory store and mock advisor;
// [NewApp] wires the real ones.
type App struct {
	Config  *config.Config
	Session *lifecycle.Session
	Printer *output.Printer
	Logger  *log.Logger

	// AI is the Gemini client, nil when AI is off.
	AI *gemini.Client

	// Fs is used for export files.
	Fs afero.Fs

	verbose bool
	opened  bool

	// changed is the state after the last persisted change of this run.
	changed *idea.State
}

// NewApp wires an [App] from configuration: state store, assembler with an
// optional Gemini enhancer, advisor, clipboard and printer.
func NewApp(cfg *config.Config) (*App, error) {
	bp, err := cfg.Blueprint()
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "idealauncher"})

	var asmOpts []assembler.Option
	var gen *gemini.Client
	adv := advisor.Advisor(advisor.NewLocal(bp.Threshold))
	if cfg.AIReady() {
		var genOpts []gemini.ClientOption
		if cfg.AI.BaseURL != "" {
			genOpts = append(genOpts, gemini.WithBaseURL(cfg.AI.BaseURL))
		}
		gen = gemini.NewClient(cfg.AI.APIKey, cfg.AI.Model, genOpts...)
		asmOpts = append(asmOpts,
			assembler.WithEnhancer(assembler.NewGeminiEnhancer(gen, cfg.AI.Temperature, cfg.Assembly.ClosingDirective)),
			assembler.WithTimeout(cfg.AI.Timeout),
		)
		adv = advisor.NewRemote(gen, advisor.NewLocal(bp.Threshold),
			advisor.WithTimeout(cfg.AI.Timeout),
			advisor.WithLogger(logger),
		)
	}
	asmOpts = append(asmOpts, assembler.WithLogger(logger))

	asm, err := assembler.New(cfg.AssemblerOptions(), asmOpts...)
	if err != nil {
		return nil, err
	}

	session := lifecycle.NewSession(bp, store.New(cfg.StatePath()), asm,
		lifecycle.WithAdvisor(adv),
		lifecycle.WithExporter(clipboard.NewSystem()),
		lifecycle.WithLogger(logger),
		lifecycle.WithRouter(router.NewRouter(cfg.Assembly.RequireName)),
		lifecycle.WithConfirmation(cfg.Assembly.RequireConfirmation),
	)

	printer := output.NewPrinter()
	printer.SetMarkdown(output.MarkdownOptions{
		Enabled:  cfg.Output.Markdown.Enabled,
		Style:    cfg.Output.Markdown.Style,
		WordWrap: cfg.Output.Markdown.WordWrap,
		Emoji:    cfg.Output.Markdown.Emoji,
	})

	return &App{
		Config:  cfg,
		Session: session,
		Printer: printer,
		Logger:  logger,
		AI:      gen,
		Fs:      afero.NewOsFs(),
	}, nil
}

// open loads the saved session once per process.
func (app *App) open(cmd *cobra.Command) error {
	if app.Logger == nil {
		app.Logger = log.Default()
	}
	if app.verbose {
		app.Logger.SetLevel(log.DebugLevel)
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.opened {
		return nil
	}
	if err := app.Session.Open(cmd.Context()); err != nil {
		return err
	}
	app.Session.SetChangeCallback(func(st *idea.State) {
		app.changed = st
	})
	app.opened = true
	return nil
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "idealauncher",
		Short: "Turn an app idea into a ready-to-paste AI build prompt",
		Long: `idealauncher walks an app idea through guided stages, lets you pick the
build details that matter, and assembles a prompt for an AI app builder.

Start with:
  idealauncher templates      curated ideas to start from
  idealauncher status         where the session stands`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.changed != nil {
				app.printGate(app.changed)
				app.changed = nil
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Show debug logging")

	rootCmd.AddCommand(
		newStatusCommand(app),
		newTemplatesCommand(app),
		newPickCommand(app),
		newSparkCommand(app),
		newSkipCommand(app),
		newStageCommand(app),
		newInstructionsCommand(app),
		newNameCommand(app),
		newNextCommand(app),
		newBackCommand(app),
		newGenerateCommand(app),
		newRegenerateCommand(app),
		newConfirmCommand(app),
		newCopyCommand(app),
		newExportCommand(app),
		newTimerCommand(app),
		newResetCommand(app),
	)

	return rootCmd
}

// ExecuteResult holds the result of CLI execution.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig wires an [App] for cfg and runs the root command.
func RunWithConfig(cfg *config.Config) ExecuteResult {
	app, err := NewApp(cfg)
	if err != nil {
		return ExecuteResult{ExitCode: 1, Err: err}
	}

	rootCmd := NewRootCommand(app)
	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		app.Printer.Error("%v", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads configuration, runs the CLI and exits with its code.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg)
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
}
