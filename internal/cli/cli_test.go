package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"idealauncher/internal/config"
	"idealauncher/internal/idea"
)

var compassAnswers = map[string]string{
	"why":  "I start a new habit every month and drop it after three days.",
	"who":  "Students who want to build habits but have nobody checking in.",
	"what": "Tracks one habit at a time and shows the current streak big and bold.",
	"how":  "Open the app, tap once to check in, and see the streak grow each day.",
}

// walkToReview picks a template, writes and locks every stage and moves to
// instruction review.
func walkToReview(t *testing.T, env *testEnv) {
	t.Helper()
	env.mustRun(t, "pick", "streak-keeper")
	env.mustRun(t, "next")
	for _, s := range env.cfg.Stages {
		env.mustRun(t, "stage", "write", s.ID, compassAnswers[s.ID])
		env.mustRun(t, "stage", "lock", s.ID)
	}
	env.mustRun(t, "next")
}

// approveOnePerCategory makes the compass readiness policy pass.
func approveOnePerCategory(t *testing.T, env *testEnv) {
	t.Helper()
	env.mustRun(t, "instructions", "toggle", "default-0", "default-4", "default-10")
	env.mustRun(t, "instructions", "add", "screens", "A home screen with today's streak")
}

func TestStatus_FreshSession(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.mustRun(t, "status")

	assert.Contains(t, out, "view: entry-selection")
	assert.Contains(t, out, "started from: nothing yet")
	assert.Contains(t, out, "  [ ] Why (why), 50 more characters")
	assert.Contains(t, out, "  [ ] design: 0 approved")
	assert.Contains(t, out, "Before stage-workspace: no idea selected yet")
	assert.Contains(t, out, "ai: off")
	assert.Contains(t, out, "timer: off")
}

func TestTemplates(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.mustRun(t, "templates")

	assert.Contains(t, out, "ChooseMate")
	assert.Contains(t, out, "streak-keeper")
	assert.Contains(t, out, "Create a judgment-free check-in system that keeps users on track")
}

func TestPick(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.mustRun(t, "pick", "streak-keeper")
	assert.Contains(t, out, "✓ Starting from template StreakKeeper")
	assert.Contains(t, out, "Ready for stage-workspace")
	assert.Equal(t, "StreakKeeper", env.app.Session.State().DisplayName)

	out = env.fail(t, "pick", "choose-mate")
	assert.Contains(t, out, "idea selection already made")
}

func TestPick_UnknownTemplate(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "pick", "nope")

	assert.Contains(t, out, "unknown idea template: nope")
	assert.False(t, env.app.Session.State().Selection.IsMade())
}

func TestSpark_MinimumPerVariant(t *testing.T) {
	launcher, err := config.Preset(config.VariantLauncher)
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     *config.Config
		args    []string
		wantErr string
	}{
		{name: "compass takes one", cfg: config.DefaultConfig(), args: []string{"focus on exams"}},
		{
			name:    "launcher needs three",
			cfg:     launcher,
			args:    []string{"focus on exams", "hate cramming"},
			wantErr: "need at least 3",
		},
		{
			name: "launcher with three",
			cfg:  launcher,
			args: []string{"focus on exams", "hate cramming", "study buddy"},
		},
		{
			name:    "duplicates do not count",
			cfg:     launcher,
			args:    []string{"a", "a", "b"},
			wantErr: "not enough sparks selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.cfg)
			args := append([]string{"spark"}, tt.args...)

			if tt.wantErr != "" {
				out := env.fail(t, args...)
				assert.Contains(t, out, tt.wantErr)
				return
			}
			out := env.mustRun(t, args...)
			assert.Contains(t, out, "Starting from sparks: "+strings.Join(tt.args, ", "))
		})
	}
}

func TestNext_BlockedAtEachGate(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "next")
	assert.Contains(t, out, "no idea selected yet")

	env.mustRun(t, "skip")
	env.mustRun(t, "next")

	out = env.fail(t, "next")
	assert.Contains(t, out, "every stage must be locked first")

	for _, s := range env.cfg.Stages {
		env.mustRun(t, "stage", "write", s.ID, compassAnswers[s.ID])
		env.mustRun(t, "stage", "lock", s.ID)
	}
	env.mustRun(t, "next")

	out = env.fail(t, "next")
	assert.Contains(t, out, "not enough instructions approved")
	assert.Equal(t, idea.ViewInstructionReview, env.app.Session.State().View)
}

func TestStageWrite_ThresholdAndLock(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	env.mustRun(t, "skip")
	env.mustRun(t, "next")

	out := env.fail(t, "stage", "lock", "why")
	assert.Contains(t, out, "stage text is below the lock threshold")

	out = env.mustRun(t, "stage", "write", "why", "Too", "short")
	assert.Contains(t, out, "Saved why. 41 more characters before it can lock.")

	out = env.mustRun(t, "stage", "write", "why", "--append", "but now this sentence pushes it well past fifty.")
	assert.Contains(t, out, "Saved why. Ready to lock.")
	stage, _ := env.app.Session.State().Stage("why")
	assert.Equal(t, "Too short but now this sentence pushes it well past fifty.", stage.Text)

	out = env.mustRun(t, "stage", "lock", "why")
	assert.Contains(t, out, "✓ Locked why")

	out = env.fail(t, "stage", "write", "why", "anything")
	assert.Contains(t, out, "stage is locked")
	stage, _ = env.app.Session.State().Stage("why")
	assert.Equal(t, "Too short but now this sentence pushes it well past fifty.", stage.Text)

	out = env.fail(t, "stage", "lock", "why")
	assert.Contains(t, out, "stage is locked")
}

func TestStageWrite_Stdin(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	rootCmd := NewRootCommand(env.app)
	rootCmd.SetIn(strings.NewReader(compassAnswers["who"] + "\n"))
	rootCmd.SetArgs([]string{"stage", "write", "who", "--stdin"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	stage, _ := env.app.Session.State().Stage("who")
	assert.Equal(t, compassAnswers["who"], stage.Text)
}

func TestStage_UnknownStage(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	tests := [][]string{
		{"stage", "show", "problem"},
		{"stage", "write", "problem", "text"},
		{"stage", "lock", "problem"},
		{"stage", "suggest", "problem"},
		{"stage", "review", "problem"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out := env.fail(t, args...)
			assert.Contains(t, out, "unknown stage")
		})
	}
}

func TestStageShow(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	env.mustRun(t, "stage", "write", "why", "Habits fall apart.")

	out := env.mustRun(t, "stage", "show", "why")

	assert.Contains(t, out, "Why (why)")
	assert.Contains(t, out, "32 more characters before it can lock")
	assert.Contains(t, out, "What frustrates you enough to build something about it?")
	assert.Contains(t, out, "Habits fall apart.")

	out = env.mustRun(t, "stage", "show")
	assert.Contains(t, out, "How (how)")
}

func TestStageSuggestAndReview(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	env.advisor.Feedback.Ready = true
	env.advisor.Feedback.Message = "Clear and specific."

	out := env.mustRun(t, "stage", "suggest", "why")
	assert.Contains(t, out, "  • Name one moment it went wrong")

	env.mustRun(t, "stage", "write", "why", compassAnswers["why"])
	env.mustRun(t, "stage", "lock", "why")
	env.advisor.Calls = nil

	out = env.mustRun(t, "stage", "suggest")
	assert.NotContains(t, out, "why\n")
	assert.ElementsMatch(t, []idea.StageID{"who", "what", "how"}, env.advisor.Calls)

	out = env.mustRun(t, "stage", "review", "who")
	assert.Contains(t, out, "✓ Clear and specific.")
}

func TestInstructions(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.mustRun(t, "instructions", "list", "--category", "design")
	assert.Contains(t, out, "VISUAL VIBE (design)")
	assert.Contains(t, out, "  [ ] default-0  Make it mobile-friendly and responsive")
	assert.NotContains(t, out, "HOW IT WORKS")

	out = env.mustRun(t, "instructions", "toggle", "default-0")
	assert.Contains(t, out, "✓ Approved Make it mobile-friendly and responsive")
	out = env.mustRun(t, "instructions", "toggle", "default-0")
	assert.Contains(t, out, "Dropped Make it mobile-friendly and responsive")

	out = env.mustRun(t, "instructions", "add", "screens", "A", "calendar", "view")
	assert.Contains(t, out, "Added A calendar view")

	var custom idea.Instruction
	for _, in := range env.app.Session.State().InstructionsIn("screens") {
		custom = in
	}
	require.True(t, custom.IsCustom)
	assert.True(t, custom.IsApproved)

	out = env.fail(t, "instructions", "remove", "default-1")
	assert.Contains(t, out, "only custom instructions can be removed")

	env.mustRun(t, "instructions", "remove", custom.ID)
	assert.Empty(t, env.app.Session.State().InstructionsIn("screens"))

	out = env.fail(t, "instructions", "add", "sound", "Jingles")
	assert.Contains(t, out, "unknown instruction category")

	out = env.fail(t, "instructions", "add", "design", "   ")
	assert.Contains(t, out, "instruction text is empty")

	out = env.fail(t, "instructions", "toggle", "default-99")
	assert.Contains(t, out, "instruction not found")

	out = env.mustRun(t, "instructions", "list")
	assert.Contains(t, out, `nothing yet; falls back to "Whatever screens the idea needs"`)
}

func TestFullWalkthrough(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	walkToReview(t, env)
	approveOnePerCategory(t, env)

	out := env.mustRun(t, "next")

	assert.Contains(t, out, "Your prompt (final-assembly)")
	assert.Contains(t, out, `I want to build an app called "StreakKeeper". It starts from the StreakKeeper concept:`)
	assert.Contains(t, out, `Why: "`+compassAnswers["why"]+`"`)
	assert.Contains(t, out, "VISUAL VIBE:\n- Make it mobile-friendly and responsive")
	assert.Contains(t, out, "SCREENS:\n- A home screen with today's streak")
	assert.Contains(t, out, "Build this using React and Tailwind CSS.")

	st := env.app.Session.State()
	require.NotNil(t, st.Prompt)
	assert.Equal(t, idea.SourceDeterministic, st.Prompt.Source)
	assert.True(t, st.HasLaunched)

	out = env.fail(t, "copy")
	assert.Contains(t, out, "confirm the prompt before copying it")
	assert.Empty(t, env.exporter.Written)

	env.mustRun(t, "confirm")
	out = env.mustRun(t, "copy")
	assert.Contains(t, out, "Prompt copied")
	assert.Equal(t, st.Prompt.Text, env.exporter.Last())
}

func TestSessionSurvivesRestart(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	walkToReview(t, env)

	env.reopen(t)
	out := env.mustRun(t, "status")

	assert.Contains(t, out, "view: instruction-review")
	assert.Contains(t, out, "name: StreakKeeper")
	assert.Contains(t, out, "  [x] What (what)")
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "generate")
	assert.Contains(t, out, "prompt can only be generated in final assembly")

	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")
	env.mustRun(t, "confirm")

	out = env.mustRun(t, "generate")
	assert.Contains(t, out, "Confirmed.")

	out = env.mustRun(t, "regenerate")
	assert.Contains(t, out, "Run `idealauncher confirm`")
	assert.False(t, env.app.Session.State().PromptConfirmed)
}

func TestGenerate_EnhancerFailureFallsBack(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	env.enhancer = enhancerFunc(func() (string, error) { return "", errors.New("gemini request failed: 500") })
	env.reopen(t)

	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")

	out := env.mustRun(t, "regenerate")

	assert.Contains(t, out, "! Gemini could not tidy the prompt")
	assert.Contains(t, out, "Built from your answers")
	assert.Equal(t, idea.SourceDeterministic, env.app.Session.State().Prompt.Source)
}

func TestToggleAfterGenerateDropsPrompt(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")
	env.mustRun(t, "confirm")

	env.mustRun(t, "instructions", "toggle", "default-1")

	st := env.app.Session.State()
	assert.Nil(t, st.Prompt)
	assert.False(t, st.PromptConfirmed)
	out := env.fail(t, "confirm")
	assert.Contains(t, out, "no prompt has been generated")
}

func TestCopy_ClipboardFailurePrintsPrompt(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	env.exporter.Err = errors.New("no xclip")
	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")
	env.mustRun(t, "confirm")

	out := env.mustRun(t, "copy")

	assert.Contains(t, out, "! Clipboard unavailable")
	assert.Contains(t, out, env.app.Session.State().Prompt.Text)
}

func TestRequireName(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Assembly.RequireName = true
	env := newTestEnv(t, cfg)

	env.mustRun(t, "skip")
	env.mustRun(t, "next")
	for _, s := range cfg.Stages {
		env.mustRun(t, "stage", "write", s.ID, compassAnswers[s.ID])
		env.mustRun(t, "stage", "lock", s.ID)
	}
	env.mustRun(t, "next")
	approveOnePerCategory(t, env)

	out := env.fail(t, "next")
	assert.Contains(t, out, "the idea needs a name")

	out = env.mustRun(t, "name", "  Streak", "Mate  ")
	assert.Contains(t, out, `Named "Streak Mate"`)
	out = env.mustRun(t, "next")
	assert.Contains(t, out, `I want to build an app called "Streak Mate".`)
}

func TestBackAndReset(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "back")
	assert.Contains(t, out, "entry selection is the first view")

	walkToReview(t, env)
	out = env.mustRun(t, "back")
	assert.Contains(t, out, "Shape the idea (stage-workspace)")
	stage, _ := env.app.Session.State().Stage("why")
	assert.True(t, stage.Locked, "going back keeps locks")

	env.mustRun(t, "reset")
	exists, err := afero.Exists(env.fs, statePath)
	require.NoError(t, err)
	assert.False(t, exists, "reset removes the saved session")
	st := env.app.Session.State()
	assert.Equal(t, idea.ViewEntrySelection, st.View)
	assert.False(t, st.Selection.IsMade())
	assert.Empty(t, st.DisplayName)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")

	out := env.mustRun(t, "export", "-o", "/out/session.yaml")
	assert.Contains(t, out, "Exported to /out/session.yaml")

	data, err := afero.ReadFile(env.fs, "/out/session.yaml")
	require.NoError(t, err)

	var doc exportDoc
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "StreakKeeper", doc.Name)
	assert.Equal(t, idea.ViewFinalAssembly, doc.View)
	assert.Equal(t, "streak-keeper", doc.StartedFrom.Template)
	require.Len(t, doc.Stages, 4)
	assert.Equal(t, idea.StageID("why"), doc.Stages[0].ID)
	assert.True(t, doc.Stages[0].Locked)
	require.NotNil(t, doc.Prompt)
	assert.Equal(t, env.app.Session.State().Prompt.Text, doc.Prompt.Text)

	out = env.mustRun(t, "export")
	assert.Contains(t, out, "started_from:\n    template: streak-keeper")
}

func TestInstructionsToggle_UnknownIDChangesNothing(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "instructions", "toggle", "default-0", "default-99", "default-4")

	assert.Contains(t, out, "instruction not found: default-99")
	assert.NotContains(t, out, "Approved")
	assert.Zero(t, env.app.Session.State().ApprovedCount())

	env.reopen(t)
	out = env.mustRun(t, "instructions", "list", "--category", "design")
	assert.Contains(t, out, "  [ ] default-0  Make it mobile-friendly and responsive")
}

func TestExitError(t *testing.T) {
	code, ok := IsExitError(fmt.Errorf("wrapped: %w", NewExitError(3)))
	assert.True(t, ok)
	assert.Equal(t, 3, code)
	assert.Equal(t, "exit status 3", NewExitError(3).Error())

	_, ok = IsExitError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = IsExitError(nil)
	assert.False(t, ok)
}

func TestRegenerate_ReviewGateStillHolds(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())
	walkToReview(t, env)
	approveOnePerCategory(t, env)
	env.mustRun(t, "next")

	env.mustRun(t, "instructions", "toggle", "default-0")

	out := env.fail(t, "regenerate")
	assert.Contains(t, out, "not enough instructions approved")
	out = env.fail(t, "copy")
	assert.Contains(t, out, "no prompt has been generated")
	assert.Empty(t, env.exporter.Written)

	env.mustRun(t, "instructions", "toggle", "default-0")
	out = env.mustRun(t, "regenerate")
	assert.Contains(t, out, "VISUAL VIBE:\n- Make it mobile-friendly and responsive")
}

func TestTimer(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	out := env.fail(t, "timer", "stop")
	assert.Contains(t, out, "timer is not running")

	out = env.mustRun(t, "timer", "start")
	assert.Contains(t, out, "✓ Timer started")
	out = env.fail(t, "timer", "start")
	assert.Contains(t, out, "timer is already running")

	out = env.mustRun(t, "timer", "show")
	assert.Contains(t, out, "timer: 0s")
	assert.NotContains(t, out, "defined?")

	env.now = env.now.Add(25 * time.Second)
	env.reopen(t)
	out = env.mustRun(t, "status")
	assert.Contains(t, out, "timer: 25s")
	assert.Contains(t, out, "  Why defined? Let's talk about Who next!")

	env.now = env.now.Add(40 * time.Second)
	out = env.mustRun(t, "timer", "show")
	assert.Contains(t, out, "timer: 1m5s")
	assert.Contains(t, out, "  Almost done? Time to lock in How!")

	env.now = env.now.Add(20 * time.Second)
	out = env.mustRun(t, "timer", "show")
	assert.Contains(t, out, "Wrapping up! Time to pick the build details.")

	out = env.mustRun(t, "timer", "stop")
	assert.Contains(t, out, "✓ Timer stopped after 1m25s")
	out = env.mustRun(t, "status")
	assert.Contains(t, out, "timer: off")
}

func TestTimer_NudgesDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timer.StageDuration = 0
	env := newTestEnv(t, cfg)

	env.mustRun(t, "timer", "start")
	env.now = env.now.Add(time.Hour)

	out := env.mustRun(t, "timer", "show")
	assert.Contains(t, out, "timer: 1h0m0s")
	assert.NotContains(t, out, "Wrapping up")
}

func TestUnknownCommand(t *testing.T) {
	env := newTestEnv(t, config.DefaultConfig())

	_, err := env.run(t, "launch")

	require.Error(t, err)
	_, ok := IsExitError(err)
	assert.False(t, ok)
}

// enhancerFunc adapts a function to assembler.Enhancer.
type enhancerFunc func() (string, error)

func (f enhancerFunc) Enhance(ctx context.Context, snap idea.Snapshot, rendered string) (string, error) {
	return f()
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{name: "offline", mutate: func(cfg *config.Config) { cfg.AI.Enabled = false }},
		{name: "with gemini key", mutate: func(cfg *config.Config) { cfg.AI.Enabled = true; cfg.AI.APIKey = "test-key" }},
		{name: "broken header", mutate: func(cfg *config.Config) { cfg.Assembly.HeaderTemplate = "{{.Name" }, wantErr: true},
		{name: "no stages", mutate: func(cfg *config.Config) { cfg.Stages = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.State.Path = t.TempDir() + "/state.json"
			tt.mutate(cfg)

			app, err := NewApp(cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, app.Session)
			assert.NotNil(t, app.Printer)
			assert.NotNil(t, app.Fs)
			assert.Same(t, cfg, app.Config)
			if cfg.AIReady() {
				require.NotNil(t, app.AI)
				assert.Equal(t, cfg.AI.Model, app.AI.Model())
			} else {
				assert.Nil(t, app.AI)
			}
		})
	}
}
