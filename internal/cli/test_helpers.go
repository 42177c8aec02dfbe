package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"idealauncher/internal/advisor"
	"idealauncher/internal/assembler"
	"idealauncher/internal/clipboard"
	"idealauncher/internal/config"
	"idealauncher/internal/lifecycle"
	"idealauncher/internal/output"
	"idealauncher/internal/router"
	"idealauncher/internal/store"
)

const statePath = "/state/state.json"

// testEnv is an App wired to in-memory dependencies.
type testEnv struct {
	app      *App
	out      *bytes.Buffer
	fs       afero.Fs
	cfg      *config.Config
	advisor  *advisor.MockAdvisor
	exporter *clipboard.MockExporter
	enhancer assembler.Enhancer
	now      time.Time
}

// newTestEnv builds an App for cfg on a fresh in-memory filesystem.
func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	env := &testEnv{
		fs:       afero.NewMemMapFs(),
		cfg:      cfg,
		advisor:  &advisor.MockAdvisor{Items: []string{"Name one moment it went wrong"}},
		exporter: &clipboard.MockExporter{},
		now:      time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	env.reopen(t)
	return env
}

// reopen simulates a new process on the same filesystem.
func (e *testEnv) reopen(t *testing.T) {
	t.Helper()
	bp, err := e.cfg.Blueprint()
	require.NoError(t, err)

	logger := log.New(io.Discard)
	asmOpts := []assembler.Option{assembler.WithLogger(logger)}
	if e.enhancer != nil {
		asmOpts = append(asmOpts, assembler.WithEnhancer(e.enhancer))
	}
	asm, err := assembler.New(e.cfg.AssemblerOptions(), asmOpts...)
	require.NoError(t, err)

	clock := func() time.Time { return e.now }
	session := lifecycle.NewSession(bp, store.NewWithFs(e.fs, statePath), asm,
		lifecycle.WithAdvisor(e.advisor),
		lifecycle.WithExporter(e.exporter),
		lifecycle.WithLogger(logger),
		lifecycle.WithRouter(router.NewRouter(e.cfg.Assembly.RequireName)),
		lifecycle.WithConfirmation(e.cfg.Assembly.RequireConfirmation),
		lifecycle.WithClock(clock),
	)

	e.out = &bytes.Buffer{}
	e.app = &App{
		Config:  e.cfg,
		Session: session,
		Printer: output.NewPrinterWithWriter(e.out),
		Logger:  logger,
		Fs:      e.fs,
	}
}

// run executes one command and returns what it printed.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e.out.Reset()

	rootCmd := NewRootCommand(e.app)
	cobraOut := &bytes.Buffer{}
	rootCmd.SetOut(cobraOut)
	rootCmd.SetErr(cobraOut)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return e.out.String() + cobraOut.String(), err
}

// mustRun executes a command that is expected to succeed.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

// fail executes a command that is expected to exit with code 1.
func (e *testEnv) fail(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.Error(t, err, out)
	code, ok := IsExitError(err)
	require.True(t, ok, "error should be an ExitError: %v", err)
	require.Equal(t, 1, code)
	return out
}
