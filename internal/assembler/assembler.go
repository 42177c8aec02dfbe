package assembler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"idealauncher/internal/idea"
)

// DefaultTimeout bounds one enhancement call.
const DefaultTimeout = 15 * time.Second

// Result is one assembled prompt.
type Result struct {
	Text   string
	Source idea.ArtifactSource

	// Err is the enhancement failure that caused a fallback, kept for
	// diagnostics only.
	Err error
}

// Assembler renders prompts and optionally enhances them.
//
// Create with [New]. The zero value is not usable.
type Assembler struct {
	opts     Options
	enhancer Enhancer
	timeout  time.Duration
	logger   *log.Logger
}

// Option configures an [Assembler].
type Option func(*Assembler)

// WithEnhancer enables the enhancement path.
func WithEnhancer(e Enhancer) Option {
	return func(a *Assembler) {
		a.enhancer = e
	}
}

// WithTimeout bounds each enhancement call.
func WithTimeout(d time.Duration) Option {
	return func(a *Assembler) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an [Assembler]. It fails only on an unparseable header
// template.
func New(opts Options, options ...Option) (*Assembler, error) {
	opts = opts.withDefaults()
	if err := ValidateHeader(opts.HeaderTemplate); err != nil {
		return nil, err
	}

	a := &Assembler{
		opts:    opts,
		timeout: DefaultTimeout,
		logger:  log.Default(),
	}
	for _, o := range options {
		o(a)
	}
	return a, nil
}

// Render returns the deterministic prompt for a snapshot.
func (a *Assembler) Render(snap idea.Snapshot) string {
	text, err := Render(snap, a.opts)
	if err != nil {
		a.logger.Warn("header template failed, using default", "err", err)
		fallback := a.opts
		fallback.HeaderTemplate = DefaultHeaderTemplate
		text, _ = Render(snap, fallback)
	}
	return text
}

// Assemble produces the prompt for a snapshot. When an enhancer is set it is
// tried once under the timeout; any failure returns the deterministic text.
func (a *Assembler) Assemble(ctx context.Context, snap idea.Snapshot) Result {
	rendered := a.Render(snap)
	if a.enhancer == nil {
		return Result{Text: rendered, Source: idea.SourceDeterministic}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.enhancer.Enhance(ctx, snap, rendered)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("enhancer returned empty text")
	}
	if err != nil {
		a.logger.Warn("prompt enhancement failed, using deterministic prompt", "err", err)
		return Result{Text: rendered, Source: idea.SourceDeterministic, Err: err}
	}

	a.logger.Debug("prompt enhanced", "chars", len(text))
	return Result{Text: text, Source: idea.SourceEnhanced}
}
