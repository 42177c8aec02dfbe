package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"idealauncher/internal/gemini"
	"idealauncher/internal/idea"
)

// DefaultTimeout bounds one remote advice call.
const DefaultTimeout = 8 * time.Second

// remoteConfidence is reported for feedback the service produced.
const remoteConfidence = 0.8

// Remote implements [Advisor] with a [gemini.Generator].
//
// Every failure falls back to the embedded [Local] advisor and is logged at
// warn level. Successful suggestions are cached by stage and text for the
// lifetime of the value.
type Remote struct {
	gen      gemini.Generator
	fallback *Local
	timeout  time.Duration
	logger   *log.Logger

	mu    sync.Mutex
	cache map[cacheKey][]string
}

type cacheKey struct {
	stage idea.StageID
	text  string
}

// Option configures a [Remote] advisor.
type Option func(*Remote)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Remote) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Remote) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRemote creates a [Remote] advisor.
func NewRemote(gen gemini.Generator, fallback *Local, opts ...Option) *Remote {
	r := &Remote{
		gen:      gen,
		fallback: fallback,
		timeout:  DefaultTimeout,
		logger:   log.Default(),
		cache:    make(map[cacheKey][]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Suggest asks the service for up to three short suggestions.
func (r *Remote) Suggest(ctx context.Context, spec idea.StageSpec, text string) Suggestions {
	key := cacheKey{stage: spec.ID, text: text}

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return Suggestions{StageID: spec.ID, Items: cached, Source: SourceRemote}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.gen.Generate(ctx, gemini.Request{
		System:          suggestSystem,
		Prompt:          suggestPrompt(spec, text),
		Temperature:     0.7,
		MaxOutputTokens: 300,
		JSON:            true,
	})
	if err != nil {
		r.logger.Warn("suggestions unavailable", "stage", spec.ID, "err", err)
		return r.fallback.Suggest(ctx, spec, text)
	}

	items, err := ParseItems(resp)
	if err != nil {
		r.logger.Warn("could not parse suggestions", "stage", spec.ID, "err", err)
		return r.fallback.Suggest(ctx, spec, text)
	}

	r.mu.Lock()
	r.cache[key] = items
	r.mu.Unlock()

	return Suggestions{StageID: spec.ID, Items: items, Source: SourceRemote}
}

// Review asks the service whether the text is ready to lock.
func (r *Remote) Review(ctx context.Context, spec idea.StageSpec, text string) Feedback {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.gen.Generate(ctx, gemini.Request{
		Prompt:          reviewPrompt(spec) + "\n\n" + text,
		Temperature:     0.3,
		MaxOutputTokens: 100,
		JSON:            true,
	})
	if err != nil {
		r.logger.Warn("review unavailable", "stage", spec.ID, "err", err)
		return r.fallback.Review(ctx, spec, text)
	}

	fb, err := ParseFeedback(resp)
	if err != nil {
		r.logger.Warn("could not parse review", "stage", spec.ID, "err", err)
		return r.fallback.Review(ctx, spec, text)
	}

	fb.StageID = spec.ID
	fb.Confidence = remoteConfidence
	fb.Source = SourceRemote
	return fb
}

const suggestSystem = `You coach people who are describing an app idea in their own words.
Never rewrite their text. Offer short, concrete nudges they can act on.`

func suggestPrompt(spec idea.StageSpec, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user is answering the %q part of their app idea.\n", spec.Label)
	if len(spec.Prompts) > 0 {
		fmt.Fprintf(&b, "Guiding question: %s\n", spec.Prompts[0])
	}
	b.WriteString(`Respond with ONLY valid JSON (no markdown, no extra text): {"items": ["string"]}
Give at most three suggestions, each one sentence of 8-20 words.

Text so far:
`)
	b.WriteString(text)
	return b.String()
}
