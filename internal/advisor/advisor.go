// Package advisor provides optional, best-effort coaching for stage texts.
//
// Two kinds of advice exist: short improvement suggestions ([Advisor.Suggest])
// and a readiness review ([Advisor.Review]). Neither ever touches session
// state and neither ever fails: when the remote service is unavailable or
// answers with something unusable, the local deterministic advice is returned
// instead. Lock gating never depends on advice.
//
// Key types:
//   - [Advisor] - capability interface used by the session and the CLI
//   - [Local] - deterministic implementation, also the fallback of [Remote]
//   - [Remote] - Gemini-backed implementation with timeout and cache
//   - [MockAdvisor] - test implementation with configurable results
package advisor

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"

	"idealauncher/internal/idea"
)

// Source tells where a piece of advice came from.
type Source string

const (
	// SourceLocal marks deterministic fallback advice.
	SourceLocal Source = "local"

	// SourceRemote marks advice produced by the generation service.
	SourceRemote Source = "remote"
)

// UnavailableMessage is the placeholder suggestion used when no real
// suggestions could be produced.
const UnavailableMessage = "Suggestions are unavailable right now. Try adding a concrete example of what you mean."

// Review messages of the local fallback.
const (
	ReadyMessage   = "Ready to lock"
	WritingMessage = "Keep writing..."
)

// Suggestions are short improvement ideas for one stage text.
type Suggestions struct {
	StageID idea.StageID
	Items   []string
	Source  Source
}

// Feedback is a readiness review of one stage text.
type Feedback struct {
	StageID idea.StageID

	// Ready is the advisor's opinion only; locking still follows the
	// threshold rule.
	Ready   bool
	Message string

	// Confidence is 0 for local feedback.
	Confidence float64
	Source     Source
}

// Advisor produces advice for a stage text. Implementations never return an
// error; failures degrade to local advice.
type Advisor interface {
	Suggest(ctx context.Context, spec idea.StageSpec, text string) Suggestions
	Review(ctx context.Context, spec idea.StageSpec, text string) Feedback
}

// Local implements [Advisor] without any external service.
type Local struct {
	// Threshold is the rune count at which a review reports ready.
	Threshold int
}

// NewLocal creates a [Local] advisor with the given readiness threshold.
func NewLocal(threshold int) *Local {
	return &Local{Threshold: threshold}
}

// Suggest returns the placeholder suggestion.
func (l *Local) Suggest(ctx context.Context, spec idea.StageSpec, text string) Suggestions {
	return Suggestions{
		StageID: spec.ID,
		Items:   []string{UnavailableMessage},
		Source:  SourceLocal,
	}
}

// Review reports ready once the text reaches the threshold.
func (l *Local) Review(ctx context.Context, spec idea.StageSpec, text string) Feedback {
	ready := utf8.RuneCountInString(text) >= l.Threshold
	msg := WritingMessage
	if ready {
		msg = ReadyMessage
	}
	return Feedback{
		StageID: spec.ID,
		Ready:   ready,
		Message: msg,
		Source:  SourceLocal,
	}
}

// Request pairs a stage with the text to advise on.
type Request struct {
	Spec idea.StageSpec
	Text string
}

// SuggestAll fetches suggestions for every request concurrently. Results are
// returned in request order, each keyed to its own stage.
func SuggestAll(ctx context.Context, a Advisor, reqs []Request) []Suggestions {
	p := pool.NewWithResults[indexed]().WithMaxGoroutines(4)
	for i, req := range reqs {
		p.Go(func() indexed {
			return indexed{i: i, s: a.Suggest(ctx, req.Spec, req.Text)}
		})
	}

	out := make([]Suggestions, len(reqs))
	for _, r := range p.Wait() {
		out[r.i] = r.s
	}
	return out
}

type indexed struct {
	i int
	s Suggestions
}

// MockAdvisor implements [Advisor] for testing.
type MockAdvisor struct {
	Items    []string
	Feedback Feedback

	mu sync.Mutex

	// Calls records the stage of every Suggest and Review call.
	Calls []idea.StageID
}

// Suggest returns the configured items.
func (m *MockAdvisor) Suggest(ctx context.Context, spec idea.StageSpec, text string) Suggestions {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, spec.ID)
	return Suggestions{StageID: spec.ID, Items: m.Items, Source: SourceRemote}
}

// Review returns the configured feedback for the stage.
func (m *MockAdvisor) Review(ctx context.Context, spec idea.StageSpec, text string) Feedback {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, spec.ID)
	f := m.Feedback
	f.StageID = spec.ID
	return f
}
