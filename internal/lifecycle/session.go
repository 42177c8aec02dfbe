// Package lifecycle owns one idea session from opening the saved state to
// exporting the final prompt.
//
// The [Session] is the single controller of [idea.State]: every user action
// is a named method that applies the change to a copy of the state, persists
// the copy, and only then makes it current. A rejected action leaves both the
// in-memory and the saved state untouched.
//
// Key concepts:
//   - Dependencies are injected as small interfaces ([StateStore],
//     [PromptAssembler], [Exporter], advisor.Advisor)
//   - View changes go through the router gates; entering final assembly
//     assembles the prompt
//   - Advisory calls carry a [Ticket]; results for a stage that changed,
//     or after navigation or reset, are discarded
//   - Changes can be observed via [ChangeCallback]
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"idealauncher/internal/advisor"
	"idealauncher/internal/assembler"
	"idealauncher/internal/idea"
	"idealauncher/internal/router"
	"idealauncher/internal/store"
)

// Sentinel errors for session actions.
var (
	// ErrNotAtAssembly is returned when generating a prompt outside the final
	// assembly view.
	ErrNotAtAssembly = errors.New("prompt can only be generated in final assembly")

	// ErrNoPrompt is returned when confirming or copying before a prompt exists.
	ErrNoPrompt = errors.New("no prompt has been generated")

	// ErrNotConfirmed is returned when copying a prompt that was not confirmed.
	ErrNotConfirmed = errors.New("confirm the prompt before copying it")

	// ErrStale is returned when an advisory result arrived after the stage or
	// view it was requested for changed.
	ErrStale = errors.New("advice is out of date")

	// ErrExportFailed wraps clipboard failures. The prompt text is still
	// returned alongside it.
	ErrExportFailed = errors.New("could not copy the prompt")
)

// StateStore loads, saves and clears the whole session state.
//
// The [store.Store] type implements this interface.
type StateStore interface {
	Load() (*idea.State, error)
	Save(st *idea.State) error
	Clear() error
}

// PromptAssembler turns a snapshot into a prompt. It never fails; see
// [assembler.Assembler].
type PromptAssembler interface {
	Assemble(ctx context.Context, snap idea.Snapshot) assembler.Result
}

// Exporter writes the prompt somewhere outside the session, typically the
// system clipboard.
type Exporter interface {
	Write(text string) error
}

// ChangeCallback is invoked after every persisted change with the new state.
// The callback must not modify the state.
type ChangeCallback func(st *idea.State)

// Ticket identifies the session moment an advisory request was made.
type Ticket struct {
	Stage idea.StageID
	text  string
	epoch uint64
}

// Session is the controller of one idea session.
//
// Create with [NewSession] and call [Session.Open] before any other method.
type Session struct {
	bp        *idea.Blueprint
	router    *router.Router
	store     StateStore
	assembler PromptAssembler
	advisor   advisor.Advisor
	exporter  Exporter
	logger    *log.Logger
	onChange  ChangeCallback
	now       func() time.Time

	requireConfirmation bool

	state *idea.State
	epoch uint64
}

// Option configures a [Session].
type Option func(*Session)

// WithAdvisor sets the advisor used by [Session.Suggest] and [Session.Review].
// Defaults to a local advisor using the blueprint threshold.
func WithAdvisor(a advisor.Advisor) Option {
	return func(s *Session) {
		if a != nil {
			s.advisor = a
		}
	}
}

// WithExporter sets where [Session.Copy] writes the prompt.
func WithExporter(e Exporter) Option {
	return func(s *Session) {
		s.exporter = e
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRouter replaces the default router, e.g. to require a display name.
func WithRouter(r *router.Router) Option {
	return func(s *Session) {
		if r != nil {
			s.router = r
		}
	}
}

// WithConfirmation controls whether [Session.Copy] requires a confirmed prompt.
// Enabled by default.
func WithConfirmation(required bool) Option {
	return func(s *Session) {
		s.requireConfirmation = required
	}
}

// WithClock overrides the clock used to timestamp prompts and run the timer.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates a [Session] for a validated blueprint.
func NewSession(bp *idea.Blueprint, st StateStore, asm PromptAssembler, opts ...Option) *Session {
	s := &Session{
		bp:                  bp,
		router:              router.NewRouter(false),
		store:               st,
		assembler:           asm,
		advisor:             advisor.NewLocal(bp.Threshold),
		logger:              log.Default(),
		now:                 time.Now,
		requireConfirmation: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetChangeCallback configures an optional callback invoked after every
// persisted change.
func (s *Session) SetChangeCallback(cb ChangeCallback) {
	s.onChange = cb
}

// Open loads the saved state. A missing, corrupt or mismatching state is
// replaced by a fresh one; only that replacement is logged.
func (s *Session) Open(ctx context.Context) error {
	st, err := s.store.Load()
	switch {
	case errors.Is(err, store.ErrNoState):
		s.logger.Debug("no saved session, starting fresh")
		s.state = s.bp.NewState()
		return nil
	case err != nil:
		s.logger.Warn("saved session unreadable, starting fresh", "err", err)
		s.state = s.bp.NewState()
		return nil
	}

	if err := s.bp.Adopt(st); err != nil {
		s.logger.Warn("saved session does not match configuration, starting fresh", "err", err)
		s.state = s.bp.NewState()
		return nil
	}

	s.state = st
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() *idea.State {
	return s.state.Clone()
}

// Router returns the router used for view changes.
func (s *Session) Router() *router.Router {
	return s.router
}

// Gates evaluates every forward gate against the current state.
func (s *Session) Gates() []router.GateStatus {
	return s.router.Gates(s.state)
}

// mutate applies fn to a copy of the state and persists it. The current
// state is only replaced when both succeed.
func (s *Session) mutate(fn func(st *idea.State) error) error {
	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.state = next
	if s.onChange != nil {
		s.onChange(s.state.Clone())
	}
	return nil
}

// UpdateText replaces the text of an unlocked stage.
func (s *Session) UpdateText(id idea.StageID, text string) error {
	return s.mutate(func(st *idea.State) error {
		return st.UpdateText(id, text)
	})
}

// Lock locks a stage whose text reached the threshold.
func (s *Session) Lock(id idea.StageID) error {
	return s.mutate(func(st *idea.State) error {
		return st.Lock(id)
	})
}

// Toggle flips the approval of one or more instructions as a single change.
// When any id is unknown nothing is changed.
func (s *Session) Toggle(ids ...string) error {
	return s.mutate(func(st *idea.State) error {
		for _, id := range ids {
			if err := st.ToggleApproval(id); err != nil {
				return fmt.Errorf("%w: %s", err, id)
			}
		}
		return nil
	})
}

// AddCustom adds an approved custom instruction.
func (s *Session) AddCustom(c idea.Category, text string) (idea.Instruction, error) {
	var added idea.Instruction
	err := s.mutate(func(st *idea.State) error {
		in, err := st.AddCustom(c, text)
		added = in
		return err
	})
	return added, err
}

// Remove deletes a custom instruction.
func (s *Session) Remove(id string) error {
	return s.mutate(func(st *idea.State) error {
		return st.Remove(id)
	})
}

// SelectTemplate starts the session from a curated concept.
func (s *Session) SelectTemplate(id string) error {
	return s.mutate(func(st *idea.State) error {
		return st.SelectTemplate(id)
	})
}

// SelectSparks starts the session from free-text sparks.
func (s *Session) SelectSparks(sparks []string) error {
	return s.mutate(func(st *idea.State) error {
		return st.SelectSparks(sparks)
	})
}

// SkipSelection starts the session without a template or sparks.
func (s *Session) SkipSelection() error {
	return s.mutate(func(st *idea.State) error {
		return st.Skip()
	})
}

// SetDisplayName names the resulting app.
func (s *Session) SetDisplayName(name string) error {
	return s.mutate(func(st *idea.State) error {
		st.SetDisplayName(name)
		return nil
	})
}

// Advance moves to the next view when its gate is open. Entering final
// assembly assembles a fresh prompt.
func (s *Session) Advance(ctx context.Context) (idea.View, error) {
	next, err := s.router.Advance(s.state)
	if err != nil {
		return s.state.View, err
	}

	err = s.mutate(func(st *idea.State) error {
		st.View = next
		if next == idea.ViewFinalAssembly {
			s.assemble(ctx, st)
		}
		return nil
	})
	if err != nil {
		return s.state.View, err
	}
	s.epoch++
	return next, nil
}

// Back moves to the previous view. Nothing is discarded.
func (s *Session) Back() (idea.View, error) {
	prev, err := s.router.Previous(s.state.View)
	if err != nil {
		return s.state.View, err
	}
	if err := s.mutate(func(st *idea.State) error {
		st.View = prev
		return nil
	}); err != nil {
		return s.state.View, err
	}
	s.epoch++
	return prev, nil
}

// Generate re-assembles the prompt. It is only allowed in final assembly and
// while the instruction-review gate still holds; edits made after entering
// final assembly can close it again.
func (s *Session) Generate(ctx context.Context) (assembler.Result, error) {
	if s.state.View != idea.ViewFinalAssembly {
		return assembler.Result{}, ErrNotAtAssembly
	}
	if err := s.router.Check(s.state, idea.ViewInstructionReview); err != nil {
		return assembler.Result{}, err
	}
	var res assembler.Result
	err := s.mutate(func(st *idea.State) error {
		res = s.assemble(ctx, st)
		return nil
	})
	return res, err
}

func (s *Session) assemble(ctx context.Context, st *idea.State) assembler.Result {
	res := s.assembler.Assemble(ctx, st.Snapshot())
	if res.Err != nil {
		s.logger.Debug("prompt fell back to deterministic assembly", "err", res.Err)
	}
	st.SetPrompt(idea.Artifact{
		Text:        res.Text,
		Source:      res.Source,
		GeneratedAt: s.now().UTC(),
	})
	return res
}

// Confirm marks the current prompt as confirmed.
func (s *Session) Confirm() error {
	if s.state.Prompt == nil {
		return ErrNoPrompt
	}
	return s.mutate(func(st *idea.State) error {
		st.ConfirmPrompt()
		return nil
	})
}

// Prompt returns the current prompt text.
func (s *Session) Prompt() (string, error) {
	if s.state.Prompt == nil {
		return "", ErrNoPrompt
	}
	return s.state.Prompt.Text, nil
}

// Copy exports the current prompt. When the export fails the text is still
// returned together with an error wrapping [ErrExportFailed].
func (s *Session) Copy() (string, error) {
	text, err := s.Prompt()
	if err != nil {
		return "", err
	}
	if s.requireConfirmation && !s.state.PromptConfirmed {
		return "", ErrNotConfirmed
	}
	if s.exporter == nil {
		return text, fmt.Errorf("%w: no exporter configured", ErrExportFailed)
	}
	if err := s.exporter.Write(text); err != nil {
		s.logger.Warn("clipboard export failed", "err", err)
		return text, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return text, nil
}

// Reset discards everything and starts a fresh session. The saved state is
// removed; the next change writes a new one.
func (s *Session) Reset() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	s.state = s.bp.NewState()
	s.epoch++
	if s.onChange != nil {
		s.onChange(s.state.Clone())
	}
	return nil
}

// TimerStatus describes the workshop timer at one moment.
type TimerStatus struct {
	Running bool
	Elapsed time.Duration
	// Nudge is the pacing hint, empty when there is nothing to say.
	Nudge string
}

// StartTimer starts the workshop timer. The start time is saved, so the timer
// keeps running between commands.
func (s *Session) StartTimer() error {
	return s.mutate(func(st *idea.State) error {
		return st.StartTimer(s.now())
	})
}

// StopTimer stops the workshop timer.
func (s *Session) StopTimer() error {
	return s.mutate(func(st *idea.State) error {
		return st.StopTimer()
	})
}

// Timer reports the workshop timer at the current time.
func (s *Session) Timer() TimerStatus {
	now := s.now()
	return TimerStatus{
		Running: s.state.TimerRunning(),
		Elapsed: s.state.Elapsed(now),
		Nudge:   s.state.Nudge(now),
	}
}

// Begin captures the current moment for an advisory request on a stage.
func (s *Session) Begin(id idea.StageID) Ticket {
	t := Ticket{Stage: id, epoch: s.epoch}
	if st, ok := s.state.Stage(id); ok {
		t.text = st.Text
	}
	return t
}

// Accept reports whether a result for the ticket may still be shown: no
// navigation or reset happened and the stage text is unchanged.
func (s *Session) Accept(t Ticket) bool {
	if t.epoch != s.epoch {
		return false
	}
	st, ok := s.state.Stage(t.Stage)
	return ok && st.Text == t.text
}

// Suggest asks the advisor for suggestions on one stage.
func (s *Session) Suggest(ctx context.Context, id idea.StageID) (advisor.Suggestions, error) {
	spec, ok := s.bp.Stage(id)
	if !ok {
		return advisor.Suggestions{}, idea.ErrUnknownStage
	}
	t := s.Begin(id)
	res := s.advisor.Suggest(ctx, spec, t.text)
	if !s.Accept(t) {
		return advisor.Suggestions{}, ErrStale
	}
	return res, nil
}

// SuggestAll asks for suggestions on every unlocked stage concurrently.
// Results follow stage declaration order.
func (s *Session) SuggestAll(ctx context.Context) []advisor.Suggestions {
	var reqs []advisor.Request
	var tickets []Ticket
	for _, st := range s.state.OrderedStages() {
		if st.Locked {
			continue
		}
		spec, _ := s.bp.Stage(st.ID)
		reqs = append(reqs, advisor.Request{Spec: spec, Text: st.Text})
		tickets = append(tickets, s.Begin(st.ID))
	}

	var out []advisor.Suggestions
	for i, res := range advisor.SuggestAll(ctx, s.advisor, reqs) {
		if s.Accept(tickets[i]) {
			out = append(out, res)
		}
	}
	return out
}

// Review asks the advisor whether a stage reads as ready. The answer is
// advisory; locking still follows the threshold.
func (s *Session) Review(ctx context.Context, id idea.StageID) (advisor.Feedback, error) {
	spec, ok := s.bp.Stage(id)
	if !ok {
		return advisor.Feedback{}, idea.ErrUnknownStage
	}
	t := s.Begin(id)
	res := s.advisor.Review(ctx, spec, t.text)
	if !s.Accept(t) {
		return advisor.Feedback{}, ErrStale
	}
	return res, nil
}
