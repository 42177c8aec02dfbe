// Package router provides the view-transition rules of an idea session.
//
// A session moves through a linear chain of views:
//
//	entry-selection → stage-workspace → instruction-review → final-assembly
//
// Moving forward requires the gate of the current view to be open; moving
// backward is always allowed. Gates are pure functions of [idea.State] and are
// recomputed on every call; nothing is cached.
//
// Key types:
//   - [Router] - the chain of views and the gate guarding each forward step
//   - [Gate] - predicate returning nil when a forward step is allowed
//   - [GateStatus] - evaluated gate for display
//
// Package-level functions [Next], [Previous], [CanAdvance] and [Gates] use the
// default router.
package router

import (
	"errors"

	"idealauncher/internal/idea"
)

// Sentinel errors for view transitions.
var (
	// ErrNoSelection is returned when leaving entry selection before a
	// template, spark or skip has been chosen.
	ErrNoSelection = errors.New("no idea selected yet")

	// ErrStagesUnlocked is returned when leaving the stage workspace while a
	// stage is still unlocked.
	ErrStagesUnlocked = errors.New("every stage must be locked first")

	// ErrInstructionsNotReady is returned when leaving instruction review
	// before the readiness policy is met.
	ErrInstructionsNotReady = errors.New("not enough instructions approved")

	// ErrMissingName is returned when leaving instruction review without a
	// display name while one is required.
	ErrMissingName = errors.New("the idea needs a name")

	// ErrTerminalView is returned when advancing from the final view.
	ErrTerminalView = errors.New("final assembly is the last view")

	// ErrNoPreviousView is returned when going back from the first view.
	ErrNoPreviousView = errors.New("entry selection is the first view")

	// ErrUnknownView is returned for a view that is not part of the chain.
	ErrUnknownView = errors.New("unknown view")
)

// Gate decides whether a state may move forward from one view. It returns
// nil when the step is allowed.
type Gate func(s *idea.State) error

// GateStatus is one evaluated gate.
type GateStatus struct {
	From idea.View
	To   idea.View

	// Err is nil when the gate is open, otherwise the reason it is closed.
	Err error
}

// Open reports whether the gate allows moving forward.
func (g GateStatus) Open() bool {
	return g.Err == nil
}

// Router holds the ordered chain of views and the gate for leaving each one.
//
// Create with [NewRouter]. Gates for the last view are ignored; the final view
// always returns [ErrTerminalView].
type Router struct {
	chain []idea.View
	gates map[idea.View]Gate
}

// NewRouter creates a [Router] with the standard chain and gates.
//
// requireName adds the display-name requirement to the instruction-review gate.
func NewRouter(requireName bool) *Router {
	return &Router{
		chain: []idea.View{
			idea.ViewEntrySelection,
			idea.ViewStageWorkspace,
			idea.ViewInstructionReview,
			idea.ViewFinalAssembly,
		},
		gates: map[idea.View]Gate{
			idea.ViewEntrySelection:    selectionGate,
			idea.ViewStageWorkspace:    stagesGate,
			idea.ViewInstructionReview: reviewGate(requireName),
		},
	}
}

func selectionGate(s *idea.State) error {
	if !s.Selection.IsMade() {
		return ErrNoSelection
	}
	return nil
}

func stagesGate(s *idea.State) error {
	if !s.AllLocked() {
		return ErrStagesUnlocked
	}
	return nil
}

func reviewGate(requireName bool) Gate {
	return func(s *idea.State) error {
		if !s.InstructionsReady() {
			return ErrInstructionsNotReady
		}
		if requireName && !s.HasDisplayName() {
			return ErrMissingName
		}
		return nil
	}
}

func (r *Router) index(v idea.View) int {
	for i, c := range r.chain {
		if c == v {
			return i
		}
	}
	return -1
}

// Next returns the view after v without checking any gate.
func (r *Router) Next(v idea.View) (idea.View, error) {
	i := r.index(v)
	if i < 0 {
		return "", ErrUnknownView
	}
	if i == len(r.chain)-1 {
		return "", ErrTerminalView
	}
	return r.chain[i+1], nil
}

// Previous returns the view before v. Going back is never gated.
func (r *Router) Previous(v idea.View) (idea.View, error) {
	i := r.index(v)
	if i < 0 {
		return "", ErrUnknownView
	}
	if i == 0 {
		return "", ErrNoPreviousView
	}
	return r.chain[i-1], nil
}

// CanAdvance evaluates the gate of the state's current view.
//
// Returns nil when the state may move to the next view, the gate's error when
// it is closed, and [ErrTerminalView] on the final view.
func (r *Router) CanAdvance(s *idea.State) error {
	return r.Check(s, s.View)
}

// Check evaluates the gate for leaving from, whatever view the state is in.
// Views past a gate use it to confirm the gate still holds.
func (r *Router) Check(s *idea.State, from idea.View) error {
	if _, err := r.Next(from); err != nil {
		return err
	}
	if gate, ok := r.gates[from]; ok {
		return gate(s)
	}
	return nil
}

// Advance returns the view the state may move to, or the reason it may not.
// The state itself is not modified.
func (r *Router) Advance(s *idea.State) (idea.View, error) {
	if err := r.CanAdvance(s); err != nil {
		return "", err
	}
	return r.Next(s.View)
}

// Gates evaluates every forward gate of the chain against the state.
func (r *Router) Gates(s *idea.State) []GateStatus {
	out := make([]GateStatus, 0, len(r.chain)-1)
	for i := 0; i < len(r.chain)-1; i++ {
		from := r.chain[i]
		var err error
		if gate, ok := r.gates[from]; ok {
			err = gate(s)
		}
		out = append(out, GateStatus{From: from, To: r.chain[i+1], Err: err})
	}
	return out
}

// Views returns the chain of views in order.
func (r *Router) Views() []idea.View {
	return append([]idea.View(nil), r.chain...)
}

// defaultRouter is the package-level router used by the convenience functions.
// It does not require a display name.
var defaultRouter = NewRouter(false)

// Next returns the view after v using the default router.
func Next(v idea.View) (idea.View, error) {
	return defaultRouter.Next(v)
}

// Previous returns the view before v using the default router.
func Previous(v idea.View) (idea.View, error) {
	return defaultRouter.Previous(v)
}

// CanAdvance evaluates the current gate using the default router.
func CanAdvance(s *idea.State) error {
	return defaultRouter.CanAdvance(s)
}

// Gates evaluates every gate using the default router.
func Gates(s *idea.State) []GateStatus {
	return defaultRouter.Gates(s)
}
