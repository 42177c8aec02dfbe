package idea

import (
	"strings"
	"time"
)

// State is the complete, serializable state of one session.
//
// The zero value is not usable; obtain a State from [Blueprint.NewState] or
// decode one and attach it with [Blueprint.Adopt]. All mutations go through
// methods so that every invariant is checked in one place.
type State struct {
	Version      int                `json:"version"`
	Stages       map[StageID]*Stage `json:"stages"`
	Instructions []Instruction      `json:"instructions"`
	Selection    Selection          `json:"selection"`
	DisplayName  string             `json:"displayName"`
	HasLaunched  bool               `json:"hasLaunched"`
	View         View               `json:"view"`

	// Prompt is the last assembled artifact. It is cleared by any mutation
	// that would change the assembly.
	Prompt *Artifact `json:"prompt,omitempty"`

	// PromptConfirmed is set when the user confirmed the current Prompt.
	PromptConfirmed bool `json:"promptConfirmed"`

	// TimerStartedAt is set while the workshop timer runs.
	TimerStartedAt *time.Time `json:"timerStartedAt,omitempty"`

	bp *Blueprint
}

// Blueprint returns the blueprint the state is attached to.
func (s *State) Blueprint() *Blueprint {
	return s.bp
}

// invalidatePrompt drops the assembled artifact and its confirmation.
func (s *State) invalidatePrompt() {
	s.Prompt = nil
	s.PromptConfirmed = false
}

// SelectTemplate records a curated concept as the entry selection. When no
// display name is set yet, the concept title becomes the display name.
func (s *State) SelectTemplate(id string) error {
	if s.Selection.IsMade() {
		return ErrAlreadySelected
	}
	concept, ok := s.bp.Concept(id)
	if !ok {
		return ErrUnknownTemplate
	}
	s.Selection = Selection{TemplateID: id}
	if strings.TrimSpace(s.DisplayName) == "" {
		s.DisplayName = concept.Title
	}
	return nil
}

// SelectSparks records free-text sparks as the entry selection. Sparks are
// trimmed; empty and duplicate sparks are dropped before the minimum is checked.
func (s *State) SelectSparks(sparks []string) error {
	if s.Selection.IsMade() {
		return ErrAlreadySelected
	}
	seen := make(map[string]bool, len(sparks))
	var kept []string
	for _, sp := range sparks {
		sp = strings.TrimSpace(sp)
		if sp == "" || seen[sp] {
			continue
		}
		seen[sp] = true
		kept = append(kept, sp)
	}
	need := s.bp.MinSparks
	if need < 1 {
		need = 1
	}
	if len(kept) < need {
		return ErrTooFewSparks
	}
	s.Selection = Selection{Sparks: kept}
	return nil
}

// Skip records an explicit skip as the entry selection.
func (s *State) Skip() error {
	if s.Selection.IsMade() {
		return ErrAlreadySelected
	}
	s.Selection = Selection{Skipped: true}
	return nil
}

// SetDisplayName sets the name of the resulting app. Surrounding whitespace
// is trimmed.
func (s *State) SetDisplayName(name string) {
	name = strings.TrimSpace(name)
	if name == s.DisplayName {
		return
	}
	s.DisplayName = name
	s.invalidatePrompt()
}

// HasDisplayName reports whether a non-blank display name is set.
func (s *State) HasDisplayName() bool {
	return strings.TrimSpace(s.DisplayName) != ""
}

// InstructionsReady reports whether the instruction review satisfies the
// blueprint's readiness policy.
func (s *State) InstructionsReady() bool {
	switch s.bp.Policy {
	case PolicyMinTotal:
		return s.ApprovedCount() >= s.bp.MinApproved
	default:
		for _, ok := range s.ApprovedByCategory() {
			if !ok {
				return false
			}
		}
		return true
	}
}

// SetPrompt stores a freshly assembled artifact and marks the session as
// launched.
func (s *State) SetPrompt(a Artifact) {
	s.Prompt = &a
	s.PromptConfirmed = false
	s.HasLaunched = true
}

// ConfirmPrompt marks the current artifact as confirmed. It reports false
// when there is no artifact to confirm.
func (s *State) ConfirmPrompt() bool {
	if s.Prompt == nil {
		return false
	}
	s.PromptConfirmed = true
	return true
}

// Clone returns a deep copy attached to the same blueprint.
func (s *State) Clone() *State {
	c := *s
	c.Stages = make(map[StageID]*Stage, len(s.Stages))
	for id, st := range s.Stages {
		cp := *st
		c.Stages[id] = &cp
	}
	c.Instructions = append([]Instruction(nil), s.Instructions...)
	c.Selection.Sparks = append([]string(nil), s.Selection.Sparks...)
	if s.Prompt != nil {
		p := *s.Prompt
		c.Prompt = &p
	}
	if s.TimerStartedAt != nil {
		t := *s.TimerStartedAt
		c.TimerStartedAt = &t
	}
	return &c
}
