package idea

import "unicode/utf8"

// Rune counts at which the guiding prompt of a stage advances.
const (
	secondPromptAfter = 30
	thirdPromptAfter  = 60
)

// Stage returns the stage with the given id.
func (s *State) Stage(id StageID) (Stage, bool) {
	st, ok := s.Stages[id]
	if !ok {
		return Stage{}, false
	}
	return *st, true
}

// OrderedStages returns the stages in blueprint declaration order.
func (s *State) OrderedStages() []Stage {
	out := make([]Stage, 0, len(s.bp.Stages))
	for _, spec := range s.bp.Stages {
		if st, ok := s.Stages[spec.ID]; ok {
			out = append(out, *st)
		}
	}
	return out
}

// UpdateText replaces the text of an unlocked stage verbatim.
//
// Returns [ErrUnknownStage] for an undeclared id and [ErrStageLocked] when
// the stage is locked; the state is unchanged in both cases.
func (s *State) UpdateText(id StageID, text string) error {
	st, ok := s.Stages[id]
	if !ok {
		return ErrUnknownStage
	}
	if st.Locked {
		return ErrStageLocked
	}
	st.Text = text
	return nil
}

// IsReadyToLock reports whether the stage text meets the threshold and the
// stage is not yet locked. Length is counted in runes.
func (s *State) IsReadyToLock(id StageID) bool {
	st, ok := s.Stages[id]
	if !ok {
		return false
	}
	return !st.Locked && utf8.RuneCountInString(st.Text) >= s.bp.Threshold
}

// Lock commits a stage. There is no way to unlock it again.
//
// Returns [ErrStageLocked] when already locked and [ErrBelowThreshold] when
// the text is too short.
func (s *State) Lock(id StageID) error {
	st, ok := s.Stages[id]
	if !ok {
		return ErrUnknownStage
	}
	if st.Locked {
		return ErrStageLocked
	}
	if !s.IsReadyToLock(id) {
		return ErrBelowThreshold
	}
	st.Locked = true
	return nil
}

// AllLocked reports whether every configured stage is locked.
func (s *State) AllLocked() bool {
	for _, spec := range s.bp.Stages {
		st, ok := s.Stages[spec.ID]
		if !ok || !st.Locked {
			return false
		}
	}
	return true
}

// Remaining returns how many more runes a stage needs before it can lock.
func (s *State) Remaining(id StageID) int {
	st, ok := s.Stages[id]
	if !ok {
		return 0
	}
	n := s.bp.Threshold - utf8.RuneCountInString(st.Text)
	if n < 0 {
		return 0
	}
	return n
}

// ActivePrompt returns the guiding question to show for a stage. Short texts
// get the first question; the second and third follow as the text grows.
func (s *State) ActivePrompt(id StageID) string {
	spec, ok := s.bp.Stage(id)
	if !ok || len(spec.Prompts) == 0 {
		return ""
	}
	n := 0
	if st, ok := s.Stages[id]; ok {
		n = utf8.RuneCountInString(st.Text)
	}
	idx := 0
	switch {
	case n > thirdPromptAfter:
		idx = 2
	case n > secondPromptAfter:
		idx = 1
	}
	if idx >= len(spec.Prompts) {
		idx = len(spec.Prompts) - 1
	}
	return spec.Prompts[idx]
}
