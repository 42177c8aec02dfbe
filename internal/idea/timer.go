package idea

import (
	"fmt"
	"time"
)

// StartTimer starts the workshop timer at now.
func (s *State) StartTimer(now time.Time) error {
	if s.TimerStartedAt != nil {
		return ErrTimerRunning
	}
	now = now.UTC()
	s.TimerStartedAt = &now
	return nil
}

// StopTimer stops the workshop timer.
func (s *State) StopTimer() error {
	if s.TimerStartedAt == nil {
		return ErrTimerStopped
	}
	s.TimerStartedAt = nil
	return nil
}

// TimerRunning reports whether the workshop timer runs.
func (s *State) TimerRunning() bool {
	return s.TimerStartedAt != nil
}

// Elapsed returns how long the timer has been running at now. It is zero for
// a stopped timer and never negative.
func (s *State) Elapsed(now time.Time) time.Duration {
	if s.TimerStartedAt == nil {
		return 0
	}
	if d := now.Sub(*s.TimerStartedAt); d > 0 {
		return d
	}
	return 0
}

// Nudge returns the pacing hint for the running timer at now. Every
// StageDuration moves the hint on by one stage; once all stages are used up it
// points at the build details. It is empty before the first stage duration
// passed, for a stopped timer and when nudges are disabled.
func (s *State) Nudge(now time.Time) string {
	step := s.bp.StageDuration
	if step <= 0 || !s.TimerRunning() {
		return ""
	}

	n := int(s.Elapsed(now) / step)
	stages := s.bp.Stages
	switch {
	case n == 0:
		return ""
	case n < len(stages)-1:
		return fmt.Sprintf("%s defined? Let's talk about %s next!", stages[n-1].Label, stages[n].Label)
	case n == len(stages)-1:
		return fmt.Sprintf("Almost done? Time to lock in %s!", stages[n].Label)
	default:
		return "Wrapping up! Time to pick the build details."
	}
}
