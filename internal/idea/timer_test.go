package idea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_StartStop(t *testing.T) {
	s := testBlueprint().NewState()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, s.TimerRunning())
	assert.Zero(t, s.Elapsed(start))
	assert.ErrorIs(t, s.StopTimer(), ErrTimerStopped)

	require.NoError(t, s.StartTimer(start))
	assert.True(t, s.TimerRunning())
	assert.ErrorIs(t, s.StartTimer(start.Add(time.Minute)), ErrTimerRunning)
	assert.Equal(t, start, *s.TimerStartedAt, "second start keeps the first start time")

	assert.Equal(t, 90*time.Second, s.Elapsed(start.Add(90*time.Second)))
	assert.Zero(t, s.Elapsed(start.Add(-time.Second)), "clock skew never goes negative")

	c := s.Clone()
	require.NoError(t, c.StopTimer())
	assert.True(t, s.TimerRunning(), "clone owns its timer")

	require.NoError(t, s.StopTimer())
	assert.Nil(t, s.TimerStartedAt)
}

func TestTimer_Nudge(t *testing.T) {
	b := testBlueprint()
	b.StageDuration = 20 * time.Second
	s := b.NewState()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, s.Nudge(start.Add(time.Hour)), "stopped timer has no nudge")
	require.NoError(t, s.StartTimer(start))

	tests := []struct {
		after time.Duration
		want  string
	}{
		{after: 0, want: ""},
		{after: 19 * time.Second, want: ""},
		{after: 20 * time.Second, want: "WHY defined? Let's talk about WHO next!"},
		{after: 45 * time.Second, want: "WHO defined? Let's talk about WHAT next!"},
		{after: 60 * time.Second, want: "Almost done? Time to lock in HOW!"},
		{after: 80 * time.Second, want: "Wrapping up! Time to pick the build details."},
		{after: time.Hour, want: "Wrapping up! Time to pick the build details."},
	}

	for _, tt := range tests {
		t.Run(tt.after.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Nudge(start.Add(tt.after)))
		})
	}
}

func TestTimer_NudgeDisabled(t *testing.T) {
	s := testBlueprint().NewState()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.StartTimer(start))

	assert.Empty(t, s.Nudge(start.Add(time.Hour)))
}
