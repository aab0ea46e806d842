package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(c Color) func([]Color) Color {
	return func([]Color) Color { return c }
}

func TestSessionStartResetsRound(t *testing.T) {
	s := NewSession(DefaultTiming(), 8)
	s.Start("a", Red, time.Unix(0, 0))
	s.Extend(constant(Blue))
	s.AwardLevel()
	s.Strikes = 1

	s.Start("b", Green, time.Unix(10, 0))
	assert.Equal(t, "b", s.ID)
	assert.Equal(t, []Color{Green}, s.Sequence)
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Strikes)
	assert.Equal(t, 450*time.Millisecond, s.CueOn)
	assert.Equal(t, 250*time.Millisecond, s.CueGap)
	assert.Equal(t, 3000*time.Millisecond, s.InputTimeout)
}

func TestSessionAwardLevelScalesWithLevel(t *testing.T) {
	s := NewSession(DefaultTiming(), 8)
	s.Start("r", Red, time.Time{})
	s.AwardLevel()
	require.Equal(t, 1, s.Score)
	s.Extend(constant(Blue))
	s.AwardLevel()
	require.Equal(t, 3, s.Score)
}

func TestSessionExtendStopsAtMaxLen(t *testing.T) {
	s := NewSession(DefaultTiming(), 3)
	s.Start("r", Red, time.Time{})
	require.True(t, s.Extend(constant(Blue)))
	require.True(t, s.Extend(constant(Green)))
	require.True(t, s.Full())
	require.False(t, s.Extend(constant(Yellow)))
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, []Color{Red, Blue, Green}, s.Sequence)
}

func TestSessionTimingShrinksEveryThirdLevel(t *testing.T) {
	s := NewSession(DefaultTiming(), DefaultMaxLen)
	s.Start("r", Red, time.Time{})

	s.Extend(constant(Blue)) // level 2
	assert.Equal(t, 450*time.Millisecond, s.CueOn)

	s.Extend(constant(Red)) // level 3
	assert.Equal(t, 436*time.Millisecond, s.CueOn)
	assert.Equal(t, 242*time.Millisecond, s.CueGap)
	assert.Equal(t, 2910*time.Millisecond, s.InputTimeout)
}

func TestSessionTimingMonotonicAndFloored(t *testing.T) {
	tm := DefaultTiming()
	s := NewSession(tm, DefaultMaxLen)
	s.Start("r", Red, time.Time{})

	prevOn, prevGap, prevIn := s.CueOn, s.CueGap, s.InputTimeout
	for !s.Full() {
		s.Extend(constant(Colors[s.Level%ColorCount]))
		if s.CueOn > prevOn || s.CueGap > prevGap || s.InputTimeout > prevIn {
			t.Fatalf("timing grew at level %d", s.Level)
		}
		if s.CueOn < tm.CueOnMin || s.CueGap < tm.CueGapMin || s.InputTimeout < tm.InputTimeoutMin {
			t.Fatalf("timing under floor at level %d: %v %v %v", s.Level, s.CueOn, s.CueGap, s.InputTimeout)
		}
		prevOn, prevGap, prevIn = s.CueOn, s.CueGap, s.InputTimeout
	}
	assert.Equal(t, tm.CueOnMin, s.CueOn)
	assert.Equal(t, 124*time.Millisecond, s.CueGap)
	assert.Equal(t, tm.InputTimeoutMin, s.InputTimeout)
}
