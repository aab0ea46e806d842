package model

import (
	"time"
)

// Timing holds the round-adaptive durations and their floors.
type Timing struct {
	CueOn           time.Duration
	CueOnMin        time.Duration
	CueGap          time.Duration
	CueGapMin       time.Duration
	InputTimeout    time.Duration
	InputTimeoutMin time.Duration
	// SpeedStep multiplies every timing when the new level is a multiple
	// of SpeedEvery.
	SpeedStep  float64
	SpeedEvery int
}

// DefaultTiming returns the stock game speeds.
func DefaultTiming() Timing {
	return Timing{
		CueOn:           450 * time.Millisecond,
		CueOnMin:        250 * time.Millisecond,
		CueGap:          250 * time.Millisecond,
		CueGapMin:       120 * time.Millisecond,
		InputTimeout:    3000 * time.Millisecond,
		InputTimeoutMin: 1800 * time.Millisecond,
		SpeedStep:       0.97,
		SpeedEvery:      3,
	}
}

// DefaultMaxLen is the longest sequence a round can grow to.
const DefaultMaxLen = 64

// Session is the per-round mutable state.
type Session struct {
	ID        string
	StartedAt time.Time

	Sequence []Color
	Level    int
	Score    int
	// Strikes is reserved for multi-strike rules; one wrong answer ends a
	// round today.
	Strikes int

	CueOn        time.Duration
	CueGap       time.Duration
	InputTimeout time.Duration

	timing Timing
	maxLen int
}

func NewSession(t Timing, maxLen int) *Session {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if t.SpeedEvery <= 0 {
		t.SpeedEvery = 3
	}
	return &Session{timing: t, maxLen: maxLen}
}

// Start resets the session for a new round seeded with first.
func (s *Session) Start(id string, first Color, now time.Time) {
	s.ID = id
	s.StartedAt = now
	s.Sequence = append(make([]Color, 0, s.maxLen), first)
	s.Level = 1
	s.Score = 0
	s.Strikes = 0
	s.CueOn = s.timing.CueOn
	s.CueGap = s.timing.CueGap
	s.InputTimeout = s.timing.InputTimeout
}

// Extend appends one color drawn by next and raises the level. Every
// SpeedEvery levels the cue and input timings shrink by SpeedStep, floored
// at their minimums. It reports false once the sequence is full.
func (s *Session) Extend(next func(seq []Color) Color) bool {
	if s.Level >= s.maxLen {
		return false
	}
	s.Sequence = append(s.Sequence[:s.Level], next(s.Sequence[:s.Level]))
	s.Level++

	if s.Level%s.timing.SpeedEvery == 0 {
		s.CueOn = shrink(s.CueOn, s.timing.SpeedStep, s.timing.CueOnMin)
		s.CueGap = shrink(s.CueGap, s.timing.SpeedStep, s.timing.CueGapMin)
		s.InputTimeout = shrink(s.InputTimeout, s.timing.SpeedStep, s.timing.InputTimeoutMin)
	}
	return true
}

// AwardLevel credits the level just completed.
func (s *Session) AwardLevel() {
	s.Score += s.Level
}

// Expected returns the color the player must press at step.
func (s *Session) Expected(step int) Color {
	return s.Sequence[step]
}

// Full reports whether the sequence reached its maximum length.
func (s *Session) Full() bool { return s.Level >= s.maxLen }

// MaxLen returns the configured sequence cap.
func (s *Session) MaxLen() int { return s.maxLen }

func shrink(d time.Duration, factor float64, floor time.Duration) time.Duration {
	next := time.Duration(float64(d) * factor)
	// truncate to whole milliseconds
	next = next.Truncate(time.Millisecond)
	if next < floor {
		return floor
	}
	if next > d {
		return d
	}
	return next
}
