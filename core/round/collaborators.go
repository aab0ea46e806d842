package round

import (
	"time"

	"github.com/ingyamilmolinar/shimon/core/gate"
	"github.com/ingyamilmolinar/shimon/core/model"
)

// Lights drives the wing LEDs and the illuminated buttons.
type Lights interface {
	SetWing(c model.Color, on bool)
	SetButton(c model.Color, on bool)
	AllOff()
}

// Audio starts clips. Play never blocks and silently does nothing when the
// device is unavailable; completion is reported through Machine.Finished.
type Audio interface {
	Play(t model.Track)
}

// Effects renders decorative light patterns. The one-shot effects run for
// a fixed time; while Running reports true the machine does not advance.
// Ambient and ReadyPulse are per-tick updates.
type Effects interface {
	Boot(now time.Time)
	Invite(now time.Time)
	Instructions(now time.Time)
	GameStart(now time.Time)
	ConfuserFlash(now time.Time)
	Running(now time.Time) bool

	Ambient(now time.Time)
	ResetAmbient(now time.Time)
	ReadyPulse(now time.Time)
}

// EndReason says why a round ended.
type EndReason string

const (
	EndWrong   EndReason = "wrong"
	EndTimeout EndReason = "timeout"
)

// PressResult classifies a press seen during player input.
type PressResult string

const (
	PressCorrect PressResult = "correct"
	PressWrong   PressResult = "wrong"
	PressIgnored PressResult = "ignored"
)

// Observer receives game events for metrics. Calls happen on the tick
// goroutine.
type Observer interface {
	StateChanged(from, to StateName)
	RoundStarted(id string)
	RoundEnded(id string, reason EndReason, score, level int, played time.Duration)
	CueResolved(kind string, outcome gate.Outcome, waited time.Duration)
	PressEvaluated(result PressResult)
	ConfuserToggled(enabled bool)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StateChanged(StateName, StateName)                     {}
func (NopObserver) RoundStarted(string)                                   {}
func (NopObserver) RoundEnded(string, EndReason, int, int, time.Duration) {}
func (NopObserver) CueResolved(string, gate.Outcome, time.Duration)       {}
func (NopObserver) PressEvaluated(PressResult)                            {}
func (NopObserver) ConfuserToggled(bool)                                  {}
