// Package gate answers "has the cue I just started finished?" without
// blocking. A wait resolves on whichever comes first: the audio device's
// finished notification for the armed track, or a wall-clock deadline.
package gate

import (
	"sync"
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// Outcome describes how far a wait has progressed.
type Outcome int

const (
	Pending Outcome = iota
	Notified
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Notified:
		return "notification"
	case TimedOut:
		return "timeout"
	default:
		return "unknown"
	}
}

// Gate is owned by the state machine. Notify is the only method that may be
// called from another goroutine.
type Gate struct {
	mu        sync.Mutex
	armed     model.Track
	hasTrack  bool
	timerOnly bool
	notified  bool
	deadline  time.Time

	logger *game_log.Logger
}

func New(logger *game_log.Logger) *Gate {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Gate{logger: logger}
}

// Arm starts waiting on track with budget as the fallback deadline.
func (g *Gate) Arm(track model.Track, budget time.Duration, now time.Time) {
	g.mu.Lock()
	g.armed = track
	g.hasTrack = true
	g.timerOnly = false
	g.notified = false
	g.deadline = now.Add(budget)
	g.mu.Unlock()
	g.logger.Debugf("armed %s (%s) budget=%v", track, track.Kind(), budget)
}

// ArmUntracked waits on whatever the device reports finishing next, for
// devices that cannot say which track ended.
func (g *Gate) ArmUntracked(budget time.Duration, now time.Time) {
	g.mu.Lock()
	g.hasTrack = false
	g.timerOnly = false
	g.notified = false
	g.deadline = now.Add(budget)
	g.mu.Unlock()
}

// ArmTimer waits for budget only; notifications are ignored until the next
// Arm.
func (g *Gate) ArmTimer(budget time.Duration, now time.Time) {
	g.mu.Lock()
	g.hasTrack = false
	g.timerOnly = true
	g.notified = false
	g.deadline = now.Add(budget)
	g.mu.Unlock()
}

// Notify records that the device finished track. Notifications for any
// other track than the armed one are dropped.
func (g *Gate) Notify(track model.Track) {
	g.mu.Lock()
	switch {
	case g.timerOnly:
		g.mu.Unlock()
		g.logger.Debugf("notification for %s during timer wait, dropped", track)
		return
	case g.hasTrack && track != g.armed:
		armed := g.armed
		g.mu.Unlock()
		g.logger.Warnf("stale notification for %s while waiting on %s, dropped", track, armed)
		return
	}
	g.notified = true
	g.mu.Unlock()
}

// Check reports whether the wait is over and which condition ended it. A
// notification wins over an elapsed deadline.
func (g *Gate) Check(now time.Time) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.notified {
		return Notified
	}
	if !now.Before(g.deadline) {
		return TimedOut
	}
	return Pending
}

// IsSatisfied reports notified || now >= deadline.
func (g *Gate) IsSatisfied(now time.Time) bool {
	return g.Check(now) != Pending
}

// Deadline returns the fallback deadline of the current wait.
func (g *Gate) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deadline
}
