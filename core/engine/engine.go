package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ingyamilmolinar/shimon/core/input"
	"github.com/ingyamilmolinar/shimon/core/round"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// DefaultTickInterval matches a 60 Hz frame.
const DefaultTickInterval = 16 * time.Millisecond

// heartbeatShift makes the service LED toggle every 512ms.
const heartbeatShift = 9

// Service is the board's heartbeat LED.
type Service interface {
	SetService(on bool)
}

// Engine drives one core tick: heartbeat, input refresh, then a machine
// step. Tick is safe to call from a single goroutine at a time; Run and
// external Tick callers are serialized.
type Engine struct {
	mu      sync.Mutex
	in      *input.Debouncer
	machine *round.Machine
	svc     Service
	logger  *game_log.Logger

	bootedAt  time.Time
	heartbeat bool
	ticks     uint64
}

// New boots the machine at now and returns an engine ready to tick.
func New(m *round.Machine, in *input.Debouncer, svc Service, logger *game_log.Logger, now time.Time) *Engine {
	if logger == nil {
		logger = game_log.Discard()
	}
	e := &Engine{in: in, machine: m, svc: svc, logger: logger.Tagged("ENGINE"), bootedAt: now}
	m.Boot(now)
	e.setHeartbeat(false)
	return e
}

// Tick advances the core by one step.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ms := now.Sub(e.bootedAt).Milliseconds()
	if beat := (ms>>heartbeatShift)&1 == 1; beat != e.heartbeat {
		e.setHeartbeat(beat)
	}
	e.in.Refresh(now)
	e.machine.Step(now)
	e.ticks++
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Machine exposes the driven state machine.
func (e *Engine) Machine() *round.Machine { return e.machine }

// Run ticks on its own schedule until ctx is cancelled. It is used when no
// frame loop drives the engine.
func (e *Engine) Run(ctx context.Context, interval time.Duration, clock func() time.Time) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if clock == nil {
		clock = time.Now
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	e.logger.Infof("running every %v", interval)
	for {
		select {
		case <-ticker.C:
			e.Tick(clock())
		case <-ctx.Done():
			e.logger.Infof("stopped after %d ticks", e.Ticks())
			return ctx.Err()
		}
	}
}

func (e *Engine) setHeartbeat(on bool) {
	e.heartbeat = on
	if e.svc != nil {
		e.svc.SetService(on)
	}
}
