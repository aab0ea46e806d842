package round

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ingyamilmolinar/shimon/core/gate"
	"github.com/ingyamilmolinar/shimon/core/input"
	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/sequence"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// IO bundles the collaborators the machine drives.
type IO struct {
	Lights   Lights
	Audio    Audio
	Effects  Effects
	Observer Observer
}

// Machine sequences rounds of play. It owns the session, the completion
// gate and the generator; input is shared with the engine, which refreshes
// it before every Step.
type Machine struct {
	cfg     Config
	in      *input.Debouncer
	gate    *gate.Gate
	gen     *sequence.Generator
	session *model.Session
	invites *inviteScheduler

	lights   Lights
	audio    Audio
	fx       Effects
	observer Observer
	logger   *game_log.Logger

	newID func() string

	current  state
	confuser bool

	// cue bookkeeping for CueResolved
	waitKind  string
	waitSince time.Time
	lastClip  int
}

func New(cfg Config, in *input.Debouncer, io IO, rng *rand.Rand, logger *game_log.Logger) *Machine {
	if logger == nil {
		logger = game_log.Discard()
	}
	if io.Observer == nil {
		io.Observer = NopObserver{}
	}
	if cfg.InviteClips <= 0 {
		cfg.InviteClips = 1
	}
	m := &Machine{
		cfg:      cfg,
		in:       in,
		gate:     gate.New(logger.Tagged("GATE")),
		gen:      sequence.NewGenerator(rng, cfg.Rules),
		session:  model.NewSession(cfg.Timing, cfg.MaxLen),
		invites:  newInviteScheduler(cfg, rng),
		lights:   io.Lights,
		audio:    io.Audio,
		fx:       io.Effects,
		observer: io.Observer,
		logger:   logger.Tagged("ROUND"),
		newID:    uuid.NewString,
		confuser: cfg.Confuser,
		current:  idleState{},
	}
	return m
}

// Boot plays the power-on effect and schedules the first invite.
func (m *Machine) Boot(now time.Time) {
	m.lights.AllOff()
	m.fx.ResetAmbient(now)
	m.fx.Boot(now)
	d := m.invites.Schedule(now)
	m.logger.Infof("ready; first invite in %v", d)
}

// Step runs the active state's logic once. It never sleeps.
func (m *Machine) Step(now time.Time) {
	if m.fx.Running(now) {
		return
	}
	next := m.current.step(m, now)
	if next == nil || next == m.current {
		return
	}
	m.transition(next, now)
}

func (m *Machine) transition(next state, now time.Time) {
	from := m.current.name()
	m.current = next
	m.logger.Debugf("%s -> %s", from, next.name())
	m.observer.StateChanged(from, next.name())
	m.current.enter(m, now)
}

// Finished is the audio device's completion callback. It may be called
// from any goroutine.
func (m *Machine) Finished(t model.Track) { m.gate.Notify(t) }

// State returns the name of the active state.
func (m *Machine) State() StateName { return m.current.name() }

// Session returns the current (or last) round's session.
func (m *Machine) Session() *model.Session { return m.session }

// Confuser reports whether spoken colors may differ from lit ones.
func (m *Machine) Confuser() bool { return m.confuser }

// InviteIn returns the time until the next idle invite.
func (m *Machine) InviteIn(now time.Time) time.Duration { return m.invites.Remaining(now) }

// SetIDFunc replaces the round ID source.
func (m *Machine) SetIDFunc(f func() string) { m.newID = f }

// cue arms the gate before starting the clip so that an immediate
// completion report is never mistaken for a stale one.
func (m *Machine) cue(t model.Track, budget time.Duration, now time.Time) {
	m.gate.Arm(t, budget, now)
	m.waitKind = t.Kind()
	m.waitSince = now
	m.audio.Play(t)
}

// pause waits budget without any clip.
func (m *Machine) pause(budget time.Duration, now time.Time) {
	m.gate.ArmTimer(budget, now)
	m.waitKind = "guard"
	m.waitSince = now
}

// done reports whether the current wait is over, recording how it ended.
func (m *Machine) done(now time.Time) bool {
	o := m.gate.Check(now)
	if o == gate.Pending {
		return false
	}
	if m.waitKind != "guard" {
		m.logger.Debugf("%s complete via %s (%v)", m.waitKind, o, now.Sub(m.waitSince))
	}
	m.observer.CueResolved(m.waitKind, o, now.Sub(m.waitSince))
	return true
}

func (m *Machine) invite(now time.Time) {
	m.lastClip = m.gen.PickVariant(m.cfg.InviteClips, m.lastClip)
	m.audio.Play(model.InviteTrack(m.lastClip))
	m.fx.ResetAmbient(now)
	m.fx.Invite(now)
	d := m.invites.Schedule(now)
	m.logger.Infof("invite %d played; next in %v", m.lastClip, d)
}

func (m *Machine) quiesce() {
	m.lights.AllOff()
}
