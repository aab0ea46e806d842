// Package effects renders the decorative light patterns: one-shot
// sequences (boot, invite, instructions, game start, confuser toggle) that
// hold the machine for their fixed length, and the per-tick idle ambient
// and ready pulse.
package effects

import (
	"math/rand"
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// Wings is the light surface the effects draw on.
type Wings interface {
	SetWing(c model.Color, on bool)
}

// Config holds pattern speeds.
type Config struct {
	BootWave         time.Duration
	BootFlash        time.Duration
	InviteFlash      time.Duration
	InviteSpin       time.Duration
	InviteFinal      time.Duration
	InstructionsStep time.Duration
	StartBurst       time.Duration
	StartFinal       time.Duration
	ConfuserFlash    time.Duration
	ReadyPulse       time.Duration

	AmbientDuration  time.Duration
	AmbientIntervals [ambientCount]time.Duration
}

func DefaultConfig() Config {
	return Config{
		BootWave:         150 * time.Millisecond,
		BootFlash:        200 * time.Millisecond,
		InviteFlash:      200 * time.Millisecond,
		InviteSpin:       150 * time.Millisecond,
		InviteFinal:      300 * time.Millisecond,
		InstructionsStep: 300 * time.Millisecond,
		StartBurst:       100 * time.Millisecond,
		StartFinal:       200 * time.Millisecond,
		ConfuserFlash:    150 * time.Millisecond,
		ReadyPulse:       150 * time.Millisecond,
		AmbientDuration:  30 * time.Second,
		AmbientIntervals: [ambientCount]time.Duration{
			100 * time.Millisecond, // breathing
			800 * time.Millisecond, // slow chase
			500 * time.Millisecond, // twinkle
			200 * time.Millisecond, // pulse wave
		},
	}
}

// Player owns the wing LEDs whenever an effect is showing.
type Player struct {
	cfg    Config
	wings  Wings
	rng    *rand.Rand
	logger *game_log.Logger

	active *timeline

	ambient ambientState
	ready   pulseState
}

func NewPlayer(cfg Config, wings Wings, rng *rand.Rand, logger *game_log.Logger) *Player {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Player{cfg: cfg, wings: wings, rng: rng, logger: logger}
}

func (p *Player) Boot(now time.Time) { p.start("boot", bootFrames(p.cfg), now) }

func (p *Player) Invite(now time.Time) { p.start("invite", inviteFrames(p.cfg), now) }

func (p *Player) Instructions(now time.Time) {
	p.start("instructions", instructionsFrames(p.cfg), now)
}

func (p *Player) GameStart(now time.Time) { p.start("game start", gameStartFrames(p.cfg), now) }

func (p *Player) ConfuserFlash(now time.Time) {
	p.start("confuser", confuserFrames(p.cfg), now)
}

// Running advances the active one-shot effect and reports whether it is
// still showing.
func (p *Player) Running(now time.Time) bool {
	if p.active == nil {
		return false
	}
	if p.active.advance(now, p.show) {
		return true
	}
	p.logger.Debugf("%s effect done", p.active.name)
	p.active = nil
	return false
}

// Active returns the name of the running one-shot effect, if any.
func (p *Player) Active() string {
	if p.active == nil {
		return ""
	}
	return p.active.name
}

func (p *Player) start(name string, frames []frame, now time.Time) {
	p.logger.Debugf("%s effect", name)
	p.active = newTimeline(name, frames, now)
	p.active.advance(now, p.show)
}

func (p *Player) show(m mask) {
	for _, c := range model.Colors {
		p.wings.SetWing(c, m.has(c))
	}
}
