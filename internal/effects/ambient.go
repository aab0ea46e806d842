package effects

import (
	"math"
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
)

type ambientKind int

const (
	ambientBreathing ambientKind = iota
	ambientChase
	ambientTwinkle
	ambientPulseWave
	ambientCount
)

var ambientNames = [ambientCount]string{"breathing", "slow chase", "twinkle", "pulse wave"}

func (k ambientKind) String() string { return ambientNames[k] }

const (
	breathingSteps = 63
	breathingRate  = 0.2
	breathingOn    = 0.3

	readySteps = 42
	readyRate  = 0.3
	readyOn    = 0.4
)

type ambientState struct {
	kind     ambientKind
	since    time.Time
	lastStep time.Time
	step     int
}

type pulseState struct {
	lastStep time.Time
	step     int
}

// ResetAmbient restarts the rotation at its first pattern. The wings are
// left alone while a one-shot effect owns them.
func (p *Player) ResetAmbient(now time.Time) {
	p.ambient = ambientState{kind: ambientBreathing, since: now}
	if p.active == nil {
		p.show(none)
	}
}

// AmbientKind names the idle pattern currently showing.
func (p *Player) AmbientKind() string { return p.ambient.kind.String() }

// Ambient advances the idle pattern. Patterns rotate every
// AmbientDuration; each has its own step interval.
func (p *Player) Ambient(now time.Time) {
	a := &p.ambient
	if a.since.IsZero() {
		a.since = now
	}
	if now.Sub(a.since) >= p.cfg.AmbientDuration {
		a.kind = (a.kind + 1) % ambientCount
		a.since = now
		a.step = 0
		a.lastStep = time.Time{}
		p.show(none)
		p.logger.Debugf("ambient %s", a.kind)
	}
	if !a.lastStep.IsZero() && now.Sub(a.lastStep) < p.cfg.AmbientIntervals[a.kind] {
		return
	}
	a.lastStep = now
	p.show(p.ambientFrame(a.kind, a.step))
	a.step++
}

func (p *Player) ambientFrame(kind ambientKind, step int) mask {
	switch kind {
	case ambientBreathing:
		if math.Sin(float64(step%breathingSteps)*breathingRate) > breathingOn {
			return all
		}
		return none
	case ambientChase:
		return only(model.Colors[step%model.ColorCount])
	case ambientTwinkle:
		m := none
		for i := 0; i < 1+p.rng.Intn(2); i++ {
			m |= only(model.Colors[p.rng.Intn(model.ColorCount)])
		}
		return m
	case ambientPulseWave:
		m := none
		lead, trail := step%8, (step+4)%8
		for i, c := range model.Colors {
			if lead == i || trail == i {
				m |= only(c)
			}
		}
		return m
	}
	return none
}

// ReadyPulse pulses every wing while waiting for the start press.
func (p *Player) ReadyPulse(now time.Time) {
	r := &p.ready
	if !r.lastStep.IsZero() && now.Sub(r.lastStep) < p.cfg.ReadyPulse {
		return
	}
	r.lastStep = now
	level := (math.Sin(float64(r.step)*readyRate) + 1) * 0.5
	if level > readyOn {
		p.show(all)
	} else {
		p.show(none)
	}
	r.step = (r.step + 1) % readySteps
}
