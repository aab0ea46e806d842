package sim

import (
	"sync"

	"github.com/ingyamilmolinar/shimon/core/model"
)

// Panel is the in-memory LED board: four wings, four button lamps and the
// service heartbeat. It implements round.Lights, effects.Wings and
// engine.Service.
type Panel struct {
	mu      sync.Mutex
	wings   [model.ColorCount]bool
	buttons [model.ColorCount]bool
	service bool
}

// Snapshot is a copy of the board taken for drawing.
type Snapshot struct {
	Wings   [model.ColorCount]bool
	Buttons [model.ColorCount]bool
	Service bool
}

func (p *Panel) SetWing(c model.Color, on bool) {
	if !c.Valid() {
		return
	}
	p.mu.Lock()
	p.wings[c] = on
	p.mu.Unlock()
}

func (p *Panel) SetButton(c model.Color, on bool) {
	if !c.Valid() {
		return
	}
	p.mu.Lock()
	p.buttons[c] = on
	p.mu.Unlock()
}

func (p *Panel) AllOff() {
	p.mu.Lock()
	p.wings = [model.ColorCount]bool{}
	p.buttons = [model.ColorCount]bool{}
	p.mu.Unlock()
}

func (p *Panel) SetService(on bool) {
	p.mu.Lock()
	p.service = on
	p.mu.Unlock()
}

func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{Wings: p.wings, Buttons: p.buttons, Service: p.service}
}
