package input

import (
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
)

// DefaultWindow is how long a raw level must hold before it is trusted.
const DefaultWindow = 15 * time.Millisecond

// PinReader reads the instantaneous level of a button. Implementations
// hide wiring details such as active-low inputs.
type PinReader interface {
	Pressed(c model.Color) bool
}

// PinFunc adapts a function to PinReader.
type PinFunc func(c model.Color) bool

func (f PinFunc) Pressed(c model.Color) bool { return f(c) }

type channel struct {
	raw        bool
	lastRaw    bool
	stable     bool
	lastChange time.Time
	consumed   bool
}

// Debouncer turns noisy pin reads into stable levels and one-shot press
// events, one channel per color.
type Debouncer struct {
	pins   PinReader
	window time.Duration
	ch     [model.ColorCount]channel
}

func NewDebouncer(pins PinReader, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{pins: pins, window: window}
}

// Refresh samples every pin. A channel's stable level follows its raw level
// only once the raw level has been unchanged for the full window.
func (d *Debouncer) Refresh(now time.Time) {
	for _, c := range model.Colors {
		ch := &d.ch[c]
		ch.raw = d.pins.Pressed(c)
		if ch.raw != ch.lastRaw || ch.lastChange.IsZero() {
			ch.lastChange = now
		} else if now.Sub(ch.lastChange) >= d.window {
			ch.stable = ch.raw
		}
		ch.lastRaw = ch.raw
	}
}

// PollPressEvent reports a rising stable edge on c once, then marks it
// consumed until the button is seen released.
func (d *Debouncer) PollPressEvent(c model.Color) bool {
	ch := &d.ch[c]
	pressed := ch.stable && !ch.consumed
	ch.consumed = ch.stable
	return pressed
}

// ResetEdges re-arms edge detection on every channel. Stable levels are
// left alone.
func (d *Debouncer) ResetEdges() {
	for i := range d.ch {
		d.ch[i].consumed = false
	}
}

// AnyPressed returns the first color with a pending press event, scanning
// Red, Blue, Green, Yellow. Channels after the winner are not polled.
func (d *Debouncer) AnyPressed() (model.Color, bool) {
	for _, c := range model.Colors {
		if d.PollPressEvent(c) {
			return c, true
		}
	}
	return 0, false
}

// Stable returns the debounced level of c.
func (d *Debouncer) Stable(c model.Color) bool { return d.ch[c].stable }

