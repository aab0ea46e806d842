package effects

import (
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
)

// mask is a set of lit wings, one bit per color.
type mask uint8

const (
	none mask = 0
	all  mask = 1<<model.ColorCount - 1
)

func only(cs ...model.Color) mask {
	var m mask
	for _, c := range cs {
		m |= 1 << c
	}
	return m
}

func (m mask) has(c model.Color) bool { return m&(1<<c) != 0 }

type frame struct {
	lit  mask
	hold time.Duration
}

type timeline struct {
	name   string
	frames []frame
	start  time.Time
	shown  int
	total  time.Duration
}

func newTimeline(name string, frames []frame, now time.Time) *timeline {
	t := &timeline{name: name, frames: frames, start: now, shown: -1}
	for _, f := range frames {
		t.total += f.hold
	}
	return t
}

// advance shows the frame due at now and reports whether the timeline is
// still running. The wings are cleared when it ends.
func (t *timeline) advance(now time.Time, show func(mask)) bool {
	elapsed := now.Sub(t.start)
	if elapsed >= t.total {
		show(none)
		return false
	}
	idx := 0
	for at := t.frames[0].hold; at <= elapsed; at += t.frames[idx].hold {
		idx++
	}
	if idx != t.shown {
		show(t.frames[idx].lit)
		t.shown = idx
	}
	return true
}

func flashes(n int, on, off time.Duration) []frame {
	var out []frame
	for i := 0; i < n; i++ {
		out = append(out, frame{all, on}, frame{none, off})
	}
	return out
}

func bootFrames(cfg Config) []frame {
	var out []frame
	for wave := 0; wave < 3; wave++ {
		for _, c := range model.Colors {
			out = append(out, frame{only(c), cfg.BootWave})
		}
	}
	return append(out, flashes(4, cfg.BootFlash, cfg.BootFlash)...)
}

func inviteFrames(cfg Config) []frame {
	out := flashes(2, cfg.InviteFlash, cfg.InviteFlash)
	for spin := 0; spin < 8; spin++ {
		out = append(out, frame{only(model.Colors[spin%model.ColorCount]), cfg.InviteSpin})
	}
	return append(out, frame{all, cfg.InviteFinal})
}

func instructionsFrames(cfg Config) []frame {
	var out []frame
	for i := 0; i < 6; i++ {
		m := only(model.Red, model.Green)
		if i%2 == 1 {
			m = only(model.Blue, model.Yellow)
		}
		out = append(out, frame{m, cfg.InstructionsStep})
	}
	return out
}

func gameStartFrames(cfg Config) []frame {
	out := flashes(3, cfg.StartBurst, cfg.StartBurst)
	return append(out, frame{all, cfg.StartFinal})
}

func confuserFrames(cfg Config) []frame {
	var out []frame
	for i := 0; i < 6; i++ {
		m := none
		if i%2 == 1 {
			m = only(model.Yellow)
		}
		out = append(out, frame{m, cfg.ConfuserFlash})
	}
	return out
}
