package sim

import (
	"errors"
	"image"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/shimon/core/engine"
	"github.com/ingyamilmolinar/shimon/core/input"
	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/round"
	"github.com/ingyamilmolinar/shimon/internal/audio"
	"github.com/ingyamilmolinar/shimon/internal/effects"
)

func keysOnly(pressed ...ebiten.Key) func() {
	return SetInputForTest(
		func() (int, int) { return 0, 0 },
		func(ebiten.MouseButton) bool { return false },
		func(k ebiten.Key) bool {
			for _, p := range pressed {
				if k == p {
					return true
				}
			}
			return false
		},
	)
}

func clickAt(p image.Point) func() {
	return SetInputForTest(
		func() (int, int) { return p.X, p.Y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft },
		func(ebiten.Key) bool { return false },
	)
}

func newGame(t *testing.T, now *time.Time) (*Game, *Panel) {
	t.Helper()
	panel := &Panel{}
	layout := DefaultLayout()
	pins := NewPins(DefaultKeyMap(), layout)
	rng := rand.New(rand.NewSource(3))
	in := input.NewDebouncer(pins, input.DefaultWindow)
	fx := effects.NewPlayer(effects.DefaultConfig(), panel, rng, nil)
	m := round.New(round.DefaultConfig(), in, round.IO{Lights: panel, Audio: audio.Silent{}, Effects: fx}, rng, nil)
	eng := engine.New(m, in, panel, nil, *now)
	g := New(eng, panel, layout, nil)
	g.SetClock(func() time.Time { return *now })
	return g, panel
}

func frames(t *testing.T, g *Game, now *time.Time, d time.Duration) {
	t.Helper()
	for end := now.Add(d); now.Before(end); *now = now.Add(16 * time.Millisecond) {
		require.NoError(t, g.Update())
	}
}

func TestPanelTracksLights(t *testing.T) {
	p := &Panel{}
	p.SetWing(model.Blue, true)
	p.SetButton(model.Yellow, true)
	p.SetService(true)
	p.SetWing(model.Color(9), true)

	s := p.Snapshot()
	assert.True(t, s.Wings[model.Blue])
	assert.True(t, s.Buttons[model.Yellow])
	assert.True(t, s.Service)

	p.AllOff()
	s = p.Snapshot()
	assert.Equal(t, [model.ColorCount]bool{}, s.Wings)
	assert.Equal(t, [model.ColorCount]bool{}, s.Buttons)
	assert.True(t, s.Service, "heartbeat is not a game light")
}

func TestLayoutButtonsInsideTheirWings(t *testing.T) {
	l := DefaultLayout()
	for _, c := range model.Colors {
		b := l.Button(c)
		assert.True(t, b.In(l.Wing(c)), "%s button outside its wing", c)
		for _, other := range model.Colors {
			if other != c {
				assert.False(t, b.Overlaps(l.Wing(other)), "%s button overlaps %s wing", c, other)
			}
		}
	}
}

func TestPinsFromKeyboard(t *testing.T) {
	defer keysOnly(ebiten.KeyW)()
	pins := NewPins(DefaultKeyMap(), DefaultLayout())
	assert.True(t, pins.Pressed(model.Blue))
	assert.False(t, pins.Pressed(model.Red))
}

func TestPinsFromClick(t *testing.T) {
	l := DefaultLayout()
	center := l.Button(model.Green).Min.Add(image.Pt(buttonSize/2, buttonSize/2))
	defer clickAt(center)()
	pins := NewPins(DefaultKeyMap(), l)
	assert.True(t, pins.Pressed(model.Green))
	assert.False(t, pins.Pressed(model.Yellow))
}

func TestParseKeyMap(t *testing.T) {
	km, err := ParseKeyMap([model.ColorCount]string{"J", "K", "N", "M"})
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyJ, km[model.Red])
	assert.Equal(t, ebiten.KeyM, km[model.Yellow])

	_, err = ParseKeyMap([model.ColorCount]string{"J", "K", "N", "NotAKey"})
	assert.Error(t, err)
}

func TestUpdateTicksTheEngine(t *testing.T) {
	now := time.Unix(100, 0)
	g, _ := newGame(t, &now)
	restore := keysOnly()
	frames(t, g, &now, 4*time.Second)
	restore()
	assert.Equal(t, round.StateIdle, g.eng.Machine().State())
	assert.Contains(t, g.Status(now), "idle")
	assert.Contains(t, g.Status(now), "invite in")

	restore = keysOnly(ebiten.KeyQ)
	frames(t, g, &now, 100*time.Millisecond)
	restore()
	assert.Equal(t, round.StateInstructions, g.eng.Machine().State())
}

func TestHeartbeatReachesPanel(t *testing.T) {
	now := time.Unix(100, 0)
	g, panel := newGame(t, &now)
	defer keysOnly()()
	frames(t, g, &now, 600*time.Millisecond)
	assert.True(t, panel.Snapshot().Service)
}

func TestStatusShowsRoundProgress(t *testing.T) {
	now := time.Unix(100, 0)
	g, _ := newGame(t, &now)
	restore := keysOnly()
	frames(t, g, &now, 4*time.Second)
	restore()

	// start: idle -> instructions, then a press after the instructions wait
	restore = keysOnly(ebiten.KeyQ)
	frames(t, g, &now, 100*time.Millisecond)
	restore()
	restore = keysOnly()
	frames(t, g, &now, 2500*time.Millisecond)
	restore()
	require.Equal(t, round.StateAwaitStart, g.eng.Machine().State())

	restore = keysOnly(ebiten.KeyQ)
	frames(t, g, &now, 100*time.Millisecond)
	restore()
	status := g.Status(now)
	assert.True(t, strings.Contains(status, "level 1/64"), status)
	assert.True(t, strings.Contains(status, "score 0"), status)
}

func TestEscapeQuits(t *testing.T) {
	now := time.Unix(100, 0)
	g, _ := newGame(t, &now)
	defer keysOnly(ebiten.KeyEscape)()
	assert.True(t, errors.Is(g.Update(), ebiten.Termination))
}
