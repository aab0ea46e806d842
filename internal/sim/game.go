// Package sim hosts the game core in an ebiten window: the board is drawn
// from the in-memory Panel, keys and clicks become button pins, and every
// frame runs one engine tick.
package sim

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/shimon/core/engine"
	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/round"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// drawRect and drawCircle are variables so tests can capture draw calls.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, colBorder, false)
}

var drawCircle = func(dst *ebiten.Image, center image.Point, radius float32, c color.Color) {
	vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), radius, c, true)
}

var debugPrint = ebitenutil.DebugPrintAt

type Game struct {
	eng    *engine.Engine
	panel  *Panel
	layout Layout
	clock  func() time.Time
	logger *game_log.Logger

	frame int64
}

func New(eng *engine.Engine, panel *Panel, layout Layout, logger *game_log.Logger) *Game {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Game{eng: eng, panel: panel, layout: layout, clock: time.Now, logger: logger.Tagged("SIM")}
}

// SetClock replaces the wall clock, for tests.
func (g *Game) SetClock(f func() time.Time) { g.clock = f }

func (g *Game) Update() error {
	if isKeyPressed(ebiten.KeyEscape) {
		g.logger.Infof("escape pressed, quitting after %d frames", g.frame)
		return ebiten.Termination
	}
	g.eng.Tick(g.clock())
	g.frame++
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.panel.Snapshot()
	for _, c := range model.Colors {
		col := dim(wingOn[c])
		if snap.Wings[c] {
			col = wingOn[c]
		}
		drawRect(screen, g.layout.Wing(c), col)

		lamp := dim(dim(wingOn[c]))
		if snap.Buttons[c] {
			lamp = color.RGBA{255, 255, 255, 255}
		}
		drawRect(screen, g.layout.Button(c), lamp)
	}

	bar := image.Rect(0, g.layout.Width, g.layout.Width, g.layout.Height)
	drawRect(screen, bar, colStatusBar)
	svc := colServiceOff
	if snap.Service {
		svc = colServiceOn
	}
	drawCircle(screen, g.layout.Service(), serviceR, svc)

	at := g.layout.Status()
	debugPrint(screen, g.Status(g.clock()), at.X, at.Y)
}

func (g *Game) Layout(int, int) (int, int) {
	return g.layout.Width, g.layout.Height
}

// Status is the one-line summary shown under the board.
func (g *Game) Status(now time.Time) string {
	m := g.eng.Machine()
	confuser := "off"
	if m.Confuser() {
		confuser = "on"
	}
	line := fmt.Sprintf("%s  confuser %s", m.State(), confuser)
	switch m.State() {
	case round.StateIdle:
		return fmt.Sprintf("%s  invite in %ds", line, int(m.InviteIn(now).Seconds()))
	case round.StateInstructions, round.StateAwaitStart:
		return line
	}
	s := m.Session()
	return fmt.Sprintf("%s\nlevel %d/%d  score %d", line, s.Level, s.MaxLen(), s.Score)
}
