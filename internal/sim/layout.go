package sim

import (
	"image"

	"github.com/ingyamilmolinar/shimon/core/model"
)

const (
	boardSize  = 400
	statusBarH = 60
	wingMargin = 12
	buttonSize = 56
	serviceR   = 6
)

// Layout places the board in logical pixels. Wings fill the four quadrants
// of a square board with a status bar beneath it.
type Layout struct {
	Width, Height int
}

func DefaultLayout() Layout {
	return Layout{Width: boardSize, Height: boardSize + statusBarH}
}

// quadrant returns the column and row of c.
func quadrant(c model.Color) (int, int) {
	switch c {
	case model.Red:
		return 1, 0
	case model.Blue:
		return 1, 1
	case model.Green:
		return 0, 0
	default:
		return 0, 1
	}
}

// Wing returns the rectangle of c's wing.
func (l Layout) Wing(c model.Color) image.Rectangle {
	half := l.Width / 2
	col, row := quadrant(c)
	x0, y0 := col*half, row*half
	return image.Rect(x0+wingMargin, y0+wingMargin, x0+half-wingMargin, y0+half-wingMargin)
}

// Button returns the lamp/click area of c, at the inner corner of its wing.
func (l Layout) Button(c model.Color) image.Rectangle {
	w := l.Wing(c)
	col, row := quadrant(c)
	x := w.Max.X - buttonSize - wingMargin
	if col == 1 {
		x = w.Min.X + wingMargin
	}
	y := w.Max.Y - buttonSize - wingMargin
	if row == 1 {
		y = w.Min.Y + wingMargin
	}
	return image.Rect(x, y, x+buttonSize, y+buttonSize)
}

// Service returns the center of the heartbeat LED.
func (l Layout) Service() image.Point {
	return image.Pt(l.Width-2*serviceR, l.Width+2*serviceR)
}

// Status returns the text origin of the status bar.
func (l Layout) Status() image.Point {
	return image.Pt(wingMargin, l.Width+wingMargin)
}
