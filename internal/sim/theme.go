package sim

import (
	"image/color"

	"github.com/ingyamilmolinar/shimon/core/model"
)

var (
	colBackground = color.RGBA{10, 10, 10, 255}
	colStatusBar  = color.RGBA{25, 25, 35, 255}
	colBorder     = color.RGBA{80, 80, 80, 255}
	colServiceOn  = color.RGBA{255, 160, 0, 255}
	colServiceOff = color.RGBA{50, 35, 10, 255}

	wingOn = [model.ColorCount]color.RGBA{
		model.Red:    {240, 40, 40, 255},
		model.Blue:   {40, 90, 240, 255},
		model.Green:  {40, 220, 70, 255},
		model.Yellow: {250, 220, 40, 255},
	}
)

// dim darkens an unlit wing.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 5, c.G / 5, c.B / 5, c.A}
}
