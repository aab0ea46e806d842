package model

import "strings"

// Color identifies one of the four wings/buttons.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
)

// ColorCount is the number of playable colors.
const ColorCount = 4

// Colors lists every color in button scan priority order.
var Colors = [ColorCount]Color{Red, Blue, Green, Yellow}

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	case Green:
		return "GREEN"
	case Yellow:
		return "YELLOW"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether c is one of the four colors.
func (c Color) Valid() bool { return c < ColorCount }

// ParseColor accepts a color name in any case.
func ParseColor(s string) (Color, bool) {
	for _, c := range Colors {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, true
		}
	}
	return 0, false
}
