package sim

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/shimon/core/model"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
	}
}

// KeyMap assigns a keyboard key to each button.
type KeyMap [model.ColorCount]ebiten.Key

func DefaultKeyMap() KeyMap {
	return KeyMap{
		model.Red:    ebiten.KeyQ,
		model.Blue:   ebiten.KeyW,
		model.Green:  ebiten.KeyA,
		model.Yellow: ebiten.KeyS,
	}
}

// ParseKeyMap resolves key names such as "Q" or "ArrowUp", in color order.
func ParseKeyMap(names [model.ColorCount]string) (KeyMap, error) {
	var km KeyMap
	for _, c := range model.Colors {
		if err := km[c].UnmarshalText([]byte(names[c])); err != nil {
			return KeyMap{}, fmt.Errorf("key for %s: %w", c, err)
		}
	}
	return km, nil
}

// Pins reads the four buttons from the keyboard, or from a left click held
// on a button lamp. It implements input.PinReader.
type Pins struct {
	keys   KeyMap
	layout Layout
}

func NewPins(keys KeyMap, layout Layout) *Pins {
	return &Pins{keys: keys, layout: layout}
}

func (p *Pins) Pressed(c model.Color) bool {
	if !c.Valid() {
		return false
	}
	if isKeyPressed(p.keys[c]) {
		return true
	}
	if !isMouseButtonPressed(ebiten.MouseButtonLeft) {
		return false
	}
	x, y := cursorPosition()
	return image.Pt(x, y).In(p.layout.Button(c))
}
