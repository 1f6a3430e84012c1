package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/desktopcharacters/platform"
)

// Pointer reads the cursor from ebiten. The overlay covers the whole monitor,
// so window coordinates are screen coordinates.
type Pointer struct{}

func (Pointer) Pointer() platform.Pointer {
	x, y := ebiten.CursorPosition()
	return platform.Pointer{
		X:    float64(x),
		Y:    float64(y),
		Held: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}
