// Package platform describes what the simulation needs from the host: the
// screen size, the list of other windows and the pointer.
package platform

import "errors"

var (
	ErrUnknownWindow = errors.New("platform: unknown window")
	ErrInvalidScreen = errors.New("platform: invalid screen size")
)

// Window is a top-level window in screen pixels. Lists of windows are ordered
// front to back.
type Window struct {
	ID    uint64 `yaml:"id"`
	Title string `yaml:"title"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	W     int    `yaml:"w"`
	H     int    `yaml:"h"`
}

// Empty reports a window without area.
func (w Window) Empty() bool {
	return w.W <= 0 || w.H <= 0
}

// Pointer is the pointer position in screen pixels and the primary button
// state.
type Pointer struct {
	X    float64
	Y    float64
	Held bool
}

type WindowSource interface {
	ScreenSize() (w, h int)
	Windows() []Window
}

type PointerSource interface {
	Pointer() Pointer
}

type Platform interface {
	WindowSource
	PointerSource
}

type composed struct {
	WindowSource
	PointerSource
}

// Compose joins independent window and pointer sources.
func Compose(windows WindowSource, pointer PointerSource) Platform {
	return composed{WindowSource: windows, PointerSource: pointer}
}
