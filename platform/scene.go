package platform

import "fmt"

// Scene is an in-memory platform. It serves the window list on hosts without
// a native binding and stands in for the host in tests.
type Scene struct {
	width   int
	height  int
	windows []Window
	pointer Pointer
}

func NewScene(width, height int, windows ...Window) (*Scene, error) {
	s := &Scene{}
	if err := s.SetScreenSize(width, height); err != nil {
		return nil, err
	}
	s.SetWindows(windows)
	return s, nil
}

func (s *Scene) ScreenSize() (int, int) {
	return s.width, s.height
}

func (s *Scene) SetScreenSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidScreen, width, height)
	}
	s.width, s.height = width, height
	return nil
}

// Windows returns a copy of the window list, front to back.
func (s *Scene) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

func (s *Scene) SetWindows(windows []Window) {
	s.windows = append(s.windows[:0:0], windows...)
}

func (s *Scene) Pointer() Pointer {
	return s.pointer
}

func (s *Scene) SetPointer(p Pointer) {
	s.pointer = p
}

// MoveWindow sets the top-left corner of the window with the given id.
func (s *Scene) MoveWindow(id uint64, x, y int) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("platform: move window %d: %w", id, ErrUnknownWindow)
	}
	s.windows[i].X, s.windows[i].Y = x, y
	return nil
}

// Raise moves the window with the given id to the front.
func (s *Scene) Raise(id uint64) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("platform: raise window %d: %w", id, ErrUnknownWindow)
	}
	w := s.windows[i]
	copy(s.windows[1:i+1], s.windows[:i])
	s.windows[0] = w
	return nil
}

func (s *Scene) index(id uint64) int {
	for i, w := range s.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}
