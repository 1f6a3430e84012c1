package sim

import (
	"github.com/google/uuid"

	"github.com/milk9111/desktopcharacters/character"
)

// Queue is a FIFO drained once per step. A positive limit keeps only the
// newest items.
type Queue[T any] struct {
	items []T
	limit int
}

func NewQueue[T any](limit int) *Queue[T] {
	return &Queue[T]{limit: limit}
}

func (q *Queue[T]) Push(item T) {
	if q == nil {
		return
	}
	q.items = append(q.items, item)
	if q.limit > 0 && len(q.items) > q.limit {
		q.items = append(q.items[:0], q.items[len(q.items)-q.limit:]...)
	}
}

// Drain returns all items and clears the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// PointerKind identifies window event types.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerUp
	PointerMove
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	default:
		return "unknown"
	}
}

// WindowEvent is pointer input from the window layer, in screen pixels.
type WindowEvent struct {
	Kind PointerKind
	X    float64
	Y    float64
}

// CollisionEvent is emitted for every contact resolved during a step.
type CollisionEvent struct {
	Character uuid.UUID
	Index     int
	Step      uint64
	Contact   character.Contact
}
