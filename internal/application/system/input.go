package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

// InputSystem turns pointer presses into NDC points on an input.Queue
type InputSystem struct {
	touches []ebiten.TouchID
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Press is one pointer press in screen pixels
type Press struct {
	X, Y int
}

// InputState holds the presses of the current tick
type InputState struct {
	Presses []Press
}

// GetInput reads the presses that started this tick
func (s *InputSystem) GetInput() InputState {
	var st InputState

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		st.Presses = append(st.Presses, Press{X: mx, Y: my})
	}

	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	for _, id := range s.touches {
		tx, ty := ebiten.TouchPosition(id)
		st.Presses = append(st.Presses, Press{X: tx, Y: ty})
	}

	return st
}

// Push converts the presses to NDC for a w x h viewport and queues them.
// Presses outside the viewport are dropped.
func (s *InputSystem) Push(q *input.Queue, st InputState, w, h int) {
	for _, p := range st.Presses {
		if p.X < 0 || p.Y < 0 || p.X > w || p.Y > h {
			continue
		}
		q.Push(geom.FromScreen(p.X, p.Y, w, h))
	}
}

// Capture polls ebiten and queues this tick's presses
func (s *InputSystem) Capture(q *input.Queue, w, h int) InputState {
	st := s.GetInput()
	s.Push(q, st, w, h)
	return st
}
