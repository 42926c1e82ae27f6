package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

func TestNewInputSystem(t *testing.T) {
	sys := NewInputSystem()
	require.NotNil(t, sys)
}

func TestInputSystem_Push(t *testing.T) {
	sys := NewInputSystem()

	t.Run("converts to NDC", func(t *testing.T) {
		q := input.NewQueue()
		sys.Push(q, InputState{Presses: []Press{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 800, Y: 600}}}, 800, 600)

		got := q.Drain()
		require.Len(t, got, 3)
		assert.Equal(t, geom.NewPoint(-1, 1), got[0])
		assert.Equal(t, geom.NewPoint(0, 0), got[1])
		assert.Equal(t, geom.NewPoint(1, -1), got[2])
	})

	t.Run("drops presses outside the viewport", func(t *testing.T) {
		q := input.NewQueue()
		sys.Push(q, InputState{Presses: []Press{{X: -1, Y: 10}, {X: 10, Y: 601}, {X: 10, Y: 10}}}, 800, 600)

		assert.Equal(t, 1, q.Len())
	})

	t.Run("no presses", func(t *testing.T) {
		q := input.NewQueue()
		sys.Push(q, InputState{}, 800, 600)

		assert.Equal(t, 0, q.Len())
	})
}
