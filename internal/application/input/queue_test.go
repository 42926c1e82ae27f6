package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

func TestQueue_TakeLatest(t *testing.T) {
	q := NewQueue()

	_, ok := q.TakeLatest()
	assert.False(t, ok)

	q.Push(geom.NewPoint(0.1, 0.1))
	q.Push(geom.NewPoint(0.2, 0.2))
	q.Push(geom.NewPoint(0.3, 0.3))

	p, ok := q.TakeLatest()
	require.True(t, ok)
	assert.Equal(t, geom.NewPoint(0.3, 0.3), p)

	// older presses were discarded
	assert.Equal(t, 0, q.Len())
	_, ok = q.TakeLatest()
	assert.False(t, ok)
}

func TestQueue_Drain(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.Drain())

	q.Push(geom.NewPoint(-1, 1))
	q.Push(geom.NewPoint(1, -1))

	got := q.Drain()
	assert.Equal(t, []geom.Point{geom.NewPoint(-1, 1), geom.NewPoint(1, -1)}, got)
	assert.Equal(t, 0, q.Len())

	// drained slice does not alias the queue
	q.Push(geom.NewPoint(0, 0))
	assert.Equal(t, geom.NewPoint(-1, 1), got[0])
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				q.Push(geom.NewPoint(0, 0))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, q.Len())
	assert.Len(t, q.Drain(), 800)
}
