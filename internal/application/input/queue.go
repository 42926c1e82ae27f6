// Package input buffers pointer presses between the input side and the frame loop.
package input

import (
	"sync"

	"github.com/younwookim/tapgame/internal/domain/geom"
)

// Queue holds pending presses in NDC. Safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	pending []geom.Point
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a press
func (q *Queue) Push(p geom.Point) {
	q.mu.Lock()
	q.pending = append(q.pending, p)
	q.mu.Unlock()
}

// TakeLatest returns the most recent press and discards all older ones
func (q *Queue) TakeLatest() (geom.Point, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return geom.Point{}, false
	}
	p := q.pending[len(q.pending)-1]
	q.pending = q.pending[:0]
	return p, true
}

// Drain returns every pending press in push order and empties the queue
func (q *Queue) Drain() []geom.Point {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := make([]geom.Point, len(q.pending))
	copy(out, q.pending)
	q.pending = q.pending[:0]
	return out
}

// Len returns the number of pending presses
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
