package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateInitial, "Initial"},
		{StateDone, "Done"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, State(0), StateInitial)
	assert.Equal(t, State(1), StateDone)
}

func TestScore(t *testing.T) {
	var s Score
	assert.Equal(t, uint64(0), s.Value())
	assert.False(t, s.Even())

	assert.Equal(t, uint64(1), s.Add())
	assert.Equal(t, uint64(2), s.Add())
	assert.Equal(t, uint64(0), s.Previous())

	assert.True(t, s.Even())
	assert.Equal(t, uint64(2), s.Previous())
	assert.False(t, s.Even())
}

func TestRoundTimer(t *testing.T) {
	timer := NewRoundTimer(1.0)
	assert.Equal(t, 1.0, timer.Remaining())

	assert.False(t, timer.Tick(0.4))
	assert.InDelta(t, 0.6, timer.Remaining(), 1e-9)

	assert.True(t, timer.Tick(0.7))
	assert.Equal(t, 0.0, timer.Remaining())
	assert.True(t, timer.Expired())

	// stays expired without firing again
	assert.False(t, timer.Tick(0.1))

	timer.Reset()
	assert.Equal(t, 1.0, timer.Remaining())
	assert.False(t, timer.Expired())
}

func TestRoundTimer_Clamp(t *testing.T) {
	timer := NewRoundTimer(2.0)
	assert.False(t, timer.Tick(-5))
	assert.Equal(t, 2.0, timer.Remaining())

	negative := NewRoundTimer(-1)
	assert.Equal(t, 0.0, negative.Duration())
	assert.True(t, negative.Expired())
}
