package state

// Score counts hits. It only increases.
type Score struct {
	value    uint64
	previous uint64
}

// Add increments the score and returns the new value
func (s *Score) Add() uint64 {
	s.value++
	return s.value
}

// Value returns the current score
func (s *Score) Value() uint64 {
	return s.value
}

// Even snapshots the current value. It reports whether the value changed
// since the last snapshot.
func (s *Score) Even() bool {
	changed := s.value != s.previous
	s.previous = s.value
	return changed
}

// Previous returns the value at the last Even
func (s *Score) Previous() uint64 {
	return s.previous
}
