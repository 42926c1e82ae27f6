package round

import (
	"fmt"

	"github.com/younwookim/tapgame/internal/application/hud"
	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/application/state"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

// FrameRecorder receives the presses drained on each frame
type FrameRecorder interface {
	RecordFrame(frame int, presses []geom.Point)
}

// SessionOptions configures a Session
type SessionOptions struct {
	Recorder FrameRecorder
}

// Session is the per-frame game loop around a Scene
type Session struct {
	scene    *Scene
	queue    *input.Queue
	overlay  hud.Overlay
	recorder FrameRecorder

	score state.Score
	frame int
}

// NewSession creates a session. A nil overlay discards updates.
func NewSession(scene *Scene, queue *input.Queue, overlay hud.Overlay, opts SessionOptions) *Session {
	if overlay == nil {
		overlay = nopOverlay{}
	}
	s := &Session{
		scene:    scene,
		queue:    queue,
		overlay:  overlay,
		recorder: opts.Recorder,
	}
	overlay.SetScore(0)
	return s
}

// Run advances the game by dt seconds: render, state update, then the
// most recent press is hit-tested against the first dynamic shape.
func (s *Session) Run(dt float64) error {
	before := s.scene.State()

	if err := s.scene.Render(dt); err != nil {
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}

	if s.scene.Mode() == ModeTimed {
		switch after := s.scene.State(); {
		case after == state.StateInitial:
			s.overlay.SetTime(s.scene.TimeRemaining())
		case before == state.StateInitial && after == state.StateDone:
			s.overlay.ClearTimer()
		}
	}

	if s.recorder != nil {
		presses := s.queue.Drain()
		s.recorder.RecordFrame(s.frame, presses)
		if len(presses) > 0 {
			s.handleInput(presses[len(presses)-1])
		}
	} else if p, ok := s.queue.TakeLatest(); ok {
		s.handleInput(p)
	}

	if s.score.Even() {
		s.overlay.SetScore(s.score.Value())
	}
	s.frame++
	return nil
}

func (s *Session) handleInput(p geom.Point) {
	if s.scene.State() != state.StateDone || !s.scene.IsDynamicHit(0, p) {
		return
	}

	s.scene.PermutateTransforms()
	s.scene.Reset()
	s.score.Add()

	Logger().Info("hit", "frame", s.frame, "score", s.score.Value(), "slots", s.scene.TransformIndices())
}

// Score returns the current score
func (s *Session) Score() uint64 {
	return s.score.Value()
}

// Frame returns the number of completed frames
func (s *Session) Frame() int {
	return s.frame
}

// Scene returns the session's scene
func (s *Session) Scene() *Scene {
	return s.scene
}

type nopOverlay struct{}

func (nopOverlay) SetScore(uint64) {}
func (nopOverlay) SetTime(float64) {}
func (nopOverlay) ClearTimer() {}
