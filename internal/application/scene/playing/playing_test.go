package playing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tapgame/internal/application/replay"
	"github.com/younwookim/tapgame/internal/application/scene"
	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// createTestConfig loads the shipped config
func createTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	return cfg
}

func TestPlaying_ImplementsScene(t *testing.T) {
	// Compile-time check that Playing implements scene.Scene
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	cfg := createTestConfig(t)

	p, err := New(cfg, Options{Seed: 5})
	require.NoError(t, err)

	assert.NotNil(t, p.session)
	assert.Equal(t, uint64(5), p.Seed())
	assert.InDelta(t, 1.0/60, p.dt, 1e-12)
	assert.Nil(t, p.recorder)
	assert.Nil(t, p.replayer)
}

func TestNewPlaying_InvalidFragment(t *testing.T) {
	_, err := New(createTestConfig(t), Options{Seed: 1, Fragment: []byte("package main\n\nfunc Fragment( {")})
	require.Error(t, err)
	assert.ErrorIs(t, err, gpu.ErrCompile)
}

func TestNewPlaying_SeedFromClock(t *testing.T) {
	p, err := New(createTestConfig(t), Options{})
	require.NoError(t, err)
	assert.NotZero(t, p.Seed())
}

func TestPlaying_Update_ReturnsNilWhenPlaying(t *testing.T) {
	p, err := New(createTestConfig(t), Options{Seed: 1})
	require.NoError(t, err)

	// Normal update should return nil (stay on same scene)
	next, err := p.Update(1.0 / 60.0)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
	assert.Equal(t, 1, p.session.Frame())
}

func TestPlaying_OnEnter(t *testing.T) {
	p, err := New(createTestConfig(t), Options{Seed: 1})
	require.NoError(t, err)

	// OnEnter should not panic
	assert.NotPanics(t, func() {
		p.OnEnter()
	})
}

func TestPlaying_WithRecorder(t *testing.T) {
	cfg := createTestConfig(t)
	path := filepath.Join(t.TempDir(), "replay.json")

	p, err := New(cfg, Options{Seed: 9, RecordPath: path})
	require.NoError(t, err)
	require.NotNil(t, p.recorder)

	require.NoError(t, p.step())
	p.queue.Push(geom.NewPoint(0, 0))
	require.NoError(t, p.step())

	assert.Equal(t, 2, p.recorder.FrameCount())
	assert.Len(t, p.recorder.GetData().Frames, 1)

	// OnExit saves the recording
	p.OnExit()
	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), data.Seed)
	assert.Equal(t, 2, data.Length)

	// a closed recording is not written again or extended
	require.NoError(t, os.Remove(path))
	require.NoError(t, p.step())
	p.OnExit()
	assert.NoFileExists(t, path)
	assert.False(t, p.recorder.IsRecording())
	assert.Equal(t, 2, p.recorder.FrameCount())
}

func TestPlaying_ReplayReproducesScore(t *testing.T) {
	cfg := createTestConfig(t)

	live, err := New(cfg, Options{Seed: 1234, RecordPath: filepath.Join(t.TempDir(), "r.json")})
	require.NoError(t, err)

	// settle, then press the landed center of the target every few frames
	sc := live.session.Scene()
	for frame := 0; frame < 240; frame++ {
		if frame%20 == 19 {
			slot := cfg.Game.Slots[sc.TransformIndices()[0]]
			live.queue.Push(geom.NewPoint(slot.X, slot.Y))
		}
		require.NoError(t, live.step())
	}
	require.Greater(t, live.session.Score(), uint64(0))

	data := live.recorder.GetData()
	replayed, err := New(cfg, Options{Replay: &data})
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), replayed.Seed())

	for i := 0; i < data.Length; i++ {
		require.NoError(t, replayed.step())
	}
	assert.Equal(t, live.session.Score(), replayed.session.Score())
	assert.Equal(t, sc.TransformIndices(), replayed.session.Scene().TransformIndices())

	// further steps after the end of the replay are no-ops
	require.NoError(t, replayed.step())
	assert.True(t, replayed.replayDone)
	assert.Equal(t, data.Length, replayed.session.Frame())
}

func TestPlaying_Layout(t *testing.T) {
	cfg := createTestConfig(t)
	p, err := New(cfg, Options{Seed: 1})
	require.NoError(t, err)

	w, h := p.Layout(1920, 1080)
	assert.Equal(t, cfg.Game.Display.ScreenWidth, w)
	assert.Equal(t, cfg.Game.Display.ScreenHeight, h)
}
