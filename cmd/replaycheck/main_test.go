package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/application/replay"
	"github.com/younwookim/tapgame/internal/application/round"
	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/domain/random"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu/soft"
)

func loadSettings(t *testing.T) *config.GameSettings {
	t.Helper()
	cfg, err := config.NewLoader("../game/configs").LoadAll()
	require.NoError(t, err)
	return cfg.Game
}

// record plays frames live, pressing on the target's slot every 20 frames
func record(t *testing.T, cfg *config.GameSettings, seed uint64, frames int) *replay.Recorder {
	t.Helper()
	dt := 1.0 / float64(cfg.Display.Framerate)

	sc, err := round.NewSceneFromConfig(soft.New(), cfg, random.New(seed), nil)
	require.NoError(t, err)

	rec := replay.NewRecorder(seed, dt, cfg.Timed())
	queue := input.NewQueue()
	session := round.NewSession(sc, queue, nil, round.SessionOptions{Recorder: rec})

	for f := 0; f < frames; f++ {
		if f%20 == 19 {
			slot := cfg.Slots[sc.TransformIndices()[0]]
			queue.Push(geom.NewPoint(slot.X, slot.Y))
		}
		require.NoError(t, session.Run(dt))
	}
	rec.SetScore(session.Score())
	return rec
}

func recordData(t *testing.T, cfg *config.GameSettings, seed uint64, frames int) *replay.ReplayData {
	t.Helper()
	data := record(t, cfg, seed, frames).GetData()
	return &data
}

func TestVerify_Matches(t *testing.T) {
	cfg := loadSettings(t)
	data := recordData(t, cfg, 42, 240)
	require.Greater(t, data.Score, uint64(0), "recording should score")

	res, err := verify(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, 240, res.Frames)
	assert.Equal(t, data.Score, res.Score)
	assert.Len(t, res.Slots, len(cfg.Dynamic))
}

func TestVerify_SavedFile(t *testing.T) {
	cfg := loadSettings(t)
	rec := record(t, cfg, 7, 180)

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, rec.Save(path))

	loaded, err := replay.LoadReplay(path)
	require.NoError(t, err)

	res, err := verify(cfg, loaded)
	require.NoError(t, err)
	assert.Equal(t, rec.GetData().Score, res.Score)
	assert.Equal(t, 180, res.Frames)
}

func TestVerify_Mismatch(t *testing.T) {
	cfg := loadSettings(t)
	data := recordData(t, cfg, 42, 240)
	data.Score += 5

	res, err := verify(cfg, data)
	assert.ErrorIs(t, err, ErrScoreMismatch)
	assert.Equal(t, data.Score-5, res.Score)
}

func TestVerify_DoesNotMutateConfig(t *testing.T) {
	cfg := loadSettings(t)
	mode := cfg.Round.Mode
	data := &replay.ReplayData{Version: replay.Version, Seed: 1, Timed: true, DT: 1.0 / 60, Length: 10}

	_, err := verify(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, mode, cfg.Round.Mode)
}
