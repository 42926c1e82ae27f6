package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 640, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, ModeSettle, cfg.Round.Mode)
	assert.Equal(t, 0.75, cfg.Round.SettleTime)
	assert.Len(t, cfg.Slots, 6)
	assert.Len(t, cfg.Dynamic, 4)
	assert.Equal(t, "target", cfg.Dynamic[0].Texture)

	require.Len(t, cfg.Static, 1)
	require.NotNil(t, cfg.Static[0].Scale)
	assert.Equal(t, float32(0.1), cfg.Static[0].Scale.Y)
	assert.Equal(t, float32(-0.9), cfg.Static[0].Translation.Y)

	target, ok := cfg.Textures["target"]
	require.True(t, ok)
	assert.Equal(t, "checker", target.Kind)
	assert.Equal(t, RGBA{230, 57, 70, 255}, target.Colors[0])
	assert.Equal(t, RGBA{29, 29, 36, 255}, cfg.Background)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Game)
}

func TestLoader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{}, ".")
		_, err := loader.LoadGame()
		assert.ErrorContains(t, err, "failed to read game.json")
	})

	t.Run("bad json", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{"game.json": {Data: []byte("{")}}, ".")
		_, err := loader.LoadGame()
		assert.ErrorContains(t, err, "failed to parse game.json")
	})

	t.Run("invalid settings", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{"game.json": {Data: []byte(`{"display":{"screenWidth":1}}`)}}, ".")
		_, err := loader.LoadAll()
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func validSettings() *GameSettings {
	return &GameSettings{
		Display: DisplayConfig{ScreenWidth: 100, ScreenHeight: 100, Framerate: 60},
		Round:   RoundConfig{Mode: ModeSettle, SettleTime: 1},
		Scale:   Vec2{X: 0.25, Y: 0.25},
		Slots:   []Vec2{{X: -0.5}, {X: 0.5}},
		Dynamic: []ShapeConfig{{Kind: "square", Texture: "red"}},
		Static: []StaticShapeConfig{
			{ShapeConfig: ShapeConfig{Kind: "square", Texture: "red"}},
		},
		Textures: map[string]TextureConfig{
			"red": {Kind: "solid", Width: 1, Height: 1, Colors: []RGBA{{255, 0, 0, 255}}},
		},
	}
}

func TestGameSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *GameSettings)
		valid  bool
	}{
		{"valid", func(g *GameSettings) {}, true},
		{"default mode", func(g *GameSettings) { g.Round.Mode = "" }, true},
		{"timed", func(g *GameSettings) { g.Round = RoundConfig{Mode: ModeTimed, Duration: 2} }, true},
		{"timed without duration", func(g *GameSettings) { g.Round = RoundConfig{Mode: ModeTimed, SettleTime: 1} }, false},
		{"zero settle time", func(g *GameSettings) { g.Round.SettleTime = 0 }, false},
		{"unknown mode", func(g *GameSettings) { g.Round.Mode = "endless" }, false},
		{"zero width", func(g *GameSettings) { g.Display.ScreenWidth = 0 }, false},
		{"zero framerate", func(g *GameSettings) { g.Display.Framerate = 0 }, false},
		{"no slots", func(g *GameSettings) { g.Slots = nil }, false},
		{"no dynamic shapes", func(g *GameSettings) { g.Dynamic = nil }, false},
		{"more shapes than slots", func(g *GameSettings) {
			g.Dynamic = append(g.Dynamic, g.Dynamic[0], g.Dynamic[0])
		}, false},
		{"unknown kind", func(g *GameSettings) { g.Dynamic[0].Kind = "hexagon" }, false},
		{"unknown texture", func(g *GameSettings) { g.Static[0].Texture = "blue" }, false},
		{"bad texture", func(g *GameSettings) {
			g.Textures["red"] = TextureConfig{Kind: "checker", Width: 1, Height: 1}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validSettings()
			tt.mutate(g)
			err := g.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestRGBA_Color(t *testing.T) {
	c := RGBA{1, 2, 3, 4}.Color()
	assert.Equal(t, uint8(1), c.R)
	assert.Equal(t, uint8(4), c.A)
}
