package config

import "image/color"

// Round modes
const (
	ModeSettle = "settle"
	ModeTimed  = "timed"
)

// GameSettings is the root config for game.json
type GameSettings struct {
	Display    DisplayConfig            `json:"display"`
	Round      RoundConfig              `json:"round"`
	Scale      Vec2                     `json:"scale"`
	Slots      []Vec2                   `json:"slots"`
	Dynamic    []ShapeConfig            `json:"dynamic"`
	Static     []StaticShapeConfig      `json:"static"`
	Textures   map[string]TextureConfig `json:"textures"`
	Background RGBA                     `json:"background"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title"`
}

// RoundConfig selects how a round settles
type RoundConfig struct {
	Mode       string  `json:"mode"`       // "settle" or "timed"
	SettleTime float64 `json:"settleTime"` // seconds, settle mode
	Duration   float64 `json:"duration"`   // seconds, timed mode
}

// Vec2 is an x,y pair in NDC
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type ShapeConfig struct {
	Kind    string `json:"kind"`
	Texture string `json:"texture"`
}

// StaticShapeConfig is a background shape. A missing scale means 1,1.
type StaticShapeConfig struct {
	ShapeConfig
	Scale       *Vec2 `json:"scale,omitempty"`
	Translation Vec2  `json:"translation"`
}

type TextureConfig struct {
	Kind   string `json:"kind"` // "solid" or "checker"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cell   int    `json:"cell"`
	Colors []RGBA `json:"colors"`
}

// RGBA is a color written as [r, g, b, a]
type RGBA [4]uint8

// Color converts to image/color
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// ColorList converts every entry
func (t TextureConfig) ColorList() []color.Color {
	out := make([]color.Color, len(t.Colors))
	for i, c := range t.Colors {
		out[i] = c.Color()
	}
	return out
}
