// Package game drives the current scene from ebiten's fixed-rate loop.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tapgame/internal/application/scene"
)

// DefaultFramerate is used when a non-positive framerate is given
const DefaultFramerate = 60

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  uint64
}

// New creates a new Game with the given initial scene, advancing it by
// 1/framerate seconds per update. The initial scene's OnEnter is called
// immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = DefaultFramerate
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	g.frames++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the current scene, letting it flush its state
func (g *Game) Close() {
	g.current.OnExit()
}

// DT returns the fixed delta time passed to scenes
func (g *Game) DT() float64 {
	return g.dt
}

// Frames returns the number of successful updates
func (g *Game) Frames() uint64 {
	return g.frames
}
