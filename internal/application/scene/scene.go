// Package scene defines the screens the frame driver switches between.
//
// The tap round (scene/playing) is one Scene; live play and replay
// playback are both the same scene with different input sources.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game, driven once per tick by game.Game.
//
// Update advances the screen by a fixed dt and may hand over to another
// Scene; Draw presents the most recent update.
type Scene interface {
	// Update advances the scene by dt seconds (1/framerate).
	// A non-nil next replaces the current scene; an error stops the game.
	Update(dt float64) (next Scene, err error)

	// Draw presents the scene on screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game closes.
	// Recordings are flushed here.
	OnExit()
}
