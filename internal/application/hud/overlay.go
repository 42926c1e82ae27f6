// Package hud draws the score and round timer over the scene.
package hud

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

// Overlay receives score and timer updates from the round
type Overlay interface {
	SetScore(score uint64)
	SetTime(remaining float64)
	ClearTimer()
}

// Label anchors in NDC
var (
	ScoreAnchor = geom.NewPoint(-0.95, 0.95)
	TimerAnchor = geom.NewPoint(0, 0.9)
)

// debug font cell size of ebitenutil.DebugPrint
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// TextOverlay renders the labels with the ebiten debug font
type TextOverlay struct {
	score     string
	timer     string
	showTimer bool
}

// NewTextOverlay creates an overlay showing a zero score
func NewTextOverlay() *TextOverlay {
	o := &TextOverlay{}
	o.SetScore(0)
	return o
}

// SetScore implements Overlay
func (o *TextOverlay) SetScore(score uint64) {
	o.score = fmt.Sprintf("Score = %d", score)
}

// SetTime implements Overlay
func (o *TextOverlay) SetTime(remaining float64) {
	o.timer = fmt.Sprintf("%.2f", remaining)
	o.showTimer = true
}

// ClearTimer implements Overlay
func (o *TextOverlay) ClearTimer() {
	o.timer = ""
	o.showTimer = false
}

// ScoreText returns the score label
func (o *TextOverlay) ScoreText() string {
	return o.score
}

// TimerText returns the timer label and whether it is shown
func (o *TextOverlay) TimerText() (string, bool) {
	return o.timer, o.showTimer
}

// Draw prints the labels onto screen
func (o *TextOverlay) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	x, y := labelOrigin(ScoreAnchor, o.score, false, w, h)
	ebitenutil.DebugPrintAt(screen, o.score, x, y)

	if o.showTimer {
		x, y = labelOrigin(TimerAnchor, o.timer, true, w, h)
		ebitenutil.DebugPrintAt(screen, o.timer, x, y)
	}
}

// labelOrigin returns the top-left pixel of a label anchored at an NDC point
func labelOrigin(anchor geom.Point, text string, centered bool, w, h int) (int, int) {
	fx, fy := anchor.ToScreen(w, h)
	x, y := int(fx), int(fy)
	if centered {
		x -= len(text) * glyphWidth / 2
	}
	return max(x, 0), max(y-glyphHeight/2, 0)
}
