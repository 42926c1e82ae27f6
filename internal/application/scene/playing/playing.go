// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/tapgame/internal/application/hud"
	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/application/replay"
	"github.com/younwookim/tapgame/internal/application/round"
	"github.com/younwookim/tapgame/internal/application/scene"
	"github.com/younwookim/tapgame/internal/application/system"
	"github.com/younwookim/tapgame/internal/domain/random"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu/ebitengpu"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu/soft"
)

var colorPause = color.RGBA{0, 0, 0, 128}

// Options configures a Playing scene
type Options struct {
	// Seed for the slot shuffle; zero seeds from the clock
	Seed uint64
	// RecordPath enables recording when not empty
	RecordPath string
	// Replay plays recorded presses instead of live input
	Replay *replay.ReplayData
	// Fragment overrides the Kage fragment stage of both renderers
	Fragment []byte
}

// Playing is the main gameplay scene
type Playing struct {
	config      *config.GameConfig
	session     *round.Session
	queue       *input.Queue
	overlay     *hud.TextOverlay
	presenter   *ebitengpu.Presenter
	inputSystem *system.InputSystem
	screenW     int
	screenH     int
	dt          float64
	paused      bool
	seed        uint64

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	// Playback
	replayer   *replay.Replayer
	replayDone bool

	presentFailed bool
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, opts Options) (*Playing, error) {
	display := cfg.Game.Display
	dt := 1.0 / float64(display.Framerate)

	seed := opts.Seed
	if opts.Replay != nil {
		seed = opts.Replay.Seed
		if opts.Replay.DT > 0 {
			dt = opts.Replay.DT
		}
	}
	var rng *random.Xorshift
	if seed == 0 {
		rng = random.NewFromTime()
	} else {
		rng = random.New(seed)
	}

	dev := soft.New()
	sc, err := round.NewSceneFromConfig(dev, cfg.Game, rng, opts.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	presenter := ebitengpu.NewPresenter(dev, slog.Default())
	if err := presenter.Compile(); err != nil {
		return nil, fmt.Errorf("failed to compile shaders: %w", err)
	}

	p := &Playing{
		config:         cfg,
		queue:          input.NewQueue(),
		overlay:        hud.NewTextOverlay(),
		presenter:      presenter,
		inputSystem:    system.NewInputSystem(),
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		dt:             dt,
		seed:           rng.Seed(),
		recordFilename: opts.RecordPath,
	}

	var sessOpts round.SessionOptions
	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(p.seed, dt, cfg.Game.Timed())
		sessOpts.Recorder = p.recorder
		log.Printf("Recording enabled: %s (seed: %d)", opts.RecordPath, p.seed)
	}
	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		log.Printf("Replaying %d frames (seed: %d)", p.replayer.TotalFrames(), p.seed)
	}

	p.session = round.NewSession(sc, p.queue, p.overlay, sessOpts)
	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.paused = !p.paused
	}
	if p.paused {
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	if p.replayer == nil {
		p.inputSystem.Capture(p.queue, p.screenW, p.screenH)
	}

	return nil, p.step()
}

// step runs one frame of the session
func (p *Playing) step() error {
	if p.replayer != nil && !p.replayer.Feed(p.queue) {
		if !p.replayDone {
			p.replayDone = true
			log.Printf("Replay finished: score %d (recorded %d)", p.session.Score(), p.replayer.Data().Score)
		}
		return nil
	}

	if err := p.session.Run(p.dt); err != nil {
		return err
	}
	if p.recorder != nil && p.recorder.IsRecording() {
		p.recorder.SetScore(p.session.Score())
	}
	return nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		data := p.recorder.GetData()
		log.Printf("Recording saved: %s (%d frames, %d presses, score %d)", filename, p.recorder.FrameCount(), len(data.Frames), data.Score)
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	if err := p.presenter.Present(screen); err != nil && !p.presentFailed {
		p.presentFailed = true
		log.Printf("Failed to present frame: %v", err)
	}

	p.overlay.Draw(screen)
	p.drawUI(screen)

	if p.paused {
		p.drawPauseOverlay(screen)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	controls := "LClick: Hit the target | ESC: Pause"
	if p.recorder != nil {
		controls += " | F5: Save replay"
	}
	if p.replayer != nil {
		controls = fmt.Sprintf("Replay %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrintAt(screen, controls, 10, p.screenH-20)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorPause)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit saves and closes the recording
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// Session returns the running session
func (p *Playing) Session() *round.Session {
	return p.session
}

// Seed returns the seed the round shuffle was started with
func (p *Playing) Seed() uint64 {
	return p.seed
}
