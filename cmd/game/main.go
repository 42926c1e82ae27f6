package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tapgame/internal/application/game"
	"github.com/younwookim/tapgame/internal/application/render"
	"github.com/younwookim/tapgame/internal/application/replay"
	"github.com/younwookim/tapgame/internal/application/round"
	"github.com/younwookim/tapgame/internal/application/scene/playing"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// loadConfig reads game.json from dir, or from the embedded configs when dir is empty
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

// applyReplay makes cfg match the round settings a replay was recorded with
func applyReplay(cfg *config.GameConfig, data *replay.ReplayData) {
	if data == nil {
		return
	}
	if data.Timed {
		cfg.Game.Round.Mode = config.ModeTimed
	} else {
		cfg.Game.Round.Mode = config.ModeSettle
	}
}

// runGame runs g with run and exits the current scene however the run ends
func runGame(g *game.Game, run func(ebiten.Game) error) error {
	defer g.Close()
	return run(g)
}

func main() {
	// Parse command line flags
	configFlag := flag.String("config", "", "Directory containing game.json (default: embedded)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay file")
	seedFlag := flag.Uint64("seed", 0, "Seed for the slot shuffle (0: from clock)")
	timedFlag := flag.Bool("timed", false, "Run the timed round variant")
	verboseFlag := flag.Bool("v", false, "Log render and round events")
	flag.Parse()

	if *verboseFlag {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	render.SetLogger(slog.Default())
	round.SetLogger(slog.Default())

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *timedFlag {
		cfg.Game.Round.Mode = config.ModeTimed
	}

	opts := playing.Options{
		Seed:       *seedFlag,
		RecordPath: *recordFlag,
	}
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		applyReplay(cfg, data)
		opts.Replay = data
	}

	play, err := playing.New(cfg, opts)
	if err != nil {
		log.Fatalf("Failed to start round: %v", err)
	}

	display := cfg.Game.Display
	g := game.New(play, display.ScreenWidth, display.ScreenHeight, display.Framerate)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := runGame(g, ebiten.RunGame); err != nil {
		log.Fatal(err)
	}
}
