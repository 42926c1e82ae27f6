// Command replaycheck plays a recorded replay on the software device and
// verifies the final score matches the recording.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/application/render"
	"github.com/younwookim/tapgame/internal/application/replay"
	"github.com/younwookim/tapgame/internal/application/round"
	"github.com/younwookim/tapgame/internal/domain/random"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu/soft"
)

// ErrScoreMismatch is returned when a replay ends with a different score
var ErrScoreMismatch = errors.New("score mismatch")

// Result summarizes one replay run
type Result struct {
	Frames   int
	Score    uint64
	Recorded uint64
	Slots    []int
}

// verify replays data against cfg and compares the final score
func verify(cfg *config.GameSettings, data *replay.ReplayData) (Result, error) {
	settings := *cfg
	if data.Timed {
		settings.Round.Mode = config.ModeTimed
	} else {
		settings.Round.Mode = config.ModeSettle
	}
	dt := data.DT
	if dt <= 0 {
		dt = 1.0 / float64(settings.Display.Framerate)
	}

	sc, err := round.NewSceneFromConfig(soft.New(), &settings, random.New(data.Seed), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build scene: %w", err)
	}

	queue := input.NewQueue()
	session := round.NewSession(sc, queue, nil, round.SessionOptions{})
	player := replay.NewReplayer(*data)
	for player.Feed(queue) {
		if err := session.Run(dt); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Frames:   session.Frame(),
		Score:    session.Score(),
		Recorded: data.Score,
		Slots:    sc.TransformIndices(),
	}
	if res.Score != res.Recorded {
		return res, fmt.Errorf("%w: got %d, recorded %d", ErrScoreMismatch, res.Score, res.Recorded)
	}
	return res, nil
}

func main() {
	configFlag := flag.String("config", "cmd/game/configs", "Directory containing game.json")
	verboseFlag := flag.Bool("v", false, "Log round events")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replaycheck [-config dir] [-v] replay.json")
		os.Exit(2)
	}

	if *verboseFlag {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		render.SetLogger(slog.New(h))
		round.SetLogger(slog.New(h))
	}

	cfg, err := config.NewLoader(*configFlag).LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	data, err := replay.LoadReplay(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}

	res, err := verify(cfg.Game, data)
	if err != nil {
		log.Fatalf("Replay failed after %d frames: %v", res.Frames, err)
	}
	log.Printf("OK: %d frames, score %d, slots %v", res.Frames, res.Score, res.Slots)
}
