package round

import (
	"fmt"
	"image"

	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/domain/random"
	"github.com/younwookim/tapgame/internal/domain/transform"
	"github.com/younwookim/tapgame/internal/infrastructure/assets"
	"github.com/younwookim/tapgame/internal/infrastructure/config"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// NewSceneFromConfig builds and uploads a scene described by game.json
func NewSceneFromConfig(dev gpu.Device, cfg *config.GameSettings, rng *random.Xorshift, fragment []byte) (*Scene, error) {
	textures := make(map[string]*image.RGBA, len(cfg.Textures))
	for name, tc := range cfg.Textures {
		img, err := assets.Generate(tc.Kind, tc.Width, tc.Height, tc.Cell, tc.ColorList())
		if err != nil {
			return nil, fmt.Errorf("failed to generate texture %q: %w", name, err)
		}
		textures[name] = img
	}

	opts := SceneOptions{
		Mode:       ModeSettle,
		SettleTime: cfg.Round.SettleTime,
		Duration:   cfg.Round.Duration,
		Scale:      transform.New(cfg.Scale.X, cfg.Scale.Y),
		Textures:   textures,
		Background: cfg.Background.Color(),
		Fragment:   fragment,
		Rand:       rng,
	}
	if cfg.Timed() {
		opts.Mode = ModeTimed
	}
	for _, s := range cfg.Slots {
		opts.Slots = append(opts.Slots, transform.New(s.X, s.Y))
	}

	scene, err := NewScene(dev, opts)
	if err != nil {
		return nil, err
	}

	for i, sc := range cfg.Dynamic {
		shape, err := geom.ShapeByName(sc.Kind, sc.Texture)
		if err != nil {
			return nil, fmt.Errorf("dynamic shape %d: %w", i, err)
		}
		if _, err := scene.AddDynamicShape(shape); err != nil {
			return nil, fmt.Errorf("dynamic shape %d: %w", i, err)
		}
	}
	for i, sc := range cfg.Static {
		shape, err := geom.ShapeByName(sc.Kind, sc.Texture)
		if err != nil {
			return nil, fmt.Errorf("static shape %d: %w", i, err)
		}
		scale := transform.New(1, 1)
		if sc.Scale != nil {
			scale = transform.New(sc.Scale.X, sc.Scale.Y)
		}
		translation := transform.New(sc.Translation.X, sc.Translation.Y)
		if _, err := scene.AddPlacedStaticShape(shape, scale, translation); err != nil {
			return nil, fmt.Errorf("static shape %d: %w", i, err)
		}
	}

	if err := scene.UpdateRenders(); err != nil {
		return nil, fmt.Errorf("failed to upload shapes: %w", err)
	}

	Logger().Info("scene ready",
		"dynamic", scene.NumDynamic(), "static", scene.NumStatic(), "slots", len(opts.Slots), "seed", scene.Seed())
	return scene, nil
}
