package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/infrastructure/assets"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Validate checks the settings can build a scene
func (g *GameSettings) Validate() error {
	d := g.Display
	if d.ScreenWidth <= 0 || d.ScreenHeight <= 0 {
		return invalid("screen size %dx%d", d.ScreenWidth, d.ScreenHeight)
	}
	if d.Framerate <= 0 {
		return invalid("framerate %d", d.Framerate)
	}

	switch g.Round.Mode {
	case ModeSettle, "":
		if g.Round.SettleTime <= 0 {
			return invalid("settle time %v", g.Round.SettleTime)
		}
	case ModeTimed:
		if g.Round.Duration <= 0 {
			return invalid("round duration %v", g.Round.Duration)
		}
	default:
		return invalid("round mode %q", g.Round.Mode)
	}

	if len(g.Slots) == 0 {
		return invalid("no slots")
	}
	if len(g.Dynamic) == 0 {
		return invalid("no dynamic shapes")
	}
	if len(g.Dynamic) > len(g.Slots) {
		return invalid("%d dynamic shapes for %d slots", len(g.Dynamic), len(g.Slots))
	}

	for name, tex := range g.Textures {
		if _, err := assets.Generate(tex.Kind, tex.Width, tex.Height, tex.Cell, tex.ColorList()); err != nil {
			return invalid("texture %q: %v", name, err)
		}
	}
	for i, s := range g.Dynamic {
		if err := g.checkShape(s); err != nil {
			return invalid("dynamic shape %d: %v", i, err)
		}
	}
	for i, s := range g.Static {
		if err := g.checkShape(s.ShapeConfig); err != nil {
			return invalid("static shape %d: %v", i, err)
		}
	}
	return nil
}

func (g *GameSettings) checkShape(s ShapeConfig) error {
	if _, err := geom.ShapeByName(s.Kind, s.Texture); err != nil {
		return err
	}
	if _, ok := g.Textures[s.Texture]; !ok {
		return fmt.Errorf("unknown texture %q", s.Texture)
	}
	return nil
}

// Timed reports whether rounds are gated by a countdown
func (g *GameSettings) Timed() bool {
	return g.Round.Mode == ModeTimed
}
