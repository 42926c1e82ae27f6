// Package assets generates the RGBA8 textures the shapes are drawn with.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Solid returns a w x h image filled with c
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Checker returns a w x h checkerboard of cell x cell squares, starting with a
// at the top-left corner
func Checker(w, h, cell int, a, b color.Color) *image.RGBA {
	if cell <= 0 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, ca)
			} else {
				img.SetRGBA(x, y, cb)
			}
		}
	}
	return img
}

// Texture kinds accepted by Generate
const (
	KindSolid   = "solid"
	KindChecker = "checker"
)

// Generate builds a texture by kind. Checker uses the first two colors,
// solid the first.
func Generate(kind string, w, h, cell int, colors []color.Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("texture size %dx%d must be positive", w, h)
	}
	switch kind {
	case KindSolid:
		if len(colors) < 1 {
			return nil, fmt.Errorf("solid texture needs 1 color, got %d", len(colors))
		}
		return Solid(w, h, colors[0]), nil
	case KindChecker:
		if len(colors) < 2 {
			return nil, fmt.Errorf("checker texture needs 2 colors, got %d", len(colors))
		}
		return Checker(w, h, cell, colors[0], colors[1]), nil
	default:
		return nil, fmt.Errorf("unknown texture kind %q", kind)
	}
}
