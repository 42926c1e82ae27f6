package assets

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestSolid(t *testing.T) {
	img := Solid(3, 2, red)

	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Len(t, img.Pix, 3*2*4)
	assert.Equal(t, red, img.RGBAAt(2, 1))
}

func TestChecker(t *testing.T) {
	img := Checker(4, 4, 2, red, white)

	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(1, 1))
	assert.Equal(t, white, img.RGBAAt(2, 0))
	assert.Equal(t, white, img.RGBAAt(0, 3))
	assert.Equal(t, red, img.RGBAAt(3, 3))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		w, h    int
		colors  []color.Color
		wantErr bool
	}{
		{"solid", KindSolid, 2, 2, []color.Color{red}, false},
		{"checker", KindChecker, 8, 8, []color.Color{red, white}, false},
		{"checker missing color", KindChecker, 8, 8, []color.Color{red}, true},
		{"solid missing color", KindSolid, 8, 8, nil, true},
		{"zero size", KindSolid, 0, 8, []color.Color{red}, true},
		{"unknown kind", "noise", 8, 8, []color.Color{red}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Generate(tt.kind, tt.w, tt.h, 2, tt.colors)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, img.Bounds().Dx())
		})
	}
}
