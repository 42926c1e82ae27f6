package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec4(t *testing.T, expected, actual mgl32.Vec4) {
	t.Helper()
	for i := 0; i < 4; i++ {
		assert.InDelta(t, expected[i], actual[i], 1e-6, "component %d", i)
	}
}

func TestTranslationMatrix(t *testing.T) {
	m := New(0.5, 0).TranslationMatrix()

	assertVec4(t, mgl32.Vec4{0.5, 0, 0, 1}, m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}))
}

func TestTranslationMatrix_ColumnMajor(t *testing.T) {
	m := New(0.3, -0.7).TranslationMatrix()

	// Translation lives in elements 12..15 of a column-major 4x4
	assert.Equal(t, float32(0.3), m[12])
	assert.Equal(t, float32(-0.7), m[13])
	assert.Equal(t, float32(0), m[14])
	assert.Equal(t, float32(1), m[15])
}

func TestScaleMatrix(t *testing.T) {
	m := New(0.25, 0.25).ScaleMatrix()

	assertVec4(t, mgl32.Vec4{0.25, 0.25, 0, 1}, m.Mul4x1(mgl32.Vec4{1, 1, 0, 1}))
	assert.Equal(t, float32(1), m[10])
	assert.Equal(t, float32(1), m[15])
}

func TestCompose_TranslationTimesScale(t *testing.T) {
	tr := New(-0.5, 0.4)
	m := Compose(tr.TranslationMatrix(), New(0.25, 0.25).ScaleMatrix())

	assertVec4(t, mgl32.Vec4{tr.X + 0.25, tr.Y + 0.25, 0, 1}, Apply(m, 1, 1))
}

func TestCompose_OrderMatters(t *testing.T) {
	tr := New(0.5, 0.5).TranslationMatrix()
	sc := New(0.5, 0.5).ScaleMatrix()

	ts := Apply(Compose(tr, sc), 1, 1)
	st := Apply(sc.Mul4(tr), 1, 1)

	assertVec4(t, mgl32.Vec4{1, 1, 0, 1}, ts)
	assertVec4(t, mgl32.Vec4{0.75, 0.75, 0, 1}, st)
}

func TestIdentity(t *testing.T) {
	assertVec4(t, mgl32.Vec4{0.3, -0.2, 0, 1}, Apply(Identity(), 0.3, -0.2))
}
