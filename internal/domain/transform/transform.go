// Package transform builds the placement matrices uploaded to the vertex stage.
//
// Matrices are column-major mgl32.Mat4 values, the layout the shader
// uniforms expect. Scale and translation are always kept as two matrices;
// the vertex stage computes translation * scale * vertex.
package transform

import "github.com/go-gl/mathgl/mgl32"

// TransformInfo is a 2-component offset read either as a scale or as a translation
type TransformInfo struct {
	X, Y float32
}

// New creates a TransformInfo
func New(x, y float32) TransformInfo {
	return TransformInfo{X: x, Y: y}
}

// ScaleMatrix returns diag(X, Y, 1, 1)
func (t TransformInfo) ScaleMatrix() mgl32.Mat4 {
	return mgl32.Mat4{
		t.X, 0, 0, 0,
		0, t.Y, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslationMatrix returns the identity with (X, Y, 0, 1) as its last column
func (t TransformInfo) TranslationMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.X, t.Y, 0)
}

// Identity is the placement of shapes that are not moved, like the background
func Identity() mgl32.Mat4 {
	return mgl32.Ident4()
}

// Compose returns translation * scale, the order the vertex stage applies them in
func Compose(translation, scale mgl32.Mat4) mgl32.Mat4 {
	return translation.Mul4(scale)
}

// Apply transforms a 2D position as vec4(p, 0, 1) and returns the clip-space result
func Apply(m mgl32.Mat4, x, y float32) mgl32.Vec4 {
	return m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
}
