package render

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// Names shared by both programs
const (
	AttrPosition       = "vertexPosition"
	UniformScale       = "scale"
	UniformTranslation = "translation"
	UniformProgress    = "t"
	UniformTexture     = "tex"
	VaryingPosition    = "vertOut"
)

// VertexSize is the number of float32 per vertex
const VertexSize = 2

// DropHeight is how far above its slot a shape starts when t = 0
const DropHeight = 2.0

//go:embed shaders/textured.kage
var texturedFragment []byte

// TexturedFragment returns the Kage fragment stage both programs use
func TexturedFragment() []byte {
	return texturedFragment
}

func orTextured(fragment []byte) []byte {
	if len(fragment) == 0 {
		return texturedFragment
	}
	return fragment
}

// objectUV maps object space [-1, 1] onto texture space [0, 1], top-left origin
func objectUV(x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{x*0.5 + 0.5, 0.5 - y*0.5}
}

// placedVertex computes gl_Position = translation * scale * vec4(p, 0, 1)
func placedVertex(u gpu.Uniforms, in [][]float32) gpu.VertexOut {
	x, y := in[0][0], in[0][1]
	pos := u.Mat4(UniformTranslation).Mul4(u.Mat4(UniformScale)).Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return gpu.VertexOut{Position: pos, UV: objectUV(x, y)}
}

// droppingVertex is placedVertex lifted by the remaining drop and exposing
// the clip-space position as vertOut
func droppingVertex(u gpu.Uniforms, in [][]float32) gpu.VertexOut {
	out := placedVertex(u, in)

	t := min(max(u.Float(UniformProgress), 0), 1)
	rest := 1 - t
	out.Position[1] += DropHeight * rest * rest

	out.Varyings = map[string]mgl32.Vec4{VaryingPosition: out.Position}
	return out
}

func staticProgram(fragment []byte) gpu.ProgramDesc {
	return gpu.ProgramDesc{
		Label:      "static",
		Vertex:     placedVertex,
		Attributes: []gpu.AttribDesc{{Name: AttrPosition, Components: VertexSize}},
		Uniforms: []gpu.UniformDesc{
			{Name: UniformScale, Kind: gpu.UniformMat4},
			{Name: UniformTranslation, Kind: gpu.UniformMat4},
			{Name: UniformTexture, Kind: gpu.UniformSampler},
		},
		Fragment: fragment,
	}
}

func feedbackProgram(fragment []byte) gpu.ProgramDesc {
	return gpu.ProgramDesc{
		Label:      "feedback",
		Vertex:     droppingVertex,
		Attributes: []gpu.AttribDesc{{Name: AttrPosition, Components: VertexSize}},
		Uniforms: []gpu.UniformDesc{
			{Name: UniformScale, Kind: gpu.UniformMat4},
			{Name: UniformTranslation, Kind: gpu.UniformMat4},
			{Name: UniformProgress, Kind: gpu.UniformFloat},
			{Name: UniformTexture, Kind: gpu.UniformSampler},
		},
		Fragment: fragment,
		Feedback: []gpu.FeedbackVarying{{Name: VaryingPosition, Components: VertexSize}},
	}
}
