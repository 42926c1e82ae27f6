package soft

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// RasterVertex is a vertex after the vertex stage and perspective divide
type RasterVertex struct {
	Position mgl32.Vec2 // NDC
	UV       mgl32.Vec2 // [0, 1] texture space, top-left origin
}

// Command is one recorded unit of raster work.
// A command with a non-nil Clear fills the target and carries no vertices.
type Command struct {
	Clear    color.Color
	Program  gpu.ProgramID
	Texture  gpu.TextureID
	Vertices []RasterVertex // triangle list
}

// Triangles returns the number of whole triangles in the command
func (c Command) Triangles() int {
	return len(c.Vertices) / 3
}
