// Package gpu defines the graphics capability set the renderers depend on.
//
// The interface follows a GL-style context but addresses every resource by
// an explicit ID instead of binding state, in the manner of a GPU adapter:
// programs, buffers and textures are created through the Device, used by
// ID, and owned by whoever created them.
//
// Implementations:
//   - soft: CPU vertex stage with transform feedback, records raster commands
//   - ebitengpu: presents the recorded commands on an ebiten screen
package gpu

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Resource IDs. Zero is never a valid resource.
type (
	ProgramID uint32
	BufferID  uint32
	TextureID uint32
)

// InvalidID is the zero value of every resource ID
const InvalidID = 0

// Location addresses an attribute or uniform inside a program
type Location int32

// BufferUsage is a bitmask describing how a buffer is used
type BufferUsage uint32

// Buffer usage flags
const (
	BufferUsageVertex   BufferUsage = 1 << 0
	BufferUsageIndex    BufferUsage = 1 << 1
	BufferUsageFeedback BufferUsage = 1 << 2
	BufferUsageMapRead  BufferUsage = 1 << 3
)

// FloatSize and IndexSize are the byte sizes of buffer elements
const (
	FloatSize = 4
	IndexSize = 4
)

// Errors reported by devices
var (
	ErrCompile          = errors.New("gpu: program compile failed")
	ErrUnknownProgram   = errors.New("gpu: unknown program")
	ErrUnknownBuffer    = errors.New("gpu: unknown buffer")
	ErrUnknownTexture   = errors.New("gpu: unknown texture")
	ErrLocationNotFound = errors.New("gpu: location not found")
	ErrOutOfRange       = errors.New("gpu: access out of buffer range")
	ErrNotSynchronized  = errors.New("gpu: feedback read before finish")
	ErrFeedbackState    = errors.New("gpu: invalid feedback state")
	ErrNoProgram        = errors.New("gpu: no program in use")
)

// Uniforms is the read-only view of a program's uniform values given to a vertex stage
type Uniforms interface {
	Mat4(name string) mgl32.Mat4
	Float(name string) float32
}

// VertexOut is what a vertex stage produces for one vertex.
// Varyings holds the capturable outputs by name.
type VertexOut struct {
	Position mgl32.Vec4
	UV       mgl32.Vec2
	Varyings map[string]mgl32.Vec4
}

// VertexFunc is a vertex stage. in holds the attributes by location.
type VertexFunc func(u Uniforms, in [][]float32) VertexOut

// UniformKind is the declared type of a uniform
type UniformKind int

const (
	UniformMat4 UniformKind = iota
	UniformFloat
	UniformSampler
)

// AttribDesc declares a vertex attribute
type AttribDesc struct {
	Name       string
	Components int
}

// UniformDesc declares a uniform
type UniformDesc struct {
	Name string
	Kind UniformKind
}

// FeedbackVarying declares a capturable vertex output
type FeedbackVarying struct {
	Name       string
	Components int
}

// ProgramDesc describes a program to compile and link.
// Fragment is Kage source; it is compiled by the presenting backend.
type ProgramDesc struct {
	Label      string
	Vertex     VertexFunc
	Attributes []AttribDesc
	Uniforms   []UniformDesc
	Fragment   []byte
	Feedback   []FeedbackVarying
}

// Device is the graphics context the renderers draw through.
//
// All methods run on the frame goroutine. Draws execute asynchronously
// from the caller's point of view until Finish returns.
type Device interface {
	// CreateProgram compiles and links a program
	CreateProgram(desc ProgramDesc) (ProgramID, error)
	// UseProgram selects the program for subsequent uniform writes and draws
	UseProgram(id ProgramID) error
	AttribLocation(id ProgramID, name string) (Location, error)
	UniformLocation(id ProgramID, name string) (Location, error)
	UniformMatrix4(loc Location, m mgl32.Mat4)
	Uniform1f(loc Location, v float32)
	Uniform1i(loc Location, v int32)

	// CreateBuffer allocates size bytes
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)
	DestroyBuffer(id BufferID)
	// WriteBuffer copies data into the buffer at a byte offset
	WriteBuffer(id BufferID, offset int, data []byte) error
	// ReadBuffer copies len(dst) bytes starting at offset into dst.
	// Reading feedback output that has not been synchronized with Finish
	// fails with ErrNotSynchronized.
	ReadBuffer(id BufferID, offset int, dst []byte) error
	// SetVertexAttrib sources an attribute of the program from a buffer of
	// tightly packed float32 components
	SetVertexAttrib(program ProgramID, loc Location, buffer BufferID, components int) error

	// CreateTexture uploads RGBA8 pixels
	CreateTexture(rgba []byte, width, height int) (TextureID, error)
	BindTexture(unit int, id TextureID) error

	// DrawElements draws count indices read from indexBuffer at byteOffset
	DrawElements(indexBuffer BufferID, count, byteOffset int) error
	// DrawArrays draws count vertices starting at first
	DrawArrays(first, count int) error
	// BeginFeedback captures the program's feedback varyings of the next
	// draws into buffer, starting at byteOffset and limited to size bytes
	BeginFeedback(buffer BufferID, byteOffset, size int) error
	EndFeedback() error
	// Finish blocks until all submitted work has completed
	Finish()

	Clear(c color.Color)
}
