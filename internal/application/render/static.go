package render

import (
	"fmt"

	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// StaticRenderer draws shapes that are uploaded once and never read back
type StaticRenderer struct {
	pipeline

	vertices    []float32
	indices     []uint32
	descriptors []ShapeDescriptor

	vertexBuffer gpu.BufferID
	indexBuffer  gpu.BufferID
	dirty        bool
}

// NewStaticRenderer links the static program on dev. A nil fragment
// selects TexturedFragment.
func NewStaticRenderer(dev gpu.Device, fragment []byte) (*StaticRenderer, error) {
	p, err := newPipeline(dev, staticProgram(orTextured(fragment)))
	if err != nil {
		return nil, err
	}
	return &StaticRenderer{pipeline: p}, nil
}

// Add appends a shape and returns its index.
// Indices are rebased onto the arena; the descriptor counts indices.
func (r *StaticRenderer) Add(shape geom.Shape) int {
	base := uint32(len(r.vertices) / VertexSize)

	r.descriptors = append(r.descriptors, ShapeDescriptor{
		Offset: len(r.indices),
		Count:  len(shape.Indices),
	})
	for _, idx := range shape.Indices {
		r.indices = append(r.indices, base+idx)
	}
	for _, v := range shape.Vertices {
		r.vertices = append(r.vertices, v.X(), v.Y())
	}

	r.dirty = true
	return len(r.descriptors) - 1
}

// WriteVertices uploads the vertex and index arenas
func (r *StaticRenderer) WriteVertices() error {
	var err error
	r.vertexBuffer, err = replaceBuffer(r.dev, r.vertexBuffer, gpu.Float32Bytes(r.vertices), gpu.BufferUsageVertex)
	if err != nil {
		return fmt.Errorf("failed to upload static vertices: %w", err)
	}
	r.indexBuffer, err = replaceBuffer(r.dev, r.indexBuffer, gpu.Uint32Bytes(r.indices), gpu.BufferUsageIndex)
	if err != nil {
		return fmt.Errorf("failed to upload static indices: %w", err)
	}
	if err := r.dev.SetVertexAttrib(r.program, r.position, r.vertexBuffer, VertexSize); err != nil {
		return fmt.Errorf("failed to bind static vertices: %w", err)
	}

	r.dirty = false
	Logger().Debug("static arena uploaded",
		"shapes", len(r.descriptors), "vertices", len(r.vertices)/VertexSize, "indices", len(r.indices))
	return nil
}

// Draw issues the indexed draw of one shape with tex bound to unit 0
func (r *StaticRenderer) Draw(shapeIndex int, tex gpu.TextureID) error {
	if shapeIndex < 0 || shapeIndex >= len(r.descriptors) {
		return fmt.Errorf("static shape %d of %d: %w", shapeIndex, len(r.descriptors), ErrShapeIndex)
	}
	if r.dirty {
		return ErrNotUploaded
	}
	if err := r.bind(tex); err != nil {
		return err
	}

	desc := r.descriptors[shapeIndex]
	return r.dev.DrawElements(r.indexBuffer, desc.Count, desc.OffsetBytes(1, gpu.IndexSize))
}

// Len returns the number of shapes added
func (r *StaticRenderer) Len() int {
	return len(r.descriptors)
}

// Descriptor returns the index range of a shape
func (r *StaticRenderer) Descriptor(shapeIndex int) ShapeDescriptor {
	return r.descriptors[shapeIndex]
}
