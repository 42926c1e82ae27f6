package render

import (
	"errors"
	"fmt"

	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// DynamicRenderer draws placed shapes and captures their transformed vertices.
//
// Every shape is stored flattened (one vertex per index) so it occupies a
// contiguous run of the arena and of the same-sized feedback buffer. Draw
// is a single blocking round trip per shape: capture, sync, read back.
// The arena keeps object-space vertices for uploads; readbacks land in a
// parallel array of the same layout.
type DynamicRenderer struct {
	pipeline
	progress gpu.Location

	vertices    []float32
	readback    []float32
	descriptors []ShapeDescriptor

	// frame stamps; a shape's arena range is fresh when drawnAt == frame
	frame   uint64
	drawnAt []uint64

	vertexBuffer   gpu.BufferID
	feedbackBuffer gpu.BufferID
	scratch        []byte
	dirty          bool
}

// NewDynamicRenderer links the feedback program on dev. A nil fragment
// selects TexturedFragment.
func NewDynamicRenderer(dev gpu.Device, fragment []byte) (*DynamicRenderer, error) {
	p, err := newPipeline(dev, feedbackProgram(orTextured(fragment)))
	if err != nil {
		return nil, err
	}
	progress, err := dev.UniformLocation(p.program, UniformProgress)
	if err != nil {
		return nil, err
	}
	dev.Uniform1f(progress, 1)

	return &DynamicRenderer{pipeline: p, progress: progress}, nil
}

// Add flattens the shape's indexed vertices into the arena and returns its index.
// The descriptor counts vertices.
func (r *DynamicRenderer) Add(shape geom.Shape) int {
	r.descriptors = append(r.descriptors, ShapeDescriptor{
		Offset: len(r.vertices) / VertexSize,
		Count:  len(shape.Indices),
	})
	for _, idx := range shape.Indices {
		v := shape.Vertices[idx]
		r.vertices = append(r.vertices, v.X(), v.Y())
		r.readback = append(r.readback, v.X(), v.Y())
	}
	r.drawnAt = append(r.drawnAt, 0)

	r.dirty = true
	return len(r.descriptors) - 1
}

// WriteVertices uploads the arena and allocates a feedback buffer of the same size
func (r *DynamicRenderer) WriteVertices() error {
	data := gpu.Float32Bytes(r.vertices)

	var err error
	r.vertexBuffer, err = replaceBuffer(r.dev, r.vertexBuffer, data, gpu.BufferUsageVertex)
	if err != nil {
		return fmt.Errorf("failed to upload dynamic vertices: %w", err)
	}
	r.feedbackBuffer, err = replaceBuffer(r.dev, r.feedbackBuffer, data, gpu.BufferUsageFeedback|gpu.BufferUsageMapRead)
	if err != nil {
		return fmt.Errorf("failed to allocate feedback buffer: %w", err)
	}
	if err := r.dev.SetVertexAttrib(r.program, r.position, r.vertexBuffer, VertexSize); err != nil {
		return fmt.Errorf("failed to bind dynamic vertices: %w", err)
	}

	r.scratch = make([]byte, len(data))
	r.dirty = false
	Logger().Debug("dynamic arena uploaded",
		"shapes", len(r.descriptors), "vertices", len(r.vertices)/VertexSize, "bytes", len(data))
	return nil
}

// SetProgress writes the drop animation uniform t, clamped to [0, 1] by the vertex stage
func (r *DynamicRenderer) SetProgress(t float32) error {
	if err := r.use(); err != nil {
		return err
	}
	r.dev.Uniform1f(r.progress, t)
	return nil
}

// BeginFrame marks every shape's readback as stale until it is drawn again
func (r *DynamicRenderer) BeginFrame() {
	r.frame++
}

// Draw renders one shape with feedback capture and reads its transformed
// vertices back. It blocks on the device until the draw has
// completed.
func (r *DynamicRenderer) Draw(shapeIndex int, tex gpu.TextureID) error {
	if shapeIndex < 0 || shapeIndex >= len(r.descriptors) {
		return fmt.Errorf("dynamic shape %d of %d: %w", shapeIndex, len(r.descriptors), ErrShapeIndex)
	}
	if r.dirty {
		return ErrNotUploaded
	}
	if err := r.bind(tex); err != nil {
		return err
	}

	desc := r.descriptors[shapeIndex]
	offset := desc.OffsetBytes(VertexSize, gpu.FloatSize)
	size := desc.SizeBytes(VertexSize, gpu.FloatSize)

	if err := r.dev.BeginFeedback(r.feedbackBuffer, offset, size); err != nil {
		return fmt.Errorf("failed to begin feedback for shape %d: %w", shapeIndex, err)
	}
	if err := r.dev.DrawArrays(desc.Offset, desc.Count); err != nil {
		return fmt.Errorf("failed to draw shape %d: %w", shapeIndex, errors.Join(err, r.dev.EndFeedback()))
	}
	if err := r.dev.EndFeedback(); err != nil {
		return err
	}

	r.dev.Finish()

	buf := r.scratch[:size]
	if err := r.dev.ReadBuffer(r.feedbackBuffer, offset, buf); err != nil {
		return fmt.Errorf("failed to read back shape %d: %w", shapeIndex, err)
	}
	start, end := desc.Span(VertexSize)
	gpu.DecodeFloat32(r.readback[start:end], buf)

	r.drawnAt[shapeIndex] = r.frame
	return nil
}

// ReadVertices returns the readback range of a shape: x,y pairs in index
// order, transformed by the shape's last Draw, or object space before the
// first one. The slice aliases the renderer's readback array.
func (r *DynamicRenderer) ReadVertices(shapeIndex int) []float32 {
	start, end := r.descriptors[shapeIndex].Span(VertexSize)
	return r.readback[start:end:end]
}

// Fresh reports whether the shape was drawn since the last BeginFrame
func (r *DynamicRenderer) Fresh(shapeIndex int) bool {
	return r.frame != 0 && r.drawnAt[shapeIndex] == r.frame
}

// Len returns the number of shapes added
func (r *DynamicRenderer) Len() int {
	return len(r.descriptors)
}

// Descriptor returns the vertex range of a shape
func (r *DynamicRenderer) Descriptor(shapeIndex int) ShapeDescriptor {
	return r.descriptors[shapeIndex]
}
