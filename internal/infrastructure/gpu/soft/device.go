// Package soft is a reference gpu.Device that runs the vertex stage on the CPU.
//
// It implements transform feedback and the synchronization barrier exactly:
// captured output stays unreadable until Finish. Rasterization is deferred:
// every draw is recorded as a Command holding NDC triangles, which a
// presenter (see ebitengpu) turns into pixels.
package soft

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// TextureUnits is the number of texture units a program can sample from
const TextureUnits = 4

// Stats counts device work since creation
type Stats struct {
	DrawCalls        int
	Vertices         int
	FeedbackVertices int
	Syncs            int
	BufferBytes      int
}

// Device is the CPU implementation of gpu.Device
type Device struct {
	nextID uint32

	programs map[gpu.ProgramID]*program
	buffers  map[gpu.BufferID]*buffer
	textures map[gpu.TextureID]*Texture

	current  *program
	units    [TextureUnits]gpu.TextureID
	feedback *feedback

	frame []Command
	stats Stats
}

type buffer struct {
	data    []byte
	usage   gpu.BufferUsage
	pending []span // feedback writes not yet synchronized
}

type span struct {
	start, end int
}

func (s span) overlaps(start, end int) bool {
	return start < s.end && s.start < end
}

type feedback struct {
	buf     *buffer
	offset  int
	size    int
	written int
}

// Texture is RGBA8 pixel data held by the device
type Texture struct {
	ID     gpu.TextureID
	Width  int
	Height int
	Pix    []byte
}

// New creates an empty device
func New() *Device {
	return &Device{
		programs: make(map[gpu.ProgramID]*program),
		buffers:  make(map[gpu.BufferID]*buffer),
		textures: make(map[gpu.TextureID]*Texture),
	}
}

func (d *Device) allocID() uint32 {
	d.nextID++
	return d.nextID
}

// Stats returns the work counters
func (d *Device) Stats() Stats {
	return d.stats
}

// CreateBuffer allocates a zeroed buffer
func (d *Device) CreateBuffer(size int, usage gpu.BufferUsage) (gpu.BufferID, error) {
	if size < 0 {
		return gpu.InvalidID, fmt.Errorf("create buffer of %d bytes: %w", size, gpu.ErrOutOfRange)
	}
	id := gpu.BufferID(d.allocID())
	d.buffers[id] = &buffer{data: make([]byte, size), usage: usage}
	d.stats.BufferBytes += size
	return id, nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored.
func (d *Device) DestroyBuffer(id gpu.BufferID) {
	if b, ok := d.buffers[id]; ok {
		d.stats.BufferBytes -= len(b.data)
		delete(d.buffers, id)
	}
}

func (d *Device) buffer(id gpu.BufferID) (*buffer, error) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, fmt.Errorf("buffer %d: %w", id, gpu.ErrUnknownBuffer)
	}
	return b, nil
}

// WriteBuffer copies data into a buffer
func (d *Device) WriteBuffer(id gpu.BufferID, offset int, data []byte) error {
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		return fmt.Errorf("write %d bytes at %d into buffer %d of %d bytes: %w",
			len(data), offset, id, len(b.data), gpu.ErrOutOfRange)
	}
	copy(b.data[offset:], data)
	return nil
}

// ReadBuffer copies buffer bytes into dst
func (d *Device) ReadBuffer(id gpu.BufferID, offset int, dst []byte) error {
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	end := offset + len(dst)
	if offset < 0 || end > len(b.data) {
		return fmt.Errorf("read %d bytes at %d from buffer %d of %d bytes: %w",
			len(dst), offset, id, len(b.data), gpu.ErrOutOfRange)
	}
	for _, s := range b.pending {
		if s.overlaps(offset, end) {
			return fmt.Errorf("read [%d, %d) of buffer %d: %w", offset, end, id, gpu.ErrNotSynchronized)
		}
	}
	copy(dst, b.data[offset:end])
	return nil
}

// CreateTexture stores a copy of the RGBA8 pixels
func (d *Device) CreateTexture(rgba []byte, width, height int) (gpu.TextureID, error) {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return gpu.InvalidID, fmt.Errorf("texture %dx%d with %d bytes: %w", width, height, len(rgba), gpu.ErrOutOfRange)
	}
	id := gpu.TextureID(d.allocID())
	pix := make([]byte, len(rgba))
	copy(pix, rgba)
	d.textures[id] = &Texture{ID: id, Width: width, Height: height, Pix: pix}
	return id, nil
}

// Texture returns the pixels of a texture
func (d *Device) Texture(id gpu.TextureID) (*Texture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// BindTexture selects the texture sampled from a unit
func (d *Device) BindTexture(unit int, id gpu.TextureID) error {
	if unit < 0 || unit >= TextureUnits {
		return fmt.Errorf("texture unit %d: %w", unit, gpu.ErrOutOfRange)
	}
	if _, ok := d.textures[id]; !ok {
		return fmt.Errorf("texture %d: %w", id, gpu.ErrUnknownTexture)
	}
	d.units[unit] = id
	return nil
}

// BeginFeedback starts capturing into [byteOffset, byteOffset+size) of buffer
func (d *Device) BeginFeedback(id gpu.BufferID, byteOffset, size int) error {
	if d.feedback != nil {
		return fmt.Errorf("begin feedback while active: %w", gpu.ErrFeedbackState)
	}
	if d.current == nil {
		return gpu.ErrNoProgram
	}
	if len(d.current.desc.Feedback) == 0 {
		return fmt.Errorf("program %q has no feedback varyings: %w", d.current.desc.Label, gpu.ErrFeedbackState)
	}
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	if b.usage&gpu.BufferUsageFeedback == 0 {
		return fmt.Errorf("buffer %d is not a feedback buffer: %w", id, gpu.ErrFeedbackState)
	}
	if byteOffset < 0 || size < 0 || byteOffset+size > len(b.data) || byteOffset%gpu.FloatSize != 0 {
		return fmt.Errorf("feedback range [%d, %d) of %d bytes: %w", byteOffset, byteOffset+size, len(b.data), gpu.ErrOutOfRange)
	}
	d.feedback = &feedback{buf: b, offset: byteOffset, size: size}
	return nil
}

// EndFeedback stops capturing. The written range stays unreadable until Finish.
func (d *Device) EndFeedback() error {
	if d.feedback == nil {
		return fmt.Errorf("end feedback while inactive: %w", gpu.ErrFeedbackState)
	}
	d.feedback = nil
	return nil
}

// Finish completes all submitted work and makes feedback output readable
func (d *Device) Finish() {
	for _, b := range d.buffers {
		b.pending = b.pending[:0]
	}
	d.stats.Syncs++
}

// Clear starts a new frame filled with c
func (d *Device) Clear(c color.Color) {
	d.frame = append(d.frame[:0], Command{Clear: c})
}

// Frame returns the commands recorded since the last Clear
func (d *Device) Frame() []Command {
	return d.frame
}

// DrawElements runs the vertex stage for count indices. Feedback capture
// is not available for indexed draws.
func (d *Device) DrawElements(indexBuffer gpu.BufferID, count, byteOffset int) error {
	if d.current == nil {
		return gpu.ErrNoProgram
	}
	if d.feedback != nil {
		return fmt.Errorf("indexed draw during feedback: %w", gpu.ErrFeedbackState)
	}
	ib, err := d.buffer(indexBuffer)
	if err != nil {
		return err
	}
	end := byteOffset + count*gpu.IndexSize
	if byteOffset < 0 || count < 0 || byteOffset%gpu.IndexSize != 0 || end > len(ib.data) {
		return fmt.Errorf("draw %d indices at byte %d of %d: %w", count, byteOffset, len(ib.data), gpu.ErrOutOfRange)
	}

	indices := make([]uint32, count)
	gpu.DecodeUint32(indices, ib.data[byteOffset:end])

	out := make([]RasterVertex, 0, count)
	for _, idx := range indices {
		v, err := d.runVertex(int(idx))
		if err != nil {
			return err
		}
		out = append(out, rasterize(v))
	}
	d.record(out)
	return nil
}

// DrawArrays runs the vertex stage for vertices [first, first+count),
// writing feedback varyings when capture is active.
func (d *Device) DrawArrays(first, count int) error {
	if d.current == nil {
		return gpu.ErrNoProgram
	}
	if first < 0 || count < 0 {
		return fmt.Errorf("draw arrays first=%d count=%d: %w", first, count, gpu.ErrOutOfRange)
	}

	out := make([]RasterVertex, 0, count)
	for k := 0; k < count; k++ {
		v, err := d.runVertex(first + k)
		if err != nil {
			return err
		}
		if d.feedback != nil {
			if err := d.capture(v); err != nil {
				return err
			}
		}
		out = append(out, rasterize(v))
	}
	d.record(out)
	return nil
}

func (d *Device) runVertex(index int) (gpu.VertexOut, error) {
	p := d.current
	in := make([][]float32, len(p.desc.Attributes))
	for loc, a := range p.desc.Attributes {
		src, ok := p.layout[gpu.Location(loc)]
		if !ok {
			return gpu.VertexOut{}, fmt.Errorf("attribute %q has no buffer: %w", a.Name, gpu.ErrLocationNotFound)
		}
		start := index * src.components * gpu.FloatSize
		end := start + src.components*gpu.FloatSize
		if end > len(src.buf.data) {
			return gpu.VertexOut{}, fmt.Errorf("vertex %d of attribute %q: %w", index, a.Name, gpu.ErrOutOfRange)
		}
		vals := make([]float32, src.components)
		gpu.DecodeFloat32(vals, src.buf.data[start:end])
		in[loc] = vals
	}
	d.stats.Vertices++
	return p.desc.Vertex(p, in), nil
}

func (d *Device) capture(v gpu.VertexOut) error {
	fb := d.feedback
	for _, varying := range d.current.desc.Feedback {
		n := varying.Components * gpu.FloatSize
		if fb.written+n > fb.size {
			return fmt.Errorf("feedback overflow at %d of %d bytes: %w", fb.written, fb.size, gpu.ErrOutOfRange)
		}
		val := v.Varyings[varying.Name]
		at := fb.offset + fb.written
		copy(fb.buf.data[at:at+n], gpu.Float32Bytes(val[:varying.Components]))
		fb.buf.pending = append(fb.buf.pending, span{start: at, end: at + n})
		fb.written += n
	}
	d.stats.FeedbackVertices++
	return nil
}

func (d *Device) record(vertices []RasterVertex) {
	d.stats.DrawCalls++
	d.frame = append(d.frame, Command{
		Program:  d.current.id,
		Texture:  d.units[0],
		Vertices: vertices,
	})
}

func rasterize(v gpu.VertexOut) RasterVertex {
	w := v.Position.W()
	if w == 0 {
		w = 1
	}
	return RasterVertex{
		Position: mgl32.Vec2{v.Position.X() / w, v.Position.Y() / w},
		UV:       v.UV,
	}
}
