// Package round runs the clicking game on top of the renderers.
//
// A Scene owns the GPU side: both renderers, the shapes, the slot table
// and the permutation that assigns dynamic shapes to slots. A Session
// owns a Scene and adds the per-frame tick, scoring and input handling.
package round

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/younwookim/tapgame/internal/application/render"
	"github.com/younwookim/tapgame/internal/application/state"
	"github.com/younwookim/tapgame/internal/domain/geom"
	"github.com/younwookim/tapgame/internal/domain/random"
	"github.com/younwookim/tapgame/internal/domain/transform"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// Errors returned while building a scene
var (
	ErrNoSlots         = errors.New("round: no slots")
	ErrTooManyShapes   = errors.New("round: more dynamic shapes than slots")
	ErrUnknownTexture  = errors.New("round: unknown texture")
	ErrInvalidSchedule = errors.New("round: settle time or duration must be positive")
	ErrStaleReadback   = errors.New("round: readback not refreshed by draw")
)

// Mode selects what ends the drop-in phase of a round
type Mode int

const (
	// ModeSettle finishes a round after SettleTime seconds
	ModeSettle Mode = iota
	// ModeTimed finishes a round when its countdown reaches zero
	ModeTimed
)

// SceneOptions configures a Scene
type SceneOptions struct {
	Mode       Mode
	SettleTime float64
	Duration   float64

	// Scale is applied to every dynamic shape
	Scale transform.TransformInfo
	// Slots are the translations a dynamic shape can be placed at
	Slots []transform.TransformInfo

	// Textures maps material names to pixels
	Textures   map[string]*image.RGBA
	Background color.Color

	// Fragment overrides the fragment stage of both renderers
	Fragment []byte
	Rand     *random.Xorshift
}

type staticShape struct {
	texture     gpu.TextureID
	scale       transform.TransformInfo
	translation transform.TransformInfo
}

// Scene holds the renderers, the shapes and the round state machine
type Scene struct {
	dev     gpu.Device
	static  *render.StaticRenderer
	dynamic *render.DynamicRenderer

	textures map[string]gpu.TextureID

	shapes       []geom.Shape
	shapeTex     []gpu.TextureID
	staticShapes []staticShape

	scale            transform.TransformInfo
	slots            []transform.TransformInfo
	transformIndices []int
	rng              *random.Xorshift

	mode       Mode
	state      state.State
	elapsed    float64
	settleTime float64
	timer      state.RoundTimer
	background color.Color
}

// NewScene creates the renderers and uploads the textures
func NewScene(dev gpu.Device, opts SceneOptions) (*Scene, error) {
	if len(opts.Slots) == 0 {
		return nil, ErrNoSlots
	}
	switch {
	case opts.Mode == ModeTimed && opts.Duration <= 0:
		return nil, fmt.Errorf("duration %v: %w", opts.Duration, ErrInvalidSchedule)
	case opts.Mode == ModeSettle && opts.SettleTime <= 0:
		return nil, fmt.Errorf("settle time %v: %w", opts.SettleTime, ErrInvalidSchedule)
	}

	static, err := render.NewStaticRenderer(dev, opts.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create static renderer: %w", err)
	}
	dynamic, err := render.NewDynamicRenderer(dev, opts.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic renderer: %w", err)
	}

	textures := make(map[string]gpu.TextureID, len(opts.Textures))
	for name, img := range opts.Textures {
		id, err := dev.CreateTexture(packRGBA(img), img.Rect.Dx(), img.Rect.Dy())
		if err != nil {
			return nil, fmt.Errorf("failed to create texture %q: %w", name, err)
		}
		textures[name] = id
	}

	rng := opts.Rand
	if rng == nil {
		rng = random.NewFromTime()
	}
	background := opts.Background
	if background == nil {
		background = color.Black
	}

	s := &Scene{
		dev:              dev,
		static:           static,
		dynamic:          dynamic,
		textures:         textures,
		scale:            opts.Scale,
		slots:            append([]transform.TransformInfo(nil), opts.Slots...),
		transformIndices: make([]int, len(opts.Slots)),
		rng:              rng,
		mode:             opts.Mode,
		settleTime:       opts.SettleTime,
		timer:            state.NewRoundTimer(opts.Duration),
		background:       background,
	}
	for i := range s.transformIndices {
		s.transformIndices[i] = i
	}
	return s, nil
}

// packRGBA returns the pixels of img as tightly packed rows
func packRGBA(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == w*4 {
		return img.Pix[:w*h*4]
	}
	out := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		out = append(out, img.Pix[row:row+w*4]...)
	}
	return out
}

func (s *Scene) texture(name string) (gpu.TextureID, error) {
	id, ok := s.textures[name]
	if !ok {
		return gpu.InvalidID, fmt.Errorf("texture %q: %w", name, ErrUnknownTexture)
	}
	return id, nil
}

// AddDynamicShape adds an interactive shape and returns its index.
// The scene keeps its own copy of the shape.
func (s *Scene) AddDynamicShape(shape geom.Shape) (int, error) {
	if len(s.shapes) == len(s.slots) {
		return -1, fmt.Errorf("%d slots: %w", len(s.slots), ErrTooManyShapes)
	}
	tex, err := s.texture(shape.Texture)
	if err != nil {
		return -1, err
	}

	shape = shape.Clone()
	s.shapes = append(s.shapes, shape)
	s.shapeTex = append(s.shapeTex, tex)
	return s.dynamic.Add(shape), nil
}

// AddStaticShape adds a background shape drawn without placement
func (s *Scene) AddStaticShape(shape geom.Shape) (int, error) {
	return s.AddPlacedStaticShape(shape, transform.New(1, 1), transform.New(0, 0))
}

// AddPlacedStaticShape adds a background shape drawn at a fixed placement
func (s *Scene) AddPlacedStaticShape(shape geom.Shape, scale, translation transform.TransformInfo) (int, error) {
	tex, err := s.texture(shape.Texture)
	if err != nil {
		return -1, err
	}
	s.staticShapes = append(s.staticShapes, staticShape{texture: tex, scale: scale, translation: translation})
	return s.static.Add(shape), nil
}

// UpdateRenders uploads the shape arenas of both renderers
func (s *Scene) UpdateRenders() error {
	if err := s.static.WriteVertices(); err != nil {
		return err
	}
	if err := s.dynamic.WriteVertices(); err != nil {
		return err
	}

	log := Logger()
	for i := range s.static.Len() {
		d := s.static.Descriptor(i)
		log.Debug("static shape", "index", i, "offset", d.Offset, "count", d.Count)
	}
	for i := range s.dynamic.Len() {
		d := s.dynamic.Descriptor(i)
		log.Debug("dynamic shape", "index", i, "offset", d.Offset, "count", d.Count)
	}
	return nil
}

// Render draws one frame dt seconds after the previous one and advances
// the state machine. Every dynamic shape's geometry is replaced by its
// transformed vertices.
func (s *Scene) Render(dt float64) error {
	s.elapsed += dt

	s.dev.Clear(s.background)

	for i, sh := range s.staticShapes {
		if err := s.static.SetTransform(sh.scale, sh.translation); err != nil {
			return err
		}
		if err := s.static.Draw(i, sh.texture); err != nil {
			return fmt.Errorf("failed to draw static shape %d: %w", i, err)
		}
	}

	s.dynamic.BeginFrame()
	if err := s.dynamic.SetProgress(float32(s.Progress())); err != nil {
		return err
	}
	for i := range s.shapes {
		slot := s.slots[s.transformIndices[i]]
		if err := s.dynamic.SetTransform(s.scale, slot); err != nil {
			return err
		}
		if err := s.dynamic.Draw(i, s.shapeTex[i]); err != nil {
			return fmt.Errorf("failed to draw dynamic shape %d: %w", i, err)
		}
		if !s.dynamic.Fresh(i) {
			return fmt.Errorf("dynamic shape %d: %w", i, ErrStaleReadback)
		}
		s.shapes[i].UpdateVertices(s.dynamic.ReadVertices(i))
	}

	s.update(dt)
	return nil
}

func (s *Scene) update(dt float64) {
	if s.state != state.StateInitial {
		return
	}

	var done bool
	if s.mode == ModeTimed {
		done = s.timer.Tick(dt)
	} else {
		done = s.elapsed >= s.settleTime
	}
	if done {
		s.state = state.StateDone
		Logger().Debug("round settled", "elapsed", s.elapsed)
	}
}

// State returns the current round state
func (s *Scene) State() state.State {
	return s.state
}

// Mode returns the scene's round mode
func (s *Scene) Mode() Mode {
	return s.mode
}

// Elapsed returns the seconds since the last Reset
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// TimeRemaining returns the countdown of a timed round, zero otherwise
func (s *Scene) TimeRemaining() float64 {
	if s.mode != ModeTimed {
		return 0
	}
	return s.timer.Remaining()
}

// Progress returns the drop animation progress in [0, 1]
func (s *Scene) Progress() float64 {
	if s.state == state.StateDone {
		return 1
	}
	var t float64
	if s.mode == ModeTimed {
		t = 1 - s.timer.Remaining()/s.timer.Duration()
	} else {
		t = s.elapsed / s.settleTime
	}
	return min(max(t, 0), 1)
}

// IsDynamicHit reports whether p lies inside dynamic shape idx as last drawn
func (s *Scene) IsDynamicHit(idx int, p geom.Point) bool {
	if idx < 0 || idx >= len(s.shapes) {
		return false
	}
	shape := s.shapes[idx]
	lo, hi := shape.Bounds()
	if p.X() < lo.X() || p.X() > hi.X() || p.Y() < lo.Y() || p.Y() > hi.Y() {
		return false
	}
	return shape.Contains(p)
}

// PermutateTransforms shuffles the slots of the dynamic shapes
func (s *Scene) PermutateTransforms() {
	n := len(s.slots)
	for i := range s.shapes {
		j := s.rng.Intn(i, n)
		s.transformIndices[i], s.transformIndices[j] = s.transformIndices[j], s.transformIndices[i]
	}
}

// Reset starts a new round
func (s *Scene) Reset() {
	s.state = state.StateInitial
	s.elapsed = 0
	s.timer.Reset()
}

// TransformIndices returns a copy of the slot assignment
func (s *Scene) TransformIndices() []int {
	return append([]int(nil), s.transformIndices...)
}

// Shape returns dynamic shape idx
func (s *Scene) Shape(idx int) geom.Shape {
	return s.shapes[idx]
}

// NumDynamic returns the number of dynamic shapes
func (s *Scene) NumDynamic() int {
	return len(s.shapes)
}

// NumStatic returns the number of static shapes
func (s *Scene) NumStatic() int {
	return len(s.staticShapes)
}

// Seed returns the seed of the scene's generator
func (s *Scene) Seed() uint64 {
	return s.rng.Seed()
}
