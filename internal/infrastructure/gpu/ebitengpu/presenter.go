// Package ebitengpu puts the work recorded by a soft device on an ebiten screen.
//
// The soft device owns the vertex stage and the feedback path; this package
// owns the fragment stage. Each program's Kage source is compiled with
// ebiten.NewShader and every recorded triangle list is drawn with
// DrawTrianglesShader, sampling the bound texture as imageSrc0.
package ebitengpu

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu/soft"
)

// Presenter draws soft device frames with ebiten
type Presenter struct {
	dev      *soft.Device
	shaders  map[gpu.ProgramID]*ebiten.Shader
	textures map[gpu.TextureID]*ebiten.Image
	logger   *slog.Logger

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewPresenter creates a presenter for dev
func NewPresenter(dev *soft.Device, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Presenter{
		dev:      dev,
		shaders:  make(map[gpu.ProgramID]*ebiten.Shader),
		textures: make(map[gpu.TextureID]*ebiten.Image),
		logger:   logger,
	}
}

// Compile builds the fragment stage of every program linked on the device
// that has not been compiled yet. Present also calls it.
func (p *Presenter) Compile() error {
	for _, id := range p.dev.Programs() {
		if _, ok := p.shaders[id]; ok {
			continue
		}
		desc, _ := p.dev.Program(id)
		s, err := ebiten.NewShader(desc.Fragment)
		if err != nil {
			return fmt.Errorf("failed to compile fragment stage of %q: %w: %w", desc.Label, gpu.ErrCompile, err)
		}
		p.shaders[id] = s
		p.logger.Debug("fragment stage compiled", "program", desc.Label)
	}
	return nil
}

func (p *Presenter) texture(id gpu.TextureID) (*ebiten.Image, error) {
	if img, ok := p.textures[id]; ok {
		return img, nil
	}
	tex, ok := p.dev.Texture(id)
	if !ok {
		return nil, fmt.Errorf("texture %d: %w", id, gpu.ErrUnknownTexture)
	}
	img := ebiten.NewImage(tex.Width, tex.Height)
	img.WritePixels(tex.Pix)
	p.textures[id] = img
	return img, nil
}

// Present draws the device's current frame onto screen
func (p *Presenter) Present(screen *ebiten.Image) error {
	if err := p.Compile(); err != nil {
		return err
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	for _, cmd := range p.dev.Frame() {
		if cmd.Clear != nil {
			screen.Fill(cmd.Clear)
			continue
		}
		if cmd.Triangles() == 0 {
			continue
		}

		shader, ok := p.shaders[cmd.Program]
		if !ok {
			return fmt.Errorf("program %d has no compiled fragment stage: %w", cmd.Program, gpu.ErrUnknownProgram)
		}
		tex, err := p.texture(cmd.Texture)
		if err != nil {
			return err
		}

		p.build(cmd, w, h, tex.Bounds().Dx(), tex.Bounds().Dy())
		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = tex
		screen.DrawTrianglesShader(p.vertices, p.indices, shader, op)
	}
	return nil
}

// build converts NDC triangles into screen-space ebiten vertices
func (p *Presenter) build(cmd soft.Command, w, h, tw, th int) {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]

	n := cmd.Triangles() * 3
	for i := 0; i < n; i++ {
		v := cmd.Vertices[i]
		p.vertices = append(p.vertices, ebiten.Vertex{
			DstX:   (v.Position.X() + 1) * float32(w) / 2,
			DstY:   (1 - v.Position.Y()) * float32(h) / 2,
			SrcX:   v.UV.X() * float32(tw),
			SrcY:   v.UV.Y() * float32(th),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
		p.indices = append(p.indices, uint16(i))
	}
}
