// Package render draws the game's shapes through a gpu.Device.
//
// Shapes are packed into one append-only arena per renderer and addressed
// by ShapeDescriptor ranges. StaticRenderer issues indexed draws for
// shapes that never move. DynamicRenderer draws placed shapes with
// transform feedback and reads the transformed positions back, which is
// what the hit test runs against.
package render

import (
	"errors"
	"fmt"

	"github.com/younwookim/tapgame/internal/domain/transform"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

// Errors returned by renderers
var (
	ErrShapeIndex  = errors.New("render: shape index out of range")
	ErrNotUploaded = errors.New("render: shapes added since last upload")
)

// pipeline is a linked program with its resolved locations
type pipeline struct {
	dev     gpu.Device
	program gpu.ProgramID

	position    gpu.Location
	scale       gpu.Location
	translation gpu.Location
	texture     gpu.Location
}

func newPipeline(dev gpu.Device, desc gpu.ProgramDesc) (pipeline, error) {
	id, err := dev.CreateProgram(desc)
	if err != nil {
		return pipeline{}, fmt.Errorf("failed to link %s program: %w", desc.Label, err)
	}

	p := pipeline{dev: dev, program: id}
	if p.position, err = dev.AttribLocation(id, AttrPosition); err != nil {
		return pipeline{}, err
	}
	if p.scale, err = dev.UniformLocation(id, UniformScale); err != nil {
		return pipeline{}, err
	}
	if p.translation, err = dev.UniformLocation(id, UniformTranslation); err != nil {
		return pipeline{}, err
	}
	if p.texture, err = dev.UniformLocation(id, UniformTexture); err != nil {
		return pipeline{}, err
	}

	if err := p.use(); err != nil {
		return pipeline{}, err
	}
	dev.Uniform1i(p.texture, 0)
	dev.UniformMatrix4(p.scale, transform.Identity())
	dev.UniformMatrix4(p.translation, transform.Identity())
	return p, nil
}

func (p *pipeline) use() error {
	return p.dev.UseProgram(p.program)
}

// SetTransform writes the scale and translation uniforms for the next draw
func (p *pipeline) SetTransform(scale, translation transform.TransformInfo) error {
	if err := p.use(); err != nil {
		return err
	}
	p.dev.UniformMatrix4(p.scale, scale.ScaleMatrix())
	p.dev.UniformMatrix4(p.translation, translation.TranslationMatrix())
	return nil
}

// SetIdentity resets both placement matrices
func (p *pipeline) SetIdentity() error {
	if err := p.use(); err != nil {
		return err
	}
	p.dev.UniformMatrix4(p.scale, transform.Identity())
	p.dev.UniformMatrix4(p.translation, transform.Identity())
	return nil
}

func (p *pipeline) bind(tex gpu.TextureID) error {
	if err := p.use(); err != nil {
		return err
	}
	if err := p.dev.BindTexture(0, tex); err != nil {
		return err
	}
	p.dev.Uniform1i(p.texture, 0)
	return nil
}

// replaceBuffer uploads data into a fresh buffer, releasing the previous one
func replaceBuffer(dev gpu.Device, old gpu.BufferID, data []byte, usage gpu.BufferUsage) (gpu.BufferID, error) {
	if old != gpu.InvalidID {
		dev.DestroyBuffer(old)
	}
	id, err := dev.CreateBuffer(len(data), usage)
	if err != nil {
		return gpu.InvalidID, err
	}
	if err := dev.WriteBuffer(id, 0, data); err != nil {
		return gpu.InvalidID, err
	}
	return id, nil
}
