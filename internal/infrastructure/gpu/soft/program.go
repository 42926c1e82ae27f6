package soft

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/tapgame/internal/infrastructure/gpu"
)

type program struct {
	id   gpu.ProgramID
	desc gpu.ProgramDesc

	attribs  map[string]gpu.Location
	uniforms map[string]gpu.Location

	mat4s  map[gpu.Location]mgl32.Mat4
	floats map[gpu.Location]float32
	ints   map[gpu.Location]int32

	layout map[gpu.Location]attribSource
}

type attribSource struct {
	buf        *buffer
	components int
}

// Mat4 implements gpu.Uniforms. Unset matrices read as zero, like GL.
func (p *program) Mat4(name string) mgl32.Mat4 {
	loc, ok := p.uniforms[name]
	if !ok {
		return mgl32.Mat4{}
	}
	return p.mat4s[loc]
}

// Float implements gpu.Uniforms
func (p *program) Float(name string) float32 {
	loc, ok := p.uniforms[name]
	if !ok {
		return 0
	}
	return p.floats[loc]
}

func validate(desc gpu.ProgramDesc) error {
	if desc.Vertex == nil {
		return fmt.Errorf("program %q: no vertex stage: %w", desc.Label, gpu.ErrCompile)
	}
	if len(desc.Fragment) == 0 {
		return fmt.Errorf("program %q: no fragment source: %w", desc.Label, gpu.ErrCompile)
	}
	if len(desc.Attributes) == 0 {
		return fmt.Errorf("program %q: no attributes: %w", desc.Label, gpu.ErrCompile)
	}

	seen := make(map[string]bool)
	for _, a := range desc.Attributes {
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("program %q: attribute %q has %d components: %w", desc.Label, a.Name, a.Components, gpu.ErrCompile)
		}
		if seen[a.Name] {
			return fmt.Errorf("program %q: duplicate name %q: %w", desc.Label, a.Name, gpu.ErrCompile)
		}
		seen[a.Name] = true
	}
	for _, u := range desc.Uniforms {
		if seen[u.Name] {
			return fmt.Errorf("program %q: duplicate name %q: %w", desc.Label, u.Name, gpu.ErrCompile)
		}
		seen[u.Name] = true
	}
	for _, f := range desc.Feedback {
		if f.Components < 1 || f.Components > 4 {
			return fmt.Errorf("program %q: varying %q has %d components: %w", desc.Label, f.Name, f.Components, gpu.ErrCompile)
		}
	}
	return nil
}

// CreateProgram validates and links a program description
func (d *Device) CreateProgram(desc gpu.ProgramDesc) (gpu.ProgramID, error) {
	if err := validate(desc); err != nil {
		return gpu.InvalidID, err
	}

	p := &program{
		id:       gpu.ProgramID(d.allocID()),
		desc:     desc,
		attribs:  make(map[string]gpu.Location, len(desc.Attributes)),
		uniforms: make(map[string]gpu.Location, len(desc.Uniforms)),
		mat4s:    make(map[gpu.Location]mgl32.Mat4),
		floats:   make(map[gpu.Location]float32),
		ints:     make(map[gpu.Location]int32),
		layout:   make(map[gpu.Location]attribSource),
	}
	for i, a := range desc.Attributes {
		p.attribs[a.Name] = gpu.Location(i)
	}
	for i, u := range desc.Uniforms {
		p.uniforms[u.Name] = gpu.Location(i)
	}

	d.programs[p.id] = p
	return p.id, nil
}

// Program returns the description a program was created from
func (d *Device) Program(id gpu.ProgramID) (gpu.ProgramDesc, bool) {
	p, ok := d.programs[id]
	if !ok {
		return gpu.ProgramDesc{}, false
	}
	return p.desc, true
}

// Programs returns the IDs of every linked program
func (d *Device) Programs() []gpu.ProgramID {
	ids := make([]gpu.ProgramID, 0, len(d.programs))
	for id := range d.programs {
		ids = append(ids, id)
	}
	return ids
}

func (d *Device) program(id gpu.ProgramID) (*program, error) {
	p, ok := d.programs[id]
	if !ok {
		return nil, fmt.Errorf("program %d: %w", id, gpu.ErrUnknownProgram)
	}
	return p, nil
}

// UseProgram selects the current program
func (d *Device) UseProgram(id gpu.ProgramID) error {
	p, err := d.program(id)
	if err != nil {
		return err
	}
	d.current = p
	return nil
}

// AttribLocation looks up a declared attribute
func (d *Device) AttribLocation(id gpu.ProgramID, name string) (gpu.Location, error) {
	p, err := d.program(id)
	if err != nil {
		return -1, err
	}
	loc, ok := p.attribs[name]
	if !ok {
		return -1, fmt.Errorf("attribute %q in program %q: %w", name, p.desc.Label, gpu.ErrLocationNotFound)
	}
	return loc, nil
}

// UniformLocation looks up a declared uniform
func (d *Device) UniformLocation(id gpu.ProgramID, name string) (gpu.Location, error) {
	p, err := d.program(id)
	if err != nil {
		return -1, err
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return -1, fmt.Errorf("uniform %q in program %q: %w", name, p.desc.Label, gpu.ErrLocationNotFound)
	}
	return loc, nil
}

// UniformMatrix4 sets a matrix uniform of the current program.
// Writes without a current program or to location -1 are ignored, as in GL.
func (d *Device) UniformMatrix4(loc gpu.Location, m mgl32.Mat4) {
	if d.current == nil || loc < 0 {
		return
	}
	d.current.mat4s[loc] = m
}

// Uniform1f sets a float uniform of the current program
func (d *Device) Uniform1f(loc gpu.Location, v float32) {
	if d.current == nil || loc < 0 {
		return
	}
	d.current.floats[loc] = v
}

// Uniform1i sets an int or sampler uniform of the current program
func (d *Device) Uniform1i(loc gpu.Location, v int32) {
	if d.current == nil || loc < 0 {
		return
	}
	d.current.ints[loc] = v
}

// SetVertexAttrib binds an attribute to a buffer of packed float32 components
func (d *Device) SetVertexAttrib(id gpu.ProgramID, loc gpu.Location, buf gpu.BufferID, components int) error {
	p, err := d.program(id)
	if err != nil {
		return err
	}
	if loc < 0 || int(loc) >= len(p.desc.Attributes) {
		return fmt.Errorf("attribute location %d in program %q: %w", loc, p.desc.Label, gpu.ErrLocationNotFound)
	}
	if components != p.desc.Attributes[loc].Components {
		return fmt.Errorf("attribute %q expects %d components, got %d: %w",
			p.desc.Attributes[loc].Name, p.desc.Attributes[loc].Components, components, gpu.ErrOutOfRange)
	}
	b, err := d.buffer(buf)
	if err != nil {
		return err
	}
	p.layout[loc] = attribSource{buf: b, components: components}
	return nil
}
