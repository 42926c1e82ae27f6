package geom

import "fmt"

// Shape is a polygon with a triangulation and a material.
//
// Vertices are the polygon outline in order; Indices describe a triangle
// list over Vertices. The hit test uses the outline, the renderers use the
// triangulation.
type Shape struct {
	Vertices []Point
	Indices  []uint32
	Texture  string
}

// Shape kinds accepted by ShapeByName
const (
	KindSquare   = "square"
	KindTriangle = "triangle"
	KindDiamond  = "diamond"
)

// Square returns the full-viewport square (-1,-1)..(1,1)
func Square(texture string) Shape {
	return Shape{
		Vertices: []Point{NewPoint(-1, -1), NewPoint(-1, 1), NewPoint(1, 1), NewPoint(1, -1)},
		Indices:  []uint32{0, 1, 2, 2, 3, 0},
		Texture:  texture,
	}
}

// Triangle returns an upright triangle inscribed in the unit square
func Triangle(texture string) Shape {
	return Shape{
		Vertices: []Point{NewPoint(-1, -1), NewPoint(0, 1), NewPoint(1, -1)},
		Indices:  []uint32{0, 1, 2},
		Texture:  texture,
	}
}

// Diamond returns a square rotated by 45 degrees, inscribed in the unit square
func Diamond(texture string) Shape {
	return Shape{
		Vertices: []Point{NewPoint(0, -1), NewPoint(-1, 0), NewPoint(0, 1), NewPoint(1, 0)},
		Indices:  []uint32{0, 1, 2, 2, 3, 0},
		Texture:  texture,
	}
}

// ShapeByName builds a shape from its config name
func ShapeByName(kind, texture string) (Shape, error) {
	switch kind {
	case KindSquare:
		return Square(texture), nil
	case KindTriangle:
		return Triangle(texture), nil
	case KindDiamond:
		return Diamond(texture), nil
	default:
		return Shape{}, fmt.Errorf("unknown shape kind %q", kind)
	}
}

// Clone returns a deep copy so the renderer readback never aliases the template
func (s Shape) Clone() Shape {
	c := Shape{
		Vertices: make([]Point, len(s.Vertices)),
		Indices:  make([]uint32, len(s.Indices)),
		Texture:  s.Texture,
	}
	copy(c.Vertices, s.Vertices)
	copy(c.Indices, s.Indices)
	return c
}

// UpdateVertices writes post-transform positions read back from the GPU.
//
// flat holds x,y pairs in index-traversal order. The k-th pair overwrites
// the vertex referenced by Indices[k], not vertex k, so a vertex shared by
// several indices is written once per reference and the last write wins.
func (s *Shape) UpdateVertices(flat []float32) {
	if len(flat)%2 != 0 {
		panic(fmt.Sprintf("geom: readback length %d is not a whole number of vertices", len(flat)))
	}
	n := len(flat) / 2
	if n > len(s.Indices) {
		panic(fmt.Sprintf("geom: readback has %d vertices, shape has %d indices", n, len(s.Indices)))
	}
	for k := 0; k < n; k++ {
		s.Vertices[s.Indices[k]] = NewPoint(flat[2*k], flat[2*k+1])
	}
}

// Contains reports whether p lies inside the polygon outline.
//
// Crossing-number test: a horizontal ray from p toward +x is intersected
// with every edge and the point is inside when the crossing count is odd.
// Points exactly on a vertex or edge get a deterministic but unspecified answer.
func (s Shape) Contains(p Point) bool {
	n := len(s.Vertices)
	if n < 3 {
		return false
	}

	x, y := p.x, p.y
	inside := false

	for i := 0; i < n; i++ {
		vi := s.Vertices[i]
		vj := s.Vertices[(i+1)%n]

		if (y < vi.y) == (y < vj.y) {
			continue
		}
		dy := vj.y - vi.y
		if dy == 0 {
			continue
		}
		xCross := vi.x + (y-vi.y)*(vj.x-vi.x)/dy
		if xCross > x {
			inside = !inside
		}
	}

	return inside
}

// Bounds returns the axis-aligned bounding box of the outline
func (s Shape) Bounds() (lo, hi Point) {
	if len(s.Vertices) == 0 {
		return Point{}, Point{}
	}
	lo, hi = s.Vertices[0], s.Vertices[0]
	for _, v := range s.Vertices[1:] {
		lo.x = min(lo.x, v.x)
		lo.y = min(lo.y, v.y)
		hi.x = max(hi.x, v.x)
		hi.y = max(hi.y, v.y)
	}
	return lo, hi
}
