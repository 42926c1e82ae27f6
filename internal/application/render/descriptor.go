package render

// ShapeDescriptor is the range one shape occupies in a shared buffer.
//
// Units depend on the renderer: indices for StaticRenderer, vertices for
// DynamicRenderer. The byte helpers take the number of elements per unit
// and the element size.
type ShapeDescriptor struct {
	Offset int
	Count  int
}

// OffsetBytes returns the byte offset of the range
func (d ShapeDescriptor) OffsetBytes(unitSize, elemSize int) int {
	return d.Offset * unitSize * elemSize
}

// SizeBytes returns the byte length of the range
func (d ShapeDescriptor) SizeBytes(unitSize, elemSize int) int {
	return d.Count * unitSize * elemSize
}

// Span returns [start, end) in elements, for slicing the CPU-side arena
func (d ShapeDescriptor) Span(unitSize int) (start, end int) {
	start = d.Offset * unitSize
	return start, start + d.Count*unitSize
}

// End returns the first unit after the range
func (d ShapeDescriptor) End() int {
	return d.Offset + d.Count
}
