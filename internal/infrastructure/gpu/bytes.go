package gpu

import (
	"encoding/binary"
	"math"
)

// Float32Bytes encodes floats as little-endian bytes, the buffer layout
func Float32Bytes(v []float32) []byte {
	b := make([]byte, len(v)*FloatSize)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*FloatSize:], math.Float32bits(f))
	}
	return b
}

// Uint32Bytes encodes indices as little-endian bytes
func Uint32Bytes(v []uint32) []byte {
	b := make([]byte, len(v)*IndexSize)
	for i, u := range v {
		binary.LittleEndian.PutUint32(b[i*IndexSize:], u)
	}
	return b
}

// DecodeFloat32 decodes len(dst) floats from b
func DecodeFloat32(dst []float32, b []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*FloatSize:]))
	}
}

// DecodeUint32 decodes len(dst) indices from b
func DecodeUint32(dst []uint32, b []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(b[i*IndexSize:])
	}
}
