package timeline

import (
	"encoding/binary"
	"math"
	"slices"
)

const (
	// VertexSize is the stride of an encoded Vertex in bytes.
	VertexSize = 20
	// ColorOffset is the byte offset of the color attribute in a vertex.
	ColorOffset = 8

	VerticesPerRect = 6
)

// Vertex is the per-vertex input of the note pipeline: a float32x2 position
// followed by a float32x3 color, little-endian.
type Vertex struct {
	Position [2]float32
	Color    [3]float32
}

// EncodeVertices appends the wire encoding of vs to dst.
func EncodeVertices(dst []byte, vs []Vertex) []byte {
	dst = slices.Grow(dst, len(vs)*VertexSize)
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[1]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Color[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Color[1]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Color[2]))
	}
	return dst
}

// DecodeVertices decodes every whole vertex in b.
func DecodeVertices(b []byte) []Vertex {
	vs := make([]Vertex, 0, len(b)/VertexSize)
	for len(b) >= VertexSize {
		vs = append(vs, DecodeVertex(b))
		b = b[VertexSize:]
	}
	return vs
}

// DecodeVertex decodes the vertex at the start of b, which must hold at least
// VertexSize bytes.
func DecodeVertex(b []byte) Vertex {
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	}
	return Vertex{
		Position: [2]float32{f(0), f(4)},
		Color:    [3]float32{f(ColorOffset), f(ColorOffset + 4), f(ColorOffset + 8)},
	}
}
