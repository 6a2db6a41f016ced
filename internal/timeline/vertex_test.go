package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexEncoding(t *testing.T) {
	vs := []Vertex{
		{Position: [2]float32{1.5, -2}, Color: [3]float32{0, 0.5, 1}},
		{Position: [2]float32{800, 600}, Color: [3]float32{0.25, 0.75, 0}},
	}

	b := EncodeVertices(nil, vs)
	require.Len(t, b, 2*VertexSize)
	// 1.5 as little-endian float32
	assert.Equal(t, []byte{0x00, 0x00, 0xc0, 0x3f}, b[:4])

	assert.Equal(t, vs, DecodeVertices(b))
	assert.Equal(t, vs[1], DecodeVertex(b[VertexSize:]))

	// Trailing partial vertices are ignored.
	assert.Equal(t, vs[:1], DecodeVertices(b[:VertexSize+3]))
}

func TestEncodeAppends(t *testing.T) {
	prefix := []byte{0xAA}
	b := EncodeVertices(prefix, []Vertex{{}})
	assert.Len(t, b, 1+VertexSize)
	assert.Equal(t, byte(0xAA), b[0])
}
