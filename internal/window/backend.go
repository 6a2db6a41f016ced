package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/icco/pianoviz/internal/timeline"
)

// Backend is the vertex memory handed to ebiten's triangle pipeline. Encoded
// vertices are expanded into ebiten.Vertex values sampling a single white
// source pixel, so the vertex color is the fill color.
type Backend struct {
	vertices []ebiten.Vertex
}

// NewBackend returns an unallocated Backend.
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Reallocate(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("negative capacity %d", capacity)
	}
	b.vertices = make([]ebiten.Vertex, capacity/timeline.VertexSize)
	return nil
}

func (b *Backend) Write(offset int, data []byte) error {
	if offset%timeline.VertexSize != 0 || len(data)%timeline.VertexSize != 0 {
		return fmt.Errorf("write of %d bytes at %d is not vertex aligned", len(data), offset)
	}
	first := offset / timeline.VertexSize
	n := len(data) / timeline.VertexSize
	if first+n > len(b.vertices) {
		return fmt.Errorf("write of %d vertices at %d overflows %d vertex buffer", n, first, len(b.vertices))
	}
	for i := range n {
		v := timeline.DecodeVertex(data[i*timeline.VertexSize:])
		b.vertices[first+i] = ebiten.Vertex{
			DstX:   v.Position[0],
			DstY:   v.Position[1],
			SrcX:   1,
			SrcY:   1,
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: 1,
		}
	}
	return nil
}

// Vertices returns the first count vertices of the buffer.
func (b *Backend) Vertices(count int) []ebiten.Vertex {
	return b.vertices[:min(count, len(b.vertices))]
}
