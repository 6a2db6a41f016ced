// Package gpubuf keeps a growable, GPU-facing vertex buffer fed.
//
// The Buffer owns the growth policy; the graphics API handle lives behind a
// Backend so the policy can be exercised without a device.
package gpubuf

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DefaultCapacity holds ten notes worth of vertices.
const DefaultCapacity = 6 * 10 * 20

// Backend is the device memory a Buffer writes into.
type Backend interface {
	// Reallocate replaces the device buffer with one of capacity bytes.
	// Previous contents need not survive.
	Reallocate(capacity int) error
	// Write copies data into the device buffer at offset.
	Write(offset int, data []byte) error
}

// Buffer tracks the capacity of a Backend and the number of vertices last
// uploaded to it.
type Buffer struct {
	backend  Backend
	logger   *log.Logger
	capacity int
	count    int
	reallocs int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLogger logs reallocations to l.
func WithLogger(l *log.Logger) Option {
	return func(b *Buffer) { b.logger = l }
}

// New allocates the initial device buffer of capacity bytes.
func New(backend Backend, capacity int, opts ...Option) (*Buffer, error) {
	b := &Buffer{backend: backend}
	for _, opt := range opts {
		opt(b)
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if err := backend.Reallocate(capacity); err != nil {
		return nil, fmt.Errorf("failed to allocate vertex buffer: %w", err)
	}
	b.capacity = capacity
	return b, nil
}

// Upload writes one frame of encoded vertices.
//
// An empty frame only resets the draw count. A frame larger than the current
// capacity reallocates the backend to twice the required size first.
func (b *Buffer) Upload(data []byte, vertexCount int) error {
	if len(data) == 0 {
		b.count = 0
		return nil
	}

	if required := len(data); required > b.capacity {
		grown := required * 2
		if b.logger != nil {
			b.logger.Info("reallocating vertex buffer", "from", b.capacity, "to", grown)
		}
		if err := b.backend.Reallocate(grown); err != nil {
			b.count = 0
			return fmt.Errorf("failed to grow vertex buffer to %d bytes: %w", grown, err)
		}
		b.capacity = grown
		b.reallocs++
	}

	if err := b.backend.Write(0, data); err != nil {
		b.count = 0
		return fmt.Errorf("failed to write vertex buffer: %w", err)
	}
	b.count = vertexCount
	return nil
}

// Capacity returns the size of the device buffer in bytes.
func (b *Buffer) Capacity() int { return b.capacity }

// Count returns the number of vertices to draw.
func (b *Buffer) Count() int { return b.count }

// Reallocations returns how many times Upload has grown the buffer.
func (b *Buffer) Reallocations() int { return b.reallocs }
