package gpubuf

import "fmt"

// MemoryBackend is a Backend over a plain byte slice, for hosts that
// rasterize on the CPU.
type MemoryBackend struct {
	data []byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Reallocate(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("negative capacity %d", capacity)
	}
	m.data = make([]byte, capacity)
	return nil
}

func (m *MemoryBackend) Write(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > len(m.data) {
		return fmt.Errorf("write of %d bytes at %d overflows %d byte buffer", len(data), offset, len(m.data))
	}
	copy(m.data[offset:], data)
	return nil
}

// Bytes returns the whole buffer, including bytes past the last upload.
func (m *MemoryBackend) Bytes() []byte {
	return m.data
}
