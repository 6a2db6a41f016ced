// Package snapshot renders frames of a Scene to PNG files with gg.
package snapshot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/timeline"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var background = timeline.Color{0.05, 0.05, 0.1}

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Renderer draws the vertex buffer of a Scene.
type Renderer struct {
	scene   *scene.Scene
	backend *gpubuf.MemoryBackend
	dc      *gg.Context
	face    font.Face
	labels  bool
}

// New returns a Renderer for s, which must draw into backend. The image takes
// the scene's screen size. With labels set, every C is marked along the
// bottom edge.
func New(s *scene.Scene, backend *gpubuf.MemoryBackend, labels bool) (*Renderer, error) {
	size := s.Uniforms().ScreenSize
	r := &Renderer{
		scene:   s,
		backend: backend,
		dc:      gg.NewContext(int(size[0]), int(size[1])),
		labels:  labels,
	}
	if labels {
		f, err := loadFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		r.face = truetype.NewFace(f, &truetype.Options{Size: timeline.NoteWidth / 2})
	}
	return r, nil
}

// Frame renders the scene at time at into the drawing context.
func (r *Renderer) Frame(at float64) error {
	count, err := r.scene.UpdateAt(at)
	if err != nil {
		return err
	}

	dc := r.dc
	setColor(dc, background)
	dc.Clear()

	// Whole quads only; per-triangle fills seam along the diagonal.
	vs := timeline.DecodeVertices(r.backend.Bytes()[:count*timeline.VertexSize])
	for i := 0; i+timeline.VerticesPerRect <= len(vs); i += timeline.VerticesPerRect {
		quad := vs[i : i+timeline.VerticesPerRect]
		x0, y0, x1, y1 := bounds(quad)
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		setColor(dc, quad[0].Color)
		dc.Fill()
	}

	if r.labels {
		r.drawCLabels()
	}
	return nil
}

func (r *Renderer) drawCLabels() {
	dc := r.dc
	vp := r.scene.Viewport()
	dc.SetFontFace(r.face)
	for pitch := 12; pitch <= 120; pitch += 12 {
		x := timeline.PianoKeyX(uint8(pitch), vp)
		if x < 0 || x >= vp.Width {
			continue
		}
		if pitch == int(r.scene.Settings().HandSplit) {
			dc.SetRGBA(1, 1, 1, 0.8)
		} else {
			dc.SetRGBA(1, 1, 1, 0.4)
		}
		dc.DrawString(fmt.Sprintf("C%d", pitch/12-1), float64(x)+timeline.NoteWidth/6, float64(vp.Height)-4)
	}
}

// bounds returns the bounding box of a quad's vertices.
func bounds(quad []timeline.Vertex) (x0, y0, x1, y1 float64) {
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	for _, v := range quad {
		x, y := float64(v.Position[0]), float64(v.Position[1])
		x0, x1 = min(x0, x), max(x1, x)
		y0, y1 = min(y0, y), max(y1, y)
	}
	return x0, y0, x1, y1
}

func setColor(dc *gg.Context, c timeline.Color) {
	dc.SetRGB(float64(c[0]), float64(c[1]), float64(c[2]))
}

// Save renders the frame at time at and writes it to path as PNG.
func (r *Renderer) Save(at float64, path string) error {
	if err := r.Frame(at); err != nil {
		return err
	}
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SaveSequence writes count frames starting at start, fps frames per second,
// into dir as fr00001.png, fr00002.png and so on.
func (r *Renderer) SaveSequence(dir string, start float64, fps, count int) ([]string, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	paths := make([]string, 0, count)
	for i := range count {
		path := filepath.Join(dir, fmt.Sprintf("fr%05d.png", i+1))
		if err := r.Save(start+float64(i)/float64(fps), path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Image returns the drawing context holding the last frame.
func (r *Renderer) Image() *gg.Context {
	return r.dc
}
