package timeline

import (
	"iter"

	"github.com/icco/pianoviz/internal/score"
)

const (
	// NoteWidth is the horizontal size of every note, in pixels.
	NoteWidth = 20

	anchorPitch = 48 // Pitch drawn at a quarter of the viewport width
)

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// Rect is one visible note in screen space: origin top-left, y growing
// downward. Bottom is where the note meets the present line once it is
// struck.
type Rect struct {
	X0, X1      float32
	Top, Bottom float32
	Color       Color
	Pitch       uint8
}

// Vertices returns the two triangles covering r.
func (r Rect) Vertices() [VerticesPerRect]Vertex {
	c := r.Color
	return [VerticesPerRect]Vertex{
		{Position: [2]float32{r.X0, r.Bottom}, Color: c},
		{Position: [2]float32{r.X1, r.Bottom}, Color: c},
		{Position: [2]float32{r.X0, r.Top}, Color: c},
		{Position: [2]float32{r.X1, r.Bottom}, Color: c},
		{Position: [2]float32{r.X1, r.Top}, Color: c},
		{Position: [2]float32{r.X0, r.Top}, Color: c},
	}
}

// PianoKeyX returns the left edge of the column pitch falls in.
func PianoKeyX(pitch uint8, vp Viewport) float32 {
	return float32(int(pitch)-anchorPitch)*NoteWidth + vp.Width/4
}

// Project yields the rectangles of the notes visible at now.
//
// notes must be sorted by start time. The present line sits at the bottom of
// the viewport and a note takes s.FallDuration seconds to fall the full
// height; s.FallDuration must be positive.
func Project(notes []score.Note, now float64, vp Viewport, s Settings) iter.Seq[Rect] {
	return func(yield func(Rect) bool) {
		height := float64(vp.Height)
		pixelsPerSecond := height / s.FallDuration

		for _, n := range notes {
			yHit := (n.Start - now) * pixelsPerSecond
			if yHit > height {
				// Every later note starts later still.
				return
			}
			yTop := yHit + n.Duration*pixelsPerSecond
			if yTop < 0 {
				continue
			}

			x := PianoKeyX(n.Pitch, vp)
			r := Rect{
				X0:     x,
				X1:     x + NoteWidth,
				Top:    float32(height - yTop),
				Bottom: float32(height - yHit),
				Color:  s.ColorFor(n.Pitch),
				Pitch:  n.Pitch,
			}
			if !yield(r) {
				return
			}
		}
	}
}

// AppendVertices appends six vertices for every rectangle in rects.
func AppendVertices(dst []Vertex, rects iter.Seq[Rect]) []Vertex {
	for r := range rects {
		v := r.Vertices()
		dst = append(dst, v[:]...)
	}
	return dst
}
