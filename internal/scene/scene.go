// Package scene is the per-frame boundary between the loaded score and a
// rendering host. A host owns the window or terminal, tells the Scene about
// resizes, calls Update once per frame and draws Count vertices out of its
// Backend as a triangle list.
package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/score"
	"github.com/icco/pianoviz/internal/timeline"
)

// Uniforms is the per-viewport data the note shader consumes.
type Uniforms struct {
	ScreenSize [2]float32
}

// Scene turns the clock reading into vertex data every frame.
type Scene struct {
	notes    []score.Note
	settings timeline.Settings
	viewport timeline.Viewport
	clock    Clock
	logger   *log.Logger
	capacity int

	buffer   *gpubuf.Buffer
	vertices []timeline.Vertex
	encoded  []byte
	now      float64
}

// Option configures a Scene.
type Option func(*Scene)

// WithClock replaces the monotonic wall clock.
func WithClock(c Clock) Option {
	return func(s *Scene) { s.clock = c }
}

// WithLogger sets the logger used for buffer reallocations.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

// WithSettings sets the initial projection settings.
func WithSettings(set timeline.Settings) Option {
	return func(s *Scene) { s.settings = set }
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(s *Scene) {
		s.viewport = timeline.Viewport{Width: float32(width), Height: float32(height)}
	}
}

// WithInitialCapacity sets the initial vertex buffer size in bytes.
func WithInitialCapacity(bytes int) Option {
	return func(s *Scene) { s.capacity = bytes }
}

// New builds a Scene drawing notes into backend. notes must be sorted by start
// time and are never modified.
func New(notes []score.Note, backend gpubuf.Backend, opts ...Option) (*Scene, error) {
	s := &Scene{
		notes:    notes,
		settings: timeline.DefaultSettings(),
		viewport: timeline.Viewport{Width: 800, Height: 600},
		logger:   log.Default(),
		capacity: gpubuf.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewMonotonicClock()
	}

	buffer, err := gpubuf.New(backend, s.capacity, gpubuf.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.buffer = buffer
	return s, nil
}

// Update projects the notes at the current clock reading and uploads them.
// It returns the number of vertices to draw.
func (s *Scene) Update() (int, error) {
	return s.UpdateAt(s.clock.Seconds())
}

// UpdateAt is Update for an explicit playback time in seconds.
func (s *Scene) UpdateAt(now float64) (int, error) {
	s.now = now
	s.vertices = timeline.AppendVertices(s.vertices[:0],
		timeline.Project(s.notes, now, s.viewport, s.settings))
	s.encoded = timeline.EncodeVertices(s.encoded[:0], s.vertices)

	if err := s.buffer.Upload(s.encoded, len(s.vertices)); err != nil {
		return 0, fmt.Errorf("failed to upload frame at %.3fs: %w", now, err)
	}
	return s.buffer.Count(), nil
}

// Resize records a new viewport size for the next Update and returns the
// uniforms to hand to the renderer. Zero-sized viewports, e.g. a minimized
// window, are ignored.
func (s *Scene) Resize(width, height int) Uniforms {
	if width > 0 && height > 0 {
		s.viewport = timeline.Viewport{Width: float32(width), Height: float32(height)}
	}
	return s.Uniforms()
}

// Uniforms returns the uniforms for the current viewport.
func (s *Scene) Uniforms() Uniforms {
	return Uniforms{ScreenSize: [2]float32{s.viewport.Width, s.viewport.Height}}
}

// Settings returns the live settings; changes apply from the next Update.
func (s *Scene) Settings() *timeline.Settings { return &s.settings }

// Notes returns the score being shown.
func (s *Scene) Notes() []score.Note { return s.notes }

// Viewport returns the current viewport.
func (s *Scene) Viewport() timeline.Viewport { return s.viewport }

// Buffer returns the vertex buffer state.
func (s *Scene) Buffer() *gpubuf.Buffer { return s.buffer }

// Vertices returns the vertices of the last Update. The slice is reused by
// the next Update.
func (s *Scene) Vertices() []timeline.Vertex { return s.vertices }

// Now returns the playback time of the last Update.
func (s *Scene) Now() float64 { return s.now }
