// Package window shows the falling notes in a desktop window using ebiten.
package window

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/timeline"
)

const (
	fallStep = 0.5 // Seconds added or removed per key press

	// Largest multiple of six addressable with uint16 indices.
	maxBatch = 65532
)

var background = color.RGBA{R: 13, G: 13, B: 26, A: 255}

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	Logger *log.Logger
}

type game struct {
	scene   *scene.Scene
	backend *Backend
	logger  *log.Logger

	white    *ebiten.Image
	indices  []uint16
	count    int
	showHelp bool
}

// Run opens the window and drives s until the window is closed. s must draw
// into backend.
func Run(s *scene.Scene, backend *Backend, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Piano Visualizer"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := newGame(s, backend, opts.Logger)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}

func newGame(s *scene.Scene, backend *Backend, logger *log.Logger) *game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	indices := make([]uint16, maxBatch)
	for i := range indices {
		indices[i] = uint16(i)
	}

	return &game{
		scene:    s,
		backend:  backend,
		logger:   logger,
		white:    white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		indices:  indices,
		showHelp: true,
	}
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.adjustFall(fallStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.adjustFall(-fallStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHelp = !g.showHelp
	}

	count, err := g.scene.Update()
	if err != nil {
		return err
	}
	g.count = count
	return nil
}

func (g *game) adjustFall(d float64) {
	set := g.scene.Settings()
	set.FallDuration = timeline.ClampFallDuration(set.FallDuration + d)
	g.logger.Debug("fall duration changed", "seconds", set.FallDuration)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	vertices := g.backend.Vertices(g.count)
	for len(vertices) > 0 {
		n := min(len(vertices), maxBatch)
		screen.DrawTriangles(vertices[:n], g.indices[:n], g.white, &ebiten.DrawTrianglesOptions{})
		vertices = vertices[n:]
	}

	if g.showHelp {
		ebitenutil.DebugPrint(screen, g.hud())
	}
}

func (g *game) hud() string {
	set := g.scene.Settings()
	return fmt.Sprintf("t=%.2fs  fall=%.1fs  notes=%d\nup/down: fall duration  h: help  q: quit",
		g.scene.Now(), set.FallDuration, g.count/timeline.VerticesPerRect)
}

// Layout keeps the logical screen at the scene's size, which survives a
// zero-sized outside area such as a minimized window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	u := g.scene.Resize(outsideWidth, outsideHeight)
	return int(u.ScreenSize[0]), int(u.ScreenSize[1])
}
