package snapshot

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, labels bool) *Renderer {
	t.Helper()
	backend := gpubuf.NewMemoryBackend()
	s, err := scene.New(score.Fallback(), backend,
		scene.WithClock(&scene.ManualClock{}),
		scene.WithLogger(log.New(io.Discard)),
	)
	require.NoError(t, err)

	r, err := New(s, backend, labels)
	require.NoError(t, err)
	return r
}

func assertPixel(t *testing.T, img image.Image, x, y int, want [3]uint8) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	got := [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
	for i := range got {
		assert.InDelta(t, int(want[i]), got[i], 2, "pixel %d,%d channel %d", x, y, i)
	}
}

func TestFrameColors(t *testing.T) {
	r := newRenderer(t, false)
	require.NoError(t, r.Frame(2))

	img := r.Image().Image()
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())

	// Background.
	assertPixel(t, img, 50, 50, [3]uint8{12, 12, 25})
	// Middle C, right hand, from the present line up to y=300.
	assertPixel(t, img, 450, 450, [3]uint8{0, 255, 100})
	assertPixel(t, img, 450, 250, [3]uint8{12, 12, 25})
	// C3, left hand, between y=150 and y=450.
	assertPixel(t, img, 210, 300, [3]uint8{0, 100, 255})
}

func TestFrameHasNoDiagonalSeam(t *testing.T) {
	r := newRenderer(t, false)
	require.NoError(t, r.Frame(2))
	img := r.Image().Image()

	// The shared edge of middle C's triangles runs from (460,600) to
	// (440,300); every pixel inside the note must be the full hand color.
	for y := 302; y < 598; y++ {
		for x := 441; x < 459; x++ {
			assertPixel(t, img, x, y, [3]uint8{0, 255, 100})
		}
	}
}

func TestImageTakesSceneSize(t *testing.T) {
	backend := gpubuf.NewMemoryBackend()
	s, err := scene.New(score.Fallback(), backend,
		scene.WithClock(&scene.ManualClock{}),
		scene.WithLogger(log.New(io.Discard)),
	)
	require.NoError(t, err)
	s.Resize(320, 240)

	r, err := New(s, backend, false)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), r.Image().Image().Bounds())
}

func TestSaveSequence(t *testing.T) {
	r := newRenderer(t, true)
	dir := filepath.Join(t.TempDir(), "frames")

	paths, err := r.SaveSequence(dir, 1, 10, 3)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "fr00001.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "fr00003.png"), paths[2])

	f, err := os.Open(paths[2])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestSaveSequenceBadFPS(t *testing.T) {
	r := newRenderer(t, false)
	_, err := r.SaveSequence(t.TempDir(), 0, 0, 3)
	assert.Error(t, err)
}
