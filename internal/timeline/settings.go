// Package timeline projects timed notes onto a falling-notes viewport.
package timeline

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultFallDuration is how long, in seconds, a note takes to fall from
	// the top of the viewport to the present line.
	DefaultFallDuration = 2.0
	MinFallDuration     = 0.5
	MaxFallDuration     = 10.0

	// DefaultHandSplit is middle C. Lower pitches are played by the left hand.
	DefaultHandSplit uint8 = 60
)

// Color is an RGB color with channels normalized to [0, 1].
type Color [3]float32

// RGB builds a Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// ParseColor parses a hex color such as "#0064ff".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().Hex()
}

// Scale multiplies every channel by f.
func (c Color) Scale(f float32) Color {
	return Color{c[0] * f, c[1] * f, c[2] * f}
}

var (
	DefaultLeftHand  = RGB(0, 100, 255)
	DefaultRightHand = RGB(0, 255, 100)
)

// Settings are the user-tunable parameters of the projection. They may change
// between any two frames.
type Settings struct {
	FallDuration float64
	LeftHand     Color
	RightHand    Color
	HandSplit    uint8
}

// DefaultSettings returns the settings the visualizer starts with.
func DefaultSettings() Settings {
	return Settings{
		FallDuration: DefaultFallDuration,
		LeftHand:     DefaultLeftHand,
		RightHand:    DefaultRightHand,
		HandSplit:    DefaultHandSplit,
	}
}

// ColorFor picks the hand color for pitch.
func (s Settings) ColorFor(pitch uint8) Color {
	if pitch < s.HandSplit {
		return s.LeftHand
	}
	return s.RightHand
}

// ClampFallDuration limits d to the range offered to users. Project itself
// never clamps; callers taking durations from the outside world should.
func ClampFallDuration(d float64) float64 {
	return min(max(d, MinFallDuration), MaxFallDuration)
}
