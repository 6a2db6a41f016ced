package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	notes := Fallback()
	require.Len(t, notes, 4)

	var starts []float64
	for _, n := range notes {
		starts = append(starts, n.Start)
	}
	assert.Equal(t, []float64{2.0, 2.5, 3.0, 4.0}, starts)
	assert.Equal(t, uint8(48), notes[1].Pitch)
}

func TestPitchName(t *testing.T) {
	tests := []struct {
		pitch uint8
		name  string
	}{
		{0, "C-1"},
		{21, "A0"},
		{59, "B3"},
		{60, "C4"},
		{61, "C#4"},
		{127, "G9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, PitchName(tt.pitch), "pitch %d", tt.pitch)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Fallback(), 60)
	assert.Equal(t, Summary{
		Notes:     4,
		LowPitch:  48,
		HighPitch: 64,
		End:       5.5,
		LeftHand:  1,
		RightHand: 3,
	}, s)

	assert.Equal(t, Summary{}, Summarize(nil, 60))
}

func TestTempoMapSeconds(t *testing.T) {
	m := TempoMap{{0, 500_000}, {480, 1_000_000}, {960, 250_000}}

	assert.InDelta(t, 0.0, m.Seconds(0, 480), delta)
	assert.InDelta(t, 0.25, m.Seconds(240, 480), delta)
	assert.InDelta(t, 0.5, m.Seconds(480, 480), delta)
	assert.InDelta(t, 1.5, m.Seconds(960, 480), delta)
	assert.InDelta(t, 2.0, m.Seconds(1920, 480), delta)

	assert.Equal(t, uint32(500_000), m.At(479))
	assert.Equal(t, uint32(1_000_000), m.At(480))
	assert.Equal(t, uint32(250_000), m.At(10_000))
}

func TestBreakpointBPM(t *testing.T) {
	assert.InDelta(t, 120.0, Breakpoint{MicrosPerBeat: DefaultMicrosPerBeat}.BPM(), delta)
}
