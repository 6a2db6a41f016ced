// Package score converts Standard MIDI Files into a flat, time-ordered list of
// notes with absolute start times and durations in seconds.
package score

import (
	"fmt"
	"slices"
)

const (
	minMIDINote    = 0   // Minimum MIDI note value
	maxMIDINote    = 127 // Maximum MIDI note value
	notesPerOctave = 12  // Number of notes in an octave
)

// Note is a single sounded note, resolved to wall-clock seconds.
type Note struct {
	Pitch    uint8
	Velocity uint8   // Velocity of the note-on that opened the note
	Start    float64 // Seconds from the start of the stream
	Duration float64 // Seconds between note-on and the matching note-off

	Channel uint8
	Track   int
}

// End returns the time in seconds at which the note is released.
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Name returns the scientific pitch name, e.g. "C4" for 60.
func (n Note) Name() string {
	return PitchName(n.Pitch)
}

// PitchName returns the scientific pitch name for a MIDI key number.
func PitchName(pitch uint8) string {
	names := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(pitch/notesPerOctave) - 1
	return fmt.Sprintf("%s%d", names[pitch%notesPerOctave], octave)
}

// Fallback returns the small fixed score shown when no MIDI file is present.
func Fallback() []Note {
	notes := []Note{
		{Pitch: 60, Velocity: 100, Start: 2.0, Duration: 1.0},
		{Pitch: 62, Velocity: 100, Start: 3.0, Duration: 0.5},
		{Pitch: 64, Velocity: 100, Start: 4.0, Duration: 1.5},
		// Left hand, below middle C
		{Pitch: 48, Velocity: 100, Start: 2.5, Duration: 1.0},
	}
	sortByStart(notes)
	return notes
}

func sortByStart(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
}

// Summary describes a loaded score.
type Summary struct {
	Notes     int
	LowPitch  uint8
	HighPitch uint8
	End       float64 // Release time of the last sounding note
	LeftHand  int     // Notes below the split pitch
	RightHand int
}

// Summarize computes a Summary, counting hands against split.
func Summarize(notes []Note, split uint8) Summary {
	s := Summary{LowPitch: maxMIDINote, HighPitch: minMIDINote}
	if len(notes) == 0 {
		s.LowPitch, s.HighPitch = 0, 0
		return s
	}
	for _, n := range notes {
		s.Notes++
		s.LowPitch = min(s.LowPitch, n.Pitch)
		s.HighPitch = max(s.HighPitch, n.Pitch)
		s.End = max(s.End, n.End())
		if n.Pitch < split {
			s.LeftHand++
		} else {
			s.RightHand++
		}
	}
	return s
}
