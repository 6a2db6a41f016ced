package score

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2/smf"
)

// LoadError reports a score that could not be read or parsed.
type LoadError struct {
	Path string
	Op   string // "read" or "parse"
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s midi: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s midi %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the SMF at path and returns its notes sorted by start time.
func Load(path string) ([]Note, error) {
	s, err := LoadSMF(path)
	if err != nil {
		return nil, err
	}
	return FromSMF(s), nil
}

// LoadSMF reads and parses the SMF at path without extracting notes.
func LoadSMF(path string) (*smf.SMF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: err}
	}
	s, err := ReadSMF(bytes.NewReader(data))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Read parses an SMF stream and returns its notes sorted by start time.
func Read(r io.Reader) ([]Note, error) {
	s, err := ReadSMF(r)
	if err != nil {
		return nil, err
	}
	return FromSMF(s), nil
}

// ReadSMF parses an SMF stream.
func ReadSMF(r io.Reader) (s *smf.SMF, err error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			err = &LoadError{Op: "parse", Err: fmt.Errorf("%v", rec)}
		}
	}()

	s, err = smf.ReadFrom(r)
	if err != nil {
		return nil, &LoadError{Op: "parse", Err: err}
	}
	return s, nil
}

// LoadOrFallback loads path, substituting Fallback when the file does not
// exist. The returned bool reports whether the fallback was used.
func LoadOrFallback(path string, logger *log.Logger) ([]Note, bool, error) {
	notes, err := Load(path)
	switch {
	case err == nil:
		return notes, false, nil
	case errors.Is(err, fs.ErrNotExist):
		if logger != nil {
			logger.Warn("midi file not found, using fallback notes", "path", path)
		}
		return Fallback(), true, nil
	default:
		return nil, false, err
	}
}

type noteKey struct {
	channel uint8
	pitch   uint8
}

type openNote struct {
	startTick uint64
	velocity  uint8
}

// FromSMF pairs the note-on and note-off events of every track into notes.
//
// A note-on for a (channel, pitch) that is already sounding closes the old
// note at the current tick before opening the new one. Note-on with velocity
// zero is a note-off. Note-offs with nothing open are ignored, and notes still
// open at the end of their track are dropped.
func FromSMF(s *smf.SMF) []Note {
	tpb := TicksPerBeat(s.TimeFormat)
	tempo := NewTempoMap(s)

	var notes []Note
	emit := func(track int, key noteKey, open openNote, endTick uint64) {
		notes = append(notes, Note{
			Pitch:    key.pitch,
			Velocity: open.velocity,
			Start:    tempo.Seconds(open.startTick, tpb),
			Duration: TicksToSeconds(endTick-open.startTick, tpb, tempo.At(open.startTick)),
			Channel:  key.channel,
			Track:    track,
		})
	}

	for trackIdx, track := range s.Tracks {
		pending := make(map[noteKey]openNote)
		var currentTick uint64

		for _, ev := range track {
			currentTick += uint64(ev.Delta)

			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteOn(&channel, &key, &velocity):
				k := noteKey{channel: channel, pitch: key}
				prev, sounding := pending[k]
				if sounding {
					delete(pending, k)
					emit(trackIdx, k, prev, currentTick)
				}
				if velocity > 0 {
					pending[k] = openNote{startTick: currentTick, velocity: velocity}
				}
			case ev.Message.GetNoteOff(&channel, &key, &velocity):
				k := noteKey{channel: channel, pitch: key}
				if prev, ok := pending[k]; ok {
					delete(pending, k)
					emit(trackIdx, k, prev, currentTick)
				}
			}
		}
	}

	sortByStart(notes)
	return notes
}
