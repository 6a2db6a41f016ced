package score

import (
	"math"
	"slices"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// DefaultMicrosPerBeat is the SMF default tempo, 120 BPM.
	DefaultMicrosPerBeat uint32 = 500_000
	// DefaultTicksPerBeat is used when the header is not in metrical time.
	DefaultTicksPerBeat uint16 = 480

	microsPerMinute = 60_000_000
)

// Breakpoint marks the tick from which a tempo applies.
type Breakpoint struct {
	Tick          uint64
	MicrosPerBeat uint32
}

// BPM returns the tempo in beats per minute.
func (b Breakpoint) BPM() float64 {
	return microsPerMinute / float64(b.MicrosPerBeat)
}

// TempoMap is the ordered list of tempo breakpoints of a file. It is never
// empty and its ticks never decrease.
type TempoMap []Breakpoint

// NewTempoMap collects the tempo meta events of every track, positioned at
// their cumulative tick within their track.
func NewTempoMap(s *smf.SMF) TempoMap {
	var m TempoMap
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				m = append(m, Breakpoint{Tick: tick, MicrosPerBeat: microsFromBPM(bpm)})
			}
		}
	}
	return normalizeTempoMap(m)
}

func normalizeTempoMap(m TempoMap) TempoMap {
	slices.SortStableFunc(m, func(a, b Breakpoint) int {
		switch {
		case a.Tick < b.Tick:
			return -1
		case a.Tick > b.Tick:
			return 1
		}
		return 0
	})
	if len(m) == 0 || m[0].Tick > 0 {
		m = append(TempoMap{{Tick: 0, MicrosPerBeat: DefaultMicrosPerBeat}}, m...)
	}
	return m
}

func microsFromBPM(bpm float64) uint32 {
	return uint32(math.Round(microsPerMinute / bpm))
}

// index returns the position of the breakpoint in effect at tick. When more
// than one breakpoint shares a tick the last one wins.
func (m TempoMap) index(tick uint64) int {
	i := sort.Search(len(m), func(i int) bool { return m[i].Tick > tick })
	if i == 0 {
		return 0
	}
	return i - 1
}

// At returns the microseconds per beat in effect at tick.
func (m TempoMap) At(tick uint64) uint32 {
	if len(m) == 0 {
		return DefaultMicrosPerBeat
	}
	return m[m.index(tick)].MicrosPerBeat
}

// Seconds returns the wall-clock time of tick, integrating over every tempo
// segment before it.
func (m TempoMap) Seconds(tick uint64, ticksPerBeat uint16) float64 {
	if len(m) == 0 {
		return TicksToSeconds(tick, ticksPerBeat, DefaultMicrosPerBeat)
	}
	var secs float64
	for i, bp := range m {
		if bp.Tick >= tick {
			break
		}
		end := tick
		if i+1 < len(m) && m[i+1].Tick < tick {
			end = m[i+1].Tick
		}
		secs += TicksToSeconds(end-bp.Tick, ticksPerBeat, bp.MicrosPerBeat)
	}
	return secs
}

// TicksToSeconds converts a tick span to seconds under a single tempo.
func TicksToSeconds(ticks uint64, ticksPerBeat uint16, microsPerBeat uint32) float64 {
	if ticksPerBeat == 0 {
		ticksPerBeat = DefaultTicksPerBeat
	}
	return float64(ticks) * (float64(microsPerBeat) / 1_000_000) / float64(ticksPerBeat)
}

// TicksPerBeat returns the metrical resolution of tf, or DefaultTicksPerBeat
// for any other time format.
func TicksPerBeat(tf smf.TimeFormat) uint16 {
	if mt, ok := tf.(smf.MetricTicks); ok && mt > 0 {
		return uint16(mt)
	}
	return DefaultTicksPerBeat
}
