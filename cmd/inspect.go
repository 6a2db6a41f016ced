package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/icco/pianoviz/internal/score"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var inspectNotes int

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(12)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print what the loader makes of a MIDI file",
	Long: `Print the header resolution, the tempo map and a summary of the notes that
would be shown for a MIDI file.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectNotes, "notes", "n", 10, "number of notes to list")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLogger(os.Stderr)
	if err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	defer closeLog()

	var b strings.Builder
	b.WriteString(headingStyle.Render(midiFile) + "\n")

	var notes []score.Note
	sm, err := score.LoadSMF(midiFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("midi file not found, using fallback notes", "path", midiFile)
		notes = score.Fallback()
	case err != nil:
		return fmt.Errorf("error loading notes: %w", err)
	default:
		notes = score.FromSMF(sm)
		writeHeader(&b, sm)
	}

	writeSummary(&b, score.Summarize(notes, handSplit))
	writeNotes(&b, notes)
	_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}

func field(b *strings.Builder, label, format string, args ...any) {
	b.WriteString(labelStyle.Render(label) + fmt.Sprintf(format, args...) + "\n")
}

func writeHeader(b *strings.Builder, sm *smf.SMF) {
	switch tf := sm.TimeFormat.(type) {
	case smf.MetricTicks:
		field(b, "resolution", "%d ticks per beat", uint16(tf))
	default:
		field(b, "resolution", "%v (using %d ticks per beat)", tf, score.DefaultTicksPerBeat)
	}
	field(b, "tracks", "%d", len(sm.Tracks))

	b.WriteString("\n" + headingStyle.Render("Tempo") + "\n")
	for _, bp := range score.NewTempoMap(sm) {
		field(b, fmt.Sprintf("tick %d", bp.Tick), "%.2f BPM (%d µs/beat)", bp.BPM(), bp.MicrosPerBeat)
	}
}

func writeSummary(b *strings.Builder, s score.Summary) {
	b.WriteString("\n" + headingStyle.Render("Notes") + "\n")
	field(b, "count", "%d", s.Notes)
	if s.Notes == 0 {
		return
	}
	field(b, "range", "%s to %s", score.PitchName(s.LowPitch), score.PitchName(s.HighPitch))
	field(b, "length", "%.2fs", s.End)
	field(b, "hands", "%d left, %d right (split at %s)", s.LeftHand, s.RightHand, score.PitchName(handSplit))
}

func writeNotes(b *strings.Builder, notes []score.Note) {
	n := min(inspectNotes, len(notes))
	if n <= 0 {
		return
	}
	b.WriteString("\n")
	for _, note := range notes[:n] {
		field(b, fmt.Sprintf("%.3fs", note.Start), "%-4s %.3fs  vel %-3d ch %d track %d",
			note.Name(), note.Duration, note.Velocity, note.Channel, note.Track)
	}
	if len(notes) > n {
		field(b, "", "... %d more", len(notes)-n)
	}
}
