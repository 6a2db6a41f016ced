package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	midiFile     string
	fallDuration float64
	leftColor    string
	rightColor   string
	handSplit    uint8
	logLevel     string
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "pianoviz",
	Short: "A falling-notes piano roll for MIDI files",
	Long: `pianoviz draws the notes of a Standard MIDI File as bars falling toward a
present line, like a piano tutorial video.

Notes below the hand split are drawn in the left hand color and the rest in
the right hand color. If the MIDI file does not exist a short built-in phrase
is shown instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&midiFile, "file", "f", "test.mid", "MIDI file to show")
	f.Float64Var(&fallDuration, "fall", 2.0, "seconds a note takes to fall the height of the view")
	f.StringVar(&leftColor, "left", "#0064ff", "color of notes below the hand split")
	f.StringVar(&rightColor, "right", "#00ff64", "color of notes at or above the hand split")
	f.Uint8Var(&handSplit, "split", 60, "lowest pitch played by the right hand")
	f.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
