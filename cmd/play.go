package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/window"
	"github.com/spf13/cobra"
)

var (
	windowWidth  int
	windowHeight int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Show the falling notes in a window",
	Long: `Open a resizable window and play the notes from the start.

Keys:
  Up/Down  slow down or speed up the fall
  H        toggle help
  Esc, Q   quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&windowWidth, "width", 800, "initial window width")
	playCmd.Flags().IntVar(&windowHeight, "height", 600, "initial window height")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLogger(os.Stderr)
	if err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	defer closeLog()
	settings, err := settingsFromFlags()
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}
	notes, err := loadNotes(logger)
	if err != nil {
		return fmt.Errorf("error loading notes: %w", err)
	}

	backend := window.NewBackend()
	s, err := scene.New(notes, backend,
		scene.WithLogger(logger),
		scene.WithSettings(settings),
		scene.WithViewport(windowWidth, windowHeight),
	)
	if err != nil {
		return fmt.Errorf("error creating scene: %w", err)
	}

	err = window.Run(s, backend, window.Options{
		Title:  "Piano Visualizer - " + filepath.Base(midiFile),
		Width:  windowWidth,
		Height: windowHeight,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}
