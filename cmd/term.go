package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/tui"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Show the falling notes in the terminal",
	Long: `Draw the falling notes with block characters inside the terminal.

The terminal owns stderr while the view is up, so logs are discarded unless
--log-file is given.`,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLogger(io.Discard)
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

	backend := gpubuf.NewMemoryBackend()
	s, err := scene.New(notes, backend,
		scene.WithLogger(logger),
		scene.WithSettings(settings),
	)
	if err != nil {
		return fmt.Errorf("error creating scene: %w", err)
	}

	if err := tui.Run(s, backend, filepath.Base(midiFile)); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
