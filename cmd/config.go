package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/icco/pianoviz/internal/score"
	"github.com/icco/pianoviz/internal/timeline"
)

// openLogger builds the logger for a subcommand. Logs go to --log-file when
// set and to w otherwise. The returned func closes the log file.
func openLogger(w io.Writer) (*log.Logger, func(), error) {
	closeLog := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}
	logger, err := newLogger(w)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return logger, closeLog, nil
}

func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "pianoviz",
	}), nil
}

// settingsFromFlags turns the persistent flags into projection settings.
func settingsFromFlags() (timeline.Settings, error) {
	left, err := timeline.ParseColor(leftColor)
	if err != nil {
		return timeline.Settings{}, fmt.Errorf("--left: %w", err)
	}
	right, err := timeline.ParseColor(rightColor)
	if err != nil {
		return timeline.Settings{}, fmt.Errorf("--right: %w", err)
	}
	return timeline.Settings{
		FallDuration: timeline.ClampFallDuration(fallDuration),
		LeftHand:     left,
		RightHand:    right,
		HandSplit:    handSplit,
	}, nil
}

func loadNotes(logger *log.Logger) ([]score.Note, error) {
	notes, fallback, err := score.LoadOrFallback(midiFile, logger)
	if err != nil {
		return nil, err
	}
	if !fallback {
		logger.Info("loaded midi file", "path", midiFile, "notes", len(notes))
	}
	return notes, nil
}
