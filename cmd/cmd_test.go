package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/icco/pianoviz/internal/score"
	"github.com/icco/pianoviz/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromFlags(t *testing.T) {
	defer func(f float64, l, r string) { fallDuration, leftColor, rightColor = f, l, r }(fallDuration, leftColor, rightColor)

	fallDuration, leftColor, rightColor = 30, "#0064ff", "#00ff64"
	set, err := settingsFromFlags()
	require.NoError(t, err)
	assert.Equal(t, timeline.MaxFallDuration, set.FallDuration)
	assert.Equal(t, timeline.DefaultRightHand.Hex(), set.RightHand.Hex())

	leftColor = "blue"
	_, err = settingsFromFlags()
	assert.ErrorContains(t, err, "--left")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	defer func(l string) { logLevel = l }(logLevel)

	logLevel = "loud"
	_, err := newLogger(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestInspectFallback(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", "--log-level", "error", "-f", filepath.Join(t.TempDir(), "missing.mid")})
	require.NoError(t, rootCmd.Execute())

	s := out.String()
	assert.Contains(t, s, "missing.mid")
	assert.Contains(t, s, "C3 to E4")
	assert.Contains(t, s, "1 left, 3 right")
	assert.Contains(t, s, "5.50s")
}

func TestInspectGarbageReturnsError(t *testing.T) {
	defer func(l string) { logFile = l }(logFile)

	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.mid")
	require.NoError(t, os.WriteFile(path, []byte("not midi"), 0600))
	logPath := filepath.Join(dir, "pianoviz.log")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"inspect", "-f", path, "--log-file", logPath})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "error loading notes")

	var le *score.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "parse", le.Op)
	assert.FileExists(t, logPath)
}
