package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/scene"
)

// Run shows s full screen until the user quits.
func Run(s *scene.Scene, backend *gpubuf.MemoryBackend, title string) error {
	p := tea.NewProgram(NewModel(s, backend, title), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
