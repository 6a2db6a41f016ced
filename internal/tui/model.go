// Package tui shows the falling notes in the terminal with Bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/pianoviz/internal/gpubuf"
	"github.com/icco/pianoviz/internal/scene"
	"github.com/icco/pianoviz/internal/timeline"
)

const (
	keyUp   = "up"
	keyDown = "down"

	frameInterval = time.Second / 30
	fallStep      = 0.5

	// Rows used by the title and help lines.
	chromeRows = 4
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	presentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
)

// tickMsg drives one frame
type tickMsg time.Time

// Model is the terminal view of a Scene. The Scene must draw into backend.
type Model struct {
	scene   *scene.Scene
	backend *gpubuf.MemoryBackend
	title   string

	cols, rows int
	count      int
	err        error
}

// NewModel wraps s, which draws into backend.
func NewModel(s *scene.Scene, backend *gpubuf.MemoryBackend, title string) Model {
	return Model{scene: s, backend: backend, title: title}
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(0, msg.Height-chromeRows)
		m.scene.Resize(m.cols*cellWidth, m.rows*cellHeight)
		return m, nil

	case tickMsg:
		count, err := m.scene.Update()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.count = count
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case keyUp, "+", "=":
			m.adjustFall(fallStep)
		case keyDown, "-", "_":
			m.adjustFall(-fallStep)
		}
	}

	return m, nil
}

func (m *Model) adjustFall(d float64) {
	set := m.scene.Settings()
	set.FallDuration = timeline.ClampFallDuration(set.FallDuration + d)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
		return b.String()
	}

	if m.rows > 0 && m.cols > 0 {
		data := m.backend.Bytes()[:m.count*timeline.VertexSize]
		b.WriteString(rasterize(timeline.DecodeVertices(data), m.cols, m.rows).render() + "\n")
		b.WriteString(presentStyle.Render(strings.Repeat("─", m.cols)) + "\n")
	}

	set := m.scene.Settings()
	b.WriteString(fmt.Sprintf("t=%.1fs  fall=%.1fs  notes=%d\n",
		m.scene.Now(), set.FallDuration, m.count/timeline.VerticesPerRect))
	b.WriteString(helpStyle.Render("↑/+: slower • ↓/-: faster • q: quit"))

	return b.String()
}
