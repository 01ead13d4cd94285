package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/theme"
)

// Model is the history view: one block per recorded day, newest first,
// in a scrollable viewport.
type Model struct {
	service *profile.Service
	vp      viewport.Model
	width   int
	height  int
}

// New creates a new history view model.
func New(s *profile.Service, width, height int) Model {
	vp := viewport.New(width, height-2)
	return Model{
		service: s,
		vp:      vp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh re-renders the viewport content from the current history.
func (m *Model) Refresh() {
	m.vp.SetContent(m.renderEntries())
	m.vp.GotoTop()
}

// Update handles messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the scrollable history.
func (m Model) View() string {
	title := theme.TitleStyle.Render("History")
	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(title + "\n" + m.vp.View())
}

func (m Model) renderEntries() string {
	entries := m.service.Profile().History
	if len(entries) == 0 {
		return theme.HelpStyle.Render("nothing recorded yet")
	}

	var b strings.Builder
	// Newest first
	for i := len(entries) - 1; i >= 0; i-- {
		b.WriteString(m.renderEntry(entries[i]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEntry(e model.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(e.Date))
	b.WriteString("\n")

	var traits []string
	for _, t := range model.AllTraits {
		if v, ok := e.Traits[t]; ok {
			traits = append(traits, fmt.Sprintf("%c:%d", t[0], v))
		}
	}
	if len(traits) > 0 {
		b.WriteString("  " + strings.Join(traits, "  "))
		b.WriteString("\n")
	}

	if len(e.CompletedTasks) > 0 {
		b.WriteString(fmt.Sprintf("  done: %s", strings.Join(e.CompletedTasks, ", ")))
		b.WriteString("\n")
	}

	if e.Journal != "" {
		b.WriteString(theme.HelpStyle.Render("  " + firstLine(e.Journal)))
		b.WriteString("\n")
	}

	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width - 4
	m.vp.Height = height - 4
}
