package journal

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/theme"
)

// mode selects which document the editor is bound to.
type mode int

const (
	modeJournal mode = iota
	modePlanning
)

// Model is the journal view: a free-text editor bound to either
// today's journal (cleared at rollover) or the persistent planning
// notes. Text is saved whenever the editor loses focus or the user
// switches documents.
type Model struct {
	service *profile.Service
	input   textarea.Model
	mode    mode
	width   int
	height  int
}

// New creates a new journal view model.
func New(s *profile.Service, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "How did today go?"
	ta.CharLimit = 0
	ta.SetWidth(width - 6)
	ta.SetHeight(height - 8)
	ta.SetValue(s.Profile().Journal)

	return Model{
		service: s,
		input:   ta,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Focus gives the editor keyboard focus and reloads the bound text,
// which may have been cleared by a rollover since the last visit.
func (m *Model) Focus() tea.Cmd {
	m.reload()
	return m.input.Focus()
}

// Blur saves and releases keyboard focus.
func (m *Model) Blur() {
	m.save()
	m.input.Blur()
}

// Update handles messages for the journal view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "tab" {
		m.save()
		if m.mode == modeJournal {
			m.mode = modePlanning
		} else {
			m.mode = modeJournal
		}
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// save persists the bound document. Runs on blur and document
// switches rather than per keystroke to keep snapshot writes rare.
func (m *Model) save() {
	if m.mode == modeJournal {
		m.service.SetJournal(m.input.Value())
	} else {
		m.service.SetPlanning(m.input.Value())
	}
}

func (m *Model) reload() {
	if m.mode == modeJournal {
		m.input.Placeholder = "How did today go?"
		m.input.SetValue(m.service.Profile().Journal)
	} else {
		m.input.Placeholder = "What is the plan?"
		m.input.SetValue(m.service.Profile().Planning)
	}
}

// View renders the editor with a title for the active document.
func (m Model) View() string {
	title := "Journal · today"
	if m.mode == modePlanning {
		title = "Planning"
	}

	content := theme.TitleStyle.Render(title) + "\n" +
		m.input.View() + "\n\n" +
		theme.HelpStyle.Render("tab switch journal/planning · esc back")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 6)
	m.input.SetHeight(height - 8)
}
