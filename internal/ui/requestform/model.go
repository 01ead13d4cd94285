package requestform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/theme"
)

// RequestCreatedMsg is dispatched when a new request is submitted.
type RequestCreatedMsg struct {
	Person string
	Text   string
}

// RequestFormCancelMsg is dispatched when the user cancels the form.
type RequestFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	person string
	text   string
}

// Model is the Bubble Tea model for the request creation form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new request form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for recording a new request.
func (m *Model) Start() tea.Cmd {
	m.fb.person = ""
	m.fb.text = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the request form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		created := RequestCreatedMsg{Person: m.fb.person, Text: m.fb.text}
		return m, func() tea.Msg { return created }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return RequestFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the request form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := theme.TitleStyle.Render("New Request") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Placeholder("Who asked?").
				Value(&m.fb.person).
				Validate(validateRequired("From")),
			huh.NewInput().
				Title("Request").
				Placeholder("What did they ask for?").
				Value(&m.fb.text).
				Validate(validateRequired("Request")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
