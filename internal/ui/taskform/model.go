package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is submitted via the form.
type TaskCreatedMsg struct {
	Text     string
	Priority model.Priority
	Deadline *time.Time
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text     string
	priority string
	deadline string
}

// Model is the Bubble Tea model for the task creation form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: string(model.PriorityMedium)},
		width:  width,
		height: height,
	}
}

// Start initializes the form for creating a new task.
func (m *Model) Start() tea.Cmd {
	m.fb.text = ""
	m.fb.priority = string(model.PriorityMedium)
	m.fb.deadline = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := theme.TitleStyle.Render("New Task") + "\n" + m.form.View()

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
				Title("Task").
				Placeholder("What needs to be done?").
				Value(&m.fb.text).
				Validate(validateRequired("Task")),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High (+30 XP)", string(model.PriorityHigh)),
					huh.NewOption("Medium (+20 XP)", string(model.PriorityMedium)),
					huh.NewOption("Low (+10 XP)", string(model.PriorityLow)),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD, empty for a daily task").
				Value(&m.fb.deadline).
				Validate(validateOptionalDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := TaskCreatedMsg{
		Text:     m.fb.text,
		Priority: model.Priority(m.fb.priority),
	}

	if m.fb.deadline != "" {
		// End of day so the scanner fires only after the date passes
		t, err := time.Parse(model.DateFormat, m.fb.deadline)
		if err == nil {
			eod := t.Add(24*time.Hour - time.Second)
			msg.Deadline = &eod
		}
	}

	return func() tea.Msg { return msg }
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
	if h < 10 {
		h = 10
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

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateFormat, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
