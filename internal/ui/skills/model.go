package skills

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/keys"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/theme"
	"github.com/hrzp/dayforge/internal/ui"
)

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name string
	icon string
}

// Model is the skills view: a practice list plus an inline creation
// form.
type Model struct {
	service *profile.Service
	keys    *keys.KeyMap
	cursor  int
	form    *huh.Form
	fb      *formBindings
	width   int
	height  int
}

// New creates a new skills view model.
func New(s *profile.Service, k *keys.KeyMap, width, height int) Model {
	return Model{
		service: s,
		keys:    k,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the skills view. While the creation form
// is open it consumes all input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	skills := m.service.Profile().Skills

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(skills)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.cursor < len(skills) {
			m.service.IncreaseSkill(skills[m.cursor].ID)
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if m.cursor < len(skills) {
			m.service.DeleteSkill(skills[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(keyMsg, m.keys.New):
		m.fb.name = ""
		m.fb.icon = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.service.AddSkill(m.fb.name, m.fb.icon, "")
		m.form = nil
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Skill").
				Placeholder("What are you learning?").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon").
				Placeholder("Optional emoji").
				Value(&m.fb.icon),
		),
	).WithWidth(min(m.width-4, 60))
}

// View renders the skill list or the creation form.
func (m Model) View() string {
	if m.form != nil {
		content := theme.TitleStyle.Render("New Skill") + "\n" + m.form.View()
		return lipgloss.NewStyle().Padding(1, 2).Render(content)
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Skills"))
	b.WriteString("\n")

	skills := m.service.Profile().Skills
	if len(skills) == 0 {
		b.WriteString(theme.HelpStyle.Render("  no skills yet, press n to add one"))
		b.WriteString("\n")
	}

	for i, sk := range skills {
		bar := ui.Bar(sk.Level, 20)
		line := fmt.Sprintf("%s %-16s %s %3d%%", sk.Icon, sk.Name, bar, sk.Level)
		if sk.Level >= 100 {
			line += " ★ mastered"
		}
		style := theme.ListItemStyle
		if i == m.cursor {
			style = theme.SelectedItemStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("enter practice · n new · d delete"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
