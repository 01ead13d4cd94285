package dashboard

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/keys"
	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/theme"
	"github.com/hrzp/dayforge/internal/ui"
)

// section identifies which block of the dashboard the cursor is in.
type section int

const (
	sectionRecurring section = iota
	sectionDeadline
	sectionRequests
)

// row is a flattened cursor target: one task or request.
type row struct {
	section section
	id      string
}

// Model is the main dashboard view: daily tasks, deadline tasks, and
// requests from other people, with a motivational quote on top.
type Model struct {
	service *profile.Service
	keys    *keys.KeyMap
	cursor  int
	quote   string
	width   int
	height  int
}

// New creates a new dashboard model.
func New(s *profile.Service, k *keys.KeyMap, width, height int) Model {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return Model{
		service: s,
		keys:    k,
		quote:   insight.RandomQuote(rng),
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows := m.rows()

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.cursor < len(rows) {
			r := rows[m.cursor]
			if r.section == sectionRequests {
				m.service.ToggleRequest(r.id)
			} else {
				m.service.ToggleTask(r.id)
			}
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if m.cursor < len(rows) {
			r := rows[m.cursor]
			if r.section == sectionRequests {
				m.service.DeleteRequest(r.id)
			} else {
				m.service.DeleteTask(r.id)
			}
			if m.cursor >= len(m.rows()) && m.cursor > 0 {
				m.cursor--
			}
		}
	}

	return m, nil
}

// rows flattens the three sections into cursor targets in render order.
func (m Model) rows() []row {
	var out []row
	for _, t := range m.service.RecurringTasks() {
		out = append(out, row{section: sectionRecurring, id: t.ID})
	}
	for _, t := range m.service.DeadlineTasks() {
		out = append(out, row{section: sectionDeadline, id: t.ID})
	}
	for _, r := range m.service.Profile().Requests {
		out = append(out, row{section: sectionRequests, id: r.ID})
	}
	return out
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HelpStyle.Render("“" + m.quote + "”"))
	b.WriteString("\n\n")

	energy := m.service.Profile().Energy
	b.WriteString(fmt.Sprintf("Energy %s %d%%", ui.Bar(energy, 10), energy))
	b.WriteString("\n\n")

	idx := 0
	now := m.service.Clock().Now()

	b.WriteString(theme.TitleStyle.Render("Daily Tasks"))
	b.WriteString("\n")
	recurring := m.service.RecurringTasks()
	if len(recurring) == 0 {
		b.WriteString(theme.HelpStyle.Render("  no daily tasks, press n to add one"))
		b.WriteString("\n")
	}
	for _, t := range recurring {
		b.WriteString(m.renderTask(t, idx == m.cursor, now))
		b.WriteString("\n")
		idx++
	}

	b.WriteString("\n")
	b.WriteString(theme.TitleStyle.Render("Deadlines"))
	b.WriteString("\n")
	deadlines := m.service.DeadlineTasks()
	if len(deadlines) == 0 {
		b.WriteString(theme.HelpStyle.Render("  nothing scheduled"))
		b.WriteString("\n")
	}
	for _, t := range deadlines {
		b.WriteString(m.renderTask(t, idx == m.cursor, now))
		b.WriteString("\n")
		idx++
	}

	requests := m.service.Profile().Requests
	if len(requests) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.TitleStyle.Render("Requests"))
		b.WriteString("\n")
		for _, r := range requests {
			b.WriteString(m.renderRequest(r, idx == m.cursor))
			b.WriteString("\n")
			idx++
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

func (m Model) renderTask(t model.Task, selected bool, now time.Time) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	prio := theme.PriorityStyle(t.Priority).Render(string(t.Priority))

	line := fmt.Sprintf("%s %s %s", check, t.Text, prio)
	if t.Deadline != nil {
		due := t.Deadline.Format("Jan 02 15:04")
		if t.Overdue(now) && !t.Completed {
			due = theme.PriorityStyle(model.PriorityHigh).Render(due + " OVERDUE")
		}
		line += " · due " + due
	}

	return m.itemStyle(t.Completed, selected).Render(line)
}

func (m Model) renderRequest(r model.Request, selected bool) string {
	check := "[ ]"
	if r.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s · from %s", check, r.Text, r.Person)
	return m.itemStyle(r.Completed, selected).Render(line)
}

func (m Model) itemStyle(completed, selected bool) lipgloss.Style {
	switch {
	case selected:
		return theme.SelectedItemStyle
	case completed:
		return theme.CompletedItemStyle
	default:
		return theme.ListItemStyle
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
