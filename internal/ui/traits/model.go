package traits

import (
	"fmt"
	"strings"

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

// sliderStep is the change applied per keypress on a slider.
const sliderStep = 1

var traitLabels = map[model.Trait]string{
	model.TraitOpenness:          "Openness",
	model.TraitConscientiousness: "Conscientiousness",
	model.TraitExtraversion:      "Extraversion",
	model.TraitAgreeableness:     "Agreeableness",
	model.TraitNeuroticism:       "Neuroticism",
}

// Model is the trait profile view: five sliders, an energy slider, and
// the insight panel derived from the current values.
type Model struct {
	service *profile.Service
	keys    *keys.KeyMap
	cursor  int
	width   int
	height  int
}

// New creates a new traits view model.
func New(s *profile.Service, k *keys.KeyMap, width, height int) Model {
	return Model{
		service: s,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the traits view. The last cursor row is
// the energy slider; the rest map to traits in canonical order.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rowCount := len(model.AllTraits) + 1

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Increase):
		m.adjust(sliderStep)

	case key.Matches(keyMsg, m.keys.Decrease):
		m.adjust(-sliderStep)
	}

	return m, nil
}

func (m *Model) adjust(delta int) {
	if m.cursor == len(model.AllTraits) {
		m.service.SetEnergy(m.service.Profile().Energy + delta)
		return
	}
	m.service.AdjustTrait(model.AllTraits[m.cursor], delta)
}

// View renders the sliders and the insight panel.
func (m Model) View() string {
	p := m.service.Profile()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Trait Profile"))
	b.WriteString("\n")

	barWidth := m.width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}

	for i, t := range model.AllTraits {
		value := p.Trait(t)
		bar := theme.TraitStyle(t, value).Render(ui.Bar(value, barWidth))
		line := fmt.Sprintf("%-18s %s %3d", traitLabels[t], bar, value)
		b.WriteString(m.rowStyle(i == m.cursor).Render(line))
		b.WriteString("\n")
	}

	energyBar := ui.Bar(p.Energy, barWidth)
	energyLine := fmt.Sprintf("%-18s %s %3d", "Energy", energyBar, p.Energy)
	b.WriteString(m.rowStyle(m.cursor == len(model.AllTraits)).Render(energyLine))
	b.WriteString("\n\n")

	b.WriteString(theme.TitleStyle.Render("Insights"))
	b.WriteString("\n")
	for _, ins := range insight.Evaluate(p.Traits) {
		b.WriteString("  ")
		b.WriteString(theme.InsightStyle(ins.Kind).Render(ins.Text))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

func (m Model) rowStyle(selected bool) lipgloss.Style {
	if selected {
		return theme.SelectedItemStyle
	}
	return theme.ListItemStyle
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
