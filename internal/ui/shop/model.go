package shop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/keys"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/theme"
)

// Model is the XP shop view: the reward catalogue plus the purchase
// ledger.
type Model struct {
	service *profile.Service
	keys    *keys.KeyMap
	cursor  int
	notice  string
	width   int
	height  int
}

// New creates a new shop view model.
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

// Update handles messages for the shop view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(insight.ShopRewards)-1 {
			m.cursor++
		}
		m.notice = ""

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""

	case key.Matches(keyMsg, m.keys.Toggle):
		reward := insight.ShopRewards[m.cursor]
		err := m.service.PurchaseReward(reward.ID)
		switch {
		case errors.Is(err, profile.ErrInsufficientXP):
			m.notice = fmt.Sprintf(
				"not enough XP for %s (need %d)", reward.Name, reward.Price,
			)
		case err != nil:
			m.notice = err.Error()
		default:
			m.notice = "enjoy: " + reward.Name
		}
	}

	return m, nil
}

// View renders the catalogue and recent purchases.
func (m Model) View() string {
	p := m.service.Profile()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(
		fmt.Sprintf("Shop · %d XP available", p.XP),
	))
	b.WriteString("\n")

	for i, r := range insight.ShopRewards {
		line := fmt.Sprintf("%s %-24s %4d XP", r.Icon, r.Name, r.Price)
		style := theme.ListItemStyle
		if i == m.cursor {
			style = theme.SelectedItemStyle
		}
		if p.XP < r.Price {
			line += "  (locked)"
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.ToastStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if n := len(p.PurchasedRewards); n > 0 {
		b.WriteString("\n")
		b.WriteString(theme.TitleStyle.Render("Purchases"))
		b.WriteString("\n")
		// Most recent few only
		start := n - 5
		if start < 0 {
			start = 0
		}
		for i := n - 1; i >= start; i-- {
			pur := p.PurchasedRewards[i]
			name := pur.RewardID
			if r := insight.RewardByID(pur.RewardID); r != nil {
				name = r.Name
			}
			b.WriteString(theme.ListItemStyle.Render(
				fmt.Sprintf("%s · %s", pur.Date, name),
			))
			b.WriteString("\n")
		}
	}

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
