package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/keys"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/rollover"
	"github.com/hrzp/dayforge/internal/source"
	"github.com/hrzp/dayforge/internal/ui"
	"github.com/hrzp/dayforge/internal/ui/dashboard"
	helpview "github.com/hrzp/dayforge/internal/ui/help"
	historyview "github.com/hrzp/dayforge/internal/ui/history"
	journalview "github.com/hrzp/dayforge/internal/ui/journal"
	"github.com/hrzp/dayforge/internal/ui/requestform"
	shopview "github.com/hrzp/dayforge/internal/ui/shop"
	skillsview "github.com/hrzp/dayforge/internal/ui/skills"
	"github.com/hrzp/dayforge/internal/ui/taskform"
	traitsview "github.com/hrzp/dayforge/internal/ui/traits"
)

// eventMsg wraps a service event for the Bubble Tea loop.
type eventMsg struct {
	event profile.Event
}

// toastExpiredMsg clears the transient notice.
type toastExpiredMsg struct{}

// scanTickMsg triggers the periodic rollover and deadline check, so a
// session left open across midnight or past a due date still settles.
type scanTickMsg struct{}

// mailboxResultMsg reports a background mailbox fetch.
type mailboxResultMsg struct {
	added int
	err   error
}

// toastDuration is how long a notice stays in the status bar.
const toastDuration = 4 * time.Second

// scanInterval is how often the day boundary and deadlines are
// re-checked while the app is open.
const scanInterval = time.Minute

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewTraits
	ViewSkills
	ViewJournal
	ViewHistory
	ViewShop
	ViewTaskCreate
	ViewRequestCreate
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the bridge from service events to UI notices.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	service      *profile.Service
	mailbox      source.Source
	keys         *keys.KeyMap

	dashboard   dashboard.Model
	traits      traitsview.Model
	skills      skillsview.Model
	journal     journalview.Model
	history     historyview.Model
	shop        shopview.Model
	taskForm    taskform.Model
	requestForm requestform.Model
	helpView    helpview.Model

	ready bool
	toast string
}

// New creates a new root application model. mailbox may be nil when no
// mailbox source is configured.
func New(s *profile.Service, mb source.Source) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewDashboard,
		service:     s,
		mailbox:     mb,
		keys:        k,
		dashboard:   dashboard.New(s, k, 80, 24),
		traits:      traitsview.New(s, k, 80, 24),
		skills:      skillsview.New(s, k, 80, 24),
		journal:     journalview.New(s, 80, 24),
		history:     historyview.New(s, 80, 24),
		shop:        shopview.New(s, k, 80, 24),
		taskForm:    taskform.New(80, 24),
		requestForm: requestform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init starts the event bridge and the periodic scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), scheduleScan())
}

func scheduleScan() tea.Cmd {
	return tea.Tick(scanInterval, func(time.Time) tea.Msg {
		return scanTickMsg{}
	})
}

// waitForEvent returns a command that blocks on the service event
// channel and delivers the next event into the update loop. The
// handler re-arms it after every event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.service.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: e}
	}
}

// fetchMailbox returns a command that pulls flagged messages from the
// configured mailbox and merges them as requests.
func (m Model) fetchMailbox() tea.Cmd {
	mb := m.mailbox
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		candidates, err := mb.FetchRequests(ctx)
		if err != nil {
			return mailboxResultMsg{err: err}
		}

		added := 0
		for _, req := range candidates {
			if svc.AddExternalRequest(req) {
				added++
				_ = mb.Acknowledge(ctx, req.ID)
			}
		}
		return mailboxResultMsg{added: added}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.traits.SetSize(w, h)
		m.skills.SetSize(w, h)
		m.journal.SetSize(w, h)
		m.history.SetSize(w, h)
		m.shop.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.requestForm.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	case eventMsg:
		m.toast = describeEvent(msg.event)
		cmds := []tea.Cmd{m.waitForEvent()}
		if m.toast != "" {
			cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
				return toastExpiredMsg{}
			}))
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		m.toast = ""
		return m, nil

	case scanTickMsg:
		m.service.RunDailyRollover()
		return m, scheduleScan()

	case mailboxResultMsg:
		if msg.err != nil {
			if source.IsAuthError(msg.err) {
				m.toast = "mailbox sign-in failed, check credentials"
			} else {
				m.toast = "mailbox unreachable"
			}
		} else if msg.added > 0 {
			m.toast = fmt.Sprintf("%d new request(s) from your inbox", msg.added)
		}
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = ViewDashboard
		m.service.AddTask(msg.Text, msg.Priority, msg.Deadline)
		return m, nil

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case requestform.RequestCreatedMsg:
		m.currentView = ViewDashboard
		m.service.AddRequest(msg.Person, msg.Text)
		return m, nil

	case requestform.RequestFormCancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the current
// view. Text-entry views only honor ctrl+c and esc so typing is never
// swallowed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.service.Save()
		return tea.Quit, true
	}

	if m.currentView == ViewJournal || m.currentView == ViewTaskCreate ||
		m.currentView == ViewRequestCreate {
		if msg.String() == "esc" && m.currentView == ViewJournal {
			m.journal.Blur()
			m.currentView = ViewDashboard
			return nil, true
		}
		return nil, false
	}

	switch msg.String() {
	case "q":
		m.service.Save()
		return tea.Quit, true

	case "esc":
		if m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
			return nil, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case "n":
		if m.currentView == ViewDashboard {
			m.previousView = m.currentView
			m.currentView = ViewTaskCreate
			return m.taskForm.Start(), true
		}

	case "a":
		if m.currentView == ViewDashboard {
			m.previousView = m.currentView
			m.currentView = ViewRequestCreate
			return m.requestForm.Start(), true
		}

	case "r":
		if m.mailbox != nil {
			m.toast = "checking inbox..."
			return m.fetchMailbox(), true
		}
		m.service.Save()
		m.toast = "synced"
		return nil, true

	case "1":
		m.switchView(ViewDashboard)
		return nil, true
	case "2":
		m.switchView(ViewTraits)
		return nil, true
	case "3":
		m.switchView(ViewSkills)
		return nil, true
	case "4":
		m.switchView(ViewJournal)
		return m.journal.Focus(), true
	case "5":
		m.switchView(ViewHistory)
		m.history.Refresh()
		return nil, true
	case "6":
		m.switchView(ViewShop)
		return nil, true
	}

	return nil, false
}

func (m *Model) switchView(v ViewState) {
	m.previousView = m.currentView
	m.currentView = v
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewTraits:
		m.traits, cmd = m.traits.Update(msg)
	case ViewSkills:
		m.skills, cmd = m.skills.Update(msg)
	case ViewJournal:
		m.journal, cmd = m.journal.Update(msg)
	case ViewHistory:
		m.history, cmd = m.history.Update(msg)
	case ViewShop:
		m.shop, cmd = m.shop.Update(msg)
	case ViewTaskCreate:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewRequestCreate:
		m.requestForm, cmd = m.requestForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	p := m.service.Profile()
	title := "Dayforge"
	if p.UserName != "" {
		title = "Dayforge · " + p.UserName
	}

	summary := fmt.Sprintf(
		"Lv %d · %d/%d XP · %d🔥",
		p.Level, p.XP, p.Level*100, p.Streak,
	)

	header := m.layout.RenderHeader(title, summary)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewTraits:
		return m.traits.View()
	case ViewSkills:
		return m.skills.View()
	case ViewJournal:
		return m.journal.View()
	case ViewHistory:
		return m.history.View()
	case ViewShop:
		return m.shop.View()
	case ViewTaskCreate:
		return m.taskForm.View()
	case ViewRequestCreate:
		return m.requestForm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// statusHints returns the status bar content: a transient toast when
// present, otherwise per-view keyboard hints.
func (m Model) statusHints() string {
	if m.toast != "" {
		return m.toast
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewTaskCreate, ViewRequestCreate:
		return "enter submit | esc cancel"
	case ViewJournal:
		return "tab journal/planning | esc save and back"
	case ViewTraits:
		return "h/l adjust | j/k move | esc back"
	case ViewSkills:
		return "enter practice | n new | d delete | esc back"
	case ViewShop:
		return "enter buy | esc back"
	case ViewHistory:
		return "j/k scroll | esc back"
	default:
		return "q quit | ? help | n new task | a new request | enter toggle | r sync | 1-6 views"
	}
}

// describeEvent maps a service event to a short status bar notice.
// Rollover and deadline events surface their consequences; routine
// completion events stay quiet unless they carry news.
func describeEvent(e profile.Event) string {
	switch e := e.(type) {
	case profile.LevelUpEvent:
		return fmt.Sprintf("LEVEL UP! You reached level %d", e.Level)

	case profile.AchievementEvent:
		if a := insight.ByID(e.ID); a != nil {
			return fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Name)
		}
		return "Achievement unlocked"

	case profile.StreakEvent:
		if e.Streak > 1 {
			return fmt.Sprintf("Streak: %d days", e.Streak)
		}
		return ""

	case profile.RolloverEvent:
		return describeRollover(e.Result)

	case profile.DeadlineMissedEvent:
		return fmt.Sprintf(
			"Deadline missed: %s (-%d XP)",
			e.Missed.Text, rollover.DeadlinePenaltyXP,
		)

	case profile.SkillMasteredEvent:
		return fmt.Sprintf("Skill mastered: %s %s", e.Skill.Icon, e.Skill.Name)

	case profile.TaskCompletedEvent:
		return fmt.Sprintf("+%d XP", e.XPGained)

	case profile.RequestCompletedEvent:
		return fmt.Sprintf("+%d XP", e.XPGained)

	default:
		return ""
	}
}

func describeRollover(r rollover.Result) string {
	if !r.Ran {
		return ""
	}
	if r.PenalizedTaskCount == 0 {
		return "New day. Yesterday is settled, nothing owed."
	}
	return fmt.Sprintf(
		"New day. %d unfinished task(s) cost you %d XP.",
		r.PenalizedTaskCount, r.TotalXPLoss,
	)
}
