package profile

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/model"
)

// skillStep is the gain per practice session; skills cap at 100.
const skillStep = 5

var (
	// ErrUnknownReward is returned for a purchase of a reward id not
	// in the shop catalogue.
	ErrUnknownReward = errors.New("profile: unknown reward")

	// ErrInsufficientXP is returned when the reward costs more XP than
	// the current level's pool holds.
	ErrInsufficientXP = errors.New("profile: not enough xp")
)

// AddSkill registers a new skill at level 0. Name is required.
func (s *Service) AddSkill(name, icon, color string) (model.Skill, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Skill{}, false
	}
	if icon == "" {
		icon = "⭐"
	}
	if color == "" {
		color = "#6366f1"
	}

	skill := model.Skill{
		ID:    uuid.New().String(),
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	s.p.Skills = append(s.p.Skills, skill)
	s.Save()
	return skill, true
}

// IncreaseSkill bumps a skill by one practice step, saturating at 100.
// Reaching 100 awards openness and emits a mastery event exactly once.
func (s *Service) IncreaseSkill(id string) {
	skill := s.p.SkillByID(id)
	if skill == nil || skill.Level >= 100 {
		return
	}

	skill.Level += skillStep
	if skill.Level >= 100 {
		skill.Level = 100
		s.adjustTraitQuiet(model.TraitOpenness, 3)
		s.emit(SkillMasteredEvent{Skill: *skill})
	}
	s.Save()
}

// DeleteSkill removes a skill by id; absent ids are a no-op.
func (s *Service) DeleteSkill(id string) {
	for i := range s.p.Skills {
		if s.p.Skills[i].ID == id {
			s.p.Skills = append(s.p.Skills[:i], s.p.Skills[i+1:]...)
			s.Save()
			return
		}
	}
}

// SetJournal replaces today's journal text and mirrors it into the
// history entry for the day. The journal is cleared by the next daily
// rollover; the history copy survives.
func (s *Service) SetJournal(text string) {
	s.p.Journal = text
	s.RecordHistory()
	s.Save()
}

// SetPlanning replaces the free-form planning notes. Unlike the
// journal, planning is never cleared by rollover.
func (s *Service) SetPlanning(text string) {
	s.p.Planning = text
	s.Save()
}

// SetEnergy stores the self-reported energy level, clamped to 0..100.
func (s *Service) SetEnergy(value int) {
	s.p.Energy = model.ClampPercent(value)
	s.Save()
}

// SaveTemplate snapshots the current task list under a name,
// overwriting any template with the same name. Empty names and empty
// task lists are rejected.
func (s *Service) SaveTemplate(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(s.p.Tasks) == 0 {
		return false
	}

	tpl := model.Template{
		Name:      name,
		Tasks:     append([]model.Task(nil), s.p.Tasks...),
		CreatedAt: s.clk.Today(),
	}

	replaced := false
	for i := range s.p.Templates {
		if s.p.Templates[i].Name == name {
			s.p.Templates[i] = tpl
			replaced = true
			break
		}
	}
	if !replaced {
		s.p.Templates = append(s.p.Templates, tpl)
	}
	s.Save()
	return true
}

// ApplyTemplate replaces the task list with a template's tasks. Every
// task gets a fresh id and cleared completion and penalty state, so a
// template never smuggles in finished work or spent latches.
func (s *Service) ApplyTemplate(name string) bool {
	var tpl *model.Template
	for i := range s.p.Templates {
		if s.p.Templates[i].Name == name {
			tpl = &s.p.Templates[i]
			break
		}
	}
	if tpl == nil {
		return false
	}

	now := s.clk.Now()
	tasks := make([]model.Task, 0, len(tpl.Tasks))
	for _, t := range tpl.Tasks {
		t.ID = uuid.New().String()
		t.Completed = false
		t.PenaltyApplied = false
		t.CreatedAt = now
		tasks = append(tasks, t)
	}

	s.p.Tasks = tasks
	s.Save()
	return true
}

// DeleteTemplate removes a template by name; absent names are a no-op.
func (s *Service) DeleteTemplate(name string) {
	for i := range s.p.Templates {
		if s.p.Templates[i].Name == name {
			s.p.Templates = append(s.p.Templates[:i], s.p.Templates[i+1:]...)
			s.Save()
			return
		}
	}
}

// PurchaseReward spends XP on a shop reward. The deduction draws only
// from the current level's XP pool: a purchase never demotes a level,
// so affordability means XP >= price right now.
func (s *Service) PurchaseReward(rewardID string) error {
	reward := insight.RewardByID(rewardID)
	if reward == nil {
		return ErrUnknownReward
	}
	if s.p.XP < reward.Price {
		return ErrInsufficientXP
	}

	s.p.XP -= reward.Price
	s.p.PurchasedRewards = append(s.p.PurchasedRewards, model.Purchase{
		RewardID: reward.ID,
		Date:     s.clk.Today(),
	})

	s.emit(PurchaseEvent{RewardID: reward.ID, Price: reward.Price})
	s.Save()
	return nil
}
