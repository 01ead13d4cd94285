package profile

import (
	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/rollover"
)

// Event is a change notification emitted by the service. The UI
// subscribes to the event channel and renders toasts, confetti, and
// badge popups from these; nothing in the service renders anything.
type Event interface {
	isEvent()
}

// LevelUpEvent fires once per level gained, in order, so a single XP
// award crossing several thresholds produces several events.
type LevelUpEvent struct {
	Level int
}

// TaskCompletedEvent fires on a false-to-true completion toggle.
type TaskCompletedEvent struct {
	Task     model.Task
	XPGained int
}

// RequestCompletedEvent fires when a request from another person is
// marked done.
type RequestCompletedEvent struct {
	Request  model.Request
	XPGained int
}

// AchievementEvent fires once per newly unlocked achievement.
type AchievementEvent struct {
	ID string
}

// StreakEvent fires when the streak counter changes.
type StreakEvent struct {
	Streak int
}

// RolloverEvent is the single summary event for a day transition.
type RolloverEvent struct {
	Result rollover.Result
}

// DeadlineMissedEvent fires once per task whose deadline penalty
// latched during a scan.
type DeadlineMissedEvent struct {
	Missed rollover.Missed
}

// SkillMasteredEvent fires when a skill reaches 100.
type SkillMasteredEvent struct {
	Skill model.Skill
}

// PurchaseEvent fires on a successful shop purchase.
type PurchaseEvent struct {
	RewardID string
	Price    int
}

func (LevelUpEvent) isEvent()          {}
func (TaskCompletedEvent) isEvent()    {}
func (RequestCompletedEvent) isEvent() {}
func (AchievementEvent) isEvent()      {}
func (StreakEvent) isEvent()           {}
func (RolloverEvent) isEvent()         {}
func (DeadlineMissedEvent) isEvent()   {}
func (SkillMasteredEvent) isEvent()    {}
func (PurchaseEvent) isEvent()         {}
