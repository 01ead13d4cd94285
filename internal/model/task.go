package model

import "time"

// Priority levels for tasks. They drive both completion rewards and
// missed-day penalties.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is one of the three known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task is a single mission. A task without a deadline is a recurring
// daily task: its completion is reset every calendar day by rollover.
// A task with a deadline is never auto-reset; it is penalized exactly
// once when it becomes overdue.
type Task struct {
	// ID is a stable unique identifier.
	ID string `json:"id"`

	// Text is the human-readable label. Never empty.
	Text string `json:"text"`

	Priority Priority `json:"priority"`

	// Deadline is nil for recurring daily tasks.
	Deadline *time.Time `json:"deadline,omitempty"`

	Completed bool `json:"completed"`

	// PenaltyApplied is a one-shot latch: once a missed-deadline
	// penalty has been charged for this task it is never charged
	// again, regardless of further scans or completion toggles.
	PenaltyApplied bool `json:"penalty_applied"`

	CreatedAt time.Time `json:"created_at"`
}

// IsRecurring reports whether the task resets daily (no deadline).
func (t *Task) IsRecurring() bool {
	return t.Deadline == nil
}

// Overdue reports whether the task has a deadline in the past relative
// to now and is still incomplete.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && now.After(*t.Deadline)
}

// Request is a favor or obligation item from another person. Requests
// have no priority or deadline semantics and are untouched by rollover.
type Request struct {
	ID        string `json:"id"`
	Person    string `json:"person"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	AddedDate string `json:"added_date"`
}

// Skill tracks self-assessed progress toward mastering one skill.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Level int    `json:"level"`
	Color string `json:"color"`
}
