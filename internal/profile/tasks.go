package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrzp/dayforge/internal/model"
)

// XP awarded when a task transitions to complete, by priority.
// Requests award a flat bonus.
const (
	RewardXPHigh    = 30
	RewardXPMedium  = 20
	RewardXPLow     = 10
	RewardXPRequest = 15
)

// completionConscientiousnessDelta is the trait bump for finishing a
// task.
const completionConscientiousnessDelta = 5

// AddTask creates a task. Empty (or whitespace) text is rejected with a
// false return; deadline may be nil for a recurring daily task. An
// unknown priority falls back to medium.
func (s *Service) AddTask(text string, priority model.Priority, deadline *time.Time) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ID:        uuid.New().String(),
		Text:      text,
		Priority:  priority,
		Deadline:  deadline,
		CreatedAt: s.clk.Now(),
	}

	s.p.Tasks = append(s.p.Tasks, task)
	s.Save()
	return task, true
}

// ToggleTask flips completion for the task with the given id. An
// unknown id is a no-op, not an error.
//
// Rewards fire only on the false-to-true transition: trait bump, streak
// check, priority-scaled XP, lifetime counter, achievements. Toggling
// back to incomplete reverses none of it - an intentional anti-gaming
// asymmetry, and the deadline-penalty latch survives the round trip.
func (s *Service) ToggleTask(id string) {
	task := s.p.TaskByID(id)
	if task == nil {
		return
	}

	wasCompleted := task.Completed
	task.Completed = !task.Completed

	if task.Completed && !wasCompleted {
		s.adjustTraitQuiet(model.TraitConscientiousness, completionConscientiousnessDelta)
		s.CheckStreak()

		xp := RewardXPLow
		switch task.Priority {
		case model.PriorityHigh:
			xp = RewardXPHigh
		case model.PriorityMedium:
			xp = RewardXPMedium
		}
		s.p.Stats.TotalCompleted++
		s.emit(TaskCompletedEvent{Task: *task, XPGained: xp})
		s.AddXP(xp)
	}

	s.RecordHistory()
	s.Save()
}

// DeleteTask removes the task with the given id; absent ids are a
// no-op.
func (s *Service) DeleteTask(id string) {
	for i := range s.p.Tasks {
		if s.p.Tasks[i].ID == id {
			s.p.Tasks = append(s.p.Tasks[:i], s.p.Tasks[i+1:]...)
			s.RecordHistory()
			s.Save()
			return
		}
	}
}

// AddRequest records a favor/obligation item from another person. Both
// the person and the text are required.
func (s *Service) AddRequest(person, text string) (model.Request, bool) {
	person = strings.TrimSpace(person)
	text = strings.TrimSpace(text)
	if person == "" || text == "" {
		return model.Request{}, false
	}

	req := model.Request{
		ID:        uuid.New().String(),
		Person:    person,
		Text:      text,
		AddedDate: s.clk.Today(),
	}

	s.p.Requests = append(s.p.Requests, req)
	s.Save()
	return req, true
}

// AddExternalRequest inserts a request carrying its own id (mailbox
// ingestion dedupes on the message id). Returns false when the id is
// already present.
func (s *Service) AddExternalRequest(req model.Request) bool {
	if req.ID == "" || s.p.RequestByID(req.ID) != nil {
		return false
	}
	if req.AddedDate == "" {
		req.AddedDate = s.clk.Today()
	}
	s.p.Requests = append(s.p.Requests, req)
	s.Save()
	return true
}

// ToggleRequest flips completion for a request. Completion awards a
// flat XP bonus, with the same one-directional asymmetry as tasks.
func (s *Service) ToggleRequest(id string) {
	req := s.p.RequestByID(id)
	if req == nil {
		return
	}

	wasCompleted := req.Completed
	req.Completed = !req.Completed

	if req.Completed && !wasCompleted {
		s.emit(RequestCompletedEvent{Request: *req, XPGained: RewardXPRequest})
		s.AddXP(RewardXPRequest)
	}

	s.Save()
}

// DeleteRequest removes a request by id; absent ids are a no-op.
func (s *Service) DeleteRequest(id string) {
	for i := range s.p.Requests {
		if s.p.Requests[i].ID == id {
			s.p.Requests = append(s.p.Requests[:i], s.p.Requests[i+1:]...)
			s.Save()
			return
		}
	}
}

// RecurringTasks returns the daily (no-deadline) tasks in order.
func (s *Service) RecurringTasks() []model.Task {
	var out []model.Task
	for i := range s.p.Tasks {
		if s.p.Tasks[i].IsRecurring() {
			out = append(out, s.p.Tasks[i])
		}
	}
	return out
}

// DeadlineTasks returns the deadline-bound tasks in order.
func (s *Service) DeadlineTasks() []model.Task {
	var out []model.Task
	for i := range s.p.Tasks {
		if !s.p.Tasks[i].IsRecurring() {
			out = append(out, s.p.Tasks[i])
		}
	}
	return out
}
