package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func TestAddTask_Validation(t *testing.T) {
	s := newTestService(t, "2026-03-02")

	_, ok := s.AddTask("   ", model.PriorityHigh, nil)
	assert.False(t, ok)
	assert.Empty(t, s.Profile().Tasks)

	task, ok := s.AddTask("write tests", "bogus", nil)
	require.True(t, ok)
	assert.Equal(t, model.PriorityMedium, task.Priority, "unknown priority falls back to medium")
	assert.NotEmpty(t, task.ID)
	assert.True(t, task.IsRecurring())
}

func TestToggleTask_CompletionRewards(t *testing.T) {
	tests := []struct {
		priority model.Priority
		wantXP   int
	}{
		{model.PriorityHigh, 30},
		{model.PriorityMedium, 20},
		{model.PriorityLow, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			s := newTestService(t, "2026-03-02")
			s.Profile().SetTrait(model.TraitConscientiousness, 50)
			task, ok := s.AddTask("task", tt.priority, nil)
			require.True(t, ok)

			s.ToggleTask(task.ID)

			p := s.Profile()
			assert.True(t, p.TaskByID(task.ID).Completed)
			assert.Equal(t, tt.wantXP, p.XP)
			assert.Equal(t, 55, p.Trait(model.TraitConscientiousness))
			assert.Equal(t, 1, p.Stats.TotalCompleted)
			assert.Equal(t, 1, p.Streak)
		})
	}
}

func TestToggleTask_UncompleteReversesNothing(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().SetTrait(model.TraitConscientiousness, 50)
	task, _ := s.AddTask("task", model.PriorityHigh, nil)

	s.ToggleTask(task.ID)
	xpAfter := s.Profile().XP
	completedAfter := s.Profile().Stats.TotalCompleted

	s.ToggleTask(task.ID)

	p := s.Profile()
	assert.False(t, p.TaskByID(task.ID).Completed)
	assert.Equal(t, xpAfter, p.XP, "no XP clawback on un-complete")
	assert.Equal(t, completedAfter, p.Stats.TotalCompleted)
	assert.Equal(t, 55, p.Trait(model.TraitConscientiousness))

	// Completing again awards again; the asymmetry is one-directional.
	s.ToggleTask(task.ID)
	assert.Equal(t, xpAfter+30, s.Profile().XP)
}

func TestToggleTask_UnknownIDNoOp(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.AddTask("task", model.PriorityLow, nil)

	s.ToggleTask("nope")

	assert.Zero(t, s.Profile().XP)
	assert.Zero(t, s.Profile().Stats.TotalCompleted)
}

func TestToggleTask_FirstCompletionUnlocksAchievement(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	task, _ := s.AddTask("task", model.PriorityLow, nil)

	s.ToggleTask(task.ID)

	assert.True(t, s.Profile().HasUnlocked("first_blood"))

	unlocks := 0
	for _, e := range drainEvents(s) {
		if a, ok := e.(AchievementEvent); ok && a.ID == "first_blood" {
			unlocks++
		}
	}
	assert.Equal(t, 1, unlocks)
}

func TestDeleteTask_AbsentIDNoOp(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	task, _ := s.AddTask("task", model.PriorityLow, nil)

	s.DeleteTask("absent")
	require.Len(t, s.Profile().Tasks, 1)

	s.DeleteTask(task.ID)
	assert.Empty(t, s.Profile().Tasks)
}

func TestRequests_CompleteAwardsFlatXP(t *testing.T) {
	s := newTestService(t, "2026-03-02")

	_, ok := s.AddRequest("", "review my PR")
	assert.False(t, ok, "person is required")

	req, ok := s.AddRequest("Alex", "review my PR")
	require.True(t, ok)
	assert.Equal(t, "2026-03-02", req.AddedDate)

	s.ToggleRequest(req.ID)
	assert.Equal(t, RewardXPRequest, s.Profile().XP)
	assert.Zero(t, s.Profile().Stats.TotalCompleted,
		"requests do not feed the task counter")

	s.ToggleRequest(req.ID)
	assert.Equal(t, RewardXPRequest, s.Profile().XP)
}

func TestAddExternalRequest_DedupesByID(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	req := model.Request{ID: "mail-abc", Person: "Sam", Text: "send slides"}

	assert.True(t, s.AddExternalRequest(req))
	assert.False(t, s.AddExternalRequest(req), "same id merges once")
	assert.False(t, s.AddExternalRequest(model.Request{Person: "x", Text: "y"}),
		"empty id rejected")
	assert.Len(t, s.Profile().Requests, 1)
	assert.Equal(t, "2026-03-02", s.Profile().Requests[0].AddedDate)
}

func TestRecurringAndDeadlineSplit(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	due := fixedClock(t, "2026-03-05T12:00:00Z").Time

	s.AddTask("daily", model.PriorityLow, nil)
	s.AddTask("dated", model.PriorityHigh, &due)

	require.Len(t, s.RecurringTasks(), 1)
	require.Len(t, s.DeadlineTasks(), 1)
	assert.Equal(t, "daily", s.RecurringTasks()[0].Text)
	assert.Equal(t, "dated", s.DeadlineTasks()[0].Text)
}
