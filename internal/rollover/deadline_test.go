package rollover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func deadlineTask(id string, due time.Time, completed, latched bool) model.Task {
	return model.Task{
		ID:             id,
		Text:           id,
		Priority:       model.PriorityMedium,
		Deadline:       &due,
		Completed:      completed,
		PenaltyApplied: latched,
	}
}

func TestScanDeadlines_ChargesOverdueOnce(t *testing.T) {
	now := mustTime(t, "2026-03-02T09:00:00Z")
	due := mustTime(t, "2026-03-01T18:00:00Z")

	p := model.DefaultProfile("tester", "2026-03-02")
	p.XP = 50
	p.SetTrait(model.TraitConscientiousness, 50)
	p.SetTrait(model.TraitNeuroticism, 50)
	p.Tasks = []model.Task{deadlineTask("report", due, false, false)}

	missed := ScanDeadlines(p, now)

	require.Len(t, missed, 1)
	assert.Equal(t, "report", missed[0].TaskID)
	assert.Equal(t, 30, p.XP)
	assert.Equal(t, 45, p.Trait(model.TraitConscientiousness))
	assert.Equal(t, 53, p.Trait(model.TraitNeuroticism))
	assert.True(t, p.Tasks[0].PenaltyApplied)

	// Re-scan: the latch holds.
	missed = ScanDeadlines(p, now.Add(time.Hour))
	assert.Empty(t, missed)
	assert.Equal(t, 30, p.XP)
}

func TestScanDeadlines_FutureAndCompletedIgnored(t *testing.T) {
	now := mustTime(t, "2026-03-02T09:00:00Z")
	future := mustTime(t, "2026-03-03T18:00:00Z")
	past := mustTime(t, "2026-03-01T18:00:00Z")

	p := model.DefaultProfile("tester", "2026-03-02")
	p.XP = 50
	p.Tasks = []model.Task{
		deadlineTask("future", future, false, false),
		deadlineTask("done", past, true, false),
		{ID: "daily", Text: "daily", Priority: model.PriorityLow},
	}

	missed := ScanDeadlines(p, now)

	assert.Empty(t, missed)
	assert.Equal(t, 50, p.XP)
	assert.False(t, p.Tasks[0].PenaltyApplied)
	assert.False(t, p.Tasks[1].PenaltyApplied)
}

func TestScanDeadlines_LatchSurvivesCompletionToggle(t *testing.T) {
	now := mustTime(t, "2026-03-02T09:00:00Z")
	due := mustTime(t, "2026-03-01T18:00:00Z")

	p := model.DefaultProfile("tester", "2026-03-02")
	p.XP = 100
	p.Tasks = []model.Task{deadlineTask("report", due, false, false)}

	require.Len(t, ScanDeadlines(p, now), 1)

	// Complete, then reopen: still no second charge.
	p.Tasks[0].Completed = true
	p.Tasks[0].Completed = false

	assert.Empty(t, ScanDeadlines(p, now.Add(time.Hour)))
	assert.Equal(t, 80, p.XP)
}

func TestScanDeadlines_XPFloorsAtZero(t *testing.T) {
	now := mustTime(t, "2026-03-02T09:00:00Z")
	due := mustTime(t, "2026-03-01T18:00:00Z")

	p := model.DefaultProfile("tester", "2026-03-02")
	p.XP = 5
	p.Tasks = []model.Task{deadlineTask("report", due, false, false)}

	ScanDeadlines(p, now)

	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)
}
