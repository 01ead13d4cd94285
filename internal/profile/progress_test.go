package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/clock"
	"github.com/hrzp/dayforge/internal/model"
)

func fixedClock(t *testing.T, s string) clock.Fixed {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return clock.Fixed{Time: ts}
}

// newTestService builds a service with no persistence and a fixed
// clock.
func newTestService(t *testing.T, day string) *Service {
	t.Helper()
	clk := fixedClock(t, day+"T12:00:00Z")
	p := model.DefaultProfile("tester", clk.Today())
	return NewService(p, nil, nil, clk, nil)
}

// drainEvents collects everything currently buffered on the event
// channel.
func drainEvents(s *Service) []Event {
	var out []Event
	for {
		select {
		case e := <-s.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestAddXP_SingleLevelUp(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().Level = 1
	s.Profile().XP = 95

	s.AddXP(30)

	assert.Equal(t, 2, s.Profile().Level)
	assert.Equal(t, 25, s.Profile().XP)
}

func TestAddXP_MultiLevelSpan(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().Level = 1
	s.Profile().XP = 0

	s.AddXP(250)

	// Level 1 threshold is 100: 250-100 leaves 150, which is below
	// the level 2 threshold of 200.
	assert.Equal(t, 2, s.Profile().Level)
	assert.Equal(t, 150, s.Profile().XP)

	var levels []int
	for _, e := range drainEvents(s) {
		if lv, ok := e.(LevelUpEvent); ok {
			levels = append(levels, lv.Level)
		}
	}
	assert.Equal(t, []int{2}, levels)
}

func TestAddXP_EachLevelEmitsOwnEvent(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().Level = 1
	s.Profile().XP = 0

	s.AddXP(350)

	// 350 >= 100 -> level 2, 250 left; 250 >= 200 -> level 3, 50 left.
	assert.Equal(t, 3, s.Profile().Level)
	assert.Equal(t, 50, s.Profile().XP)

	var levels []int
	for _, e := range drainEvents(s) {
		if lv, ok := e.(LevelUpEvent); ok {
			levels = append(levels, lv.Level)
		}
	}
	assert.Equal(t, []int{2, 3}, levels)
}

func TestAddXP_IgnoresNonPositive(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().XP = 40

	s.AddXP(0)
	s.AddXP(-10)

	assert.Equal(t, 40, s.Profile().XP)
	assert.Equal(t, 1, s.Profile().Level)
}

func TestCheckStreak_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		last       string
		streak     int
		wantStreak int
	}{
		{"first ever completion", "", 0, 1},
		{"extends from yesterday", "2026-03-01", 4, 5},
		{"gap resets", "2026-02-27", 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, "2026-03-02")
			s.Profile().LastCompletedDate = tt.last
			s.Profile().Streak = tt.streak

			s.CheckStreak()

			assert.Equal(t, tt.wantStreak, s.Profile().Streak)
			assert.Equal(t, "2026-03-02", s.Profile().LastCompletedDate)
		})
	}
}

func TestCheckStreak_SameDayNoOp(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().LastCompletedDate = "2026-03-02"
	s.Profile().Streak = 3

	s.CheckStreak()
	s.CheckStreak()

	assert.Equal(t, 3, s.Profile().Streak, "several completions in one day count once")
}

func TestAdjustTrait_Clamps(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().SetTrait(model.TraitOpenness, 98)

	s.AdjustTrait(model.TraitOpenness, 10)
	assert.Equal(t, 100, s.Profile().Trait(model.TraitOpenness))

	s.AdjustTrait(model.TraitOpenness, -250)
	assert.Equal(t, 0, s.Profile().Trait(model.TraitOpenness))
}

func TestRecordHistory_UpsertsToday(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	s.Profile().Journal = "morning entry"

	s.RecordHistory()
	require.Len(t, s.Profile().History, 1)

	s.Profile().Journal = "evening entry"
	s.RecordHistory()

	require.Len(t, s.Profile().History, 1, "same date must not duplicate")
	assert.Equal(t, "evening entry", s.Profile().History[0].Journal)
}

func TestRecordHistory_EvictsOldest(t *testing.T) {
	s := newTestService(t, "2026-03-02")

	for i := 0; i < model.HistoryLimit; i++ {
		s.Profile().History = append(s.Profile().History, model.HistoryEntry{
			Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, i).Format(model.DateFormat),
		})
	}

	s.RecordHistory()

	require.Len(t, s.Profile().History, model.HistoryLimit)
	assert.Equal(t, "2025-01-02", s.Profile().History[0].Date,
		"oldest entry evicted")
	assert.Equal(t, "2026-03-02", s.Profile().History[model.HistoryLimit-1].Date)
}
