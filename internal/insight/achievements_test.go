package insight

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func TestUnlock_ReportsEachAchievementOnce(t *testing.T) {
	p := model.DefaultProfile("test", "2025-05-01")
	p.Stats.TotalCompleted = 1

	first := Unlock(p)
	assert.Equal(t, []string{"first_blood"}, first)
	assert.True(t, p.HasUnlocked("first_blood"))

	// Re-checking the same state reports nothing new.
	assert.Empty(t, Unlock(p))
}

func TestUnlock_MultipleAtOnceInTableOrder(t *testing.T) {
	p := model.DefaultProfile("test", "2025-05-01")
	p.Stats.TotalCompleted = 7
	p.Streak = 7

	got := Unlock(p)
	assert.Equal(t, []string{"first_blood", "warrior_week", "streak_champion"}, got)
}

func TestUnlock_TraitConditions(t *testing.T) {
	p := model.DefaultProfile("test", "2025-05-01")
	p.SetTrait(model.TraitConscientiousness, 80)
	p.SetTrait(model.TraitNeuroticism, 20)

	got := Unlock(p)
	assert.Equal(t, []string{"disciplined_soul", "zen_master"}, got)
}

func TestUnlock_PerfectionistNeedsAtLeastOneHighTask(t *testing.T) {
	p := model.DefaultProfile("test", "2025-05-01")
	p.Tasks = []model.Task{}
	assert.Empty(t, Unlock(p), "no high priority tasks means no perfectionist")

	p.Tasks = []model.Task{
		{ID: "a", Text: "ship", Priority: model.PriorityHigh, Completed: true},
		{ID: "b", Text: "relax", Priority: model.PriorityLow, Completed: false},
	}
	assert.Equal(t, []string{"perfectionist"}, Unlock(p))
}

func TestByID(t *testing.T) {
	a := ByID("zen_master")
	require.NotNil(t, a)
	assert.Equal(t, "Zen Master", a.Name)

	assert.Nil(t, ByID("no_such_badge"))
}

func TestRewardByID(t *testing.T) {
	r := RewardByID("snack")
	require.NotNil(t, r)
	assert.Equal(t, 100, r.Price)

	assert.Nil(t, RewardByID("yacht"))
}

func TestRandomQuote_Deterministic(t *testing.T) {
	a := RandomQuote(rand.New(rand.NewSource(7)))
	b := RandomQuote(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
	assert.Contains(t, Quotes, a)
}
