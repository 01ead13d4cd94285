package migrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func TestApply_MalformedDocument(t *testing.T) {
	_, err := Apply([]byte(`{not json`))
	require.Error(t, err)
}

func TestApply_CurrentShapePassesThrough(t *testing.T) {
	raw := []byte(`{
		"user_name": "nora",
		"level": 4,
		"xp": 120,
		"traits": {"openness": 70, "conscientiousness": 55},
		"skills": [{"id": "s1", "name": "Piano", "icon": "🎹", "level": 40, "color": "rose"}],
		"tasks": [{"id": "t1", "text": "gym", "priority": "high", "completed": false}]
	}`)

	p, err := Apply(raw)
	require.NoError(t, err)

	assert.Equal(t, "nora", p.UserName)
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, 70, p.Trait(model.TraitOpenness))
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "s1", p.Skills[0].ID)
	assert.Equal(t, model.SchemaVersion, p.SchemaVersion)
}

func TestApply_LegacyFlatSkills(t *testing.T) {
	raw := []byte(`{
		"user_name": "old",
		"skills": {"english": 65, "design": 30}
	}`)

	p, err := Apply(raw)
	require.NoError(t, err)

	require.Len(t, p.Skills, 2)
	// Sorted by legacy key: design before english.
	assert.Equal(t, "Graphic Design", p.Skills[0].Name)
	assert.Equal(t, 30, p.Skills[0].Level)
	assert.Equal(t, "English Pronunciation", p.Skills[1].Name)
	assert.Equal(t, 65, p.Skills[1].Level)

	// Migrating the migrated document changes nothing.
	again, err := Apply(mustMarshal(t, p))
	require.NoError(t, err)
	assert.Equal(t, p.Skills, again.Skills)
}

func TestApply_LegacyBigFiveKey(t *testing.T) {
	raw := []byte(`{"big_five": {"neuroticism": 80}}`)

	p, err := Apply(raw)
	require.NoError(t, err)

	assert.Equal(t, 80, p.Trait(model.TraitNeuroticism))
	assert.Equal(t, 50, p.Trait(model.TraitOpenness), "missing traits default to 50")
}

func TestApply_DefaultsAndClamps(t *testing.T) {
	raw := []byte(`{
		"level": 0,
		"xp": -40,
		"energy": 250,
		"traits": {"openness": 900}
	}`)

	p, err := Apply(raw)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 100, p.Energy)
	assert.Equal(t, 100, p.Trait(model.TraitOpenness))

	assert.NotNil(t, p.Tasks)
	assert.NotNil(t, p.Requests)
	assert.NotNil(t, p.History)
	assert.NotNil(t, p.UnlockedAchievements)
	assert.NotNil(t, p.PurchasedRewards)
	assert.NotNil(t, p.Templates)
}

func TestApply_SkillListWithoutIDs(t *testing.T) {
	raw := []byte(`{"skills": [{"name": "Chess", "level": 120}]}`)

	p, err := Apply(raw)
	require.NoError(t, err)

	require.Len(t, p.Skills, 1)
	assert.NotEmpty(t, p.Skills[0].ID, "missing ids are minted")
	assert.Equal(t, 100, p.Skills[0].Level)
}

func mustMarshal(t *testing.T, p *model.Profile) []byte {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}
