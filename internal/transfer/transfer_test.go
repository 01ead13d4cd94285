package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func TestExportImport_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	p := model.DefaultProfile("ivy", "2025-04-01")
	p.Level = 3
	p.XP = 250
	p.Tasks = append(p.Tasks, model.Task{ID: "t1", Text: "stretch", Priority: model.PriorityLow})

	path, err := Export(p, dir, "2025-04-02")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dayforge-backup-2025-04-02.json"), path)

	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, "ivy", got.UserName)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 250, got.XP)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "stretch", got.Tasks[0].Text)
}

func TestExport_SameDayOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := model.DefaultProfile("ivy", "2025-04-01")

	first, err := Export(p, dir, "2025-04-02")
	require.NoError(t, err)

	p.XP = 999
	second, err := Export(p, dir, "2025-04-02")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := Import(second)
	require.NoError(t, err)
	assert.Equal(t, 999, got.XP)
}

func TestImport_UpgradesLegacyShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.json")
	legacy := []byte(`{"user_name": "old", "skills": {"english": 40}, "big_five": {"openness": 70}}`)
	require.NoError(t, os.WriteFile(path, legacy, 0o600))

	got, err := Import(path)
	require.NoError(t, err)
	require.Len(t, got.Skills, 1)
	assert.Equal(t, 40, got.Skills[0].Level)
	assert.Equal(t, 70, got.Trait(model.TraitOpenness))
}

func TestImport_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	_, err := Import(path)
	assert.Error(t, err)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
