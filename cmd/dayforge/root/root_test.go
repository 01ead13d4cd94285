package root

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/clock"
	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

// TestLoadProfile_NeverAdoptsBackup corrupts the primary snapshot
// while leaving an intact backup behind, then verifies startup comes
// up with a fresh profile instead of silently restoring the backup.
func TestLoadProfile_NeverAdoptsBackup(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "dayforge.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	saved := model.DefaultProfile("backed-up", "2026-03-01")
	saved.XP = 500
	payload, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, payload))

	db, err := sqlx.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		"UPDATE snapshots SET payload = ? WHERE key = ?",
		"{broken", store.PrimaryKey)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cfg := &model.AppConfig{UserName: "fresh"}
	clk := clock.Fixed{Time: mustTime(t, "2026-03-02T08:00:00Z")}

	p, err := loadProfile(ctx, st, cfg, clk, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "fresh", p.UserName)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)

	// The backup copy itself is untouched and still recoverable.
	backup, err := st.LoadBackup(ctx)
	require.NoError(t, err)
	var fromBackup model.Profile
	require.NoError(t, json.Unmarshal(backup, &fromBackup))
	assert.Equal(t, "backed-up", fromBackup.UserName)
}

// A missing primary behaves the same way: fresh profile, no backup
// read.
func TestLoadProfile_MissingPrimaryStartsFresh(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "dayforge.db"))
	require.NoError(t, err)
	defer st.Close()

	cfg := &model.AppConfig{UserName: "fresh"}
	clk := clock.Fixed{Time: mustTime(t, "2026-03-02T08:00:00Z")}

	p, err := loadProfile(ctx, st, cfg, clk, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "fresh", p.UserName)
	assert.Equal(t, "2026-03-02", p.LastDailyCheck)
}
