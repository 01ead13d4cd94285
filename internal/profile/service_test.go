package profile

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/cloud"
	"github.com/hrzp/dayforge/internal/model"
)

// captureRemote hands every pushed envelope to the test.
type captureRemote struct {
	envs chan cloud.Envelope
}

func (r *captureRemote) Fetch(context.Context, string) (*cloud.Envelope, error) {
	return nil, cloud.ErrNotFound
}

func (r *captureRemote) Upsert(_ context.Context, env cloud.Envelope) error {
	r.envs <- env
	return nil
}

func waitForPush(t *testing.T, r *captureRemote) cloud.Envelope {
	t.Helper()
	select {
	case env := <-r.envs:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("no push observed")
		return cloud.Envelope{}
	}
}

func TestSave_PushedPayloadIgnoresLaterMutations(t *testing.T) {
	remote := &captureRemote{envs: make(chan cloud.Envelope, 4)}
	coord := cloud.NewCoordinator(remote, "u1", nil)

	clk := fixedClock(t, "2026-03-02T12:00:00Z")
	p := model.DefaultProfile("tester", clk.Today())
	s := NewService(p, nil, coord, clk, nil)

	s.SetJournal("first entry")
	env := waitForPush(t, remote)

	// The bytes handed to the push are fixed before Save returns, so
	// mutating the live aggregate afterwards cannot bleed into them.
	p.SetTrait(model.TraitOpenness, 99)
	p.Journal = "rewritten"

	var pushed model.Profile
	require.NoError(t, json.Unmarshal(env.Payload, &pushed))
	assert.Equal(t, "first entry", pushed.Journal)
	assert.Equal(t, 50, pushed.Trait(model.TraitOpenness))
	assert.Equal(t, pushed.LastUpdated, env.UpdatedAt.UnixMilli())
}

func TestRunDailyRollover_QuietDayLeavesOrderingKeyAlone(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	before := s.Profile().LastUpdated

	res := s.RunDailyRollover()

	assert.False(t, res.Ran)
	assert.Equal(t, before, s.Profile().LastUpdated,
		"a rollover that changed nothing must not claim sync recency")
}

func TestReplace_PersistsExactlyOnce(t *testing.T) {
	s := newTestService(t, "2026-03-02")
	repl := model.DefaultProfile("other", "2026-03-01")

	s.Replace(repl)

	assert.Same(t, repl, s.Profile())
	// One save means one ordering-key bump: exactly the clock value,
	// not the clock value plus a tiebreak.
	assert.Equal(t, s.Clock().Now().UnixMilli(), repl.LastUpdated)
}
