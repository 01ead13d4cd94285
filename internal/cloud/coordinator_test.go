package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

// fakeRemote is an in-memory Remote for coordinator tests.
type fakeRemote struct {
	env      *Envelope
	fetchErr error
	upserts  []Envelope
}

func (f *fakeRemote) Fetch(_ context.Context, _ string) (*Envelope, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.env, nil
}

func (f *fakeRemote) Upsert(_ context.Context, env Envelope) error {
	f.upserts = append(f.upserts, env)
	return nil
}

func profileAt(t *testing.T, lastUpdated int64) *model.Profile {
	t.Helper()
	p := model.DefaultProfile("tester", "2026-03-02")
	p.LastUpdated = lastUpdated
	return p
}

func envelopeFor(t *testing.T, p *model.Profile) *Envelope {
	t.Helper()
	payload, err := json.Marshal(p)
	require.NoError(t, err)
	return &Envelope{UserID: "u1", Payload: payload}
}

func TestReconcile_RemoteNewerWins(t *testing.T) {
	local := profileAt(t, 100)
	remoteProfile := profileAt(t, 200)
	remoteProfile.UserName = "remote side"

	remote := &fakeRemote{env: envelopeFor(t, remoteProfile)}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeRemote, outcome)
	assert.Equal(t, "remote side", got.UserName)
	assert.Equal(t, int64(200), got.LastUpdated)
	assert.Empty(t, remote.upserts, "adopting remote must not push")
}

func TestReconcile_LocalNewerKeptAndPushed(t *testing.T) {
	local := profileAt(t, 300)
	remote := &fakeRemote{env: envelopeFor(t, profileAt(t, 200))}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeLocalPushed, outcome)
	assert.Same(t, local, got)
	require.Len(t, remote.upserts, 1)
	assert.Equal(t, "u1", remote.upserts[0].UserID)
}

func TestReconcile_EqualTimestampsKeepLocal(t *testing.T) {
	local := profileAt(t, 200)
	remote := &fakeRemote{env: envelopeFor(t, profileAt(t, 200))}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeLocal, outcome)
	assert.Same(t, local, got)
	assert.Empty(t, remote.upserts)
}

func TestReconcile_NotFoundDegradesToOffline(t *testing.T) {
	local := profileAt(t, 100)
	remote := &fakeRemote{fetchErr: ErrNotFound}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeOffline, outcome)
	assert.Same(t, local, got)
}

func TestReconcile_FetchErrorDegradesToOffline(t *testing.T) {
	local := profileAt(t, 100)
	remote := &fakeRemote{fetchErr: errors.New("connection refused")}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeOffline, outcome)
	assert.Same(t, local, got)
}

func TestReconcile_CorruptRemotePayloadDegradesToOffline(t *testing.T) {
	local := profileAt(t, 100)
	remote := &fakeRemote{env: &Envelope{UserID: "u1", Payload: []byte("{nope")}}
	c := NewCoordinator(remote, "u1", nil)

	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeOffline, outcome)
	assert.Same(t, local, got)
}

func TestReconcile_DisabledCoordinator(t *testing.T) {
	local := profileAt(t, 100)

	c := NewCoordinator(nil, "", nil)
	got, outcome := c.Reconcile(context.Background(), local)

	assert.Equal(t, OutcomeOffline, outcome)
	assert.Same(t, local, got)
	assert.False(t, c.Enabled())
}

func TestPush_CarriesOrderingKey(t *testing.T) {
	remote := &fakeRemote{}
	c := NewCoordinator(remote, "u1", nil)
	p := profileAt(t, 1700000000000)

	c.Push(context.Background(), p)

	require.Len(t, remote.upserts, 1)
	env := remote.upserts[0]
	assert.Equal(t, int64(1700000000000), env.UpdatedAt.UnixMilli())

	var round model.Profile
	require.NoError(t, json.Unmarshal(env.Payload, &round))
	assert.Equal(t, p.UserName, round.UserName)
}

func TestPushPayload_SendsBytesVerbatim(t *testing.T) {
	remote := &fakeRemote{}
	c := NewCoordinator(remote, "u1", nil)

	c.PushPayload(context.Background(), []byte(`{"user_name":"pre-marshaled"}`), 1234)

	require.Len(t, remote.upserts, 1)
	env := remote.upserts[0]
	assert.Equal(t, int64(1234), env.UpdatedAt.UnixMilli())
	assert.JSONEq(t, `{"user_name":"pre-marshaled"}`, string(env.Payload))
}
