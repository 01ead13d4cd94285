package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hrzp/dayforge/internal/migrate"
	"github.com/hrzp/dayforge/internal/model"
)

// Bounds on remote calls so a hung service can never block interactive
// use. Reconcile runs during startup and is kept tight; pushes happen
// in the background and get a little more room.
const (
	reconcileTimeout = 10 * time.Second
	pushTimeout      = 15 * time.Second
)

// Outcome describes which side won a reconcile and why.
type Outcome int

const (
	// OutcomeLocal: local snapshot kept; remote was older or equal.
	OutcomeLocal Outcome = iota
	// OutcomeRemote: remote snapshot replaced local state wholesale.
	OutcomeRemote
	// OutcomeLocalPushed: local won and was scheduled for push.
	OutcomeLocalPushed
	// OutcomeOffline: remote unavailable or unconfigured; local kept.
	OutcomeOffline
)

// Remote is the document store surface the coordinator needs.
type Remote interface {
	Fetch(ctx context.Context, userID string) (*Envelope, error)
	Upsert(ctx context.Context, env Envelope) error
}

// Coordinator merges local and remote snapshots with single-document
// last-writer-wins ordering on Profile.LastUpdated, and pushes the
// local snapshot on saves. All remote failures degrade to local-only
// operation: they are logged, never surfaced to callers.
type Coordinator struct {
	remote Remote
	userID string
	log    *slog.Logger
}

// NewCoordinator creates a coordinator for the given user key. remote
// may be nil, in which case every operation is an offline no-op.
func NewCoordinator(remote Remote, userID string, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{remote: remote, userID: userID, log: log}
}

// Enabled reports whether a remote store is configured.
func (c *Coordinator) Enabled() bool {
	return c.remote != nil && c.userID != ""
}

// Reconcile fetches the remote snapshot and applies last-writer-wins
// against local:
//
//   - remote newer: remote replaces local wholesale
//   - local newer: local kept and pushed to remote
//   - equal or no remote: local kept, nothing pushed
//
// An unreachable remote is treated as "no remote data"; the push is
// implicitly retried on the next save.
func (c *Coordinator) Reconcile(ctx context.Context, local *model.Profile) (*model.Profile, Outcome) {
	if !c.Enabled() {
		return local, OutcomeOffline
	}

	fetchCtx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	env, err := c.remote.Fetch(fetchCtx, c.userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Info("no remote profile yet", "user", c.userID)
		} else {
			c.log.Warn("remote fetch failed, continuing with local data", "error", err)
		}
		return local, OutcomeOffline
	}

	remote, err := migrate.Apply(env.Payload)
	if err != nil {
		c.log.Warn("remote profile unreadable, continuing with local data", "error", err)
		return local, OutcomeOffline
	}

	switch {
	case remote.LastUpdated > local.LastUpdated:
		c.log.Info("remote snapshot is newer, adopting it",
			"remote", remote.LastUpdated, "local", local.LastUpdated)
		return remote, OutcomeRemote

	case local.LastUpdated > remote.LastUpdated:
		c.Push(ctx, local)
		return local, OutcomeLocalPushed

	default:
		return local, OutcomeLocal
	}
}

// Push uploads the full local snapshot. Fire-and-forget: failure is
// logged and the next save tries again; it never blocks or fails the
// caller.
func (c *Coordinator) Push(ctx context.Context, p *model.Profile) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(p)
	if err != nil {
		c.log.Error("marshaling profile for push", "error", err)
		return
	}

	c.PushPayload(ctx, payload, p.LastUpdated)
}

// PushPayload uploads an already-marshaled snapshot. Callers that push
// from a goroutine must marshal on the mutating side first and hand
// over only the bytes, so the upload never reads the live aggregate.
func (c *Coordinator) PushPayload(ctx context.Context, payload []byte, lastUpdated int64) {
	if !c.Enabled() {
		return
	}

	pushCtx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	err := c.remote.Upsert(pushCtx, Envelope{
		UserID:    c.userID,
		Payload:   payload,
		UpdatedAt: time.UnixMilli(lastUpdated).UTC(),
	})
	if err != nil {
		c.log.Warn("remote push failed, will retry on next save", "error", err)
		return
	}

	c.log.Debug("profile pushed", "user", c.userID, "last_updated", lastUpdated)
}
