// Package profile owns the live profile state. Every mutation in the
// application goes through the Service: methods clamp and normalize,
// emit change events, and persist best-effort (local snapshot plus a
// fire-and-forget cloud push). There is exactly one Service per
// process and all calls happen on the UI event loop, so no locking is
// needed.
package profile

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hrzp/dayforge/internal/clock"
	"github.com/hrzp/dayforge/internal/cloud"
	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/rollover"
	"github.com/hrzp/dayforge/internal/store"
)

// Service is the explicit state container for the profile aggregate.
type Service struct {
	p     *model.Profile
	store *store.SnapshotStore
	coord *cloud.Coordinator
	clk   clock.Clock
	log   *slog.Logger

	events chan Event
}

// NewService wraps an already-loaded (and migrated, and reconciled)
// profile. store and coord may be nil; persistence then becomes a
// no-op, which is what tests want.
func NewService(
	p *model.Profile,
	st *store.SnapshotStore,
	coord *cloud.Coordinator,
	clk clock.Clock,
	log *slog.Logger,
) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		p:      p,
		store:  st,
		coord:  coord,
		clk:    clk,
		log:    log,
		events: make(chan Event, 64),
	}
}

// Clock exposes the service clock so views render "today" and
// overdue markers consistently with the mutation path.
func (s *Service) Clock() clock.Clock {
	return s.clk
}

// Profile exposes the current aggregate for rendering. Callers must
// treat it as read-only; all writes go through Service methods.
func (s *Service) Profile() *model.Profile {
	return s.p
}

// Events is the change notification stream. The channel is buffered
// and sends never block; if no one is listening, events are dropped.
func (s *Service) Events() <-chan Event {
	return s.events
}

func (s *Service) emit(e Event) {
	select {
	case s.events <- e:
	default:
		// Drop rather than block the event loop.
	}
}

// touch bumps LastUpdated to the current epoch-millisecond time,
// forced strictly past the previous value so the sync ordering key is
// monotonically non-decreasing within a session even across same-
// millisecond saves.
func (s *Service) touch() {
	now := s.clk.Now().UnixMilli()
	if now <= s.p.LastUpdated {
		now = s.p.LastUpdated + 1
	}
	s.p.LastUpdated = now
}

// Save persists the profile: bump the ordering key, write the local
// snapshot (primary + backup key), and schedule a cloud push. All of
// it is best-effort and at-least-once; failures are logged, never
// surfaced, so a broken disk or network cannot block task mutation.
func (s *Service) Save() {
	s.touch()

	payload, err := json.Marshal(s.p)
	if err != nil {
		s.log.Error("marshaling profile snapshot", "error", err)
		return
	}

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.store.Save(ctx, payload); err != nil {
			s.log.Error("saving local snapshot", "error", err)
		}
		cancel()
	}

	if s.coord != nil {
		// The marshal above happened on the mutating side; only the
		// network call runs in the background, over bytes no later
		// mutation can touch.
		lastUpdated := s.p.LastUpdated
		go s.coord.PushPayload(context.Background(), payload, lastUpdated)
	}
}

// Replace swaps in a wholly new profile (import or explicit wipe) and
// persists it.
func (s *Service) Replace(p *model.Profile) {
	s.p = p
	s.Save()
}

// RunDailyRollover applies the once-per-day reconciliation and the
// deadline scan against the current clock, emitting summary events and
// persisting when anything changed. Safe to call any number of times
// per day.
func (s *Service) RunDailyRollover() rollover.Result {
	res := rollover.Run(s.p, s.clk.Today())
	missed := rollover.ScanDeadlines(s.p, s.clk.Now())

	if res.Ran {
		s.emit(RolloverEvent{Result: res})
	}
	for _, m := range missed {
		s.emit(DeadlineMissedEvent{Missed: m})
	}

	if res.Ran || len(missed) > 0 {
		s.checkAchievements()
		s.Save()
	}
	return res
}

// ScanDeadlines runs only the deadline scanner; it may be called more
// often than once per day (on every list render tick).
func (s *Service) ScanDeadlines() []rollover.Missed {
	missed := rollover.ScanDeadlines(s.p, s.clk.Now())
	if len(missed) > 0 {
		for _, m := range missed {
			s.emit(DeadlineMissedEvent{Missed: m})
		}
		s.Save()
	}
	return missed
}

// checkAchievements re-evaluates the badge table and emits one event
// per fresh unlock.
func (s *Service) checkAchievements() {
	for _, id := range insight.Unlock(s.p) {
		s.emit(AchievementEvent{ID: id})
	}
}
