// Package rollover implements the once-per-day reconciliation of the
// profile: penalties for recurring tasks left incomplete, the daily
// reset of recurring completion state and the journal, and the
// independent deadline scanner for deadline-bound tasks.
//
// Both entry points are in-memory state transitions over the profile;
// persistence and re-rendering are the caller's responsibility.
package rollover

import (
	"github.com/hrzp/dayforge/internal/model"
)

// XP penalties charged per incomplete recurring task at rollover.
const (
	PenaltyHigh   = 50
	PenaltyMedium = 30
	PenaltyLow    = 20
)

// Trait deltas applied once per rollover when at least one recurring
// task was left incomplete.
const (
	rolloverConscientiousnessDelta = -10
	rolloverNeuroticismDelta       = 5
)

// Result summarizes one rollover run. It is the single summary event
// for the day transition; callers render it instead of per-task
// notifications.
type Result struct {
	// Ran is false when the guard date already matched today and the
	// call was a no-op.
	Ran bool

	PenalizedTaskCount int
	TotalXPLoss        int
	JournalCleared     bool
}

// penaltyFor maps a priority to its missed-day XP penalty.
func penaltyFor(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return PenaltyHigh
	case model.PriorityMedium:
		return PenaltyMedium
	default:
		return PenaltyLow
	}
}

// Run performs the daily rollover against the profile for the given
// calendar date (model.DateFormat). It is idempotent per day: when
// LastDailyCheck already equals today the profile is untouched.
//
// A profile with no recorded check date is treated as checked today,
// so a fresh or imported snapshot is never penalized retroactively.
func Run(p *model.Profile, today string) Result {
	lastCheck := p.LastDailyCheck
	if lastCheck == "" {
		lastCheck = today
	}
	if lastCheck == today {
		p.LastDailyCheck = today
		return Result{}
	}

	res := Result{Ran: true}

	// Penalties are summed across all incomplete recurring tasks and
	// charged as one batched deduction, floored at zero. The deduction
	// must not run through the level-up path: partial sums crossing a
	// threshold would corrupt the level.
	for i := range p.Tasks {
		t := &p.Tasks[i]
		if !t.IsRecurring() || t.Completed {
			continue
		}
		res.PenalizedTaskCount++
		res.TotalXPLoss += penaltyFor(t.Priority)
	}

	if res.PenalizedTaskCount > 0 {
		p.XP -= res.TotalXPLoss
		if p.XP < 0 {
			p.XP = 0
		}
		p.SetTrait(model.TraitConscientiousness,
			p.Trait(model.TraitConscientiousness)+rolloverConscientiousnessDelta)
		p.SetTrait(model.TraitNeuroticism,
			p.Trait(model.TraitNeuroticism)+rolloverNeuroticismDelta)
	}

	// The new day: every recurring task reopens whether or not it was
	// penalized. Deadline tasks are never touched here.
	for i := range p.Tasks {
		if p.Tasks[i].IsRecurring() {
			p.Tasks[i].Completed = false
		}
	}

	p.Journal = ""
	res.JournalCleared = true
	p.LastDailyCheck = today

	return res
}
