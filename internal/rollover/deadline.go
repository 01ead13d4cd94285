package rollover

import (
	"time"

	"github.com/hrzp/dayforge/internal/model"
)

// Deadline-miss consequences, charged once per task.
const (
	DeadlinePenaltyXP               = 20
	deadlineConscientiousnessDelta  = -5
	deadlineNeuroticismDelta        = 3
)

// Missed describes one task whose deadline penalty fired during a scan.
type Missed struct {
	TaskID string
	Text   string
}

// ScanDeadlines evaluates deadline-bearing tasks against now and
// charges the miss penalty for each overdue, incomplete task whose
// PenaltyApplied latch is still clear. The latch is set before any
// consequence is applied, so a penalty can never fire twice for the
// same task instance no matter how often the scanner runs.
//
// Recurring tasks are ignored entirely; they belong to Run.
func ScanDeadlines(p *model.Profile, now time.Time) []Missed {
	var missed []Missed

	for i := range p.Tasks {
		t := &p.Tasks[i]
		if t.PenaltyApplied || !t.Overdue(now) {
			continue
		}

		t.PenaltyApplied = true

		p.XP -= DeadlinePenaltyXP
		if p.XP < 0 {
			p.XP = 0
		}
		p.SetTrait(model.TraitConscientiousness,
			p.Trait(model.TraitConscientiousness)+deadlineConscientiousnessDelta)
		p.SetTrait(model.TraitNeuroticism,
			p.Trait(model.TraitNeuroticism)+deadlineNeuroticismDelta)

		missed = append(missed, Missed{TaskID: t.ID, Text: t.Text})
	}

	return missed
}
