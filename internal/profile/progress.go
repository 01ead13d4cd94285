package profile

import (
	"github.com/hrzp/dayforge/internal/clock"
	"github.com/hrzp/dayforge/internal/model"
)

// AddXP awards XP and normalizes against the level thresholds: while
// xp >= level*100, consume the current level's threshold and gain a
// level. The loop (not a single check) is what makes one large award
// span several levels, and each level gained emits its own LevelUpEvent
// in order.
//
// Only additions run this loop. Penalties and shop purchases deduct
// with a floor at zero and never touch the level.
func (s *Service) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	s.p.XP += amount

	for s.p.XP >= s.p.Level*100 {
		s.p.XP -= s.p.Level * 100
		s.p.Level++
		s.emit(LevelUpEvent{Level: s.p.Level})
	}

	s.checkAchievements()
}

// CheckStreak updates the consecutive-day counter for a qualifying
// completion happening today:
//
//   - already counted today: no-op
//   - last completion was exactly yesterday: streak extends
//   - longer gap, or no prior completion: streak restarts at 1
func (s *Service) CheckStreak() {
	today := s.clk.Today()
	last := s.p.LastCompletedDate

	if last == today {
		return
	}

	if last == "" {
		s.p.Streak = 1
	} else {
		days, err := clock.DaysBetween(last, today)
		switch {
		case err != nil:
			// Unparseable legacy date; restart rather than guess.
			s.p.Streak = 1
		case days == 1:
			s.p.Streak++
		default:
			s.p.Streak = 1
		}
	}

	s.p.LastCompletedDate = today
	s.emit(StreakEvent{Streak: s.p.Streak})
	s.checkAchievements()
}

// AdjustTrait applies a clamped delta to one of the five traits and
// records the day's state in history. Trait moves feed achievements
// (disciplined_soul, zen_master) so the table is re-evaluated here.
func (s *Service) AdjustTrait(t model.Trait, delta int) {
	s.p.SetTrait(t, s.p.Trait(t)+delta)
	s.RecordHistory()
	s.checkAchievements()
	s.Save()
}

// adjustTraitQuiet applies a clamped delta without the history or
// persistence side effects, for use inside larger operations that do
// their own bookkeeping.
func (s *Service) adjustTraitQuiet(t model.Trait, delta int) {
	s.p.SetTrait(t, s.p.Trait(t)+delta)
}

// RecordHistory upserts today's history entry: one entry per calendar
// date, newest last, at most model.HistoryLimit entries retained with
// the oldest evicted first.
func (s *Service) RecordHistory() {
	today := s.clk.Today()

	traits := make(map[model.Trait]int, len(s.p.Traits))
	for k, v := range s.p.Traits {
		traits[k] = v
	}

	var completed []string
	for i := range s.p.Tasks {
		if s.p.Tasks[i].Completed {
			completed = append(completed, s.p.Tasks[i].Text)
		}
	}

	entry := model.HistoryEntry{
		Date:           today,
		Traits:         traits,
		Journal:        s.p.Journal,
		CompletedTasks: completed,
	}

	for i := range s.p.History {
		if s.p.History[i].Date == today {
			s.p.History[i] = entry
			return
		}
	}

	s.p.History = append(s.p.History, entry)
	if len(s.p.History) > model.HistoryLimit {
		s.p.History = s.p.History[len(s.p.History)-model.HistoryLimit:]
	}
}
