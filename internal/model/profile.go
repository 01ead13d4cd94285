package model

// Trait identifies one of the five fixed personality dimensions.
type Trait string

const (
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitExtraversion      Trait = "extraversion"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// AllTraits lists the five trait keys in display order.
var AllTraits = []Trait{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

// DateFormat is the calendar-date layout used for all date-granularity
// fields (streaks, rollover guard, history keys).
const DateFormat = "2006-01-02"

// SchemaVersion is the current on-disk profile document version.
// Older documents are upgraded by the migrate package before use.
const SchemaVersion = 2

// HistoryLimit caps the number of retained daily history entries.
const HistoryLimit = 60

// Stats holds lifetime counters that only ever grow.
type Stats struct {
	TotalCompleted int `json:"total_completed"`
}

// HistoryEntry is a snapshot of one calendar day: trait values, journal
// text, and the labels of tasks completed that day. At most one entry
// exists per date.
type HistoryEntry struct {
	Date           string        `json:"date"`
	Traits         map[Trait]int `json:"traits"`
	Journal        string        `json:"journal"`
	CompletedTasks []string      `json:"completed_tasks"`
}

// Purchase records a single reward bought in the XP shop.
type Purchase struct {
	RewardID string `json:"id"`
	Date     string `json:"date"`
}

// Template is a named snapshot of a task list for later reuse.
type Template struct {
	Name      string `json:"name"`
	Tasks     []Task `json:"tasks"`
	CreatedAt string `json:"created_at"`
}

// Profile is the root aggregate: the complete per-user document that is
// persisted locally and synced to the remote store as a single unit.
type Profile struct {
	SchemaVersion int `json:"schema_version"`

	// UserName is the display name. Legacy documents also used it as
	// the sync key before the identity-provider migration.
	UserName string `json:"user_name"`

	Energy int `json:"energy"`

	// Streak counts consecutive days with at least one qualifying
	// completion. LastCompletedDate is empty when no completion has
	// ever been recorded.
	Streak            int    `json:"streak"`
	LastCompletedDate string `json:"last_completed_date"`

	// Level is always >= 1. XP is always >= 0 and, after
	// normalization, strictly less than Level*100.
	Level int `json:"level"`
	XP    int `json:"xp"`

	Traits map[Trait]int `json:"traits"`

	Tasks    []Task    `json:"tasks"`
	Requests []Request `json:"requests"`
	Skills   []Skill   `json:"skills"`

	// Journal is cleared on every daily rollover. Planning persists
	// across days.
	Journal  string `json:"journal"`
	Planning string `json:"planning"`

	History []HistoryEntry `json:"history"`

	// UnlockedAchievements grows monotonically and never shrinks.
	UnlockedAchievements []string   `json:"unlocked_achievements"`
	PurchasedRewards     []Purchase `json:"purchased_rewards"`
	Templates            []Template `json:"templates"`

	Stats Stats `json:"stats"`

	// LastDailyCheck is the calendar date the rollover logic last ran.
	LastDailyCheck string `json:"last_daily_check"`

	// LastUpdated is an epoch-millisecond timestamp bumped on every
	// persisted mutation. It orders snapshots for last-writer-wins
	// sync and is monotonically non-decreasing within a session.
	LastUpdated int64 `json:"last_updated"`
}

// DefaultProfile returns a fresh first-run profile. today is the current
// calendar date in DateFormat; it seeds the rollover guard so the first
// session does not immediately penalize an empty day.
func DefaultProfile(userName, today string) *Profile {
	traits := make(map[Trait]int, len(AllTraits))
	for _, t := range AllTraits {
		traits[t] = 50
	}

	return &Profile{
		SchemaVersion:        SchemaVersion,
		UserName:             userName,
		Energy:               50,
		Level:                1,
		Traits:               traits,
		Tasks:                []Task{},
		Requests:             []Request{},
		Skills:               []Skill{},
		History:              []HistoryEntry{},
		UnlockedAchievements: []string{},
		PurchasedRewards:     []Purchase{},
		Templates:            []Template{},
		LastDailyCheck:       today,
	}
}

// Trait returns the current value for the given trait key, defaulting
// to the neutral midpoint when the key is absent.
func (p *Profile) Trait(t Trait) int {
	if p.Traits == nil {
		return 50
	}
	v, ok := p.Traits[t]
	if !ok {
		return 50
	}
	return v
}

// SetTrait stores a trait value clamped into [0,100].
func (p *Profile) SetTrait(t Trait, value int) {
	if p.Traits == nil {
		p.Traits = make(map[Trait]int, len(AllTraits))
	}
	p.Traits[t] = ClampPercent(value)
}

// HasUnlocked reports whether the achievement id has been unlocked.
func (p *Profile) HasUnlocked(id string) bool {
	for _, u := range p.UnlockedAchievements {
		if u == id {
			return true
		}
	}
	return false
}

// TaskByID returns a pointer into p.Tasks for the given id, or nil.
func (p *Profile) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// RequestByID returns a pointer into p.Requests for the given id, or nil.
func (p *Profile) RequestByID(id string) *Request {
	for i := range p.Requests {
		if p.Requests[i].ID == id {
			return &p.Requests[i]
		}
	}
	return nil
}

// SkillByID returns a pointer into p.Skills for the given id, or nil.
func (p *Profile) SkillByID(id string) *Skill {
	for i := range p.Skills {
		if p.Skills[i].ID == id {
			return &p.Skills[i]
		}
	}
	return nil
}

// ClampPercent clamps v into the [0,100] range.
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
