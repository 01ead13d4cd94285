package insight

import "github.com/hrzp/dayforge/internal/model"

// Achievement is a single unlockable badge. Condition is a pure
// predicate over the profile; unlocks are recorded on the profile by
// the caller and never revoked.
type Achievement struct {
	ID        string
	Name      string
	Desc      string
	Icon      string
	Condition func(*model.Profile) bool
}

// Achievements is the full badge table, in display order.
var Achievements = []Achievement{
	{
		ID:   "first_blood",
		Name: "First Blood",
		Desc: "Complete your first task",
		Icon: "🎯",
		Condition: func(p *model.Profile) bool {
			return p.Stats.TotalCompleted >= 1
		},
	},
	{
		ID:   "warrior_week",
		Name: "Warrior Week",
		Desc: "Complete 7 tasks",
		Icon: "⚔️",
		Condition: func(p *model.Profile) bool {
			return p.Stats.TotalCompleted >= 7
		},
	},
	{
		ID:   "disciplined_soul",
		Name: "Disciplined Soul",
		Desc: "Conscientiousness at 80% or above",
		Icon: "🧘",
		Condition: func(p *model.Profile) bool {
			return p.Trait(model.TraitConscientiousness) >= 80
		},
	},
	{
		ID:   "zen_master",
		Name: "Zen Master",
		Desc: "Neuroticism at 20% or below",
		Icon: "☮️",
		Condition: func(p *model.Profile) bool {
			return p.Trait(model.TraitNeuroticism) <= 20
		},
	},
	{
		ID:   "century",
		Name: "Century",
		Desc: "Complete 100 tasks",
		Icon: "💯",
		Condition: func(p *model.Profile) bool {
			return p.Stats.TotalCompleted >= 100
		},
	},
	{
		ID:   "streak_champion",
		Name: "Streak Champion",
		Desc: "7 day streak",
		Icon: "🔥",
		Condition: func(p *model.Profile) bool {
			return p.Streak >= 7
		},
	},
	{
		ID:   "level_10",
		Name: "Veteran",
		Desc: "Reach level 10",
		Icon: "⭐",
		Condition: func(p *model.Profile) bool {
			return p.Level >= 10
		},
	},
	{
		ID:   "perfectionist",
		Name: "Perfectionist",
		Desc: "All high priority tasks complete",
		Icon: "✨",
		Condition: func(p *model.Profile) bool {
			total, open := 0, 0
			for i := range p.Tasks {
				if p.Tasks[i].Priority != model.PriorityHigh {
					continue
				}
				total++
				if !p.Tasks[i].Completed {
					open++
				}
			}
			return total > 0 && open == 0
		},
	},
}

// ByID returns the achievement with the given id, or nil.
func ByID(id string) *Achievement {
	for i := range Achievements {
		if Achievements[i].ID == id {
			return &Achievements[i]
		}
	}
	return nil
}

// Unlock evaluates all achievement conditions against the profile,
// records any newly satisfied ones, and returns their ids in table
// order. Already-unlocked achievements are never re-reported.
func Unlock(p *model.Profile) []string {
	var unlocked []string
	for i := range Achievements {
		a := &Achievements[i]
		if p.HasUnlocked(a.ID) {
			continue
		}
		if a.Condition(p) {
			p.UnlockedAchievements = append(p.UnlockedAchievements, a.ID)
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked
}
