// Package migrate upgrades persisted profile documents to the current
// schema before any other component sees the data. Steady-state code
// never deals with legacy shapes.
package migrate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/hrzp/dayforge/internal/model"
)

// legacySkillNames maps the original fixed skill keys to their display
// records. Early documents stored skills as a flat name->level object
// with exactly these two entries.
var legacySkillNames = map[string]model.Skill{
	"english": {Name: "English Pronunciation", Icon: "🇺🇸", Color: "cyan"},
	"design":  {Name: "Graphic Design", Icon: "🎨", Color: "rose"},
}

// document mirrors model.Profile but defers the fields whose shape
// changed across versions.
type document struct {
	model.Profile

	// Skills is either a JSON array of skill records (current) or a
	// flat object of name->level pairs (legacy).
	Skills json.RawMessage `json:"skills"`

	// BigFive carries trait values for documents written before the
	// traits field was renamed.
	BigFive map[model.Trait]int `json:"big_five,omitempty"`
}

// Apply parses a raw profile document, upgrades any legacy shapes, and
// returns the profile at the current schema version. Malformed input
// returns an error and no partial state.
func Apply(raw []byte) (*model.Profile, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing profile document: %w", err)
	}

	p := doc.Profile

	skills, err := parseSkills(doc.Skills)
	if err != nil {
		return nil, err
	}
	p.Skills = skills

	// Trait map renamed from big_five; prefer the current key.
	if p.Traits == nil && doc.BigFive != nil {
		p.Traits = doc.BigFive
	}
	if p.Traits == nil {
		p.Traits = make(map[model.Trait]int, len(model.AllTraits))
	}
	for _, t := range model.AllTraits {
		if _, ok := p.Traits[t]; !ok {
			p.Traits[t] = 50
		}
		p.Traits[t] = model.ClampPercent(p.Traits[t])
	}

	// Optional collections on old snapshots default to empty, not
	// corruption.
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	if p.Requests == nil {
		p.Requests = []model.Request{}
	}
	if p.History == nil {
		p.History = []model.HistoryEntry{}
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	if p.PurchasedRewards == nil {
		p.PurchasedRewards = []model.Purchase{}
	}
	if p.Templates == nil {
		p.Templates = []model.Template{}
	}

	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	p.Energy = model.ClampPercent(p.Energy)

	p.SchemaVersion = model.SchemaVersion
	return &p, nil
}

// parseSkills accepts both skill shapes: the current list of records
// and the legacy flat name->level object.
func parseSkills(raw json.RawMessage) ([]model.Skill, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []model.Skill{}, nil
	}

	var list []model.Skill
	if err := json.Unmarshal(raw, &list); err == nil {
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = uuid.New().String()
			}
			list[i].Level = model.ClampPercent(list[i].Level)
		}
		return list, nil
	}

	var flat map[string]int
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("parsing skills: %w", err)
	}

	// Deterministic order so repeated migrations of the same document
	// agree.
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	upgraded := make([]model.Skill, 0, len(flat))
	for _, name := range names {
		skill, ok := legacySkillNames[name]
		if !ok {
			skill = model.Skill{Name: name, Icon: "📚", Color: "indigo"}
		}
		skill.ID = name
		skill.Level = model.ClampPercent(flat[name])
		upgraded = append(upgraded, skill)
	}
	return upgraded, nil
}
