// Package insight derives narrative feedback, achievement unlocks, and
// static reward tables from profile state. Everything here is a pure
// function over the data model; nothing in this package mutates state.
package insight

import (
	"github.com/hrzp/dayforge/internal/model"
)

// Kind classifies an insight for rendering.
type Kind string

const (
	KindStrength Kind = "strength"
	KindWarning  Kind = "warning"
	KindNeutral  Kind = "neutral"
)

// Insight is one line of personality feedback.
type Insight struct {
	Kind Kind
	Text string
}

// Evaluate derives insights from the current trait values. Single-trait
// thresholds are checked first, then trait-combination archetypes, and
// finally a summary line when the reading is crowded.
func Evaluate(traits map[model.Trait]int) []Insight {
	get := func(t model.Trait) int {
		if traits == nil {
			return 50
		}
		if v, ok := traits[t]; ok {
			return v
		}
		return 50
	}

	o := get(model.TraitOpenness)
	c := get(model.TraitConscientiousness)
	e := get(model.TraitExtraversion)
	a := get(model.TraitAgreeableness)
	n := get(model.TraitNeuroticism)

	var out []Insight
	add := func(k Kind, text string) {
		out = append(out, Insight{Kind: k, Text: text})
	}

	// Discipline is the core dimension.
	switch {
	case c < 25:
		add(KindWarning, "CRITICAL: discipline has collapsed. Nothing changes until you stop negotiating with yourself over the smallest tasks.")
	case c < 45:
		add(KindWarning, "LOW DISCIPLINE: you only work when the mood is right. Mood won't build your future; discipline will.")
	case c >= 85:
		add(KindStrength, "FULL CONTROL: your discipline is your shield. Keep the standard this high and no target is out of reach.")
	}

	// Mental turbulence.
	switch {
	case n > 80:
		add(KindWarning, "FRAGILE STATE: negative thought loops are running your day. Most of what you dread never happens.")
	case n < 20:
		add(KindStrength, "DIAMOND CALM: a very stable mind. Use the calm to lead, not to coast.")
	}

	// Combination archetypes.
	if c < 40 && n > 65 {
		add(KindWarning, "THE DOOM LOOP: stressed because you procrastinate, procrastinating because you're stressed. Execution is the only exit.")
	}
	if o > 75 && c < 40 {
		add(KindWarning, "THE DREAMER: big ideas, zero follow-through. Potential is being wasted on planning without practice.")
	}
	if e > 70 && a > 70 && c < 50 {
		add(KindWarning, "THE PEOPLE-PLEASER: too busy keeping everyone happy to protect your own time. Learn to say no.")
	}
	if n < 35 && c < 40 {
		add(KindWarning, "COMFORT-ZONE TRAP: undisciplined and unbothered by it. No alarm bell means no change; wake yourself up.")
	}
	if c > 75 && n > 70 {
		add(KindNeutral, "HIGH PRESSURE: you deliver, but it costs you. Learn to rest without quitting.")
	}
	if e < 30 && c > 75 {
		add(KindStrength, "SILENT ACHIEVER: quiet work, loud results. Your focus is undisturbed by noise.")
	}
	if c > 80 && n < 30 && a < 40 {
		add(KindStrength, "THE STOIC: firm, disciplined, unshakeable. A results-first leadership temperament.")
	}
	if o > 80 && c > 70 {
		add(KindStrength, "ORDERED INNOVATOR: vision plus the discipline to build it. A rare combination.")
	}

	if len(out) > 3 {
		add(KindNeutral, "SUMMARY: too much turbulence on the monitor. Fix one thing first: raise discipline, today.")
	}

	return out
}
