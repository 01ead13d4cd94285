package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrzp/dayforge/internal/model"
)

func traits(o, c, e, a, n int) map[model.Trait]int {
	return map[model.Trait]int{
		model.TraitOpenness:          o,
		model.TraitConscientiousness: c,
		model.TraitExtraversion:      e,
		model.TraitAgreeableness:     a,
		model.TraitNeuroticism:       n,
	}
}

func kinds(in []Insight) []Kind {
	out := make([]Kind, len(in))
	for i, ins := range in {
		out[i] = ins.Kind
	}
	return out
}

func TestEvaluate_BalancedTraitsAreQuiet(t *testing.T) {
	got := Evaluate(traits(50, 50, 50, 50, 50))
	assert.Empty(t, got)
}

func TestEvaluate_NilTraitsDefaultToFifty(t *testing.T) {
	assert.Empty(t, Evaluate(nil))
}

func TestEvaluate_DisciplineThresholds(t *testing.T) {
	low := Evaluate(traits(50, 20, 50, 50, 50))
	require.NotEmpty(t, low)
	assert.Equal(t, KindWarning, low[0].Kind)
	assert.Contains(t, low[0].Text, "CRITICAL")

	high := Evaluate(traits(50, 90, 50, 50, 50))
	require.NotEmpty(t, high)
	assert.Equal(t, KindStrength, high[0].Kind)
	assert.Contains(t, high[0].Text, "FULL CONTROL")
}

func TestEvaluate_ComboArchetypes(t *testing.T) {
	cases := []struct {
		name   string
		traits map[model.Trait]int
		want   string
		kind   Kind
	}{
		{"doom loop", traits(50, 35, 50, 50, 70), "DOOM LOOP", KindWarning},
		{"dreamer", traits(80, 35, 50, 50, 50), "DREAMER", KindWarning},
		{"people pleaser", traits(50, 45, 75, 75, 50), "PEOPLE-PLEASER", KindWarning},
		{"silent achiever", traits(50, 80, 25, 50, 50), "SILENT ACHIEVER", KindStrength},
		{"ordered innovator", traits(85, 75, 50, 50, 50), "ORDERED INNOVATOR", KindStrength},
		{"stoic", traits(50, 85, 50, 30, 25), "THE STOIC", KindStrength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.traits)
			found := false
			for _, ins := range got {
				if ins.Kind == tc.kind && strings.Contains(ins.Text, tc.want) {
					found = true
				}
			}
			assert.True(t, found, "expected %q among %v", tc.want, got)
		})
	}
}

func TestEvaluate_CrowdedReadingGetsSummary(t *testing.T) {
	// Low discipline, high neuroticism, high openness: fires the single
	// thresholds plus several combos, so a summary line is appended.
	got := Evaluate(traits(80, 20, 50, 50, 85))
	require.Greater(t, len(got), 3)

	last := got[len(got)-1]
	assert.Equal(t, KindNeutral, last.Kind)
	assert.Contains(t, last.Text, "SUMMARY")
	assert.Contains(t, kinds(got), KindWarning)
}
