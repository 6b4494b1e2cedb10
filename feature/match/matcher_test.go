package match

import (
	"fmt"
	"testing"

	"catalog-exporter/feature/reference"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func record(itemNumber, itemName, baseColor, material string) reference.Record {
	return reference.Record{
		ItemNumber:         itemNumber,
		ItemName:           itemName,
		BaseColorWords:     reference.ColorWords(baseColor),
		NormalizedMaterial: reference.NormalizeCode(material),
	}
}

func newMatcher(cfg Config, records ...reference.Record) *Matcher {
	return NewMatcher(cfg, &reference.Table{Records: records}, zap.NewNop())
}

func TestMatch_SubsetCondition(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFilter},
		record("100", "Sofa", "oak", "darkgrey01"),
	)

	assert.Equal(t, "100", m.Match("SOFA_1", "Natural Oak Finish", "Dark-Grey 01"))
	assert.Equal(t, "", m.Match("SOFA_1", "Walnut", "Dark-Grey 01"))
}

func TestMatch_MaterialExactCondition(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFilter},
		record("100", "Sofa", "oak", "darkgrey01"),
	)

	assert.Equal(t, "100", m.Match("SOFA_1", "Oak", "Dark-Grey 01"))
	assert.Equal(t, "", m.Match("SOFA_1", "Oak", "Dark Grey 02"))
}

func TestMatch_EmptyColorWordsNeverMatch(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFilter},
		record("100", "Sofa", "", "darkgrey01"),
	)

	// A record with no base color words carries no evidence
	assert.Equal(t, "", m.Match("SOFA_1", "Oak", "Dark-Grey 01"))
}

func TestMatch_ShortCircuitOnMissingColors(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFuzzy},
		record("100", "SOFA 123", "oak", "darkgrey01"),
	)

	assert.Equal(t, "", m.Match("SOFA_123", "", "Dark-Grey 01"))
	assert.Equal(t, "", m.Match("SOFA_123", "Oak", ""))
	// The table was never scanned
	assert.Equal(t, 0, m.Stats().PrefilterComputes)
}

func TestMatch_FuzzyPrefilterShortCircuit(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFuzzy, Threshold: 85},
		record("100", "Garden Parasol XXL", "oak", "darkgrey01"),
		record("101", "Bathroom Cabinet", "oak", "darkgrey01"),
	)

	// Nothing scores near SOFA_123; colors are correct but must not rescue the match
	assert.Equal(t, "", m.Match("SOFA_123", "Natural Oak", "Dark-Grey 01"))
}

func TestMatch_FuzzySurvivorsThenConditions(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFuzzy, Threshold: 85},
		record("100", "SOFA 123", "walnut", "darkgrey01"),
		record("101", "SOFA 123", "oak", "darkgrey01"),
	)

	assert.Equal(t, "101", m.Match("SOFA 123", "Natural Oak", "Dark-Grey 01"))
}

func TestMatch_FirstRowWinsTieBreak(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFilter},
		record("first", "Sofa", "oak", "gr1"),
		record("second", "Sofa", "oak", "gr1"),
	)

	assert.Equal(t, "first", m.Match("SOFA_1", "Oak", "GR-1"))
}

func TestMatch_PrefilterComputedOncePerProduct(t *testing.T) {
	records := make([]reference.Record, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, record(fmt.Sprintf("%d", i), "SOFA 123", "oak", "gr1"))
	}
	m := newMatcher(Config{Strategy: StrategyFuzzy, Threshold: 85}, records...)

	// Hundreds of combinations for the same product: one table scan
	for i := 0; i < 300; i++ {
		m.Match("SOFA 123", "Oak", "GR-1")
	}
	assert.Equal(t, 1, m.Stats().PrefilterComputes)

	m.Match("CHAIR 9", "Oak", "GR-1")
	assert.Equal(t, 2, m.Stats().PrefilterComputes)
}

func TestReset_StartsAFreshRun(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFuzzy, Threshold: 85},
		record("100", "SOFA 123", "oak", "gr1"),
	)

	m.Match("SOFA 123", "Oak", "GR-1")
	m.Match("SOFA 123", "Walnut", "GR-1")
	assert.Equal(t, 1, m.Stats().PrefilterComputes)

	m.Reset()

	// Counters are zeroed and the prefilter cache is gone: the same
	// product triggers a new table scan.
	assert.Equal(t, Stats{}, m.Stats())
	m.Match("SOFA 123", "Oak", "GR-1")
	assert.Equal(t, 1, m.Stats().PrefilterComputes)
	assert.Equal(t, 1, m.Stats().Matched)
}

func TestMatch_Stats(t *testing.T) {
	m := newMatcher(Config{Strategy: StrategyFilter},
		record("100", "Sofa", "oak", "gr1"),
	)

	m.Match("SOFA_1", "Oak", "GR-1")
	m.Match("SOFA_1", "Walnut", "GR-1")

	stats := m.Stats()
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
}
