package match

import (
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"catalog-exporter/feature/reference"
)

// Strategy selects how candidate rows are narrowed before the color and
// material conditions are applied.
const (
	// StrategyFilter matches on the two-condition filter alone (no fuzziness).
	StrategyFilter = "filter"
	// StrategyFuzzy prefilters rows by name similarity before the
	// two-condition filter. This supersedes StrategyFilter and is the default.
	StrategyFuzzy = "fuzzy"
)

// Config holds configuration for the identity matcher.
type Config struct {
	// Strategy is the matching strategy (filter, fuzzy).
	Strategy string `mapstructure:"strategy" default:"fuzzy"`
	// Threshold is the minimum token-set similarity score (0-100) between
	// a product code and a reference item name for the row to survive the
	// fuzzy prefilter.
	Threshold int `mapstructure:"threshold" default:"85"`
}

// Stats counts the matcher's work over one run.
type Stats struct {
	// PrefilterComputes is the number of full-table similarity scans.
	// At most one per product regardless of its combination count.
	PrefilterComputes int
	// Matched and Unmatched count Match results.
	Matched   int
	Unmatched int
}

// Matcher resolves a (product, base color, material color) triple to a
// reference item number.
//
// The name prefilter depends only on the product code, and scoring every
// reference row is the most expensive operation in the pipeline, so its
// result is cached per product. The cache and the counters are scoped to
// one run: callers that reuse a matcher must call Reset between runs.
type Matcher struct {
	cfg    Config
	table  *reference.Table
	logger *zap.Logger

	mu        sync.Mutex
	prefilter *gocache.Cache
	stats     Stats
}

// NewMatcher creates a matcher over the indexed reference table.
func NewMatcher(cfg Config, table *reference.Table, logger *zap.Logger) *Matcher {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyFuzzy
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 85
	}
	return &Matcher{
		cfg:       cfg,
		table:     table,
		logger:    logger,
		prefilter: gocache.New(gocache.NoExpiration, 0),
	}
}

// Match returns the item number of the best reference candidate, or the
// empty string when no row qualifies. Ties break to the first row in the
// table's original order.
//
// A combination lacking either color string carries too little evidence to
// match: the matcher returns empty without scanning the table.
func (m *Matcher) Match(productCode, baseColor, materialColor string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if baseColor == "" || materialColor == "" {
		m.stats.Unmatched++
		return ""
	}

	var candidates []int
	switch m.cfg.Strategy {
	case StrategyFilter:
		candidates = allRows(len(m.table.Records))
	default:
		candidates = m.prefilterRows(productCode)
		if len(candidates) == 0 {
			// No name is similar enough; never fall back to an
			// unfiltered scan.
			m.stats.Unmatched++
			return ""
		}
	}

	baseWords := reference.ColorWords(baseColor)
	material := reference.NormalizeCode(materialColor)

	for _, idx := range candidates {
		rec := m.table.Records[idx]
		if reference.IsSubset(rec.BaseColorWords, baseWords) && rec.NormalizedMaterial == material {
			m.stats.Matched++
			return rec.ItemNumber
		}
	}
	m.stats.Unmatched++
	return ""
}

// Stats returns the counters accumulated since the last Reset.
func (m *Matcher) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Reset discards the prefilter cache and zeroes the counters, starting a
// new run. A long-lived matcher must be reset between runs: the upstream
// catalog can change between them, and the counters describe one run only.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefilter.Flush()
	m.stats = Stats{}
}

// prefilterRows returns the indices of rows whose item name scores at or
// above the threshold against the product code. Computed at most once per
// product per run.
func (m *Matcher) prefilterRows(productCode string) []int {
	if cached, found := m.prefilter.Get(productCode); found {
		return cached.([]int)
	}

	m.stats.PrefilterComputes++
	var rows []int
	for i, rec := range m.table.Records {
		if fuzzy.TokenSetRatio(productCode, rec.ItemName) >= m.cfg.Threshold {
			rows = append(rows, i)
		}
	}

	m.logger.Debug("Name prefilter computed",
		zap.String("product", productCode),
		zap.Int("candidates", len(rows)),
		zap.Int("threshold", m.cfg.Threshold),
	)

	m.prefilter.Set(productCode, rows, gocache.NoExpiration)
	return rows
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
