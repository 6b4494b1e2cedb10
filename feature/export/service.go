package export

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"catalog-exporter/feature/catalog"
	"catalog-exporter/feature/combination"
	"catalog-exporter/feature/match"
)

// ErrNoEligibleProducts aborts a run when no product at all can be
// exported. Per-product problems never abort; this does.
var ErrNoEligibleProducts = errors.New("no eligible products")

// CatalogAPI is the subset of the catalog client the pipeline consumes.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetConfiguration(ctx context.Context, code string) (*catalog.Configuration, error)
	// ResetCache drops any per-run configuration cache. Called at the
	// start of every run.
	ResetCache()
}

// Service runs the export pipeline: configuration fetch, exclusivity
// grouping, enumeration, identity matching, row emission. Products are
// processed strictly sequentially, and a long-lived service (serve mode)
// processes runs strictly sequentially too: the matcher's prefilter cache,
// the catalog configuration cache and the match counters are all scoped to
// one run, so concurrent runs on shared state would corrupt each other.
type Service struct {
	api        CatalogAPI
	catalogCfg catalog.Config
	cfg        Config
	matcher    *match.Matcher
	logger     *zap.Logger

	runMu sync.Mutex
}

// NewService creates the export service.
func NewService(api CatalogAPI, catalogCfg catalog.Config, cfg Config, matcher *match.Matcher, logger *zap.Logger) *Service {
	return &Service{
		api:        api,
		catalogCfg: catalogCfg,
		cfg:        cfg,
		matcher:    matcher,
		logger:     logger,
	}
}

// Options select what one run exports.
type Options struct {
	// Products are explicit product codes. Empty means every eligible
	// (Production) product, optionally narrowed by Filter.
	Products []string
	// Filter narrows the product list by case-insensitive substring.
	Filter string
	// Frames are the viewing angles to export. Empty uses the configured default.
	Frames []int
	// AllowList restricts grouped material options. Nil uses the
	// configured default list.
	AllowList map[string]struct{}
}

// Result summarizes one run.
type Result struct {
	Set        *RowSet
	Products   int
	Skipped    int
	MatchStats match.Stats
}

// EligibleProducts lists the Production products, optionally filtered.
func (s *Service) EligibleProducts(ctx context.Context, filter string) ([]catalog.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterBySubstring(catalog.FilterProduction(products), filter), nil
}

// Run executes the pipeline over the selected products. Runs are
// serialized; each starts with fresh caches and counters.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.api.ResetCache()
	s.matcher.Reset()

	codes, err := s.resolveProducts(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, ErrNoEligibleProducts
	}

	frames := opts.Frames
	if len(frames) == 0 {
		frames, err = ParseFrames(s.cfg.Frames)
		if err != nil {
			return nil, err
		}
	}

	allow := opts.AllowList
	if allow == nil {
		allow = s.cfg.ParseAllowList()
	}

	configuredSets := s.cfg.ParseExclusiveSets()

	result := &Result{Set: NewRowSet()}
	for i, code := range codes {
		if i > 0 {
			if err := s.pace(ctx); err != nil {
				return nil, err
			}
		}

		if skipped := s.exportProduct(ctx, code, frames, configuredSets, allow, result.Set); skipped {
			result.Skipped++
			continue
		}
		result.Products++
	}

	result.MatchStats = s.matcher.Stats()
	return result, nil
}

// exportProduct emits all rows for one product. It returns true when the
// product contributed nothing; the run always continues.
func (s *Service) exportProduct(ctx context.Context, code string, frames []int, configuredSets [][]string, allow map[string]struct{}, set *RowSet) bool {
	l := s.logger.With(zap.String("product", code))

	cfg, err := s.api.GetConfiguration(ctx, code)
	if err != nil {
		l.Warn("Configuration fetch failed, product skipped", zap.Error(err))
		return true
	}

	// Disabled is a distinct gate, checked before the catalog is loaded
	if !cfg.Enabled {
		l.Info("Product disabled upstream, skipped")
		return true
	}

	features := catalog.BuildFeatureSet(cfg)
	if len(features) == 0 {
		l.Warn("Product has no usable features, skipped")
		return true
	}

	// API-declared feature groups replace the configured exclusive sets
	// for this product when present.
	sets := configuredSets
	if apiSets := combination.SetsFromFeatureGroups(cfg.FeatureGroups); len(apiSets) > 0 {
		sets = apiSets
	}

	entities := combination.Group(features, sets)
	if len(entities) == 0 {
		l.Warn("No combinable entities, skipped")
		return true
	}

	entities, ok := combination.ApplyAllowList(entities, allow)
	if !ok {
		l.Info("Material allow-list excludes every grouped option, skipped")
		return true
	}

	combos := combination.Enumerate(entities)
	if len(combos) == 0 {
		l.Info("No combinations possible, skipped")
		return true
	}

	for _, frame := range frames {
		for _, combo := range combos {
			selections := make([]catalog.Selection, 0, len(combo))
			for _, opt := range combo {
				selections = append(selections, catalog.Selection{Feature: opt.Feature, Option: opt.Code})
			}

			imageURL := catalog.BuildImageURL(s.catalogCfg, code, catalog.ImageParams{
				Frame:          frame,
				Size:           s.cfg.Size,
				SkipSharpening: s.cfg.SkipSharpening,
			}, selections)

			baseColor, _ := combo.OptionFor(s.cfg.BaseColorFeature)
			materialColor, _ := combo.OptionFor(s.cfg.MaterialFeature)
			itemNumber := s.matcher.Match(code, baseColor, materialColor)

			set.Add(NewRow(code, frame, s.cfg.Size, imageURL, itemNumber, combo))
		}
	}

	l.Info("Product exported",
		zap.Int("combinations", len(combos)),
		zap.Int("frames", len(frames)),
	)
	return false
}

func (s *Service) resolveProducts(ctx context.Context, opts Options) ([]string, error) {
	if len(opts.Products) > 0 {
		return opts.Products, nil
	}

	products, err := s.EligibleProducts(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(products))
	for _, p := range products {
		codes = append(codes, p.Code)
	}
	return codes, nil
}

// pace waits the configured courtesy delay between products.
func (s *Service) pace(ctx context.Context) error {
	if s.cfg.PacingMillis <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(s.cfg.PacingMillis) * time.Millisecond):
		return nil
	}
}
