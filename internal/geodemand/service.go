// Package geodemand computes per-category demand indices for a region. This
// is the unit-interval instantiation of the scorer: the composite is bounded
// to [0,1], not 0-100.
package geodemand

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chCategory   = engine.Channel("geodemand.category_index")
	chSamples    = engine.Channel("geodemand.samples")
	chFetchedAge = engine.Channel("geodemand.fetched_age")
)

const intervalWidth = 0.12

var demandBands = engine.Bands{
	{Min: 0.75, Label: "surging"},
	{Min: 0.5, Label: "strong"},
	{Min: 0.25, Label: "moderate"},
	{Min: 0, Label: "soft"},
}

// CategoryIndex is one category's demand reading.
type CategoryIndex struct {
	Category string  `json:"category"`
	Index    float64 `json:"index"`
}

type Result struct {
	Region      string           `json:"region"`
	Categories  []CategoryIndex  `json:"categories"`
	Composite   float64          `json:"composite_index"`
	DemandLevel string           `json:"demand_level"`
	IndexLow    float64          `json:"index_low"`
	IndexHigh   float64          `json:"index_high"`
	Confidence  float64          `json:"confidence"`
	Freshness   engine.Freshness `json:"freshness"`
}

type Config struct {
	Categories      []string
	Staleness       time.Duration
	ReferenceVolume int
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Index computes the deterministic demand profile for region.
func (s *Service) Index(ctx context.Context, region string) *Result {
	r := engine.SeededRand("geodemand", region)

	n := len(s.cfg.Categories)
	weight := engine.Round(1/float64(n), 4)
	categories := make([]CategoryIndex, 0, n)
	factors := make([]engine.Factor, 0, n)
	for i, cat := range s.cfg.Categories {
		idx := r.RangeN(chCategory+int64(i), 0, 1, 4)
		categories = append(categories, CategoryIndex{Category: cat, Index: idx})
		factors = append(factors, engine.Factor{Name: cat, Score: idx, Weight: weight})
	}

	composite := engine.Composite(factors, 1)
	samples := r.Int(chSamples, 0, 2*s.cfg.ReferenceVolume)
	confidence := engine.Confidence(samples, s.cfg.ReferenceVolume)
	low, high := engine.Interval(composite, intervalWidth, confidence, 0, 1)

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 2000)) * time.Second)

	return &Result{
		Region:      region,
		Categories:  categories,
		Composite:   composite,
		DemandLevel: demandBands.Classify(composite),
		IndexLow:    low,
		IndexHigh:   high,
		Confidence:  confidence,
		Freshness:   engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
