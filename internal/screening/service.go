package screening

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

// Generator channels. One per attribute; match attributes add the match
// index so each hit draws independently.
var (
	chMatchCount = engine.Channel("screening.match_count")
	chMatchList  = engine.Channel("screening.match_list")
	chMatchScore = engine.Channel("screening.match_strength")
	chSanctions  = engine.Channel("screening.sanctions_proximity")
	chMedia      = engine.Channel("screening.adverse_media")
	chPEP        = engine.Channel("screening.pep_exposure")
	chGeo        = engine.Channel("screening.geographic")
	chVolume     = engine.Channel("screening.volume")
	chFetchedAge = engine.Channel("screening.fetched_age")
)

// riskBands: >=80 critical, >=55 high, >=25 medium, else low. A score of
// exactly 80 is critical; the boundary belongs to the band it opens.
var riskBands = engine.Bands{
	{Min: 80, Label: "critical"},
	{Min: 55, Label: "high"},
	{Min: 25, Label: "medium"},
	{Min: 0, Label: "low"},
}

const maxFetchedAge = 5400 // seconds; synthetic fetch times land within 1.5h

// Config fixes the screening weight table and pools at construction.
type Config struct {
	WatchLists      []string
	Staleness       time.Duration
	ReferenceVolume int
}

// Service synthesizes and scores screening results. Pure and stateless:
// safe for concurrent use.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Screen builds the deterministic screening result for entityID. The caller
// has already confirmed the entity exists.
func (s *Service) Screen(ctx context.Context, entityID string) *Result {
	r := engine.SeededRand("screening", entityID)

	matchCount := r.Count(chMatchCount, 3)
	matches := make([]Match, 0, matchCount)
	for i := 0; i < matchCount; i++ {
		off := int64(i)
		matches = append(matches, Match{
			List:     r.Pick(chMatchList+off, s.cfg.WatchLists),
			Strength: r.RangeN(chMatchScore+off, 0.35, 0.99, 2),
		})
	}

	// Sanctions proximity reflects the synthesized hits; the other factors
	// are independent draws on their own channels.
	sanctions := engine.Clamp(r.RangeN(chSanctions, 5, 55, 2)+float64(matchCount)*15, 0, 100)
	factors := []engine.Factor{
		{Name: "sanctions_proximity", Score: engine.Round2(sanctions), Weight: 0.40,
			Description: "closeness to listed parties across active watchlists"},
		{Name: "adverse_media", Score: r.RangeN(chMedia, 0, 100, 2), Weight: 0.25,
			Description: "weight of negative coverage attributed to the entity"},
		{Name: "pep_exposure", Score: r.RangeN(chPEP, 0, 100, 2), Weight: 0.20,
			Description: "politically exposed persons in the ownership circle"},
		{Name: "geographic", Score: r.RangeN(chGeo, 0, 100, 2), Weight: 0.15,
			Description: "footprint in higher-risk jurisdictions"},
	}

	score := engine.Composite(factors, 100)
	volume := r.Int(chVolume, 0, 2*s.cfg.ReferenceVolume)

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, maxFetchedAge)) * time.Second)

	return &Result{
		EntityID:   entityID,
		RiskScore:  score,
		RiskLevel:  riskBands.Classify(score),
		Factors:    factors,
		Matches:    matches,
		Confidence: engine.Confidence(volume, s.cfg.ReferenceVolume),
		Freshness:  engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
