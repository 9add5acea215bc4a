// Package jurisdiction grades the regulatory risk profile of a jurisdiction
// code.
package jurisdiction

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chCorruption  = engine.Channel("jurisdiction.corruption")
	chEnforcement = engine.Channel("jurisdiction.enforcement_gaps")
	chSecrecy     = engine.Channel("jurisdiction.secrecy")
	chSanctions   = engine.Channel("jurisdiction.sanctions_alignment")
	chAgencies    = engine.Channel("jurisdiction.watch_agencies")
	chAgencyPick  = engine.Channel("jurisdiction.watch_agency")
	chFetchedAge  = engine.Channel("jurisdiction.fetched_age")
)

var gradeBands = engine.Bands{
	{Min: 80, Label: "prohibitive"},
	{Min: 60, Label: "high"},
	{Min: 35, Label: "elevated"},
	{Min: 15, Label: "standard"},
	{Min: 0, Label: "low"},
}

type Result struct {
	Code          string           `json:"code"`
	RiskScore     float64          `json:"risk_score"`
	RiskGrade     string           `json:"risk_grade"`
	Factors       []engine.Factor  `json:"factors"`
	WatchAgencies []string         `json:"watchAgencies"`
	Freshness     engine.Freshness `json:"freshness"`
}

type Config struct {
	Agencies  []string
	Staleness time.Duration
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Assess produces the deterministic risk profile for a jurisdiction code.
func (s *Service) Assess(ctx context.Context, code string) *Result {
	r := engine.SeededRand("jurisdiction", code)

	factors := []engine.Factor{
		{Name: "corruption", Score: r.RangeN(chCorruption, 0, 100, 2), Weight: 0.30,
			Description: "perceived public-sector corruption"},
		{Name: "enforcement_gaps", Score: r.RangeN(chEnforcement, 0, 100, 2), Weight: 0.25,
			Description: "gaps between regulation on paper and in practice"},
		{Name: "secrecy", Score: r.RangeN(chSecrecy, 0, 100, 2), Weight: 0.25,
			Description: "financial secrecy and beneficial-ownership opacity"},
		{Name: "sanctions_alignment", Score: r.RangeN(chSanctions, 0, 100, 2), Weight: 0.20,
			Description: "divergence from major sanctions regimes"},
	}
	score := engine.Composite(factors, 100)

	agencies := make([]string, 0, 2)
	for i, n := 0, r.Count(chAgencies, 2); i < n; i++ {
		a := r.Pick(chAgencyPick+int64(i), s.cfg.Agencies)
		if len(agencies) > 0 && agencies[len(agencies)-1] == a {
			continue
		}
		agencies = append(agencies, a)
	}

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 90000)) * time.Second)

	return &Result{
		Code:          code,
		RiskScore:     score,
		RiskGrade:     gradeBands.Classify(score),
		Factors:       factors,
		WatchAgencies: agencies,
		Freshness:     engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
