// Package regdelta tracks synthesized regulatory changes for a jurisdiction
// since the last observation window.
package regdelta

import (
	"context"
	"fmt"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chChangeCount = engine.Channel("regdelta.change_count")
	chAgency      = engine.Channel("regdelta.agency")
	chSeverity    = engine.Channel("regdelta.severity")
	chReference   = engine.Channel("regdelta.reference")
	chEffective   = engine.Channel("regdelta.effective")
	chFetchedAge  = engine.Channel("regdelta.fetched_age")
)

// Fixed calendar window for effective dates. Boundary instants are part of
// the response contract.
var (
	windowStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC)
)

var severityWeight = map[string]float64{
	"advisory": 5,
	"minor":    12,
	"material": 25,
	"severe":   40,
}

var deltaBands = engine.Bands{
	{Min: 70, Label: "disruptive"},
	{Min: 40, Label: "significant"},
	{Min: 15, Label: "routine"},
	{Min: 0, Label: "quiet"},
}

// Change is one synthesized regulatory event.
type Change struct {
	Reference string `json:"reference"`
	Agency    string `json:"agency"`
	Severity  string `json:"severity"`
	Effective string `json:"effective"`
}

type Result struct {
	Code       string           `json:"code"`
	Changes    []Change         `json:"changes"`
	DeltaScore float64          `json:"delta_score"`
	DeltaLevel string           `json:"delta_level"`
	Freshness  engine.Freshness `json:"freshness"`
}

type Config struct {
	Agencies   []string
	Severities []string
	Staleness  time.Duration
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Delta synthesizes the recent regulatory changes for a jurisdiction code.
func (s *Service) Delta(ctx context.Context, code string) *Result {
	r := engine.SeededRand("regdelta", code)

	count := r.Count(chChangeCount, 5)
	changes := make([]Change, 0, count)
	var total float64
	for i := 0; i < count; i++ {
		off := int64(i)
		severity := r.Pick(chSeverity+off, s.cfg.Severities)
		total += severityWeight[severity]
		changes = append(changes, Change{
			Reference: fmt.Sprintf("RD-%05d", r.Int(chReference+off, 1, 99999)),
			Agency:    r.Pick(chAgency+off, s.cfg.Agencies),
			Severity:  severity,
			Effective: r.DateIn(chEffective+off, windowStart, windowEnd).Format(time.RFC3339),
		})
	}
	score := engine.Clamp(engine.Round2(total), 0, 100)

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 1500)) * time.Second)

	return &Result{
		Code:       code,
		Changes:    changes,
		DeltaScore: score,
		DeltaLevel: deltaBands.Classify(score),
		Freshness:  engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
