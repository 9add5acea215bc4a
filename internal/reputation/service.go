// Package reputation scores an identity handle from its synthesized activity
// profile.
package reputation

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chFirstSeen   = engine.Channel("reputation.first_seen")
	chLastActive  = engine.Channel("reputation.last_active")
	chMentions    = engine.Channel("reputation.mentions")
	chDisputes    = engine.Channel("reputation.disputes")
	chCorroborate = engine.Channel("reputation.corroborations")
	chHistory     = engine.Channel("reputation.history_depth")
	chConsistency = engine.Channel("reputation.consistency")
	chStanding    = engine.Channel("reputation.standing")
	chFetchedAge  = engine.Channel("reputation.fetched_age")
)

// Fixed profile window. last_active interpolates from first_seen, never
// independently, so first_seen <= last_active always holds.
var (
	profileStart = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	profileEnd   = time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
)

var tierBands = engine.Bands{
	{Min: 85, Label: "trusted"},
	{Min: 60, Label: "established"},
	{Min: 30, Label: "emerging"},
	{Min: 0, Label: "unproven"},
}

type Result struct {
	Handle         string           `json:"handle"`
	FirstSeen      string           `json:"first_seen"`
	LastActive     string           `json:"last_active"`
	Mentions       int              `json:"mentions"`
	Corroborations int              `json:"corroborations"`
	Disputes       int              `json:"disputes"`
	Score          float64          `json:"score"`
	Tier           string           `json:"tier"`
	Factors        []engine.Factor  `json:"factors"`
	Confidence     float64          `json:"confidence"`
	Freshness      engine.Freshness `json:"freshness"`
}

type Config struct {
	Staleness       time.Duration
	ReferenceVolume int
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Profile builds the deterministic reputation profile for handle.
func (s *Service) Profile(ctx context.Context, handle string) *Result {
	r := engine.SeededRand("reputation", handle)

	firstSeen := r.DateIn(chFirstSeen, profileStart, profileEnd)
	lastActive := r.DateIn(chLastActive, firstSeen, profileEnd)

	mentions := r.Int(chMentions, 0, 2000)
	corroborations := engine.CapInt(r.Int(chCorroborate, 0, mentions), mentions)
	disputes := engine.CapInt(r.Int(chDisputes, 0, mentions/4+1), mentions)

	factors := []engine.Factor{
		{Name: "history_depth", Score: r.RangeN(chHistory, 0, 100, 2), Weight: 0.25,
			Description: "length and continuity of the observed history"},
		{Name: "consistency", Score: r.RangeN(chConsistency, 0, 100, 2), Weight: 0.35,
			Description: "agreement between independent observations"},
		{Name: "standing", Score: r.RangeN(chStanding, 0, 100, 2), Weight: 0.40,
			Description: "standing net of disputes and corroborations"},
	}
	score := engine.Composite(factors, 100)

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 10000)) * time.Second)

	return &Result{
		Handle:         handle,
		FirstSeen:      firstSeen.UTC().Format(time.RFC3339),
		LastActive:     lastActive.UTC().Format(time.RFC3339),
		Mentions:       mentions,
		Corroborations: corroborations,
		Disputes:       disputes,
		Score:          score,
		Tier:           tierBands.Classify(score),
		Factors:        factors,
		Confidence:     engine.Confidence(mentions, s.cfg.ReferenceVolume),
		Freshness:      engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
