package exposure

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chFetchedAge = engine.Channel("exposure.fetched_age")
)

var exposureBands = engine.Bands{
	{Min: 75, Label: "severe"},
	{Min: 50, Label: "elevated"},
	{Min: 20, Label: "moderate"},
	{Min: 0, Label: "minimal"},
}

// Hop contributions decay by hop distance when aggregating.
const maxBranch = 3

// Config fixes the chain pools and freshness tuning.
type Config struct {
	Relations       []string
	EntityKinds     []string
	Staleness       time.Duration
	ReferenceVolume int
}

// Service synthesizes exposure chains.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Trace expands the chain for address. threshold == 0 returns the full
// unfiltered graph; maxHops has been validated by the handler.
func (s *Service) Trace(ctx context.Context, address string, maxHops int, threshold float64) *Result {
	g := engine.BuildChain(address, engine.ChainSpec{
		MaxDepth:  maxHops,
		MaxBranch: maxBranch,
		Types:     s.cfg.Relations,
		Kinds:     s.cfg.EntityKinds,
		Threshold: threshold,
	})

	// Aggregate edge contributions, discounted by hop distance, onto a
	// 0-100 scale.
	var total float64
	for _, e := range g.Edges {
		total += e.Weight / float64(e.Hop)
	}
	score := engine.Clamp(engine.Round2(total*30), 0, 100)

	r := engine.SeededRand("exposure", address)
	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 2400)) * time.Second)

	return &Result{
		Address:       address,
		Nodes:         g.Nodes,
		Edges:         g.Edges,
		ExposureScore: score,
		ExposureLevel: exposureBands.Classify(score),
		Confidence:    engine.Confidence(len(g.Edges), s.cfg.ReferenceVolume),
		Freshness:     engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
