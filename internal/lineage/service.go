// Package lineage traces a dataset's provenance backward through its
// declared sources. The declared-source registry itself is synthesized
// deterministically per dataset, then walked with the engine's bounded
// traversal.
package lineage

import (
	"context"
	"fmt"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chSourceCount  = engine.Channel("lineage.source_count")
	chSourceID     = engine.Channel("lineage.source_id")
	chParentRoll   = engine.Channel("lineage.parent_roll")
	chParentID     = engine.Channel("lineage.parent_id")
	chCompleteness = engine.Channel("lineage.completeness")
	chAccuracy     = engine.Channel("lineage.accuracy")
	chFetchedAge   = engine.Channel("lineage.fetched_age")
)

// parentChance is the share of sources that declare an upstream dataset.
const parentChance = 0.45

// NodeQuality carries the per-node data-quality fields layered on top of the
// engine's structural node.
type NodeQuality struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	Depth        int     `json:"depth"`
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
}

type Result struct {
	DatasetID  string           `json:"datasetId"`
	Nodes      []NodeQuality    `json:"nodes"`
	Edges      []engine.Edge    `json:"edges"`
	Coverage   float64          `json:"coverage"`
	Confidence float64          `json:"confidence"`
	Freshness  engine.Freshness `json:"freshness"`
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

// declarationsFor synthesizes the declared-source registry reachable from
// root: each dataset declares 1-3 sources, and some sources point at an
// upstream parent dataset which declares its own sources in turn. Parent ids
// are drawn from a small space on purpose so revisits and the occasional
// loop exercise the traversal's visited set.
func declarationsFor(root string, depth int) engine.Declarations {
	decls := engine.Declarations{}
	frontier := []string{root}
	for level := 0; level <= depth && len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			if _, done := decls[id]; done {
				continue
			}
			r := engine.SeededRand("lineage", id)
			count := 1 + r.Count(chSourceCount, 2)
			sources := make([]engine.SourceDecl, 0, count)
			for i := 0; i < count; i++ {
				off := int64(i)
				src := engine.SourceDecl{
					ID: fmt.Sprintf("src_%05x", int(r.Float(chSourceID+off)*0xfffff)),
				}
				if r.Float(chParentRoll+off) < parentChance {
					src.Parent = fmt.Sprintf("ds_%03x", int(r.Float(chParentID+off)*0xfff))
					next = append(next, src.Parent)
				}
				sources = append(sources, src)
			}
			decls[id] = sources
		}
		frontier = next
	}
	return decls
}

// Trace walks the synthesized registry backward from datasetID.
func (s *Service) Trace(ctx context.Context, datasetID string, depth int) *Result {
	g := engine.TraceLineage(datasetID, depth, declarationsFor(datasetID, depth))

	nodes := make([]NodeQuality, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		qr := engine.SeededRand("lineage.quality", n.ID)
		nodes = append(nodes, NodeQuality{
			ID:           n.ID,
			Kind:         n.Kind,
			Depth:        n.Depth,
			Completeness: qr.RangeN(chCompleteness, 0.5, 1, 4),
			Accuracy:     qr.RangeN(chAccuracy, 0.5, 1, 4),
		})
	}

	// Coverage: share of traced sources against the reference source count.
	sourceCount := 0
	for _, n := range g.Nodes {
		if n.Kind == "source" {
			sourceCount++
		}
	}
	coverage := engine.Clamp(engine.Round2(float64(sourceCount)/float64(s.cfg.ReferenceVolume)*10), 0, 1)

	r := engine.SeededRand("lineage.meta", datasetID)
	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 50000)) * time.Second)

	return &Result{
		DatasetID:  datasetID,
		Nodes:      nodes,
		Edges:      g.Edges,
		Coverage:   coverage,
		Confidence: engine.Confidence(sourceCount, s.cfg.ReferenceVolume),
		Freshness:  engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
