// Package exposure traces multi-hop exposure chains from an address and
// scores the aggregate exposure they represent.
package exposure

import "veridical/internal/engine"

// Result carries the synthesized chain plus its aggregate scoring. Graph
// structure stays camelCase; computed metrics are snake_case.
type Result struct {
	Address       string           `json:"address"`
	Nodes         []engine.Node    `json:"nodes"`
	Edges         []engine.Edge    `json:"edges"`
	ExposureScore float64          `json:"exposure_score"`
	ExposureLevel string           `json:"exposure_level"`
	Confidence    float64          `json:"confidence"`
	Freshness     engine.Freshness `json:"freshness"`
}
