// Package screening scores an entity against synthetic watchlist evidence
// and classifies the composite into an ordinal risk level.
package screening

import "veridical/internal/engine"

// Match is one synthetic watchlist hit.
type Match struct {
	List     string  `json:"list"`
	Strength float64 `json:"strength"`
}

// Result is the full screening payload.
type Result struct {
	EntityID   string           `json:"entityId"`
	RiskScore  float64          `json:"risk_score"`
	RiskLevel  string           `json:"risk_level"`
	Factors    []engine.Factor  `json:"factors"`
	Matches    []Match          `json:"matches"`
	Confidence float64          `json:"confidence"`
	Freshness  engine.Freshness `json:"freshness"`
}
