// Package supplier scores supplier performance from synthesized order
// history and classifies it into a letter grade.
package supplier

import (
	"context"
	"time"

	"veridical/internal/engine"
	"veridical/pkg/requestcontext"
)

var (
	chTotal      = engine.Channel("supplier.total_orders")
	chFulfilled  = engine.Channel("supplier.fulfilled_orders")
	chOnTime     = engine.Channel("supplier.on_time_orders")
	chDefect     = engine.Channel("supplier.defect_rate")
	chAlerts     = engine.Channel("supplier.open_alerts")
	chLeadTime   = engine.Channel("supplier.lead_time")
	chFetchedAge = engine.Channel("supplier.fetched_age")
)

// Grades are boundary-inclusive: exactly 90 is an A.
var gradeBands = engine.Bands{
	{Min: 90, Label: "A"},
	{Min: 80, Label: "B"},
	{Min: 65, Label: "C"},
	{Min: 50, Label: "D"},
	{Min: 0, Label: "F"},
}

const leadTimeSpreadDays = 9.0

// Result is the supplier scorecard.
type Result struct {
	SupplierID      string           `json:"supplierId"`
	TotalOrders     int              `json:"total_orders"`
	FulfilledOrders int              `json:"fulfilled_orders"`
	OnTimeOrders    int              `json:"on_time_orders"`
	FillRate        float64          `json:"fill_rate"`
	OnTimeRate      float64          `json:"on_time_rate"`
	DefectRate      float64          `json:"defect_rate"`
	OpenAlerts      int              `json:"open_alerts"`
	Score           float64          `json:"score"`
	Grade           string           `json:"grade"`
	Factors         []engine.Factor  `json:"factors"`
	LeadTimeP50Days float64          `json:"lead_time_p50_days"`
	LeadTimeP95Days float64          `json:"lead_time_p95_days"`
	Confidence      float64          `json:"confidence"`
	Freshness       engine.Freshness `json:"freshness"`
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

// factorsFor builds the fixed-weight factor table from the derived rates.
// Kept separate from synthesis so the scorer is testable against known
// inputs: perfect rates with no alerts must score exactly 100.00.
func factorsFor(fillRate, onTimeRate, defectRate float64, alerts int) []engine.Factor {
	alertScore := engine.Clamp(100-25*float64(alerts), 0, 100)
	return []engine.Factor{
		{Name: "fill_rate", Score: engine.Round2(fillRate * 100), Weight: 0.35,
			Description: "orders fulfilled out of orders placed"},
		{Name: "on_time_rate", Score: engine.Round2(onTimeRate * 100), Weight: 0.30,
			Description: "fulfilled orders delivered on schedule"},
		{Name: "quality", Score: engine.Round2((1 - defectRate) * 100), Weight: 0.25,
			Description: "inverse of the reported defect rate"},
		{Name: "alerts", Score: alertScore, Weight: 0.10,
			Description: "open performance alerts against the supplier"},
	}
}

// Score builds the deterministic scorecard for supplierID.
func (s *Service) Score(ctx context.Context, supplierID string) *Result {
	r := engine.SeededRand("supplier", supplierID)

	// Dependent counts are capped, never re-drawn: fulfilled <= total and
	// on-time <= fulfilled for every supplier.
	total := r.Int(chTotal, 40, 4000)
	fulfilled := engine.CapInt(r.Int(chFulfilled, total*7/10, total), total)
	onTime := engine.CapInt(r.Int(chOnTime, fulfilled*6/10, fulfilled), fulfilled)

	fillRate := engine.Round(float64(fulfilled)/float64(total), 4)
	onTimeRate := 0.0
	if fulfilled > 0 {
		onTimeRate = engine.Round(float64(onTime)/float64(fulfilled), 4)
	}
	defectRate := r.RangeN(chDefect, 0, 0.08, 4)
	alerts := r.Count(chAlerts, 4)

	factors := factorsFor(fillRate, onTimeRate, defectRate, alerts)
	score := engine.Composite(factors, 100)
	confidence := engine.Confidence(total, s.cfg.ReferenceVolume)

	p50 := r.RangeN(chLeadTime, 2, 28, 1)
	_, p95 := engine.Interval(p50, leadTimeSpreadDays, confidence, 1, 60)

	now := requestcontext.Now(ctx)
	fetchedAt := now.Add(-time.Duration(r.Int(chFetchedAge, 0, 30000)) * time.Second)

	return &Result{
		SupplierID:      supplierID,
		TotalOrders:     total,
		FulfilledOrders: fulfilled,
		OnTimeOrders:    onTime,
		FillRate:        fillRate,
		OnTimeRate:      onTimeRate,
		DefectRate:      defectRate,
		OpenAlerts:      alerts,
		Score:           score,
		Grade:           gradeBands.Classify(score),
		Factors:         factors,
		LeadTimeP50Days: p50,
		LeadTimeP95Days: p95,
		Confidence:      confidence,
		Freshness:       engine.EvaluateFreshness(fetchedAt, now, s.cfg.Staleness),
	}
}
