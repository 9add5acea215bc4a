package engine

import "time"

// isoMillis serializes fetch times as ISO-8601 with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Freshness annotates a payload with how old its underlying data is.
// Derived on every read, never stored.
type Freshness struct {
	Timestamp  string `json:"timestamp"`
	AgeSeconds int64  `json:"age_seconds"`
	Stale      bool   `json:"stale"`
}

// EvaluateFreshness compares a fetch time against the request clock.
// AgeSeconds is floored and never negative, even when clock skew puts
// fetchedAt in the future. Staleness is strict: data exactly at the
// threshold is not stale. The comparison uses the raw duration rather than
// the floored seconds so one extra millisecond past the threshold already
// counts as stale. Timestamp is fetchedAt, not now.
func EvaluateFreshness(fetchedAt, now time.Time, threshold time.Duration) Freshness {
	age := now.Sub(fetchedAt)
	if age < 0 {
		age = 0
	}
	return Freshness{
		Timestamp:  fetchedAt.UTC().Format(isoMillis),
		AgeSeconds: int64(age / time.Second),
		Stale:      age > threshold,
	}
}
