// Package scoring holds the weighted-average primitives shared by the intelligence engines.
package scoring

import (
	"math"
	"sort"
	"time"
)

// ComponentSignal is one weighted input to a composite score.
type ComponentSignal struct {
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

// Composite returns round(sum(score*weight) / sum(weight)).
// An empty list, or one whose weights do not sum to a positive value, scores 0.
func Composite(components []ComponentSignal) int {
	var weighted, total float64
	for _, c := range components {
		weighted += float64(c.Score) * c.Weight
		total += c.Weight
	}
	if total <= 0 {
		return 0
	}
	return Round(weighted / total)
}

// WeightedSum combines scores against a fixed weight table whose weights sum to 1.
// Scores without a matching weight are ignored.
func WeightedSum(scores map[string]int, weights map[string]float64) int {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	// Sum in key order so the rounded result is deterministic.
	sort.Strings(names)

	var sum float64
	for _, name := range names {
		sum += float64(scores[name]) * weights[name]
	}
	return Round(sum)
}

// Round rounds half away from zero.
func Round(f float64) int {
	return int(math.Round(f))
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WithinDays reports whether t falls inside the trailing window of days ending at now.
// The window start is inclusive.
func WithinDays(t time.Time, days int, now time.Time) bool {
	return !t.Before(now.Add(-time.Duration(days) * 24 * time.Hour))
}
