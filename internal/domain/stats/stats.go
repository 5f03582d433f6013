// Package stats computes descriptive statistics over score samples.
// One reusable routine (Describe) serves every analysis dimension:
// overall, per-semester, per-subject, and per-section slices all reduce
// to "collect samples, describe them".
package stats

import (
	"math"
	"sort"
)

// Summary holds the five descriptive statistics for one sample slice.
// The zero value (Count == 0) represents "no data" and is distinct from
// a cohort of all-zero scores.
type Summary struct {
	// Count is the number of samples. 0 means no data.
	Count int

	// Mean is the arithmetic mean.
	Mean float64

	// Median uses the midpoint-average rule for even counts.
	Median float64

	// StdDev is the population standard deviation (divide by N).
	// Defined as 0 when Count <= 1.
	StdDev float64

	// Min is the smallest sample.
	Min float64

	// Max is the largest sample.
	Max float64
}

// IsEmpty reports whether the summary was computed from no samples.
func (s Summary) IsEmpty() bool {
	return s.Count == 0
}

// Range returns the spread between the largest and smallest sample.
func (s Summary) Range() float64 {
	return s.Max - s.Min
}

// Describe computes the Summary of values. An empty slice yields the
// zero Summary rather than an error, with Count recording 0 explicitly.
// The input slice is not modified.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	mean := total / float64(n)

	var variance float64
	if n > 1 {
		for _, v := range sorted {
			d := v - mean
			variance += d * d
		}
		variance /= float64(n)
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		Median: median(sorted),
		StdDev: math.Sqrt(variance),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
