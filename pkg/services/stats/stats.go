// Package stats provides the small set of robust statistics the detectors
// are built on. All functions are pure; an empty input yields zero.
package stats

import (
	"math"
	"sort"
)

// Median returns the middle value of the input (mean of the two middle
// values for even-length inputs). The input slice is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Variance returns the population variance.
func Variance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(n)
}

// MAD returns the median absolute deviation around the median, a dispersion
// measure that resists the very outliers the anomaly detector looks for.
func MAD(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	median := Median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - median)
	}
	return Median(deviations)
}

// RobustZScore approximates a standard z-score using median and MAD.
// The 0.6745 factor makes it comparable to a classic z-score under
// normality. Callers must guard mad == 0 themselves.
func RobustZScore(value, median, mad float64) float64 {
	return 0.6745 * (value - median) / mad
}
