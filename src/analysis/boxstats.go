package analysis

import (
	"errors"
	"math"
	"sort"
)

// ErrNoValues is returned by statistics that need at least one sample.
var ErrNoValues = errors.New("no values")

// Percentile returns the p-th quantile (0..1) of ascending sorted values, interpolating
// linearly between closest ranks at h = (n-1)p.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// BoxStats is a Tukey box summary with 1.5×IQR fences.
type BoxStats struct {
	Min         float64   `json:"min"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	Max         float64   `json:"max"`
	IQR         float64   `json:"iqr"`
	LowerFence  float64   `json:"lower_fence"`
	UpperFence  float64   `json:"upper_fence"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers,omitempty"`
}

// ComputeBoxStats summarizes values. Whiskers reach the most extreme samples inside the fences.
func ComputeBoxStats(values []float64) (BoxStats, error) {
	if len(values) == 0 {
		return BoxStats{}, ErrNoValues
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	b := BoxStats{
		Min:    s[0],
		Max:    s[len(s)-1],
		Q1:     Percentile(s, 0.25),
		Median: Percentile(s, 0.5),
		Q3:     Percentile(s, 0.75),
	}
	b.IQR = b.Q3 - b.Q1
	b.LowerFence = b.Q1 - 1.5*b.IQR
	b.UpperFence = b.Q3 + 1.5*b.IQR
	b.WhiskerLow, b.WhiskerHigh = math.Inf(1), math.Inf(-1)
	for _, v := range s {
		if v < b.LowerFence || v > b.UpperFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.WhiskerLow = math.Min(b.WhiskerLow, v)
		b.WhiskerHigh = math.Max(b.WhiskerHigh, v)
	}
	if math.IsInf(b.WhiskerLow, 1) {
		b.WhiskerLow, b.WhiskerHigh = b.Q1, b.Q3
	}
	return b, nil
}
