package analysis

import "github.com/iafilius/BikeSharingDashboard/src/dataset"

// TempCutPoints are the normalized temperature bin edges: 0, 20°C, 25°C and 41°C (the max) over 41.
var TempCutPoints = []float64{0, 20.0 / 41, 25.0 / 41, 1.0}

// TempBucketLabels name the three temperature bins.
var TempBucketLabels = []string{"Low", "Comfortable", "High"}

// Bucket is one bin of the temperature grouping.
type Bucket struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Days  int     `json:"days"`
	Mean  float64 `json:"mean"`
}

// TemperatureBucket returns the bin index for v. Bins are right-closed and the lowest edge
// is excluded: (0, 20/41], (20/41, 25/41], (25/41, 1]. ok is false outside every bin.
func TemperatureBucket(v float64) (idx int, ok bool) {
	for i := 1; i < len(TempCutPoints); i++ {
		if v > TempCutPoints[i-1] && v <= TempCutPoints[i] {
			return i - 1, true
		}
	}
	return -1, false
}

// TemperatureBuckets computes the mean cnt per temperature bin. Empty bins report zero.
func TemperatureBuckets(days []dataset.DailyRecord) []Bucket {
	vals := make([][]float64, len(TempBucketLabels))
	for _, d := range days {
		if i, ok := TemperatureBucket(d.Temp); ok {
			vals[i] = append(vals[i], float64(d.Count))
		}
	}
	out := make([]Bucket, len(TempBucketLabels))
	for i := range out {
		out[i] = Bucket{
			Label: TempBucketLabels[i],
			Lower: TempCutPoints[i],
			Upper: TempCutPoints[i+1],
			Days:  len(vals[i]),
			Mean:  mean(vals[i]),
		}
	}
	return out
}
