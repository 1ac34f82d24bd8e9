// Package analysis computes the descriptive aggregates behind every dashboard chart.
// All functions are pure: they read record slices and never mutate them.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// Aggregation selects how grouped counts are reduced.
type Aggregation string

const (
	AggMean Aggregation = "mean"
	AggSum  Aggregation = "sum"
)

// ParseAggregation maps user input to an Aggregation, defaulting to mean.
func ParseAggregation(s string) Aggregation {
	if Aggregation(s) == AggSum {
		return AggSum
	}
	return AggMean
}

func counts(days []dataset.DailyRecord, keep func(dataset.DailyRecord) bool) []float64 {
	out := make([]float64, 0, len(days))
	for _, d := range days {
		if keep == nil || keep(d) {
			out = append(out, float64(d.Count))
		}
	}
	return out
}

// mean returns 0 for an empty set so bars degrade to empty rather than NaN.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// DayTypeMeans are mean daily counts for three overlapping day predicates.
// A holiday that is also a weekend counts toward both means.
type DayTypeMeans struct {
	Holiday     float64 `json:"holiday"`
	Weekend     float64 `json:"weekend"`
	Workday     float64 `json:"workday"`
	HolidayDays int     `json:"holiday_days"`
	WeekendDays int     `json:"weekend_days"`
	WorkdayDays int     `json:"workday_days"`
}

// DayTypeAverages computes holiday (holiday==1), weekend (weekday 0 or 6) and
// workday (workingday==1) means independently.
func DayTypeAverages(days []dataset.DailyRecord) DayTypeMeans {
	h := counts(days, func(d dataset.DailyRecord) bool { return d.Holiday })
	we := counts(days, dataset.DailyRecord.IsWeekend)
	wd := counts(days, func(d dataset.DailyRecord) bool { return d.WorkingDay })
	return DayTypeMeans{
		Holiday: mean(h), Weekend: mean(we), Workday: mean(wd),
		HolidayDays: len(h), WeekendDays: len(we), WorkdayDays: len(wd),
	}
}

// SortByCountDesc returns a copy ordered by cnt, highest first; ties keep date order.
func SortByCountDesc(days []dataset.DailyRecord) []dataset.DailyRecord {
	cp := append([]dataset.DailyRecord(nil), days...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Count > cp[j].Count })
	return cp
}

// TopBottom returns the head(n) and tail(n) of the descending sort. The bottom slice keeps
// descending order, so its last element is the quietest day.
func TopBottom(days []dataset.DailyRecord, n int) (top, bottom []dataset.DailyRecord) {
	sorted := SortByCountDesc(days)
	if n > len(sorted) {
		n = len(sorted)
	}
	if n <= 0 {
		return nil, nil
	}
	return sorted[:n], sorted[len(sorted)-n:]
}

// GroupStat is one category of a grouped aggregation.
type GroupStat struct {
	Key   int     `json:"key"`
	Label string  `json:"label"`
	Days  int     `json:"days"`
	Mean  float64 `json:"mean"`
	Sum   float64 `json:"sum"`
}

// Value picks the mean or sum.
func (g GroupStat) Value(agg Aggregation) float64 {
	if agg == AggSum {
		return g.Sum
	}
	return g.Mean
}

func groupBy(days []dataset.DailyRecord, key func(dataset.DailyRecord) int, label func(int) string) []GroupStat {
	groups := map[int][]float64{}
	for _, d := range days {
		k := key(d)
		groups[k] = append(groups[k], float64(d.Count))
	}
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]GroupStat, 0, len(keys))
	for _, k := range keys {
		v := groups[k]
		out = append(out, GroupStat{Key: k, Label: label(k), Days: len(v), Mean: mean(v), Sum: sum(v)})
	}
	return out
}

// SeasonStats groups cnt by season, ordered by season code.
func SeasonStats(days []dataset.DailyRecord) []GroupStat {
	return groupBy(days,
		func(d dataset.DailyRecord) int { return int(d.Season) },
		func(k int) string { return dataset.Season(k).String() })
}

// WeatherStats groups cnt by weathersit, ordered by code. Codes absent from the data are omitted.
func WeatherStats(days []dataset.DailyRecord) []GroupStat {
	return groupBy(days,
		func(d dataset.DailyRecord) int { return int(d.Weather) },
		func(k int) string { return dataset.Weather(k).String() })
}

// HourStat is the mean count for one hour of day across all days.
type HourStat struct {
	Hour  int     `json:"hour"`
	Rows  int     `json:"rows"`
	Mean  float64 `json:"mean"`
	Total float64 `json:"total"`
}

// HourlyMeans returns 24 entries (hours 0..23); hours without rows have Rows == 0.
func HourlyMeans(hours []dataset.HourlyRecord) []HourStat {
	buckets := make([][]float64, 24)
	for _, h := range hours {
		if h.Hour < 0 || h.Hour > 23 {
			continue
		}
		buckets[h.Hour] = append(buckets[h.Hour], float64(h.Count))
	}
	out := make([]HourStat, 24)
	for hr, v := range buckets {
		out[hr] = HourStat{Hour: hr, Rows: len(v), Mean: mean(v), Total: sum(v)}
	}
	return out
}

// PeakHours returns the n hours with the highest mean count, highest first.
func PeakHours(stats []HourStat, n int) []int {
	cp := make([]HourStat, 0, len(stats))
	for _, s := range stats {
		if s.Rows > 0 {
			cp = append(cp, s)
		}
	}
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Mean > cp[j].Mean })
	if n > len(cp) {
		n = len(cp)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = cp[i].Hour
	}
	return out
}
