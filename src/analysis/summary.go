package analysis

import (
	"math"
	"time"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// TrendDegree is the polynomial degree of the temperature trend line.
const TrendDegree = 2

// TopN is how many busiest and quietest days are listed.
const TopN = 5

// DaySummary is a compact row for the busiest/quietest listings.
type DaySummary struct {
	Date  string `json:"date"`
	Count int    `json:"cnt"`
}

// Summary bundles every aggregate the dashboard shows, for machine-readable reports.
type Summary struct {
	Range        string            `json:"range"`
	Days         int               `json:"days"`
	TotalRentals int               `json:"total_rentals"`
	MeanDaily    float64           `json:"mean_daily"`
	OverallMean  float64           `json:"overall_mean"`
	DeltaPct     float64           `json:"delta_vs_overall_pct"`
	DayTypes     DayTypeMeans      `json:"day_types"`
	Busiest      []DaySummary      `json:"busiest"`
	Quietest     []DaySummary      `json:"quietest"`
	Seasons      []GroupStat       `json:"seasons"`
	Weather      []GroupStat       `json:"weather"`
	Temperature  []Bucket          `json:"temperature_buckets"`
	TempTrend    *PolyFitResult    `json:"temp_trend,omitempty"`
	HumTrend     *PolyFitResult    `json:"humidity_trend,omitempty"`
	HumidityBox  *BoxStats         `json:"humidity_box,omitempty"`
	Hourly       []HourStat        `json:"hourly"`
	PeakHours    []int             `json:"peak_hours"`
	Correlation  CorrelationMatrix `json:"correlation"`
}

func toDaySummaries(days []dataset.DailyRecord) []DaySummary {
	out := make([]DaySummary, len(days))
	for i, d := range days {
		out[i] = DaySummary{Date: d.DateString(), Count: d.Count}
	}
	return out
}

// Temps returns the normalized temperature column.
func Temps(days []dataset.DailyRecord) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Temp
	}
	return out
}

// Humidities returns the normalized humidity column.
func Humidities(days []dataset.DailyRecord) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Humidity
	}
	return out
}

// Counts returns the cnt column.
func Counts(days []dataset.DailyRecord) []float64 { return counts(days, nil) }

// CompareToOverall returns the percentage difference between the range mean and the overall mean.
func CompareToOverall(rangeMean, overallMean float64) float64 {
	if overallMean <= 0 {
		return 0
	}
	d := (rangeMean - overallMean) / overallMean * 100
	if math.IsNaN(d) {
		return 0
	}
	return d
}

// Summarize computes the full aggregate set. Range-filtered figures use r; the static
// sections use the whole dataset. An incomplete r summarizes the full bounds.
func Summarize(ds *dataset.Dataset, r dataset.DateRange) (Summary, error) {
	defer logging.TimeTrack(time.Now(), "summarize")
	if !r.Complete() {
		r = ds.Bounds()
	}
	filtered, err := ds.Filter(r)
	if err != nil {
		return Summary{}, err
	}
	all := ds.Days
	s := Summary{
		Range:       r.String(),
		Days:        len(filtered),
		DayTypes:    DayTypeAverages(all),
		Seasons:     SeasonStats(all),
		Weather:     WeatherStats(all),
		Temperature: TemperatureBuckets(all),
		Hourly:      HourlyMeans(ds.Hours),
		Correlation: DailyCorrelation(all),
	}
	fc := Counts(filtered)
	s.TotalRentals = int(sum(fc))
	s.MeanDaily = mean(fc)
	s.OverallMean = mean(Counts(all))
	s.DeltaPct = CompareToOverall(s.MeanDaily, s.OverallMean)
	top, bottom := TopBottom(all, TopN)
	s.Busiest, s.Quietest = toDaySummaries(top), toDaySummaries(bottom)
	s.PeakHours = PeakHours(s.Hourly, 2)

	cnt := Counts(all)
	if fit, err := PolyFit(Temps(all), cnt, TrendDegree); err == nil {
		s.TempTrend = &fit
	} else {
		logging.Warnf("temperature trend unavailable: %v", err)
	}
	hums := Humidities(all)
	if fit, err := PolyFit(hums, cnt, TrendDegree); err == nil {
		s.HumTrend = &fit
	} else {
		logging.Warnf("humidity trend unavailable: %v", err)
	}
	if box, err := ComputeBoxStats(hums); err == nil {
		s.HumidityBox = &box
	}
	return s, nil
}
