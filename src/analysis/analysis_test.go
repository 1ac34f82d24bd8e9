package analysis

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/dataset/datasettest"
)

func day(i int, cnt int) dataset.DailyRecord {
	return dataset.DailyRecord{
		Instant: i + 1,
		Date:    datasettest.Start.AddDate(0, 0, i),
		Weekday: 2,
		Count:   cnt,
	}
}

// tenDays: row 0 is a Sunday holiday, rows 1-2 are weekend, rows 3-9 are working days.
func tenDays() []dataset.DailyRecord {
	var out []dataset.DailyRecord
	for i := 0; i < 10; i++ {
		d := day(i, 100*(i+1))
		switch {
		case i == 0:
			d.Holiday, d.Weekday = true, 0
		case i == 1:
			d.Weekday = 6
		case i == 2:
			d.Weekday = 0
		default:
			d.WorkingDay = true
		}
		out = append(out, d)
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDayTypeAverages_OverlappingBuckets(t *testing.T) {
	m := DayTypeAverages(tenDays())
	if m.Holiday != 100 || m.HolidayDays != 1 {
		t.Fatalf("holiday mean: got %v over %d days", m.Holiday, m.HolidayDays)
	}
	if m.Weekend != 200 || m.WeekendDays != 3 {
		t.Fatalf("weekend mean should include the Sunday holiday: got %v over %d", m.Weekend, m.WeekendDays)
	}
	if m.Workday != 700 || m.WorkdayDays != 7 {
		t.Fatalf("workday mean: got %v over %d", m.Workday, m.WorkdayDays)
	}
}

func TestDayTypeAverages_EmptyIsZero(t *testing.T) {
	m := DayTypeAverages(nil)
	if m.Holiday != 0 || m.Weekend != 0 || m.Workday != 0 {
		t.Fatalf("expected zero means, got %+v", m)
	}
}

func TestTopBottom_DisjointAndOrdered(t *testing.T) {
	top, bottom := TopBottom(tenDays(), 5)
	if len(top) != 5 || len(bottom) != 5 {
		t.Fatalf("expected 5/5, got %d/%d", len(top), len(bottom))
	}
	if top[0].Count != 1000 || top[4].Count != 600 {
		t.Fatalf("unexpected top: %d..%d", top[0].Count, top[4].Count)
	}
	if bottom[0].Count != 500 || bottom[4].Count != 100 {
		t.Fatalf("unexpected bottom: %d..%d", bottom[0].Count, bottom[4].Count)
	}
	seen := map[int]bool{}
	for _, d := range top {
		seen[d.Instant] = true
	}
	for _, d := range bottom {
		if seen[d.Instant] {
			t.Fatalf("row %d appears in both lists", d.Instant)
		}
	}
}

func TestTopBottom_TiesKeepDateOrder(t *testing.T) {
	days := []dataset.DailyRecord{day(0, 50), day(1, 80), day(2, 50), day(3, 80)}
	top, _ := TopBottom(days, 2)
	if top[0].Instant != 2 || top[1].Instant != 4 {
		t.Fatalf("stable order expected, got %d,%d", top[0].Instant, top[1].Instant)
	}
	top, bottom := TopBottom(days[:1], 5)
	if len(top) != 1 || len(bottom) != 1 {
		t.Fatalf("short input should clamp n, got %d/%d", len(top), len(bottom))
	}
}

func TestSeasonAndWeatherStats(t *testing.T) {
	days := []dataset.DailyRecord{day(0, 100), day(1, 300), day(2, 50)}
	days[0].Season, days[1].Season, days[2].Season = dataset.SeasonFall, dataset.SeasonSpring, dataset.SeasonFall
	days[0].Weather, days[1].Weather, days[2].Weather = dataset.WeatherLightSnowRain, dataset.WeatherClear, dataset.WeatherClear

	seasons := SeasonStats(days)
	if len(seasons) != 2 || seasons[0].Label != "Spring" || seasons[1].Label != "Fall" {
		t.Fatalf("unexpected seasons: %+v", seasons)
	}
	if seasons[1].Mean != 75 || seasons[1].Sum != 150 {
		t.Fatalf("fall aggregate wrong: %+v", seasons[1])
	}

	weather := WeatherStats(days)
	if len(weather) != 2 {
		t.Fatalf("absent weather codes must be omitted, got %d groups", len(weather))
	}
	if weather[0].Label != "Clear" || weather[0].Value(AggSum) != 350 || weather[0].Value(AggMean) != 175 {
		t.Fatalf("clear aggregate wrong: %+v", weather[0])
	}
	if weather[1].Label != "Light Snow/Rain" {
		t.Fatalf("label mismatch: %q", weather[1].Label)
	}
	if ParseAggregation("sum") != AggSum || ParseAggregation("median") != AggMean {
		t.Fatalf("aggregation parsing")
	}
}

func TestTemperatureBucket_Boundaries(t *testing.T) {
	cases := []struct {
		v    float64
		want int
		ok   bool
	}{
		{0, -1, false},
		{0.01, 0, true},
		{0.4877, 0, true},
		{0.4878, 0, true},
		{20.0 / 41, 0, true},
		{0.4879, 1, true},
		{25.0 / 41, 1, true},
		{0.61, 2, true},
		{1, 2, true},
		{1.01, -1, false},
	}
	for _, c := range cases {
		got, ok := TemperatureBucket(c.v)
		if got != c.want || ok != c.ok {
			t.Fatalf("TemperatureBucket(%v) = %d,%v want %d,%v", c.v, got, ok, c.want, c.ok)
		}
	}
}

func TestTemperatureBuckets_Means(t *testing.T) {
	days := []dataset.DailyRecord{day(0, 100), day(1, 200), day(2, 600), day(3, 999)}
	days[0].Temp, days[1].Temp, days[2].Temp, days[3].Temp = 0.3, 0.45, 0.9, 0
	b := TemperatureBuckets(days)
	if len(b) != 3 {
		t.Fatalf("expected 3 buckets")
	}
	if b[0].Mean != 150 || b[0].Days != 2 {
		t.Fatalf("low bucket: %+v", b[0])
	}
	if b[1].Days != 0 || b[1].Mean != 0 {
		t.Fatalf("empty comfortable bucket should be zero: %+v", b[1])
	}
	if b[2].Mean != 600 {
		t.Fatalf("high bucket: %+v", b[2])
	}
}

func TestPolyFit_RecoversQuadratic(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 10; i++ {
		x := float64(i)
		xs = append(xs, x)
		ys = append(ys, 3*x*x+2*x+1)
	}
	fit, err := PolyFit(xs, ys, 2)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	want := []float64{3, 2, 1}
	for i, c := range fit.Coeffs {
		if math.Abs(c-want[i]) > 1e-6 {
			t.Fatalf("coeff %d: got %v want %v", i, c, want[i])
		}
	}
	if fit.Degree() != 2 || math.Abs(fit.R2-1) > 1e-9 {
		t.Fatalf("degree/R2: %d %v", fit.Degree(), fit.R2)
	}
	if math.Abs(fit.Eval(10)-321) > 1e-6 {
		t.Fatalf("eval(10) = %v", fit.Eval(10))
	}
}

func TestPolyFit_Errors(t *testing.T) {
	if _, err := PolyFit([]float64{1, 2}, []float64{1, 2}, 2); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := PolyFit([]float64{1, 2, 3}, []float64{1, 2}, 1); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestFitCurve_SortedX(t *testing.T) {
	xs := []float64{3, 1, 2, 0}
	ys := []float64{7, 3, 5, 1}
	c, err := FitCurve(xs, ys, 1)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for i := 1; i < len(c.X); i++ {
		if c.X[i] < c.X[i-1] {
			t.Fatalf("curve x not sorted: %v", c.X)
		}
	}
	if math.Abs(c.Y[0]-1) > 1e-9 || math.Abs(c.Y[3]-7) > 1e-9 {
		t.Fatalf("curve y: %v", c.Y)
	}
}

func TestPercentileLinear(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	if got := Percentile(s, 0.5); got != 2.5 {
		t.Fatalf("median of 1..4 = %v", got)
	}
	if got := Percentile(s, 0); got != 1 {
		t.Fatalf("p0 = %v", got)
	}
	if !math.IsNaN(Percentile(nil, 0.5)) {
		t.Fatalf("empty percentile should be NaN")
	}
}

func TestComputeBoxStats_Outlier(t *testing.T) {
	vals := []float64{100, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b, err := ComputeBoxStats(vals)
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	if b.Q1 != 3.5 || b.Q3 != 8.5 || b.IQR != 5 || b.Median != 6 {
		t.Fatalf("quartiles: %+v", b)
	}
	if b.LowerFence != -4 || b.UpperFence != 16 {
		t.Fatalf("fences: %v %v", b.LowerFence, b.UpperFence)
	}
	if len(b.Outliers) != 1 || b.Outliers[0] != 100 {
		t.Fatalf("outliers: %v", b.Outliers)
	}
	if b.WhiskerLow != 1 || b.WhiskerHigh != 10 {
		t.Fatalf("whiskers: %v %v", b.WhiskerLow, b.WhiskerHigh)
	}
	if vals[0] != 100 {
		t.Fatalf("input must not be reordered")
	}
	if _, err := ComputeBoxStats(nil); !errors.Is(err, ErrNoValues) {
		t.Fatalf("expected ErrNoValues, got %v", err)
	}
}

func TestTickIndices(t *testing.T) {
	if s := TickStep(45, MaxDateTicks); s != 2 {
		t.Fatalf("step for 45 = %d", s)
	}
	idx := TickIndices(45, MaxDateTicks)
	if len(idx) != 23 || idx[0] != 0 || idx[22] != 44 {
		t.Fatalf("indices for 45: len=%d %v", len(idx), idx)
	}
	if s := TickStep(10, MaxDateTicks); s != 1 {
		t.Fatalf("step for 10 = %d", s)
	}
	if s := TickStep(731, MaxDateTicks); s != 36 {
		t.Fatalf("step for 731 = %d", s)
	}
	if TickIndices(0, MaxDateTicks) != nil {
		t.Fatalf("no ticks for empty input")
	}
}

func TestHourlyMeansAndPeaks(t *testing.T) {
	base := day(0, 0)
	hours := []dataset.HourlyRecord{
		{DailyRecord: base, Hour: 8}, {DailyRecord: base, Hour: 8}, {DailyRecord: base, Hour: 17}, {DailyRecord: base, Hour: 3},
	}
	hours[0].Count, hours[1].Count, hours[2].Count, hours[3].Count = 10, 20, 30, 1
	stats := HourlyMeans(hours)
	if len(stats) != 24 {
		t.Fatalf("expected 24 hours, got %d", len(stats))
	}
	if stats[8].Mean != 15 || stats[8].Rows != 2 || stats[8].Total != 30 {
		t.Fatalf("hour 8: %+v", stats[8])
	}
	if stats[0].Rows != 0 || stats[0].Mean != 0 {
		t.Fatalf("hour 0 should be empty: %+v", stats[0])
	}
	peaks := PeakHours(stats, 2)
	if len(peaks) != 2 || peaks[0] != 17 || peaks[1] != 8 {
		t.Fatalf("peaks: %v", peaks)
	}
}

func TestDailyCorrelation(t *testing.T) {
	m := DailyCorrelation(datasettest.Days(60))
	if len(m.Names) != len(CorrelationColumns) || len(m.Values) != len(CorrelationColumns) {
		t.Fatalf("matrix shape")
	}
	r, ok := m.At("temp", "atemp")
	if !ok || r < 0.999 {
		t.Fatalf("temp/atemp correlation: %v %v", r, ok)
	}
	if d, _ := m.At("cnt", "cnt"); !near(d, 1) {
		t.Fatalf("diagonal: %v", d)
	}
	a, _ := m.At("cnt", "temp")
	b, _ := m.At("temp", "cnt")
	if a != b || a <= 0 {
		t.Fatalf("cnt/temp should be symmetric and positive: %v %v", a, b)
	}
	// yr is constant inside the first year
	if y, _ := m.At("yr", "cnt"); !math.IsNaN(y) {
		t.Fatalf("constant column should yield NaN, got %v", y)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), "null") {
		t.Fatalf("NaN should encode as null")
	}
	if _, ok := m.At("nope", "cnt"); ok {
		t.Fatalf("unknown column should report !ok")
	}
}

func TestSummarize(t *testing.T) {
	days := datasettest.Days(60)
	ds := &dataset.Dataset{Days: days, Hours: datasettest.Hours(days, []int{8, 17})}

	full, err := Summarize(ds, dataset.DateRange{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if full.Days != 60 || full.DeltaPct != 0 {
		t.Fatalf("incomplete range should cover all days: %d %v", full.Days, full.DeltaPct)
	}
	if len(full.Busiest) != TopN || len(full.Quietest) != TopN || full.TempTrend == nil || full.HumTrend == nil || full.HumidityBox == nil {
		t.Fatalf("summary incomplete: %+v", full)
	}
	if len(full.PeakHours) != 2 || full.PeakHours[0] != 17 {
		t.Fatalf("peak hours: %v", full.PeakHours)
	}

	r := dataset.DateRange{Start: datasettest.Start, End: datasettest.Start.Add(9 * 24 * time.Hour)}
	part, err := Summarize(ds, r)
	if err != nil {
		t.Fatalf("summarize range: %v", err)
	}
	if part.Days != 10 || part.Range != "2011-01-01 .. 2011-01-10" {
		t.Fatalf("range summary: %d %q", part.Days, part.Range)
	}
	if part.OverallMean != full.OverallMean {
		t.Fatalf("overall mean must not depend on range")
	}
	if _, err := json.Marshal(part); err != nil {
		t.Fatalf("summary must be JSON encodable: %v", err)
	}
}

func TestCompareToOverall(t *testing.T) {
	if d := CompareToOverall(110, 100); !near(d, 10) {
		t.Fatalf("delta = %v", d)
	}
	if d := CompareToOverall(10, 0); d != 0 {
		t.Fatalf("zero baseline = %v", d)
	}
}
