package charts

import (
	"math"
	"strconv"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// DefaultWidth is the chart width used when no window width is known (headless, web).
const DefaultWidth = 1100

// ComputeChartDimensions clamps a raw canvas width and derives a ~3:1 height from it.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// niceStep picks a 1, 2, 2.5 or 5 x 10^k stride that splits span into about n ticks.
func niceStep(span float64, n int) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	step, best := mag, math.MaxFloat64
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		count := math.Max(2, math.Ceil(span/(m*mag)))
		if d := math.Abs(count - float64(n)); d < best {
			step, best = m*mag, d
		}
	}
	return step
}

// niceAxisBounds pads [lo, hi] by 5% and snaps both ends outward to the tick stride.
func niceAxisBounds(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return lo, hi
	}
	if hi <= lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	step := niceStep(hi-lo+2*pad, 6)
	return math.Floor((lo-pad)/step) * step, math.Ceil((hi+pad)/step) * step
}

// countAxis returns a zero-based y range with nice ticks for non-negative counts.
func countAxis(maxY float64) (*chart.ContinuousRange, []chart.Tick) {
	if math.IsNaN(maxY) || maxY <= 0 {
		maxY = 1
	}
	_, top := niceAxisBounds(0, maxY)
	return &chart.ContinuousRange{Min: 0, Max: top}, niceTicks(0, top, 6)
}

// niceTicks returns ticks on a niceStep grid covering [lo, hi].
func niceTicks(lo, hi float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if hi <= lo {
		hi = lo + 1
	}
	step := niceStep(hi-lo, n)
	first := math.Floor(lo/step) * step
	var ticks []chart.Tick
	for i := 0; i <= n+2; i++ {
		v := first + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: tickLabel(v, step)})
		if v >= hi-step*1e-9 {
			break
		}
	}
	return ticks
}

// tickLabel prints v with just enough decimals to tell neighbouring ticks apart: rentals come
// out whole, normalized weather values get one or two places.
func tickLabel(v, step float64) string {
	places := 0
	for p := 1.0; places < 6; places, p = places+1, p*10 {
		if s := step * p; math.Abs(s-math.Round(s)) < 1e-9 {
			break
		}
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}

// spanTicks adds unlabeled ticks at lo and hi when the sorted labeled ticks stop short of them.
// go-chart takes the x range from the tick values whenever ticks are set, so the outer ticks
// decide which points stay on the axis. A zero-width span is widened to [lo, lo+1].
func spanTicks(ticks []chart.Tick, lo, hi float64) []chart.Tick {
	if hi <= lo {
		hi = lo + 1
	}
	out := make([]chart.Tick, 0, len(ticks)+2)
	if len(ticks) == 0 || ticks[0].Value > lo {
		out = append(out, chart.Tick{Value: lo})
	}
	out = append(out, ticks...)
	if out[len(out)-1].Value < hi {
		out = append(out, chart.Tick{Value: hi})
	}
	return out
}

// monthTicks places a tick on the first of every `every` months between minT and maxT.
func monthTicks(minT, maxT time.Time, every int) []chart.Tick {
	if every <= 0 || maxT.Before(minT) {
		return nil
	}
	t := time.Date(minT.Year(), minT.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(minT) {
		t = t.AddDate(0, 1, 0)
	}
	var ticks []chart.Tick
	for ; !t.After(maxT); t = t.AddDate(0, every, 0) {
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(t), Label: t.Format("Jan 2006")})
	}
	return ticks
}

// pickMonthStep keeps the full-trend axis at roughly a dozen labels.
func pickMonthStep(span time.Duration) int {
	months := int(span.Hours() / 24 / 30)
	switch {
	case months <= 12:
		return 1
	case months <= 36:
		return 2
	default:
		return months/12 + 1
	}
}
