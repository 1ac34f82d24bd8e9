package charts

import (
	"errors"
	"fmt"
	"image"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// PromptSelectRange is shown in place of the filtered trend until both dates are chosen.
const PromptSelectRange = "Please select a date range with two dates to visualize the data."

// FilteredTrendTitle is the heading above the filtered trend for a complete range.
func FilteredTrendTitle(r dataset.DateRange) string {
	if !r.Complete() {
		return "Daily Rentals"
	}
	return fmt.Sprintf("Rentals from %s to %s", r.Start.Format(dataset.DateLayout), r.End.Format(dataset.DateLayout))
}

// RenderFilteredTrend plots cnt for the selected range. X positions are row indices; only every
// TickStep-th date is labeled.
func RenderFilteredTrend(st *State) image.Image {
	w, h := st.Size()
	rows, err := st.Data.Filter(st.Range)
	if errors.Is(err, dataset.ErrIncompleteRange) {
		return message(w, h, PromptSelectRange)
	}
	if err != nil {
		logging.Warnf("filtered trend: %v", err)
		return blank(w, h)
	}
	if len(rows) == 0 {
		return message(w, h, "No rentals recorded in "+st.Range.String()+".")
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	maxY := 0.0
	for i, r := range rows {
		xs[i] = float64(i)
		ys[i] = float64(r.Count)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	ticks := dateTicks(rows)
	// a lone day is drawn as a flat segment across the widened axis
	if len(rows) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}
	yRange, yTicks := countAxis(maxY)
	ch := chart.Chart{
		Title:      "Daily Bike Rental Trend",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 70}},
		XAxis: chart.XAxis{
			Name:  "Date",
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{Name: "Total Rentals", Range: yRange, Ticks: yTicks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "cnt",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2, DotColor: chart.ColorBlue, DotWidth: 3},
			},
		},
	}
	return renderPNG("filtered trend", ch, w, h)
}

// RenderFullTrend plots cnt over the whole dataset as a time series.
func RenderFullTrend(st *State) image.Image {
	w, h := st.Size()
	days := st.days()
	if len(days) < 2 {
		return blank(w, h)
	}
	ts := make([]time.Time, len(days))
	ys := make([]float64, len(days))
	maxY := 0.0
	for i, d := range days {
		ts[i] = d.Date
		ys[i] = float64(d.Count)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	first, last := ts[0], ts[len(ts)-1]
	yRange, yTicks := countAxis(maxY)
	ch := chart.Chart{
		Title:      "Bike Rentals over Time",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 36}},
		XAxis: chart.XAxis{
			Name:  "Date",
			Ticks: fullTrendTicks(first, last),
		},
		YAxis: chart.YAxis{Name: "Total Rentals", Range: yRange, Ticks: yTicks},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "cnt",
				XValues: ts,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			},
		},
	}
	return renderPNG("full trend", ch, w, h)
}

// RenderHourlyTrend plots the mean cnt for each hour of day across all days.
func RenderHourlyTrend(st *State) image.Image {
	w, h := st.Size()
	stats := analysis.HourlyMeans(st.hours())
	var xs, ys []float64
	maxY := 0.0
	for _, s := range stats {
		if s.Rows == 0 {
			continue
		}
		xs = append(xs, float64(s.Hour))
		ys = append(ys, s.Mean)
		if s.Mean > maxY {
			maxY = s.Mean
		}
	}
	if len(xs) < 2 {
		return blank(w, h)
	}
	yRange, yTicks := countAxis(maxY)
	green := chart.ColorGreen
	ch := chart.Chart{
		Title:      "Bike Rentals by Hour of Day",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 36}},
		XAxis:      chart.XAxis{Name: "Hour", Ticks: hourTicks()},
		YAxis:      chart.YAxis{Name: "Mean Rentals", Range: yRange, Ticks: yTicks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "mean cnt",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: green, StrokeWidth: 2, DotColor: green, DotWidth: 4},
			},
		},
	}
	return renderPNG("hourly trend", ch, w, h)
}

// dateTicks labels every TickStep-th row of the filtered trend and closes the axis at the last row.
func dateTicks(rows []dataset.DailyRecord) []chart.Tick {
	var ticks []chart.Tick
	for _, i := range analysis.TickIndices(len(rows), analysis.MaxDateTicks) {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: rows[i].DateString()})
	}
	return spanTicks(ticks, 0, float64(len(rows)-1))
}

// fullTrendTicks labels month starts and closes the axis at the first and last day.
func fullTrendTicks(first, last time.Time) []chart.Tick {
	ticks := monthTicks(first, last, pickMonthStep(last.Sub(first)))
	return spanTicks(ticks, chart.TimeToFloat64(first), chart.TimeToFloat64(last))
}

func hourTicks() []chart.Tick {
	ticks := make([]chart.Tick, 24)
	for i := range ticks {
		ticks[i] = chart.Tick{Value: float64(i), Label: fmt.Sprint(i)}
	}
	return ticks
}
