package charts

import (
	"fmt"
	"image"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    col.WithAlpha(153),
	}
}

// scatterWithTrend plots cnt against a normalized predictor and overlays a degree-2 least-squares
// curve over the full dataset. A failed fit leaves the scatter without a trend line.
func scatterWithTrend(st *State, name, title, xName string, col drawing.Color, pick func(dataset.DailyRecord) float64) image.Image {
	w, h := st.Size()
	days := st.days()
	if len(days) < 2 {
		return blank(w, h)
	}
	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	maxY := 0.0
	for i, d := range days {
		xs[i] = pick(d)
		ys[i] = float64(d.Count)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	series := []chart.Series{
		chart.ContinuousSeries{Name: "cnt", XValues: xs, YValues: ys, Style: pointStyle(col)},
	}
	curve, err := analysis.FitCurve(xs, ys, analysis.TrendDegree)
	if err != nil {
		logging.Warnf("%s trend: %v", name, err)
	} else {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("trend (R² %.2f)", curve.Fit.R2),
			XValues: curve.X,
			YValues: curve.Y,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		})
	}
	yRange, yTicks := countAxis(maxY)
	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 36}},
		XAxis:      chart.XAxis{Name: xName, Range: &chart.ContinuousRange{Min: 0, Max: 1}, Ticks: niceTicks(0, 1, 6)},
		YAxis:      chart.YAxis{Name: "Rentals", Range: yRange, Ticks: yTicks},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderPNG(name, ch, w, h)
}

// RenderTempScatter plots cnt against normalized temperature with its trend.
func RenderTempScatter(st *State) image.Image {
	return scatterWithTrend(st, "temperature scatter", "Temperature vs. Rentals", "Temperature (normalized)",
		chart.ColorRed, func(d dataset.DailyRecord) float64 { return d.Temp })
}

// RenderHumidityScatter plots cnt against normalized humidity with its trend.
func RenderHumidityScatter(st *State) image.Image {
	return scatterWithTrend(st, "humidity scatter", "Humidity vs. Rentals", "Humidity (normalized)",
		chart.ColorOrange, func(d dataset.DailyRecord) float64 { return d.Humidity })
}
