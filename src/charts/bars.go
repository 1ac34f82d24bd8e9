package charts

import (
	"image"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

var (
	highlightColor = drawing.ColorFromHex("90CAF9")
	mutedColor     = drawing.ColorFromHex("D3D3D3")

	coolwarm3 = []drawing.Color{drawing.ColorFromHex("3B4CC0"), drawing.ColorFromHex("DDDDDD"), drawing.ColorFromHex("B40426")}
	coolwarm4 = []drawing.Color{drawing.ColorFromHex("3B4CC0"), drawing.ColorFromHex("AAC7FD"), drawing.ColorFromHex("F7B89C"), drawing.ColorFromHex("B40426")}
	viridis4  = []drawing.Color{drawing.ColorFromHex("440154"), drawing.ColorFromHex("31688E"), drawing.ColorFromHex("35B779"), drawing.ColorFromHex("FDE725")}
)

func barStyle(c drawing.Color) chart.Style {
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func paletteAt(p []drawing.Color, i int) drawing.Color {
	n := len(p)
	return p[((i%n)+n)%n]
}

// barChart builds a category chart with a zero-based y axis. Empty input renders blank.
func barChart(name, title, yName string, bars []chart.Value, rotate bool, w, h int) image.Image {
	if len(bars) == 0 {
		return blank(w, h)
	}
	maxY := 0.0
	for _, b := range bars {
		if b.Value > maxY {
			maxY = b.Value
		}
	}
	yRange, yTicks := countAxis(maxY)
	xStyle := chart.Style{}
	bottom := 36
	if rotate {
		xStyle.TextRotationDegrees = 45
		bottom = 80
	}
	barWidth := (w - 200) / (2 * len(bars))
	if barWidth > 160 {
		barWidth = 160
	}
	bc := chart.BarChart{
		Title:      title,
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: bottom}},
		XAxis:      xStyle,
		YAxis:      chart.YAxis{Name: yName, Range: yRange, Ticks: yTicks},
		Bars:       bars,
	}
	return renderPNG(name, bc, w, h)
}

// RenderDayTypes shows mean cnt for holiday, weekend and workday days. A day may count in several bars.
func RenderDayTypes(st *State) image.Image {
	w, h := st.Size()
	m := analysis.DayTypeAverages(st.days())
	bars := []chart.Value{
		{Label: "Holiday", Value: m.Holiday, Style: barStyle(coolwarm3[0])},
		{Label: "Weekend", Value: m.Weekend, Style: barStyle(coolwarm3[1])},
		{Label: "Workday", Value: m.Workday, Style: barStyle(coolwarm3[2])},
	}
	if len(st.days()) == 0 {
		bars = nil
	}
	return barChart("day types", "Mean Bike Rentals by Day Type", "Mean Rentals", bars, true, w, h)
}

// dayBars highlights one bar (index hi) of a top/bottom listing.
func dayBars(days []dataset.DailyRecord, hi int) []chart.Value {
	out := make([]chart.Value, len(days))
	for i, d := range days {
		c := mutedColor
		if i == hi {
			c = highlightColor
		}
		out[i] = chart.Value{Label: d.DateString(), Value: float64(d.Count), Style: barStyle(c)}
	}
	return out
}

// RenderTopDays shows the five busiest days, highlighting the busiest.
func RenderTopDays(st *State) image.Image {
	w, h := st.Size()
	top, _ := analysis.TopBottom(st.days(), analysis.TopN)
	return barChart("top days", "Top 5 Dates by Rentals", "Rentals", dayBars(top, 0), true, w, h)
}

// RenderBottomDays shows the five quietest days, highlighting the quietest (last bar).
func RenderBottomDays(st *State) image.Image {
	w, h := st.Size()
	_, bottom := analysis.TopBottom(st.days(), analysis.TopN)
	return barChart("bottom days", "Bottom 5 Dates by Rentals", "Rentals", dayBars(bottom, len(bottom)-1), true, w, h)
}

func groupBars(groups []analysis.GroupStat, agg analysis.Aggregation, palette []drawing.Color) []chart.Value {
	out := make([]chart.Value, len(groups))
	for i, g := range groups {
		out[i] = chart.Value{Label: g.Label, Value: g.Value(agg), Style: barStyle(paletteAt(palette, g.Key-1))}
	}
	return out
}

// RenderSeasons shows mean cnt per season.
func RenderSeasons(st *State) image.Image {
	w, h := st.Size()
	bars := groupBars(analysis.SeasonStats(st.days()), analysis.AggMean, coolwarm4)
	return barChart("seasons", "Mean Bike Rentals by Season", "Mean Rentals", bars, false, w, h)
}

// RenderWeather shows cnt per weather situation, aggregated by st.WeatherAgg (mean by default).
func RenderWeather(st *State) image.Image {
	w, h := st.Size()
	agg := analysis.ParseAggregation(string(st.WeatherAgg))
	title, yName := "Mean Bike Rentals by Weather", "Mean Rentals"
	if agg == analysis.AggSum {
		title, yName = "Total Bike Rentals by Weather", "Total Rentals"
	}
	bars := groupBars(analysis.WeatherStats(st.days()), agg, viridis4)
	return barChart("weather", title, yName, bars, false, w, h)
}

// RenderTempBuckets shows mean cnt for the low, comfortable and high temperature bins.
func RenderTempBuckets(st *State) image.Image {
	w, h := st.Size()
	var bars []chart.Value
	if len(st.days()) > 0 {
		for i, b := range analysis.TemperatureBuckets(st.days()) {
			bars = append(bars, chart.Value{Label: b.Label, Value: b.Mean, Style: barStyle(coolwarm3[i])})
		}
	}
	return barChart("temperature buckets", "Mean Bike Rentals by Temperature Range", "Mean Rentals", bars, false, w, h)
}
