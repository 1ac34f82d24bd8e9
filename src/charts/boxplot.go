package charts

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
)

// RenderHumidityBoxPlot draws a horizontal box plot of normalized humidity and annotates
// Q1, Q3 and both whisker ends.
func RenderHumidityBoxPlot(st *State) image.Image {
	w, h := st.Size()
	b, err := analysis.ComputeBoxStats(analysis.Humidities(st.days()))
	if err != nil {
		return blank(w, h)
	}
	return drawBoxPlot(b, "Humidity Distribution", "Humidity (normalized)", w, h)
}

func drawBoxPlot(b analysis.BoxStats, title, xName string, w, h int) image.Image {
	const top, left, right, bottom = 56.0, 40.0, 40.0, 64.0
	lo, hi := niceAxisBounds(b.Min, b.Max)
	if math.IsNaN(lo) || hi <= lo {
		return blank(w, h)
	}
	plotW := float64(w) - left - right
	plotH := float64(h) - top - bottom
	xOf := func(v float64) float64 { return left + (v-lo)/(hi-lo)*plotW }
	cy := top + plotH/2
	boxH := plotH * 0.4

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(fmt.Sprintf("%s (IQR = %.3f)", title, b.IQR), float64(w)/2, top/2, 0.5, 0.5)

	// axis
	axisY := top + plotH
	dc.SetLineWidth(1)
	dc.DrawLine(left, axisY, left+plotW, axisY)
	dc.Stroke()
	for _, t := range niceTicks(lo, hi, 6) {
		if t.Value < lo || t.Value > hi {
			continue
		}
		x := xOf(t.Value)
		dc.DrawLine(x, axisY, x, axisY+4)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, x, axisY+14, 0.5, 0.5)
	}
	dc.DrawStringAnchored(xName, left+plotW/2, axisY+36, 0.5, 0.5)

	// whiskers and caps
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1.5)
	dc.DrawLine(xOf(b.WhiskerLow), cy, xOf(b.Q1), cy)
	dc.DrawLine(xOf(b.Q3), cy, xOf(b.WhiskerHigh), cy)
	for _, v := range []float64{b.WhiskerLow, b.WhiskerHigh} {
		dc.DrawLine(xOf(v), cy-boxH/4, xOf(v), cy+boxH/4)
	}
	dc.Stroke()

	// box and median
	dc.SetHexColor("#4C72B0")
	dc.DrawRectangle(xOf(b.Q1), cy-boxH/2, xOf(b.Q3)-xOf(b.Q1), boxH)
	dc.Fill()
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawRectangle(xOf(b.Q1), cy-boxH/2, xOf(b.Q3)-xOf(b.Q1), boxH)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawLine(xOf(b.Median), cy-boxH/2, xOf(b.Median), cy+boxH/2)
	dc.Stroke()

	for _, o := range b.Outliers {
		dc.DrawCircle(xOf(o), cy, 3)
		dc.Stroke()
	}

	// annotations
	dc.SetHexColor("#B40426")
	dc.DrawStringAnchored(fmt.Sprintf("Q1 = %.3f", b.Q1), xOf(b.Q1), cy-boxH/2-10, 0.5, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Q3 = %.3f", b.Q3), xOf(b.Q3), cy-boxH/2-24, 0.5, 0)
	dc.DrawStringAnchored(fmt.Sprintf("min = %.3f", b.WhiskerLow), xOf(b.WhiskerLow), cy+boxH/4+16, 0.5, 1)
	dc.DrawStringAnchored(fmt.Sprintf("max = %.3f", b.WhiskerHigh), xOf(b.WhiskerHigh), cy+boxH/4+16, 0.5, 1)
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.DrawStringAnchored(fmt.Sprintf("fences [%.3f, %.3f], %d outliers", b.LowerFence, b.UpperFence, len(b.Outliers)),
		left+plotW, top-8, 1, 0)
	return dc.Image()
}
