package charts

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
)

// coolwarm maps r in [-1,1] to a diverging blue-white-red color. NaN is gray.
func coolwarm(r float64) color.RGBA {
	if math.IsNaN(r) {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	r = math.Max(-1, math.Min(1, r))
	lerp := func(a, b uint8, t float64) uint8 { return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t)) }
	lo := color.RGBA{R: 59, G: 76, B: 192, A: 255}
	mid := color.RGBA{R: 221, G: 221, B: 221, A: 255}
	hi := color.RGBA{R: 180, G: 4, B: 38, A: 255}
	if r < 0 {
		t := r + 1
		return color.RGBA{R: lerp(lo.R, mid.R, t), G: lerp(lo.G, mid.G, t), B: lerp(lo.B, mid.B, t), A: 255}
	}
	return color.RGBA{R: lerp(mid.R, hi.R, r), G: lerp(mid.G, hi.G, r), B: lerp(mid.B, hi.B, r), A: 255}
}

// heatmapHeight gives the square-ish grid more room than line charts get.
func heatmapHeight(w, h int) int {
	if hh := int(float64(w) * 0.6); hh > h {
		return hh
	}
	return h
}

// RenderCorrelationHeatmap draws the annotated Pearson matrix over every numeric daily column.
func RenderCorrelationHeatmap(st *State) image.Image {
	w, h := st.Size()
	h = heatmapHeight(w, h)
	days := st.days()
	if len(days) < 2 {
		return blank(w, h)
	}
	m := analysis.DailyCorrelation(days)
	return drawHeatmap(m, w, h)
}

func drawHeatmap(m analysis.CorrelationMatrix, w, h int) image.Image {
	const (
		top, left, right, bottom = 48.0, 96.0, 90.0, 84.0
	)
	n := float64(len(m.Names))
	cell := math.Min((float64(w)-left-right)/n, (float64(h)-top-bottom)/n)
	if cell <= 0 {
		return blank(w, h)
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("Correlation Heatmap", float64(w)/2, top/2, 0.5, 0.5)

	for i, row := range m.Values {
		for j, r := range row {
			x := left + float64(j)*cell
			y := top + float64(i)*cell
			dc.SetColor(coolwarm(r))
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()
			dc.SetRGB(1, 1, 1)
			dc.SetLineWidth(0.5)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Stroke()
			if math.IsNaN(r) {
				continue
			}
			if math.Abs(r) > 0.6 {
				dc.SetRGB(1, 1, 1)
			} else {
				dc.SetRGB(0.1, 0.1, 0.1)
			}
			dc.DrawStringAnchored(fmt.Sprintf("%.2f", r), x+cell/2, y+cell/2, 0.5, 0.35)
		}
	}

	dc.SetRGB(0.1, 0.1, 0.1)
	gridBottom := top + n*cell
	for i, name := range m.Names {
		dc.DrawStringAnchored(name, left-6, top+float64(i)*cell+cell/2, 1, 0.35)
		cx := left + float64(i)*cell + cell/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), cx, gridBottom+8)
		dc.DrawStringAnchored(name, cx, gridBottom+8, 1, 0.5)
		dc.Pop()
	}

	// color bar
	barX := left + n*cell + 24
	barW := 18.0
	steps := 100
	for s := 0; s < steps; s++ {
		r := 1 - 2*float64(s)/float64(steps-1)
		dc.SetColor(coolwarm(r))
		dc.DrawRectangle(barX, top+float64(s)*n*cell/float64(steps), barW, n*cell/float64(steps)+1)
		dc.Fill()
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	for _, v := range []float64{1, 0.5, 0, -0.5, -1} {
		y := top + (1-v)/2*n*cell
		dc.DrawLine(barX+barW, y, barX+barW+4, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), barX+barW+8, y, 0, 0.35)
	}
	return dc.Image()
}
