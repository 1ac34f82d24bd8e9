package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// renderer is satisfied by chart.Chart and chart.BarChart.
type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderPNG renders a go-chart value and decodes it. Failures log a warning and yield a blank image.
func renderPNG(name string, r renderer, w, h int) (img image.Image) {
	defer func() {
		if p := recover(); p != nil {
			logging.Warnf("%s chart render panic: %v; showing blank fallback", name, p)
			img = blank(w, h)
		}
	}()
	var buf bytes.Buffer
	if err := r.Render(chart.PNG, &buf); err != nil {
		logging.Warnf("%s chart render error: %v; showing blank fallback", name, err)
		return blank(w, h)
	}
	out, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("%s chart decode error: %v; showing blank fallback", name, err)
		return blank(w, h)
	}
	return out
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)
	return img
}

// message draws centered text lines on a blank image. Used for the empty-range prompt.
func message(w, h int, lines ...string) image.Image {
	img := blank(w, h).(*image.RGBA)
	face := basicfont.Face7x13
	lh := face.Metrics().Height.Ceil() + 4
	y := h/2 - (len(lines)*lh)/2 + face.Metrics().Ascent.Ceil()
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255}), Face: face}
	for _, ln := range lines {
		tw := dr.MeasureString(ln).Ceil()
		dr.Dot = fixed.Point26_6{X: fixed.I((w - tw) / 2), Y: fixed.I(y)}
		dr.DrawString(ln)
		y += lh
	}
	return img
}

// drawHint lays the hint text on a dark band along the bottom edge of a copy of img.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	bandH := face.Metrics().Height.Ceil() + 8
	band := image.Rect(b.Min.X, b.Max.Y-bandH, b.Max.X, b.Max.Y)
	draw.Draw(out, band, image.NewUniform(color.RGBA{A: 190}), image.Point{}, draw.Over)

	dr := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.RGBA{R: 250, G: 240, B: 200, A: 255}),
		Face: face,
		Dot:  fixed.P(b.Min.X+8, b.Max.Y-4-face.Metrics().Descent.Ceil()),
	}
	dr.DrawString(text)
	return out
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
