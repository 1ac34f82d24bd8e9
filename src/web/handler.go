package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/charts"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

const maxChartWidth = 3000

// resolveRange reads ?start=&end=. Both blank selects the dataset bounds; a single blank
// endpoint stays incomplete so the trend chart shows its prompt.
func (s *Server) resolveRange(c *fiber.Ctx) (dataset.DateRange, error) {
	start, end := c.Query("start"), c.Query("end")
	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return s.data.Bounds(), nil
	}
	r, err := dataset.ParseDateRange(start, end)
	if err != nil {
		return dataset.DateRange{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.data.Clamp(r), nil
}

func (s *Server) chartState(c *fiber.Ctx, r dataset.DateRange) *charts.State {
	w := c.QueryInt("width", s.opts.Width)
	if w <= 0 || w > maxChartWidth {
		w = s.opts.Width
	}
	return &charts.State{
		Data:       s.data,
		Range:      r,
		Width:      w,
		Height:     s.opts.Height,
		ShowHints:  c.QueryBool("hints", s.opts.ShowHints),
		WeatherAgg: analysis.ParseAggregation(c.Query("agg", string(s.opts.WeatherAgg))),
	}
}

func (s *Server) getChart(c *fiber.Ctx) error {
	file := c.Params("file")
	id := strings.TrimSuffix(file, ".png")
	ch, ok := charts.Lookup(id)
	if id == file || !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown chart "+file)
	}
	r, err := s.resolveRange(c)
	if err != nil {
		return err
	}
	st := s.chartState(c, r)

	start := time.Now()
	img := ch.Render(st)
	var buf bytes.Buffer
	if err := charts.EncodePNG(&buf, img); err != nil {
		s.metrics.ObserveRender(id, "error", time.Since(start))
		return err
	}
	outcome := "ok"
	if ch.Tab == charts.TabRange && !r.Complete() {
		outcome = "prompt"
	}
	s.metrics.ObserveRender(id, outcome, time.Since(start))
	logging.Debugf("chart %s range=%s %d bytes in %v", id, r, buf.Len(), time.Since(start))

	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Type("png")
	return c.Send(buf.Bytes())
}

func (s *Server) getSummary(c *fiber.Ctx) error {
	r, err := s.resolveRange(c)
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(s.data, r)
	if errors.Is(err, dataset.ErrIncompleteRange) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(sum)
}

func (s *Server) getHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"days":   len(s.data.Days),
		"hours":  len(s.data.Hours),
		"range":  s.data.Bounds().String(),
	})
}

type chartView struct {
	Heading string
	Caption string
	URL     string
}

type tabView struct {
	ID     string
	Name   string
	Charts []chartView
}

type pageView struct {
	Title, Intro, Author string

	Start, End string
	Min, Max   string
	Agg        string
	Hints      bool

	Error string
	Info  string
	Stats string

	Range      chartView
	Tabs       []tabView
	Conclusion []string
}

func (s *Server) getIndex(c *fiber.Ctx) error {
	bounds := s.data.Bounds()
	v := pageView{
		Title:      charts.Title,
		Intro:      charts.Intro,
		Author:     charts.Author,
		Agg:        string(analysis.ParseAggregation(c.Query("agg", string(s.opts.WeatherAgg)))),
		Hints:      c.QueryBool("hints", s.opts.ShowHints),
		Conclusion: charts.Conclusion,
	}
	if bounds.Complete() {
		v.Min, v.Max = bounds.Start.Format(dataset.DateLayout), bounds.End.Format(dataset.DateLayout)
	}

	status := fiber.StatusOK
	r, err := s.resolveRange(c)
	if err != nil {
		status = fiber.StatusBadRequest
		v.Error = err.Error()
		r = dataset.DateRange{}
	}
	v.Start, v.End = formatDate(r.Start), formatDate(r.End)

	q := url.Values{}
	q.Set("start", v.Start)
	q.Set("end", v.End)
	q.Set("agg", v.Agg)
	q.Set("hints", strconv.FormatBool(v.Hints))
	chartURL := func(id string) string { return "/charts/" + id + ".png?" + q.Encode() }

	if r.Complete() {
		if sum, err := analysis.Summarize(s.data, r); err == nil {
			v.Stats = summaryLine(sum)
		}
	} else if v.Error == "" {
		v.Info = charts.PromptSelectRange
	}

	for _, ch := range charts.ForTab(charts.TabRange) {
		v.Range = chartView{Heading: charts.FilteredTrendTitle(r), Caption: ch.Caption, URL: chartURL(ch.ID)}
	}
	for i, tab := range charts.Tabs {
		tv := tabView{ID: "tab" + strconv.Itoa(i), Name: tab}
		for _, ch := range charts.ForTab(tab) {
			tv.Charts = append(tv.Charts, chartView{Heading: ch.Heading, Caption: ch.Caption, URL: chartURL(ch.ID)})
		}
		v.Tabs = append(v.Tabs, tv)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dataset.DateLayout)
}

func summaryLine(s analysis.Summary) string {
	return fmt.Sprintf("%d days, %d rentals, %.0f per day (%+.1f%% vs. the overall daily mean)",
		s.Days, s.TotalRentals, s.MeanDaily, s.DeltaPct)
}
