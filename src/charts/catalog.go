package charts

import "image"

// Dashboard texts.
const (
	Title  = "Bike Sharing Dashboard"
	Intro  = "This dashboard explores the Bike Sharing Dataset: daily and hourly rental counts in 2011 and 2012 together with calendar and weather attributes. Pick a date range to inspect the daily trend; the tabs below summarize the whole dataset."
	Author = "by Fawaz Amajida"
)

// Tab names in display order. TabRange is shown above the tab bar.
const (
	TabRange       = "Selected Range"
	TabTrend       = "Trend"
	TabCorrelation = "Correlation"
	TabTime        = "Time Factors"
	TabEnvironment = "Environmental Factors"
	TabConclusion  = "Conclusion"
)

// Tabs lists the tab bar entries.
var Tabs = []string{TabTrend, TabCorrelation, TabTime, TabEnvironment, TabConclusion}

// Conclusion is the prose of the last tab.
var Conclusion = []string{
	"Rentals grew steadily over 2011 and 2012; the upward trend is worth sustaining with data-driven planning.",
	"Usage peaks at 8 in the morning and 5 in the afternoon, in line with commuting, and working days see the highest average demand.",
	"Fall is the busiest season and spring the quietest. Riders strongly prefer clear weather.",
	"Rentals rise with temperature up to a point and then fall off again, with a wide spread around the trend. Humidity shows no meaningful relationship.",
	"The quietest day, 2012-10-29 with 22 rentals, coincides with Hurricane Sandy reaching the US east coast.",
}

// Chart is one catalog entry.
type Chart struct {
	ID      string
	Tab     string
	Heading string
	Caption string
	Hint    string
	render  func(*State) image.Image
}

// Render draws the chart and applies the hint overlay when enabled.
func (c Chart) Render(st *State) image.Image {
	img := c.render(st)
	if st != nil && st.ShowHints {
		return drawHint(img, c.Hint)
	}
	return img
}

var catalog = []Chart{
	{
		ID: "filtered_trend", Tab: TabRange, Heading: "Rentals in the Selected Range",
		Hint:   "Hint: at most 20 dates are labeled; every point is still plotted.",
		render: RenderFilteredTrend,
	},
	{
		ID: "full_trend", Tab: TabTrend, Heading: "Bike Rentals across 2011 and 2012",
		Caption: "Rentals increase over time. This trend should be sustained through data-driven strategies.",
		Hint:    "Hint: seasonal swings repeat each year on top of the overall growth.",
		render:  RenderFullTrend,
	},
	{
		ID: "correlation", Tab: TabCorrelation, Heading: "Correlation between Variables",
		Caption: "Casual riders and working days correlate at -0.52: casual use rises on holidays and weekends. " +
			"Temperature and rentals correlate at 0.63, so demand grows as it gets warmer. " +
			"Date and rentals also correlate at 0.63; rentals grow over time, through more demand, more supply or both. " +
			"temp and atemp are almost perfectly correlated, so only temp is analysed further. " +
			"Clearer weather goes with lower humidity, while season and weathersit are categorical and show no linear relation.",
		Hint:   "Hint: red is positive, blue is negative correlation; gray cells have zero variance.",
		render: RenderCorrelationHeatmap,
	},
	{
		ID: "hourly", Tab: TabTime, Heading: "Rentals by Hour of Day",
		Caption: "Rentals peak at 8 in the morning and 5 in the afternoon.",
		Hint:    "Hint: mean count per hour over all days.",
		render:  RenderHourlyTrend,
	},
	{
		ID: "day_types", Tab: TabTime, Heading: "Rentals by Day Type",
		Caption: "Most rentals happen on working days.",
		Hint:    "Hint: a holiday that falls on a weekend counts toward both bars.",
		render:  RenderDayTypes,
	},
	{
		ID: "top_days", Tab: TabTime, Heading: "Busiest Dates",
		Caption: "No special event was found on the busiest dates.",
		render:  RenderTopDays,
	},
	{
		ID: "bottom_days", Tab: TabTime, Heading: "Quietest Dates",
		Caption: "The fewest rentals, 22, were recorded on 2012-10-29 when Hurricane Sandy hit New York City.",
		render:  RenderBottomDays,
	},
	{
		ID: "seasons", Tab: TabEnvironment, Heading: "Effect of Season",
		Caption: "Rentals are highest in fall and lowest in spring.",
		render:  RenderSeasons,
	},
	{
		ID: "weather", Tab: TabEnvironment, Heading: "Effect of Weather",
		Caption: "Riders use the bikes most in clear weather.",
		Hint:    "Hint: severe storms are absent from the daily table, so only three bars may appear.",
		render:  RenderWeather,
	},
	{
		ID: "temperature", Tab: TabEnvironment, Heading: "Effect of Temperature",
		Caption: "Rentals rise with temperature until a certain point and then decline again, though the spread around this trend is large.",
		Hint:    "Hint: the line is a degree-2 least-squares fit over all days.",
		render:  RenderTempScatter,
	},
	{
		ID: "temperature_buckets", Tab: TabEnvironment, Heading: "Rentals by Temperature Range",
		Caption: "Low is up to 20°C, comfortable up to 25°C and high above that (normalized by 41°C).",
		render:  RenderTempBuckets,
	},
	{
		ID: "humidity", Tab: TabEnvironment, Heading: "Effect of Humidity",
		Caption: "There is no significant correlation between rentals and humidity.",
		Hint:    "Hint: the line is a degree-2 least-squares fit over all days.",
		render:  RenderHumidityScatter,
	},
	{
		ID: "humidity_box", Tab: TabEnvironment, Heading: "Humidity Distribution",
		Caption: "Box spans Q1 to Q3; whiskers reach the furthest values within 1.5×IQR of the box.",
		render:  RenderHumidityBoxPlot,
	},
}

// Catalog returns all charts in render order.
func Catalog() []Chart {
	return append([]Chart(nil), catalog...)
}

// ForTab returns the charts of one tab in render order.
func ForTab(tab string) []Chart {
	var out []Chart
	for _, c := range catalog {
		if c.Tab == tab {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds a chart by ID.
func Lookup(id string) (Chart, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}
