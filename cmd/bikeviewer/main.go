// Command bikeviewer is the desktop bike sharing dashboard.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/iafilius/BikeSharingDashboard/cmd/bikeviewer/uihelpers"
	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/charts"
	"github.com/iafilius/BikeSharingDashboard/src/config"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

const windowWidth = 1400

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config

	dataDir string
	data    *dataset.Dataset
	rng     dataset.DateRange

	showHints  bool
	weatherAgg analysis.Aggregation

	// widgets
	dataLabel    *widget.Label
	startEntry   *widget.Entry
	endEntry     *widget.Entry
	infoLabel    *widget.Label
	statsLabel   *widget.Label
	rangeHeading *widget.Label
	tabs         *container.AppTabs

	// one canvas per catalog chart, keyed by chart id
	images map[string]*canvas.Image
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	fs := pflag.NewFlagSet("bikeviewer", pflag.ExitOnError)
	config.RegisterFlags(fs)
	shots := fs.Bool("screenshots", false, "Render every chart to --screenshots-dir and exit without opening a window")
	startFlag := fs.String("start", "", "Initial range start (YYYY-MM-DD)")
	endFlag := fs.String("end", "", "Initial range end (YYYY-MM-DD)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(config.Options{Flags: fs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.SetLogLevel(cfg.Log.Level)
	defer logging.Sync()

	if *shots {
		if err := RunScreenshotsMode(cfg, *startFlag, *endFlag); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.bikesharing.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow(charts.Title)
	w.Resize(fyne.NewSize(windowWidth, 900))

	state := &uiState{
		app:        a,
		window:     w,
		cfg:        cfg,
		dataDir:    cfg.Data.Dir,
		showHints:  cfg.Chart.Hints,
		weatherAgg: analysis.ParseAggregation(cfg.Chart.WeatherAgg),
		images:     map[string]*canvas.Image{},
	}
	// Flags win over remembered preferences.
	loadPrefs(state, fs.Changed)

	// sidebar
	state.dataLabel = widget.NewLabel(uihelpers.TruncatePath(state.dataDir, 28))
	state.startEntry = widget.NewEntry()
	state.startEntry.SetPlaceHolder("YYYY-MM-DD")
	state.endEntry = widget.NewEntry()
	state.endEntry.SetPlaceHolder("YYYY-MM-DD")
	if *startFlag != "" || *endFlag != "" {
		state.startEntry.SetText(*startFlag)
		state.endEntry.SetText(*endFlag)
	} else {
		state.startEntry.SetText(uihelpers.FormatDate(state.rng, false))
		state.endEntry.SetText(uihelpers.FormatDate(state.rng, true))
	}
	state.startEntry.OnSubmitted = func(string) { applyRange(state) }
	state.endEntry.OnSubmitted = func(string) { applyRange(state) }
	state.infoLabel = widget.NewLabel("")
	state.infoLabel.Wrapping = fyne.TextWrapWord

	aggSelect := widget.NewSelect([]string{string(analysis.AggMean), string(analysis.AggSum)}, nil)
	aggSelect.Selected = string(state.weatherAgg)
	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	sidebar := container.NewVBox(
		widget.NewLabelWithStyle("Date range", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Start"), state.startEntry,
		widget.NewLabel("End"), state.endEntry,
		container.NewGridWithColumns(2,
			widget.NewButton("Apply", func() { applyRange(state) }),
			widget.NewButton("Reset", func() { resetRange(state) }),
		),
		state.infoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Weather aggregation:"), aggSelect,
		hintsChk,
		widget.NewSeparator(),
		widget.NewLabel("Data:"), state.dataLabel,
	)

	// header and the range chart
	intro := widget.NewLabel(charts.Intro)
	intro.Wrapping = fyne.TextWrapWord
	state.rangeHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	state.statsLabel = widget.NewLabel("")
	header := container.NewVBox(
		widget.NewLabelWithStyle(charts.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		intro,
		widget.NewLabelWithStyle(charts.Author, fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		widget.NewSeparator(),
		state.rangeHeading,
		state.statsLabel,
	)
	rangeBlock := container.NewVBox(header)
	for _, c := range charts.ForTab(charts.TabRange) {
		rangeBlock.Add(chartCanvas(state, c.ID))
	}

	// tabs
	state.tabs = container.NewAppTabs()
	for _, tab := range charts.Tabs {
		state.tabs.Append(container.NewTabItem(tab, tabContent(state, tab)))
	}
	state.tabs.SetTabLocation(container.TabLocationTop)
	// persist selected tab on change
	state.tabs.OnSelected = func(ti *container.TabItem) {
		state.app.Preferences().SetInt("selectedTabIndex", state.tabs.SelectedIndex())
	}
	if idx := a.Preferences().IntWithFallback("selectedTabIndex", 0); idx >= 0 && idx < len(state.tabs.Items) {
		state.tabs.SelectIndex(idx)
	}

	body := container.NewBorder(rangeBlock, nil, nil, nil, state.tabs)
	split := container.NewHSplit(container.NewVScroll(sidebar), body)
	split.Offset = uihelpers.SidebarOffset(windowWidth)
	w.SetContent(split)

	// Redraw charts on window resize so they scale with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawCharts(state) })
					}
				}
			}
		}()
	}

	aggSelect.OnChanged = func(v string) {
		state.weatherAgg = analysis.ParseAggregation(v)
		savePrefs(state)
		redrawCharts(state)
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawCharts(state)
	}

	buildMenus(state)
	loadAll(state)

	w.ShowAndRun()
}

// chartCanvas creates the image canvas for one chart id.
func chartCanvas(state *uiState, id string) *canvas.Image {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(800, 300))
	state.images[id] = img
	return img
}

// tabContent stacks heading, chart and caption for every chart of a tab. The conclusion tab
// has no charts and shows its prose instead.
func tabContent(state *uiState, tab string) fyne.CanvasObject {
	col := container.NewVBox()
	list := charts.ForTab(tab)
	for _, c := range list {
		col.Add(widget.NewLabelWithStyle(c.Heading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		col.Add(chartCanvas(state, c.ID))
		if c.Caption != "" {
			caption := widget.NewLabel(c.Caption)
			caption.Wrapping = fyne.TextWrapWord
			col.Add(caption)
		}
		col.Add(widget.NewSeparator())
	}
	if len(list) == 0 {
		for _, p := range charts.Conclusion {
			l := widget.NewLabel("• " + p)
			l.Wrapping = fyne.TextWrapWord
			col.Add(l)
		}
	}
	return container.NewVScroll(col)
}

// menus and shortcuts
func buildMenus(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	exportRange := fyne.NewMenuItem("Export Range Chart…", func() {
		exportChartPNG(state, state.images["filtered_trend"], "filtered_trend.png")
	})
	exportTab := fyne.NewMenuItem("Export Current Tab…", func() { exportTabCharts(state) })
	exportAll := fyne.NewMenuItem("Export All Charts…", func() { exportAllCharts(state) })
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Data Folder…", func() { openFolderDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		exportRange,
		exportTab,
		exportAll,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFolderDialog(state *uiState) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		state.dataDir = uri.Path()
		state.dataLabel.SetText(uihelpers.TruncatePath(state.dataDir, 28))
		savePrefs(state)
		loadAll(state)
	}, state.window)
	d.Show()
}

// loadAll reads the data folder and applies the current entries.
func loadAll(state *uiState) {
	ds, err := dataset.Load(state.dataDir)
	if err != nil {
		logging.Errorf("load %s: %v", state.dataDir, err)
		dialog.ShowError(err, state.window)
		return
	}
	state.data = ds
	logging.Infof("[viewer] loaded %d days, %d hourly rows from %s", len(ds.Days), len(ds.Hours), state.dataDir)
	applyRange(state)
}

// applyRange validates the entries, clamps them to the data and redraws.
func applyRange(state *uiState) {
	if state.data == nil {
		return
	}
	in, err := uihelpers.ResolveRangeInput(state.startEntry.Text, state.endEntry.Text, state.data)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.rng = in.Range
	if in.Range.Complete() {
		state.startEntry.SetText(uihelpers.FormatDate(in.Range, false))
		state.endEntry.SetText(uihelpers.FormatDate(in.Range, true))
	}
	state.infoLabel.SetText(in.Note)
	savePrefs(state)
	redrawCharts(state)
}

func resetRange(state *uiState) {
	state.startEntry.SetText("")
	state.endEntry.SetText("")
	applyRange(state)
}

func chartState(state *uiState) *charts.State {
	return &charts.State{
		Data:       state.data,
		Range:      state.rng,
		Width:      chartWidth(state),
		Height:     state.cfg.Chart.Height,
		ShowHints:  state.showHints,
		WeatherAgg: state.weatherAgg,
	}
}

// chartWidth follows the window; without one it uses the configured width.
func chartWidth(state *uiState) int {
	if state.window == nil || state.window.Canvas() == nil {
		return state.cfg.Chart.Width
	}
	if w := uihelpers.ComputeChartWidth(state.window.Canvas().Size().Width); w > 0 {
		return w
	}
	return state.cfg.Chart.Width
}

func redrawCharts(state *uiState) {
	if state == nil || state.data == nil {
		return
	}
	defer logging.TimeTrack(time.Now(), "redraw")
	st := chartState(state)
	cw, chh := st.Size()
	for _, c := range charts.Catalog() {
		img, ok := state.images[c.ID]
		if !ok {
			continue
		}
		img.Image = c.Render(st)
		img.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
		img.Refresh()
	}
	state.rangeHeading.SetText(charts.FilteredTrendTitle(state.rng))
	state.statsLabel.SetText(rangeStats(state))
}

// rangeStats is the one-line summary under the range heading.
func rangeStats(state *uiState) string {
	days, err := state.data.Filter(state.rng)
	if errors.Is(err, dataset.ErrIncompleteRange) {
		return ""
	}
	if len(days) == 0 {
		return "No data in the selected range."
	}
	cnt := analysis.Counts(days)
	total := floats.Sum(cnt)
	mean := stat.Mean(cnt, nil)
	delta := analysis.CompareToOverall(mean, stat.Mean(analysis.Counts(state.data.Days), nil))
	return fmt.Sprintf("%d days, %.0f rentals, %.0f per day (%+.1f%% vs. the overall daily mean)", len(days), total, mean, delta)
}
