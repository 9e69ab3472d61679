// Package charts turns a ward's accumulated readings into a PNG trend chart.
package charts

import (
	"sort"
	"strconv"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/analysis"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

const (
	// ZeroScorePlot is where a score of exactly 0 is drawn so the point stays off the axis line.
	ZeroScorePlot = 0.1
	// YHeadroom is added above the highest plotted value to leave space for point labels.
	YHeadroom = 3.0

	labelDX = 0.05
	labelDY = 0.15
)

// Point is one plotted reading. Y is the drawn value, Score the recorded one.
type Point struct {
	X     float64
	Y     float64
	Score float64
}

// Line is one room's series on the ward chart.
type Line struct {
	Room   string
	Points []Point
}

// Label is point text placed next to a marker.
type Label struct {
	X    float64
	Y    float64
	Text string
}

// WardPlot is everything needed to draw one ward chart.
type WardPlot struct {
	Facility string
	Ward     string
	Date     civil.Date
	Window   analysis.Window
	Axis     analysis.Axis
	Lines    []Line
	Labels   []Label
	YMax     float64
}

// PlotValue maps a score to its drawn value.
func PlotValue(score float64) float64 {
	if score == 0 {
		return ZeroScorePlot
	}
	return score
}

// FormatScore renders the label text for a recorded score ("2", "0", "2.5").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

type labelKey struct {
	x     int
	score float64
	ward  string
}

// BuildWardPlot filters the ward's rooms to the window ending at current and maps
// every reading onto the compressed axis. fileDates are the days that had an input
// file; nil falls back to the dates present in the ward itself.
// It reports false when no room has a plottable reading.
func BuildWardPlot(facility, ward string, rooms types.WardRooms, current civil.Date, windowDays int, fileDates []civil.Date) (WardPlot, bool) {
	w := analysis.WindowEnding(current, windowDays)

	filtered := map[string]types.RoomSeries{}
	var wardDates []civil.Date
	for room, series := range rooms {
		in := analysis.Filter(series, w)
		if len(in) == 0 {
			continue
		}
		// series keep ingestion order; a replayed date would otherwise draw the line backwards
		sort.SliceStable(in, func(i, j int) bool { return in[i].Date.Before(in[j].Date) })
		filtered[room] = in
		for _, r := range in {
			wardDates = append(wardDates, r.Date)
		}
	}
	if len(filtered) == 0 {
		return WardPlot{}, false
	}

	plot := WardPlot{
		Facility: facility,
		Ward:     ward,
		Date:     current,
		Window:   w,
		Axis:     analysis.AxisFor(fileDates, wardDates, w),
	}
	shown := map[labelKey]bool{}
	for _, room := range types.SortedKeys(filtered) {
		line := Line{Room: room}
		for _, r := range filtered[room] {
			xi, ok := plot.Axis.Index(r.Date)
			if !ok {
				runlog.Debugf("%s/%s/%s: %s not on axis, skipped", facility, ward, room, r.Date)
				continue
			}
			y := PlotValue(r.Score)
			line.Points = append(line.Points, Point{X: float64(xi), Y: y, Score: r.Score})
			if y > plot.YMax {
				plot.YMax = y
			}
			key := labelKey{x: xi, score: r.Score, ward: ward}
			if !shown[key] {
				shown[key] = true
				plot.Labels = append(plot.Labels, Label{X: float64(xi) + labelDX, Y: y + labelDY, Text: FormatScore(r.Score)})
			}
		}
		if len(line.Points) > 0 {
			plot.Lines = append(plot.Lines, line)
		}
	}
	if len(plot.Lines) == 0 {
		return WardPlot{}, false
	}
	plot.YMax += YHeadroom
	return plot, true
}
