package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 440

	dateLabelLayout = "2006-01-02"
	fileDateLayout  = "20060102"
)

// palette is the per-room colour cycle: red, blue, green, orange, purple, pink.
var palette = []drawing.Color{
	drawing.ColorFromHex("FF0000"),
	drawing.ColorFromHex("0000FF"),
	drawing.ColorFromHex("008000"),
	drawing.ColorFromHex("FFA500"),
	drawing.ColorFromHex("800080"),
	drawing.ColorFromHex("FFC0CB"),
}

// ColorFor returns the line colour for the i-th room of a chart.
func ColorFor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Options configures the renderer.
type Options struct {
	OutDir string
	Width  int
	Height int
}

// Renderer writes one PNG per (facility, ward) for a processing date.
type Renderer struct {
	opts Options
}

// NewRenderer fills in default chart dimensions.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Renderer{opts: opts}
}

// RenderDate draws every ward of acc as of current and returns the image paths grouped
// by facility, in facility and ward order. The output directory must already exist.
func (r *Renderer) RenderDate(acc types.Accumulated, current civil.Date, windowDays int, fileDates []civil.Date) ([]types.FacilityCharts, error) {
	defer runlog.TimeTrack(time.Now(), "render "+current.String())
	var out []types.FacilityCharts
	for _, facility := range types.SortedKeys(acc) {
		fc := types.FacilityCharts{Facility: facility}
		for _, ward := range types.SortedKeys(acc[facility]) {
			rooms := acc[facility][ward]
			if rooms == nil {
				continue
			}
			plot, ok := BuildWardPlot(facility, ward, rooms, current, windowDays, fileDates)
			if !ok {
				runlog.Debugf("%s/%s: no readings in window ending %s", facility, ward, current)
				continue
			}
			path := filepath.Join(r.opts.OutDir, ImageName(facility, ward, current))
			if err := r.WritePNG(plot, path); err != nil {
				return out, err
			}
			fc.Images = append(fc.Images, types.ChartImage{Ward: ward, Path: path})
		}
		if len(fc.Images) > 0 {
			out = append(out, fc)
		}
	}
	return out, nil
}

// ImageName is the file name used for a ward chart.
func ImageName(facility, ward string, d civil.Date) string {
	return fmt.Sprintf("%s_%s_%s.png", facility, ward, d.In(time.UTC).Format(fileDateLayout))
}

// WritePNG renders plot and writes it to path.
func (r *Renderer) WritePNG(plot WardPlot, path string) error {
	img, err := r.Render(plot)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Render draws plot into an image.
func (r *Renderer) Render(plot WardPlot) (image.Image, error) {
	ch := r.buildChart(plot)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", plot.Facility, plot.Ward, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", plot.Facility, plot.Ward, err)
	}
	caption := fmt.Sprintf("window %s ~ %s  |  %d rooms", plot.Window.Start, plot.Window.End, len(plot.Lines))
	return drawCaption(img, caption), nil
}

func (r *Renderer) buildChart(plot WardPlot) chart.Chart {
	series := make([]chart.Series, 0, len(plot.Lines)+1)
	for i, line := range plot.Lines {
		col := ColorFor(i)
		xs := make([]float64, len(line.Points))
		ys := make([]float64, len(line.Points))
		for j, p := range line.Points {
			xs[j] = p.X
			ys[j] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    line.Room,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    4,
			},
		})
	}
	if len(plot.Labels) > 0 {
		values := make([]chart.Value2, len(plot.Labels))
		for i, l := range plot.Labels {
			values[i] = chart.Value2{XValue: l.X, YValue: l.Y, Label: l.Text}
		}
		series = append(series, chart.AnnotationSeries{
			Annotations: values,
			Style: chart.Style{
				FontSize:    7,
				FontColor:   chart.ColorBlack,
				StrokeColor: drawing.ColorTransparent,
				FillColor:   drawing.ColorTransparent,
			},
		})
	}

	ticks := dateTicks(plot.Axis.Labels(dateLabelLayout))
	minX, maxX := ticks[0].Value, ticks[len(ticks)-1].Value

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s - Room%s (~ %s)", plot.Facility, plot.Ward, plot.Date.In(time.UTC).Format(dateLabelLayout)),
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: 72}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			Style: chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{
			Name:  "EDSD SCORE",
			Range: &chart.ContinuousRange{Min: 0, Max: plot.YMax},
			Ticks: scoreTicks(plot.YMax, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}
