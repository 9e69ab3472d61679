package charts

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

var tickSteps = []float64{1, 2, 2.5, 5, 10}

// dateTicks labels axis position i with labels[i]. Unlabelled ticks at -0.5 and
// len(labels)-0.5 bracket the dates, since go-chart takes the axis range from the tick
// span: a single date still gets a non-empty range and no point sits on the frame.
func dateTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	last := float64(len(labels)) - 0.5
	if len(labels) == 0 {
		last = 0.5
	}
	return append(ticks, chart.Tick{Value: last})
}

// scoreTicks returns about n ticks on the score axis [0, ymax], stepping by 1/2/2.5/5
// times a power of ten. The last tick is always ymax (unlabelled when it falls between
// steps) so the axis keeps its full headroom.
func scoreTicks(ymax float64, n int) []chart.Tick {
	if math.IsNaN(ymax) || ymax <= 0 {
		ymax = 1
	}
	if n < 2 {
		n = 2
	}
	mag := math.Pow(10, math.Floor(math.Log10(ymax/float64(n-1))))
	step := mag
	best := math.MaxFloat64
	for _, c := range tickSteps {
		count := math.Max(math.Ceil(ymax/(c*mag)), 2)
		if d := math.Abs(count - float64(n)); d < best {
			best, step = d, c*mag
		}
	}
	var ticks []chart.Tick
	for i := 0; i <= n+2; i++ {
		v := float64(i) * step
		if v > ymax-1e-9 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: FormatScore(math.Round(v*100) / 100)})
	}
	top := chart.Tick{Value: ymax}
	if math.Abs(ymax/step-math.Round(ymax/step)) < 1e-9 {
		top.Label = FormatScore(math.Round(ymax*100) / 100)
	}
	return append(ticks, top)
}
