package charts

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

func TestColorCycleWraps(t *testing.T) {
	if ColorFor(0) != ColorFor(len(palette)) {
		t.Fatalf("colour cycle should wrap after %d rooms", len(palette))
	}
	if ColorFor(0) == ColorFor(1) {
		t.Fatalf("adjacent rooms share a colour")
	}
}

func TestScoreTicksEndAtYMax(t *testing.T) {
	ticks := scoreTicks(5.1, 6)
	if len(ticks) < 2 {
		t.Fatalf("ticks=%v", ticks)
	}
	if ticks[0].Value != 0 {
		t.Fatalf("first tick=%v", ticks[0].Value)
	}
	last := ticks[len(ticks)-1]
	if last.Value != 5.1 || last.Label != "" {
		t.Fatalf("top tick=%+v want unlabelled 5.1", last)
	}
	for _, tk := range ticks {
		if tk.Value > 5.1 {
			t.Fatalf("tick %v beyond max", tk.Value)
		}
	}
	if got := scoreTicks(6, 4); got[len(got)-1].Value != 6 || got[len(got)-1].Label != "6" {
		t.Fatalf("round max should keep its label, ticks=%v", got)
	}
	if got := scoreTicks(0, 6); len(got) < 2 {
		t.Fatalf("empty axis still needs a range, ticks=%v", got)
	}
}

func TestDateTicksBracketPositions(t *testing.T) {
	ticks := dateTicks([]string{"2024-01-01"})
	if len(ticks) != 3 || ticks[0].Value != -0.5 || ticks[1].Value != 0 || ticks[2].Value != 0.5 {
		t.Fatalf("ticks=%+v", ticks)
	}
	if ticks[0].Label != "" || ticks[1].Label != "2024-01-01" || ticks[2].Label != "" {
		t.Fatalf("labels=%+v", ticks)
	}
}

// go-chart takes both axis ranges from the tick span.
func TestBuildChartAxisBounds(t *testing.T) {
	d := day("2024-01-03")
	rooms := types.WardRooms{
		"211-1": {{Date: day("2024-01-01"), Score: 4.5}, {Date: d, Score: 1}},
		"211-2": {{Date: day("2024-01-02"), Score: 0}},
	}
	files := []civil.Date{day("2024-01-01"), day("2024-01-02"), d}
	plot, ok := BuildWardPlot("yn", "211", rooms, d, 30, files)
	if !ok {
		t.Fatalf("expected a plot")
	}
	ch := NewRenderer(Options{}).buildChart(plot)

	xt := ch.XAxis.Ticks
	if xt[0].Value != -0.5 || xt[len(xt)-1].Value != 2.5 {
		t.Fatalf("x span [%v, %v] want [-0.5, 2.5]", xt[0].Value, xt[len(xt)-1].Value)
	}
	yt := ch.YAxis.Ticks
	if yt[0].Value != 0 || yt[len(yt)-1].Value != 7.5 {
		t.Fatalf("y span [%v, %v] want [0, 7.5]", yt[0].Value, yt[len(yt)-1].Value)
	}
}

func TestRenderDateSingleAxisDate(t *testing.T) {
	d := day("2024-01-01")
	acc := types.Accumulated{"yn": {"211": {"211-1": {{Date: d, Score: 2}}}}}
	r := NewRenderer(Options{OutDir: t.TempDir(), Width: 640, Height: 320})
	charts, err := r.RenderDate(acc, d, 30, []civil.Date{d})
	if err != nil {
		t.Fatalf("first day of a run must render: %v", err)
	}
	if types.CountImages(charts) != 1 {
		t.Fatalf("charts=%+v", charts)
	}
	if _, err := os.Stat(charts[0].Images[0].Path); err != nil {
		t.Fatalf("png not written: %v", err)
	}
}

func TestRenderDateWritesOnePNGPerWard(t *testing.T) {
	dir := t.TempDir()
	d := day("2024-01-03")
	acc := types.Accumulated{
		"yn": {
			"211": {"211-1": {{Date: day("2024-01-01"), Score: 2}, {Date: d, Score: 0}}},
			"212": {"212-1": {{Date: d, Score: 3}}, "212-2": {{Date: d, Score: 3}}},
			"213": {"213-1": {{Date: day("2020-01-01"), Score: 1}}},
		},
		"zz": {"101": {"101-1": {{Date: d, Score: 1}}}},
	}
	r := NewRenderer(Options{OutDir: dir, Width: 640, Height: 320})
	charts, err := r.RenderDate(acc, d, 30, []civil.Date{day("2024-01-01"), d})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(charts) != 2 || charts[0].Facility != "yn" || charts[1].Facility != "zz" {
		t.Fatalf("facilities=%+v", charts)
	}
	if got := len(charts[0].Images); got != 2 {
		t.Fatalf("yn images=%d want 2 (ward 213 is out of window)", got)
	}
	if charts[0].Images[0].Ward != "211" || charts[0].Images[1].Ward != "212" {
		t.Fatalf("ward order=%+v", charts[0].Images)
	}
	want := filepath.Join(dir, "yn_211_20240103.png")
	if charts[0].Images[0].Path != want {
		t.Fatalf("path=%s want %s", charts[0].Images[0].Path, want)
	}
	fh, err := os.Open(want)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 320 {
		t.Fatalf("image size=%v", b)
	}
	if types.CountImages(charts) != 3 {
		t.Fatalf("total images=%d", types.CountImages(charts))
	}
}
