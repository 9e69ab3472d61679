// Package pipeline drives a report run: discover the dated spreadsheets, fold each
// one into the rolling store, chart every ward and embed the charts back into the
// spreadsheet, then persist the store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/analysis"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/charts"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/history"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/sheet"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/store"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

// ErrNoInputFiles means no spreadsheet exists inside the window; nothing was changed.
var ErrNoInputFiles = errors.New("no input files in window")

// DateResult describes what happened to one input date.
type DateResult struct {
	Date     civil.Date
	Path     string
	Rooms    int
	Charts   int
	Embedded bool
}

// Summary describes a finished run.
type Summary struct {
	AsOf       civil.Date
	Window     analysis.Window
	Dates      []DateResult
	Charts     int
	Embedded   int
	Totals     analysis.Totals
	Duplicates int
	RunCount   int
	Elapsed    time.Duration
}

// Run executes one invocation against the given store backend.
func Run(ctx context.Context, cfg Config, backend store.Backend) (Summary, error) {
	start := time.Now()
	var sum Summary
	if err := cfg.Validate(); err != nil {
		return sum, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.ResetStore {
		if err := backend.Delete(ctx); err != nil {
			return sum, fmt.Errorf("reset store %s: %w", backend.Describe(), err)
		}
		fmt.Printf("persisted store removed: %s\n", backend.Describe())
	}

	sum.AsOf = cfg.ReferenceDate(start)
	sum.Window = analysis.WindowEnding(sum.AsOf, cfg.WindowDays)
	files := FindInputFiles(cfg.BaseDir, cfg.FolderLayout, cfg.InputFileName, sum.Window)
	if len(files) == 0 {
		fmt.Printf("no input files within %d days of %s\n", cfg.WindowDays, sum.AsOf)
		return sum, ErrNoInputFiles
	}

	snap := store.Load(ctx, backend)
	axisDates := Dates(files)

	fmt.Printf("\ngenerating charts per date... (%d files)\n", len(files))
	for i, in := range files {
		fmt.Printf("\n[%d/%d] processing %s - %s\n", i+1, len(files), in.Date, filepath.Base(filepath.Dir(in.Path)))
		res, err := processDate(cfg, snap.Data, in, axisDates)
		sum.Dates = append(sum.Dates, res)
		sum.Charts += res.Charts
		if res.Embedded {
			sum.Embedded += res.Charts
		}
		if err != nil {
			return sum, fmt.Errorf("%s: %w", in.Date, err)
		}
	}

	if bad := analysis.CheckConsistency(snap.Data); len(bad) > 0 {
		runlog.Errorf("store holds %d rooms filed under the wrong ward: %v", len(bad), bad)
	}
	dups := analysis.DuplicateDates(snap.Data)
	if len(dups) > 0 {
		runlog.Warnf("%d room/date pairs hold more than one reading; a date was ingested more than once (reset the store to rebuild)", len(dups))
		for _, d := range dups {
			runlog.Debugf("duplicate %s/%s/%s %s x%d", d.Facility, d.Ward, d.Room, d.Date, d.Count)
		}
	}
	sum.Duplicates = len(dups)

	snap.RunCount++
	if err := store.Save(ctx, backend, snap); err != nil {
		return sum, err
	}
	sum.RunCount = snap.RunCount
	sum.Totals = analysis.Count(snap.Data)
	sum.Elapsed = time.Since(start)

	if cfg.MetricsTextfile != "" {
		if err := WriteMetrics(cfg.MetricsTextfile, sum); err != nil {
			runlog.Warnf("metrics textfile: %v", err)
		}
	}
	if cfg.History {
		id, err := history.Record(ctx, history.Config{URL: cfg.HistoryURL, Schema: cfg.HistorySchema}, sum.historyRecord(cfg.WindowDays))
		if err != nil {
			runlog.Warnf("history not recorded: %v", err)
		} else {
			runlog.Infof("history run %s recorded", id)
		}
	}
	return sum, nil
}

// processDate folds one spreadsheet into acc, charts every ward as of that date and
// embeds the charts into the same spreadsheet. The scratch directory is always removed.
func processDate(cfg Config, acc types.Accumulated, in InputFile, axisDates []civil.Date) (DateResult, error) {
	res := DateResult{Date: in.Date, Path: in.Path}

	scores := sheet.ReadScores(in.Path)
	res.Rooms = scores.Len()
	added := analysis.Merge(acc, in.Date, scores)
	pruned := analysis.Prune(acc, in.Date, cfg.WindowDays)
	runlog.Debugf("%s: %d readings merged, %d pruned", in.Date, added, pruned)

	scratch := filepath.Join(cfg.ScratchRoot, "plotImg_"+in.Date.In(time.UTC).Format("20060102"))
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return res, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			runlog.Warnf("remove %s: %v", scratch, err)
		}
	}()

	renderer := charts.NewRenderer(charts.Options{OutDir: scratch, Width: cfg.ChartWidth, Height: cfg.ChartHeight})
	images, err := renderer.RenderDate(acc, in.Date, cfg.WindowDays, axisDates)
	if err != nil {
		return res, fmt.Errorf("render: %w", err)
	}
	res.Charts = types.CountImages(images)
	if res.Charts == 0 {
		runlog.Infof("%s: nothing to chart", in.Date)
		return res, nil
	}

	er, err := sheet.Embed(in.Path, images, cfg.RowStride)
	if err != nil {
		return res, fmt.Errorf("embed: %w", err)
	}
	res.Embedded = !er.Skipped
	runlog.Debugf("%s: %d images on %d sheets, %d replaced", in.Date, er.Images, er.Sheets, er.Replaced)
	return res, nil
}

func (s Summary) historyRecord(windowDays int) history.RunRecord {
	rec := history.RunRecord{
		AsOf:       s.AsOf,
		WindowDays: windowDays,
		RunCount:   s.RunCount,
		Rooms:      s.Totals.Rooms,
		Readings:   s.Totals.Readings,
		Duplicates: s.Duplicates,
	}
	for _, d := range s.Dates {
		rec.Dates = append(rec.Dates, history.DateRecord{
			Date:     d.Date,
			Path:     d.Path,
			Rooms:    d.Rooms,
			Charts:   d.Charts,
			Embedded: d.Embedded,
		})
	}
	return rec
}

// PrintSummary writes the end-of-run report.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nwindow:    %s ~ %s\n", s.Window.Start, s.Window.End)
	fmt.Fprintf(w, "files:     %d\n", len(s.Dates))
	fmt.Fprintf(w, "charts:    %d rendered, %d embedded\n", s.Charts, s.Embedded)
	fmt.Fprintf(w, "store:     %d facilities, %d wards, %d rooms, %d readings\n",
		s.Totals.Facilities, s.Totals.Wards, s.Totals.Rooms, s.Totals.Readings)
	if s.Duplicates > 0 {
		fmt.Fprintf(w, "warning:   %d duplicated room/date readings\n", s.Duplicates)
	}
	fmt.Fprintf(w, "run count: %d (%.1fs)\n", s.RunCount, s.Elapsed.Seconds())
	fmt.Fprintln(w, "\nall charts generated and saved")
}
