// EDSD score chart reporter entrypoint.
//
// A bare invocation processes every <base>/excels/<YYYY_MM_DD>/edsd_score_output.xlsx
// within the last 30 days, oldest first. For each date the room scores are folded into
// the persisted rolling store, one trend chart per ward is rendered as of that date and
// the charts are embedded into the facility sheets of the same workbook.
//
// Design notes:
// - The store is loaded once and saved once; an aborted run leaves it untouched.
// - Charts use a compressed date axis: only dates that had a workbook get a tick.
// - Store backend comes from EDSD_STORE_DRIVER (file|sqlite|s3), see package store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/history"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/pipeline"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/store"
)

func main() {
	cfg := pipeline.DefaultConfig()
	flag.StringVar(&cfg.BaseDir, "base", cfg.BaseDir, "Directory holding the excels/<YYYY_MM_DD>/ folders")
	flag.IntVar(&cfg.WindowDays, "window", cfg.WindowDays, "Trailing days of readings kept and plotted")
	flag.StringVar(&cfg.ScratchRoot, "scratch", cfg.ScratchRoot, "Parent directory for the temporary plotImg_<date> folders")
	flag.IntVar(&cfg.ChartWidth, "chart-width", cfg.ChartWidth, "Chart width in pixels")
	flag.IntVar(&cfg.ChartHeight, "chart-height", cfg.ChartHeight, "Chart height in pixels")
	flag.StringVar(&cfg.MetricsTextfile, "metrics-textfile", "", "Write run metrics in node_exporter textfile format to this path (optional)")
	flag.BoolVar(&cfg.ResetStore, "reset-store", false, "Delete the persisted store before processing")
	flag.BoolVar(&cfg.History, "history", false, "Record the run in Postgres (EDSD_HISTORY_DB_URL or DATABASE_URL)")
	flag.StringVar(&cfg.HistorySchema, "history-schema", cfg.HistorySchema, "Postgres schema for run history")
	asOf := flag.String("as-of", "", "Reference date YYYY-MM-DD used instead of today (reprocess a past window)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	runlog.SetLogLevel(*logLevel)
	if *asOf != "" {
		d, err := civil.ParseDate(*asOf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --as-of %q: %v\n", *asOf, err)
			os.Exit(2)
		}
		cfg.Today = d
	}
	if cfg.History {
		cfg.HistoryURL = history.URLFromEnv()
	}

	ctx := context.Background()
	backend, err := store.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close(backend)
	fmt.Printf("[init] store=%s window=%dd base=%s\n", backend.Describe(), cfg.WindowDays, cfg.BaseDir)

	start := time.Now()
	sum, err := pipeline.Run(ctx, cfg, backend)
	if errors.Is(err, pipeline.ErrNoInputFiles) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		store.Close(backend)
		os.Exit(1)
	}
	pipeline.PrintSummary(os.Stdout, sum)
	runlog.TimeTrack(start, "report run")
}
