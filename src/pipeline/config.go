package pipeline

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/charts"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/history"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/sheet"
)

// Config controls one pipeline run.
type Config struct {
	BaseDir         string // holds the excels/<date>/ folders
	WindowDays      int
	FolderLayout    string // time layout of the per-date folder name
	InputFileName   string
	ScratchRoot     string // parent of the plotImg_<date> directories
	RowStride       int
	ChartWidth      int
	ChartHeight     int
	Today           civil.Date // zero means wall clock
	MetricsTextfile string
	ResetStore      bool
	History         bool
	HistoryURL      string
	HistorySchema   string
}

func (c Config) Validate() error {
	if c.BaseDir == "" {
		return errors.New("missing base dir")
	}
	if c.WindowDays <= 0 {
		return errors.New("window must be > 0 days")
	}
	if c.FolderLayout == "" {
		return errors.New("missing folder layout")
	}
	if c.InputFileName == "" {
		return errors.New("missing input file name")
	}
	if c.RowStride <= 0 {
		return errors.New("row stride must be > 0")
	}
	if c.ChartWidth < 0 || c.ChartHeight < 0 {
		return errors.New("chart size must be >= 0")
	}
	if c.History && c.HistorySchema == "" {
		return errors.New("history enabled without a schema")
	}
	return nil
}

// DefaultConfig returns the settings used by a bare invocation.
func DefaultConfig() Config {
	return Config{
		BaseDir:       ".",
		WindowDays:    30,
		FolderLayout:  "2006_01_02",
		InputFileName: "edsd_score_output.xlsx",
		ScratchRoot:   ".",
		RowStride:     sheet.DefaultRowStride,
		ChartWidth:    charts.DefaultWidth,
		ChartHeight:   charts.DefaultHeight,
		HistorySchema: history.DefaultSchema,
	}
}

// ReferenceDate is the configured "today", or the local calendar date when unset.
func (c Config) ReferenceDate(now time.Time) civil.Date {
	if c.Today != (civil.Date{}) {
		return c.Today
	}
	return civil.DateOf(now)
}
