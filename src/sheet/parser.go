// Package sheet reads room scores out of the daily EDSD workbooks and writes trend charts back into them.
package sheet

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

const (
	// LayoutHeaderCell decides which column pair carries the data.
	LayoutHeaderCell = "B3"
	// LegacyHeader is the B3 value of the older export format.
	LegacyHeader = "병실"
	// FirstDataRow is the 1-based row where room rows begin.
	FirstDataRow = 4
)

// Layout names the zero-based columns holding the room identifier and its score.
type Layout struct {
	Name     string
	RoomCol  int
	ScoreCol int
}

var (
	// LegacyLayout reads B (room) and C (score).
	LegacyLayout = Layout{Name: "legacy", RoomCol: 1, ScoreCol: 2}
	// ShiftedLayout reads C (room) and D (score).
	ShiftedLayout = Layout{Name: "shifted", RoomCol: 2, ScoreCol: 3}
)

// DetectLayout picks the column pair from the layout header cell.
func DetectLayout(header string) Layout {
	if strings.TrimSpace(header) == LegacyHeader {
		return LegacyLayout
	}
	return ShiftedLayout
}

// ParseRows extracts scores from data rows (already offset to FirstDataRow).
// Rows with an empty cell, a malformed room identifier or a non-numeric score are skipped.
// A room seen twice keeps the later score.
func ParseRows(rows [][]string, layout Layout) types.FileScores {
	scores := types.FileScores{}
	for i, row := range rows {
		room := cell(row, layout.RoomCol)
		raw := cell(row, layout.ScoreCol)
		if room == "" || raw == "" {
			continue
		}
		id, ok := types.ParseRoomID(room)
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			runlog.Debugf("row %d: room %s has non-numeric score %q", FirstDataRow+i, room, raw)
			continue
		}
		scores.Set(id, score)
	}
	return scores
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ReadScores opens the workbook at path and parses its active sheet.
// Any failure to open or read yields an empty result; the caller skips it.
func ReadScores(path string) types.FileScores {
	f, err := excelize.OpenFile(path)
	if err != nil {
		runlog.Warnf("open %s: %v", path, err)
		return types.FileScores{}
	}
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	header, err := f.GetCellValue(sheetName, LayoutHeaderCell)
	if err != nil {
		runlog.Warnf("read %s!%s in %s: %v", sheetName, LayoutHeaderCell, path, err)
		return types.FileScores{}
	}
	layout := DetectLayout(header)
	runlog.Debugf("%s: header %s=%q -> %s layout", path, LayoutHeaderCell, header, layout.Name)

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		runlog.Warnf("read rows of %s in %s: %v", sheetName, path, err)
		return types.FileScores{}
	}
	if len(rows) < FirstDataRow {
		return types.FileScores{}
	}
	return ParseRows(rows[FirstDataRow-1:], layout)
}
