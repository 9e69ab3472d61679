package sheet

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

// writeWorkbook creates a workbook whose active sheet has the given header in B3
// and the given rows starting at row 4 in column startCol (1-based).
func writeWorkbook(t *testing.T, header string, startCol int, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetCellValue(sheet, "B3", header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(startCol, FirstDataRow+i)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "edsd_score_output.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestDetectLayout(t *testing.T) {
	if l := DetectLayout("병실"); l != LegacyLayout {
		t.Fatalf("legacy header -> %+v", l)
	}
	if l := DetectLayout(" 병실 "); l != LegacyLayout {
		t.Fatalf("padded legacy header -> %+v", l)
	}
	if l := DetectLayout("번호"); l != ShiftedLayout {
		t.Fatalf("other header -> %+v", l)
	}
	if l := DetectLayout(""); l != ShiftedLayout {
		t.Fatalf("empty header -> %+v", l)
	}
}

func TestParseRowsFiltersAndDecomposes(t *testing.T) {
	rows := [][]string{
		{"", "211_1", "2"},
		{"", "211_2_jj", "0"},
		{"", "합계", "12"},
		{"", "211_3", ""},
		{"", "", "4"},
		{"", "211_4", "n/a"},
		{"", "211_1", "5"},
		{"", "305_10_gj", "1.5"},
		{""},
	}
	got := ParseRows(rows, LegacyLayout)
	if got.Len() != 3 {
		t.Fatalf("expected 3 rooms, got %d: %v", got.Len(), got)
	}
	if v := got[types.DefaultFacility]["211"]["211-1"]; v != 5 {
		t.Fatalf("211-1 = %v want 5 (last wins)", v)
	}
	if v, ok := got["jj"]["211"]["211-2"]; !ok || v != 0 {
		t.Fatalf("211-2 jj = %v,%v want 0,true", v, ok)
	}
	if v := got["gj"]["305"]["305-10"]; v != 1.5 {
		t.Fatalf("305-10 gj = %v want 1.5", v)
	}
}

func TestReadScoresLegacyLayout(t *testing.T) {
	path := writeWorkbook(t, "병실", 2, [][]interface{}{
		{"211_1", 2},
		{"211_2_jj", 0},
	})
	got := ReadScores(path)
	if got[types.DefaultFacility]["211"]["211-1"] != 2 {
		t.Fatalf("unexpected scores: %v", got)
	}
	if _, ok := got["jj"]["211"]["211-2"]; !ok {
		t.Fatalf("missing jj room: %v", got)
	}
}

func TestReadScoresShiftedLayout(t *testing.T) {
	path := writeWorkbook(t, "순번", 3, [][]interface{}{
		{"102_3_h", 7},
		{"not a room", 1},
	})
	got := ReadScores(path)
	if got.Len() != 1 || got["h"]["102"]["102-3"] != 7 {
		t.Fatalf("unexpected scores: %v", got)
	}
}

func TestReadScoresMissingFileIsEmpty(t *testing.T) {
	got := ReadScores(filepath.Join(t.TempDir(), "nope.xlsx"))
	if got == nil || got.Len() != 0 {
		t.Fatalf("expected empty non-nil scores, got %v", got)
	}
}

func TestReadScoresIgnoresNumberFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	cells := map[string]interface{}{"B3": LegacyHeader, "B4": "211_1", "C4": 2.5, "B5": "211_2", "C5": 1234}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	if err := f.SetCellStyle(sheet, "C5", "C5", thousands); err != nil {
		t.Fatalf("set style: %v", err)
	}
	path := filepath.Join(t.TempDir(), "edsd_score_output.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := ReadScores(path)
	if v, ok := got[types.DefaultFacility]["211"]["211-2"]; !ok || v != 1234 {
		t.Fatalf("formatted score lost: %v", got)
	}
	if got[types.DefaultFacility]["211"]["211-1"] != 2.5 {
		t.Fatalf("unexpected scores: %v", got)
	}
}
