package sheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

// DefaultRowStride is the row distance between stacked chart images.
const DefaultRowStride = 24

// EmbedResult reports what Embed did to one workbook.
type EmbedResult struct {
	Skipped  bool // destination workbook missing
	Sheets   int
	Images   int
	Replaced int // pictures removed before inserting
}

// Embed writes the charts into the workbook at path, one sheet per facility.
// Existing pictures on a target sheet are removed first so repeated runs do not pile up images.
// A missing workbook is logged and skipped.
func Embed(path string, charts []types.FacilityCharts, rowStride int) (EmbedResult, error) {
	var res EmbedResult
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("workbook not found, skipping embed: %s\n", path)
			runlog.Warnf("embed skipped, %s does not exist", path)
			res.Skipped = true
			return res, nil
		}
		return res, err
	}
	if rowStride <= 0 {
		rowStride = DefaultRowStride
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return res, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	for _, fc := range charts {
		sheetName := types.SheetNameFor(fc.Facility)
		removed, err := prepareSheet(f, sheetName)
		if err != nil {
			return res, err
		}
		res.Replaced += removed
		res.Sheets++

		row := 1
		for _, img := range fc.Images {
			anchor, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return res, err
			}
			opts := &excelize.GraphicOptions{AltText: fmt.Sprintf("%s ward %s", fc.Facility, img.Ward)}
			if err := f.AddPicture(sheetName, anchor, img.Path, opts); err != nil {
				return res, fmt.Errorf("add %s to %s!%s: %w", img.Path, sheetName, anchor, err)
			}
			res.Images++
			row += rowStride
		}
	}

	if err := f.Save(); err != nil {
		return res, fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Printf("workbook updated: %s\n", path)
	return res, nil
}

// prepareSheet creates the sheet or clears every picture already on it.
func prepareSheet(f *excelize.File, name string) (int, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return 0, err
	}
	if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return 0, fmt.Errorf("create sheet %s: %w", name, err)
		}
		return 0, nil
	}
	cells, err := f.GetPictureCells(name)
	if err != nil {
		return 0, fmt.Errorf("list pictures on %s: %w", name, err)
	}
	removed := 0
	for _, c := range cells {
		if err := f.DeletePicture(name, c); err != nil {
			return removed, fmt.Errorf("delete picture %s!%s: %w", name, c, err)
		}
		removed++
	}
	return removed, nil
}
