package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/analysis"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
)

// InputFile is one dated spreadsheet found on disk.
type InputFile struct {
	Date civil.Date
	Path string
}

// InputPath is the conventional location of the spreadsheet for d.
func InputPath(base, folderLayout, fileName string, d civil.Date) string {
	return filepath.Join(base, "excels", d.In(time.UTC).Format(folderLayout), fileName)
}

// FindInputFiles probes every date of w, oldest first, and returns those whose
// spreadsheet exists. An empty result is not an error.
func FindInputFiles(base, folderLayout, fileName string, w analysis.Window) []InputFile {
	var out []InputFile
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		path := InputPath(base, folderLayout, fileName, d)
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			continue
		}
		fmt.Printf("found: %s/%s\n", filepath.Base(filepath.Dir(path)), fileName)
		out = append(out, InputFile{Date: d, Path: path})
	}
	runlog.Debugf("discovery %s ~ %s: %d files", w.Start, w.End, len(out))
	return out
}

// Dates returns the dates of files in order.
func Dates(files []InputFile) []civil.Date {
	out := make([]civil.Date, len(files))
	for i, f := range files {
		out[i] = f.Date
	}
	return out
}
