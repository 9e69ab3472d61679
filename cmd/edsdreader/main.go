package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/analysis"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/store"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

func main() {
	var facility string
	flag.StringVar(&facility, "facility", "", "Optional facility code filter (exact match)")
	flag.Parse()

	ctx := context.Background()
	backend, err := store.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close(backend)

	snap := store.Load(ctx, backend)
	fmt.Printf("Store: %s\n", backend.Describe())
	if err := printSnapshot(os.Stdout, snap, facility); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rows flattens the store into one row per room, in natural facility/ward/room order.
func rows(snap types.Snapshot, facility string) [][]string {
	var out [][]string
	for _, fac := range types.SortedKeys(snap.Data) {
		if facility != "" && fac != facility {
			continue
		}
		for _, ward := range types.SortedKeys(snap.Data[fac]) {
			rooms := snap.Data[fac][ward]
			for _, room := range types.SortedKeys(rooms) {
				series := rooms[room]
				first, last, score := "-", "-", "-"
				if len(series) > 0 {
					first = series[0].Date.String()
					last = series[len(series)-1].Date.String()
					score = strconv.FormatFloat(series[len(series)-1].Score, 'f', -1, 64)
				}
				out = append(out, []string{fac, ward, room, strconv.Itoa(len(series)), first, last, score})
			}
		}
	}
	return out
}

func printSnapshot(w io.Writer, snap types.Snapshot, facility string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header([]string{"facility", "ward", "room", "readings", "first", "last", "last score"})
	if err := table.Bulk(rows(snap, facility)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	t := analysis.Count(snap.Data)
	fmt.Fprintf(w, "Run count: %d\n", snap.RunCount)
	fmt.Fprintf(w, "Totals: %d facilities, %d wards, %d rooms, %d readings\n", t.Facilities, t.Wards, t.Rooms, t.Readings)
	if dups := analysis.DuplicateDates(snap.Data); len(dups) > 0 {
		fmt.Fprintf(w, "Duplicated room/date readings: %d\n", len(dups))
	}
	return nil
}
