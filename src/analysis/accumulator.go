package analysis

import (
	"cloud.google.com/go/civil"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

// Window is an inclusive calendar-day range.
type Window struct {
	Start civil.Date
	End   civil.Date
}

// WindowEnding returns [end-days, end].
func WindowEnding(end civil.Date, days int) Window {
	return Window{Start: end.AddDays(-days), End: end}
}

// Contains reports whether d lies inside the window.
func (w Window) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Merge appends a reading dated date to every room present in scores,
// creating facility, ward and room entries on first sight.
// Readings for a date already present are appended again, not replaced;
// use DuplicateDates to detect double ingestion.
func Merge(acc types.Accumulated, date civil.Date, scores types.FileScores) int {
	added := 0
	for facility, wards := range scores {
		fw, ok := acc[facility]
		if !ok {
			fw = types.FacilityWards{}
			acc[facility] = fw
		}
		for ward, rooms := range wards {
			wr, ok := fw[ward]
			if !ok {
				wr = types.WardRooms{}
				fw[ward] = wr
			}
			for room, score := range rooms {
				wr[room] = append(wr[room], types.Reading{Date: date, Score: score})
				added++
			}
		}
	}
	return added
}

// Prune drops, in place, every reading dated before ref-windowDays. Rooms left empty are kept.
// It returns the number of readings removed.
func Prune(acc types.Accumulated, ref civil.Date, windowDays int) int {
	cutoff := ref.AddDays(-windowDays)
	removed := 0
	for _, wards := range acc {
		for _, rooms := range wards {
			for room, series := range rooms {
				kept := series[:0]
				for _, r := range series {
					if r.Date.Before(cutoff) {
						removed++
						continue
					}
					kept = append(kept, r)
				}
				rooms[room] = kept
			}
		}
	}
	return removed
}

// Filter returns the readings of series that fall inside w, in their original order.
func Filter(series types.RoomSeries, w Window) types.RoomSeries {
	var out types.RoomSeries
	for _, r := range series {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Duplicate identifies a room holding more than one reading for the same date.
type Duplicate struct {
	Facility string
	Ward     string
	Room     string
	Date     civil.Date
	Count    int
}

// DuplicateDates lists rooms with repeated dates, which happens when a date is ingested twice.
func DuplicateDates(acc types.Accumulated) []Duplicate {
	var out []Duplicate
	for _, facility := range types.SortedKeys(acc) {
		for _, ward := range types.SortedKeys(acc[facility]) {
			rooms := acc[facility][ward]
			for _, room := range types.SortedKeys(rooms) {
				counts := map[civil.Date]int{}
				var order []civil.Date
				for _, r := range rooms[room] {
					if counts[r.Date] == 0 {
						order = append(order, r.Date)
					}
					counts[r.Date]++
				}
				for _, d := range order {
					if counts[d] > 1 {
						out = append(out, Duplicate{Facility: facility, Ward: ward, Room: room, Date: d, Count: counts[d]})
					}
				}
			}
		}
	}
	return out
}

// Totals summarizes the store size.
type Totals struct {
	Facilities int
	Wards      int
	Rooms      int
	Readings   int
}

// Count walks the store and returns its totals.
func Count(acc types.Accumulated) Totals {
	var t Totals
	t.Facilities = len(acc)
	for _, wards := range acc {
		t.Wards += len(wards)
		for _, rooms := range wards {
			t.Rooms += len(rooms)
			for _, series := range rooms {
				t.Readings += len(series)
			}
		}
	}
	return t
}

// CheckConsistency returns the rooms whose ward component disagrees with the ward key they are stored under.
func CheckConsistency(acc types.Accumulated) []string {
	var bad []string
	for facility, wards := range acc {
		for ward, rooms := range wards {
			for room := range rooms {
				if types.WardOf(room) != ward {
					bad = append(bad, facility+"/"+ward+"/"+room)
				}
			}
		}
	}
	return bad
}
