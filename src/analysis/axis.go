package analysis

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// Axis is the compressed categorical x-axis: position i stands for Dates[i].
// Only days that had a source file get a position, so gaps do not stretch the chart.
type Axis struct {
	Dates []civil.Date
	index map[civil.Date]int
}

// BuildAxis sorts and deduplicates dates, keeping only those inside w.
func BuildAxis(dates []civil.Date, w Window) Axis {
	seen := make(map[civil.Date]bool, len(dates))
	var kept []civil.Date
	for _, d := range dates {
		if !w.Contains(d) || seen[d] {
			continue
		}
		seen[d] = true
		kept = append(kept, d)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
	idx := make(map[civil.Date]int, len(kept))
	for i, d := range kept {
		idx[d] = i
	}
	return Axis{Dates: kept, index: idx}
}

// AxisFor builds the axis from the discovered file dates, or from fallback
// (the dates present in the ward's own data) when no file dates were supplied.
func AxisFor(fileDates, fallback []civil.Date, w Window) Axis {
	if fileDates != nil {
		return BuildAxis(fileDates, w)
	}
	return BuildAxis(fallback, w)
}

// Index returns the axis position of d.
func (a Axis) Index(d civil.Date) (int, bool) {
	i, ok := a.index[d]
	return i, ok
}

// Len is the number of positions.
func (a Axis) Len() int { return len(a.Dates) }

// Labels formats every axis date with layout (Go reference time).
func (a Axis) Labels(layout string) []string {
	out := make([]string, len(a.Dates))
	for i, d := range a.Dates {
		out[i] = d.In(time.UTC).Format(layout)
	}
	return out
}
