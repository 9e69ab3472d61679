package analysis

import (
	"reflect"
	"testing"

	"cloud.google.com/go/civil"
)

func TestBuildAxisSortedDedupedWithinWindow(t *testing.T) {
	w := Window{Start: day("2024-01-01"), End: day("2024-01-10")}
	in := []civil.Date{day("2024-01-05"), day("2023-12-31"), day("2024-01-01"), day("2024-01-05"), day("2024-01-11"), day("2024-01-03")}
	a := BuildAxis(in, w)
	want := []civil.Date{day("2024-01-01"), day("2024-01-03"), day("2024-01-05")}
	if !reflect.DeepEqual(a.Dates, want) {
		t.Fatalf("axis=%v want %v", a.Dates, want)
	}
	for i := 1; i < len(a.Dates); i++ {
		if !a.Dates[i-1].Before(a.Dates[i]) {
			t.Fatalf("axis not strictly sorted: %v", a.Dates)
		}
	}
	for _, d := range a.Dates {
		if !w.Contains(d) {
			t.Fatalf("%v outside window", d)
		}
	}
	if i, ok := a.Index(day("2024-01-05")); !ok || i != 2 {
		t.Fatalf("index of 01-05 = %d,%v", i, ok)
	}
	if _, ok := a.Index(day("2024-01-02")); ok {
		t.Fatalf("gap day should have no index")
	}
}

func TestAxisSkipsGapDays(t *testing.T) {
	w := WindowEnding(day("2024-01-03"), 30)
	a := BuildAxis([]civil.Date{day("2024-01-01"), day("2024-01-03")}, w)
	if a.Len() != 2 {
		t.Fatalf("expected 2 positions, got %d", a.Len())
	}
	if got := a.Labels("2006-01-02"); !reflect.DeepEqual(got, []string{"2024-01-01", "2024-01-03"}) {
		t.Fatalf("labels=%v", got)
	}
}

func TestAxisForFallback(t *testing.T) {
	w := WindowEnding(day("2024-01-10"), 30)
	ward := []civil.Date{day("2024-01-09"), day("2024-01-02")}
	if a := AxisFor(nil, ward, w); a.Len() != 2 || a.Dates[0] != day("2024-01-02") {
		t.Fatalf("fallback axis=%v", a.Dates)
	}
	files := []civil.Date{day("2024-01-01"), day("2024-01-02"), day("2024-01-09")}
	if a := AxisFor(files, ward, w); a.Len() != 3 {
		t.Fatalf("file axis=%v", a.Dates)
	}
	if a := AxisFor([]civil.Date{}, ward, w); a.Len() != 0 {
		t.Fatalf("explicit empty file set must not fall back, got %v", a.Dates)
	}
}
