package types

import (
	"reflect"
	"testing"
)

func TestParseRoomID(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want RoomID
	}{
		{"211_1_jj", true, RoomID{Facility: "jj", Ward: "211", Room: "211-1"}},
		{"211_1", true, RoomID{Facility: DefaultFacility, Ward: "211", Room: "211-1"}},
		{"305_12_gj", true, RoomID{Facility: "gj", Ward: "305", Room: "305-12"}},
		{"병실", false, RoomID{}},
		{"211-1", false, RoomID{}},
		{"211_1_JJ", false, RoomID{}},
		{"211_1_jj_x", false, RoomID{}},
		{"", false, RoomID{}},
	}
	for _, c := range cases {
		got, ok := ParseRoomID(c.raw)
		if ok != c.ok {
			t.Fatalf("ParseRoomID(%q) ok=%v want %v", c.raw, ok, c.ok)
		}
		if got != c.want {
			t.Fatalf("ParseRoomID(%q)=%+v want %+v", c.raw, got, c.want)
		}
	}
}

func TestParseRoomIDIsPure(t *testing.T) {
	a, _ := ParseRoomID("211_1_jj")
	b, _ := ParseRoomID("211_1_jj")
	if a != b {
		t.Fatalf("decomposition differs between calls: %+v vs %+v", a, b)
	}
	if WardOf(a.Room) != a.Ward {
		t.Fatalf("ward %q inconsistent with room %q", a.Ward, a.Room)
	}
}

func TestSheetNameFor(t *testing.T) {
	if got := SheetNameFor("jj"); got != "전남제일(화순)" {
		t.Fatalf("jj -> %q", got)
	}
	if got := SheetNameFor("zz"); got != "zz" {
		t.Fatalf("unknown code should fall back to itself, got %q", got)
	}
}

func TestSortedKeysNatural(t *testing.T) {
	m := map[string]int{"211-10": 0, "211-2": 0, "211-1": 0, "105-3": 0}
	got := SortedKeys(m)
	want := []string{"105-3", "211-1", "211-2", "211-10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFileScoresLastWins(t *testing.T) {
	fs := FileScores{}
	id, _ := ParseRoomID("211_1")
	fs.Set(id, 3)
	fs.Set(id, 5)
	if fs[DefaultFacility]["211"]["211-1"] != 5 {
		t.Fatalf("expected last write to win, got %v", fs[DefaultFacility]["211"]["211-1"])
	}
	if fs.Len() != 1 {
		t.Fatalf("expected 1 room, got %d", fs.Len())
	}
}
