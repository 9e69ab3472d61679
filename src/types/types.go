// Package types holds the data model shared by the parser, accumulator, renderer and store.
package types

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// DefaultFacility is the facility code assumed when a room identifier carries no suffix.
const DefaultFacility = "yn"

// Reading is one (date, score) observation for a room.
type Reading struct {
	Date  civil.Date `json:"date"`
	Score float64    `json:"score"`
}

// RoomSeries holds a room's readings in ingestion order. Duplicate dates are allowed.
type RoomSeries []Reading

// WardRooms maps a normalized room identifier ("211-1") to its series.
type WardRooms map[string]RoomSeries

// FacilityWards maps a ward ("211") to its rooms.
type FacilityWards map[string]WardRooms

// Accumulated is the rolling store: facility code -> ward -> room -> series.
type Accumulated map[string]FacilityWards

// FileScores is the single-date snapshot parsed from one spreadsheet:
// facility code -> ward -> room -> score.
type FileScores map[string]map[string]map[string]float64

// Snapshot is what gets persisted between runs.
type Snapshot struct {
	RunCount int         `json:"run_count"`
	Data     Accumulated `json:"data"`
}

// NewSnapshot returns an empty snapshot with counter 0.
func NewSnapshot() Snapshot {
	return Snapshot{Data: Accumulated{}}
}

// Set stores score for the room, creating intermediate maps. Later calls overwrite earlier ones.
func (fs FileScores) Set(id RoomID, score float64) {
	wards, ok := fs[id.Facility]
	if !ok {
		wards = map[string]map[string]float64{}
		fs[id.Facility] = wards
	}
	rooms, ok := wards[id.Ward]
	if !ok {
		rooms = map[string]float64{}
		wards[id.Ward] = rooms
	}
	rooms[id.Room] = score
}

// Len counts the rooms in the snapshot.
func (fs FileScores) Len() int {
	n := 0
	for _, wards := range fs {
		for _, rooms := range wards {
			n += len(rooms)
		}
	}
	return n
}

var roomPattern = regexp.MustCompile(`^(\d+)_(\d+)(?:_([a-z]+))?$`)

// RoomID is a decomposed room identifier.
type RoomID struct {
	Facility string // "jj"; DefaultFacility when the raw identifier had no suffix
	Ward     string // "211"
	Room     string // "211-1"
}

// ParseRoomID decomposes a raw identifier such as "211_1" or "211_1_jj".
// It reports false for anything not matching `^\d+_\d+(?:_[a-z]+)?$`.
func ParseRoomID(raw string) (RoomID, bool) {
	m := roomPattern.FindStringSubmatch(raw)
	if m == nil {
		return RoomID{}, false
	}
	facility := m[3]
	if facility == "" {
		facility = DefaultFacility
	}
	return RoomID{
		Facility: facility,
		Ward:     m[1],
		Room:     m[1] + "-" + m[2],
	}, true
}

// WardOf returns the ward component of a normalized room identifier.
func WardOf(room string) string {
	ward, _, _ := strings.Cut(room, "-")
	return ward
}

// naturalLess orders digit runs numerically so "211-2" sorts before "211-10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ai, bi := digitPrefix(a), digitPrefix(b)
		if ai > 0 && bi > 0 {
			an, _ := strconv.Atoi(a[:ai])
			bn, _ := strconv.Atoi(b[:bi])
			if an != bn {
				return an < bn
			}
			a, b = a[ai:], b[bi:]
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func digitPrefix(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// SortedKeys returns map keys in natural order (numeric runs compared as numbers).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
	return keys
}

// ChartImage is one rendered ward chart on disk.
type ChartImage struct {
	Ward string
	Path string
}

// FacilityCharts groups a facility's ward charts in the order they are stacked on its sheet.
type FacilityCharts struct {
	Facility string
	Images   []ChartImage
}

// CountImages returns the number of images across all facilities.
func CountImages(charts []FacilityCharts) int {
	n := 0
	for _, fc := range charts {
		n += len(fc.Images)
	}
	return n
}
