package dataset

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortState selects the record order.
type SortState struct {
	ByName    bool `json:"by_name"`
	Ascending bool `json:"ascending"`
}

// DefaultSort orders records by ascending key.
var DefaultSort = SortState{ByName: true, Ascending: true}

// Apply returns s with the non-nil components replaced.
func (s SortState) Apply(byName, ascending *bool) SortState {
	if byName != nil {
		s.ByName = *byName
	}
	if ascending != nil {
		s.Ascending = *ascending
	}
	return s
}

// Cycle returns the next state of the click-to-resort interaction: the sort
// key flips every time and the direction flips whenever the key returns to
// the name.
func (s SortState) Cycle() SortState {
	s.ByName = !s.ByName
	if s.ByName {
		s.Ascending = !s.Ascending
	}
	return s
}

// String returns a compact name such as "name-asc" or "value-desc".
func (s SortState) String() string {
	by, dir := "value", "desc"
	if s.ByName {
		by = "name"
	}
	if s.Ascending {
		dir = "asc"
	}
	return by + "-" + dir
}

// CompareFunc orders two keys.
type CompareFunc func(a, b string) int

// Collator returns a locale-aware key comparison for tag. The returned
// function owns its collator and must not be shared between goroutines.
func Collator(tag language.Tag) CompareFunc {
	c := collate.New(tag)
	return c.CompareString
}

// Sort orders recs in place according to s. Keys are compared with names,
// or with an English collator when names is nil. The sort is stable.
func Sort(recs []Record, s SortState, names CompareFunc) {
	if names == nil {
		names = Collator(language.English)
	}
	compare := func(a, b Record) int {
		if s.ByName {
			return names(a.Key, b.Key)
		}
		return cmp.Compare(a.Value, b.Value)
	}
	if !s.Ascending {
		asc := compare
		compare = func(a, b Record) int { return asc(b, a) }
	}
	slices.SortStableFunc(recs, compare)
}

// Labels returns the record keys in their current order.
func Labels(recs []Record) []string {
	labels := make([]string, len(recs))
	for i, r := range recs {
		labels[i] = r.Key
	}
	return labels
}
