package dataset

import (
	"math"
	"slices"
)

// DefaultDataMax is the magnitude used when no dataset has yet established one.
const DefaultDataMax = 0.75

// Dataset is an immutable, sorted snapshot of the chart records.
type Dataset struct {
	Records []Record `json:"records"`
	Labels  []string `json:"labels"`
	DataMax float64  `json:"data_max"`
}

// New copies recs, sorts the copy by s and derives labels and the magnitude
// extremum. previous is the extremum of the prior snapshot (0 when none).
func New(recs []Record, s SortState, previous, fallback float64, names CompareFunc) Dataset {
	sorted := slices.Clone(recs)
	Sort(sorted, s, names)
	return Dataset{
		Records: sorted,
		Labels:  Labels(sorted),
		DataMax: DataMax(sorted, previous, fallback),
	}
}

// Resort returns a copy of d ordered by s. The extremum is unchanged.
func (d Dataset) Resort(s SortState, names CompareFunc) Dataset {
	sorted := slices.Clone(d.Records)
	Sort(sorted, s, names)
	return Dataset{Records: sorted, Labels: Labels(sorted), DataMax: d.DataMax}
}

// Lookup returns the record with the given key.
func (d Dataset) Lookup(key string) (Record, bool) {
	for _, r := range d.Records {
		if r.Key == key {
			return r, true
		}
	}
	return Record{}, false
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// DataMax returns the largest absolute value in recs. For an empty input it
// returns previous when one was established, else fallback, so an emptied
// chart keeps a non-degenerate domain.
func DataMax(recs []Record, previous, fallback float64) float64 {
	if len(recs) == 0 {
		if previous > 0 {
			return previous
		}
		return fallback
	}
	m := 0.0
	for _, r := range recs {
		m = math.Max(m, math.Abs(r.Value))
	}
	return m
}
