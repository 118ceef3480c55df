package dataset

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/barchart/pkg/errors"
)

// genes is the 22-record coefficient fixture.
var genes = []Record{
	{"ARGF_at", -0.049}, {"DNAJ_at", -0.011}, {"LYSC_at", -0.368}, {"RPLL_at", -0.007},
	{"SPOIISA_at", 0.134}, {"XHLA_at", 0.066}, {"XHLB_at", 0.018}, {"XKDS_at", 0.064},
	{"XLYA_at", 0.024}, {"XTRA_at", 0.195}, {"YBFI_at", -0.099}, {"YCGO_at", 0.348},
	{"YCKE_at", 0.132}, {"YDDK_at", -0.166}, {"YEBC_at", -0.281}, {"YEZB_at", 0.008},
	{"YHCL_at", -0.044}, {"YOAB_at", -0.447}, {"YRVJ_at", -0.034}, {"YURQ_at", 0.105},
	{"YXLD_at", -0.254}, {"YYDA_at", -0.005},
}

func TestClean(t *testing.T) {
	raw := []Raw{
		{Key: "Spaces on Spaces", Value: -123},
		{Key: `"Quotes" on "Quotes"`, Value: 4.56},
		{Key: 123456789.0, Value: json.Number("-20.468")},
		{Key: 0.987654321, Value: float32(13.5)},
		{Key: json.Number("42"), Value: uint8(7)},
	}

	got, err := Clean(raw)
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}

	want := []Record{
		{"Spaces on Spaces", -123},
		{`"Quotes" on "Quotes"`, 4.56},
		{"123456789", -20.468},
		{"0.987654321", 13.5},
		{"42", 7},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Clean() = %v, want %v", got, want)
	}
}

func TestCleanNil(t *testing.T) {
	got, err := Clean(nil)
	if err != nil {
		t.Fatalf("Clean(nil) error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Clean(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestCleanErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []Raw
		code errors.Code
	}{
		{"string value", []Raw{{Key: "a", Value: "0.5"}}, errors.ErrCodeInvalidValue},
		{"missing value", []Raw{{Key: "a"}}, errors.ErrCodeInvalidValue},
		{"nan value", []Raw{{Key: "a", Value: math.NaN()}}, errors.ErrCodeInvalidValue},
		{"bad json number", []Raw{{Key: "a", Value: json.Number("x1")}}, errors.ErrCodeInvalidValue},
		{"bool value", []Raw{{Key: "a", Value: true}}, errors.ErrCodeInvalidValue},
		{"missing key", []Raw{{Value: 1.0}}, errors.ErrCodeInvalidInput},
		{"duplicate key", []Raw{{Key: "a", Value: 1.0}, {Key: "a", Value: 2.0}}, errors.ErrCodeDuplicateKey},
		{"duplicate after coercion", []Raw{{Key: 1.0, Value: 1.0}, {Key: "1", Value: 2.0}}, errors.ErrCodeDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Clean(tt.raw)
			if !errors.Is(err, tt.code) {
				t.Errorf("Clean() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestCleanInfinity(t *testing.T) {
	got, err := Clean([]Raw{{Key: "huge", Value: json.Number("1e400")}})
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if !math.IsInf(got[0].Value, 1) {
		t.Errorf("Value = %v, want +Inf", got[0].Value)
	}
}

func TestDataMax(t *testing.T) {
	tests := []struct {
		name     string
		recs     []Record
		previous float64
		want     float64
	}{
		{"fixture", genes, 0, 0.447},
		{"positive max", []Record{{"a", 0.2}, {"b", -0.1}}, 0, 0.2},
		{"negative max", []Record{{"a", 0.2}, {"b", -0.9}}, 0.5, 0.9},
		{"empty without previous", nil, 0, DefaultDataMax},
		{"empty keeps previous", []Record{}, 0.447, 0.447},
		{"all zero", []Record{{"a", 0}}, 0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DataMax(tt.recs, tt.previous, DefaultDataMax); got != tt.want {
				t.Errorf("DataMax() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	in := slices.Clone(genes)
	ds := New(in, SortState{ByName: false, Ascending: true}, 0, DefaultDataMax, nil)

	if !slices.Equal(in, genes) {
		t.Error("New() reordered its input")
	}
	if ds.Len() != len(genes) {
		t.Errorf("Len() = %d, want %d", ds.Len(), len(genes))
	}
	if r, ok := ds.Lookup("YCGO_at"); !ok || r.Value != 0.348 {
		t.Errorf("Lookup(YCGO_at) = %v, %v", r, ok)
	}
	if _, ok := ds.Lookup("missing"); ok {
		t.Error("Lookup(missing) found a record")
	}
}

func TestResortKeepsDataMax(t *testing.T) {
	ds := New(genes, DefaultSort, 0, DefaultDataMax, nil)
	re := ds.Resort(SortState{ByName: false, Ascending: true}, nil)

	if re.DataMax != 0.447 {
		t.Errorf("DataMax = %v, want 0.447", re.DataMax)
	}
	if re.Labels[0] != "YOAB_at" || re.Labels[len(re.Labels)-1] != "YCGO_at" {
		t.Errorf("Labels = %v, want YOAB_at first and YCGO_at last", re.Labels)
	}
	if ds.Labels[0] != "ARGF_at" {
		t.Errorf("original Labels[0] = %v, want ARGF_at", ds.Labels[0])
	}
}
