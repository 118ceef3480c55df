package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
)

func TestImportJSONFixtures(t *testing.T) {
	tests := []struct {
		file  string
		count int
	}{
		{"genes.json", 22},
		{"quirky.json", 5},
		{"empty.json", 0},
		{"extreme.json", 4},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			raw, err := ImportJSON(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("ImportJSON() error: %v", err)
			}
			recs, err := dataset.Clean(raw)
			if err != nil {
				t.Fatalf("Clean() error: %v", err)
			}
			if len(recs) != tt.count {
				t.Errorf("len = %d, want %d", len(recs), tt.count)
			}
		})
	}
}

func TestReadRecordsQuirkyKeys(t *testing.T) {
	raw, err := ImportJSON("testdata/quirky.json")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := dataset.Clean(raw)
	if err != nil {
		t.Fatal(err)
	}
	keys := dataset.Labels(recs)
	for _, want := range []string{"123456789", "0.987654321", `"Quotes" on "Quotes"`} {
		if !slices.Contains(keys, want) {
			t.Errorf("keys %q missing %q", keys, want)
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `[{"key": "a"`, errors.ErrCodeInvalidInput},
		{"object", `{"key": "a", "value": 1}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadRecordsValidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"string value", `[{"key": "a", "value": "1"}]`, errors.ErrCodeInvalidValue},
		{"missing value", `[{"key": "a"}]`, errors.ErrCodeInvalidValue},
		{"duplicate", `[{"key": "a", "value": 1}, {"key": "a", "value": 2}]`, errors.ErrCodeDuplicateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadRecords() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadJSONNull(t *testing.T) {
	raw, err := ReadJSON(strings.NewReader("null"))
	if err != nil {
		t.Fatal(err)
	}
	if raw == nil || len(raw) != 0 {
		t.Errorf("ReadJSON(null) = %#v, want empty slice", raw)
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON("testdata/nope.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportJSON(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("ImportJSON(\"\") = %v, want INVALID_PATH", err)
	}
}

func TestRoundTrip(t *testing.T) {
	recs := []dataset.Record{{Key: "b", Value: 0.5}, {Key: "a", Value: -1e-9}}

	var buf bytes.Buffer
	if err := WriteJSON(recs, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if !slices.Equal(got, recs) {
		t.Errorf("round trip = %v, want %v", got, recs)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	recs := []dataset.Record{{Key: "x", Value: 1}}
	if err := ExportJSON(recs, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	raw, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("len = %d, want 1", len(raw))
	}
}
