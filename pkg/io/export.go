package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
)

// WriteJSON encodes recs as an indented JSON array and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(recs []dataset.Record, w io.Writer) error {
	if recs == nil {
		recs = []dataset.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return nil
}

// ExportJSON writes recs to a file at path, replacing any existing file.
func ExportJSON(recs []dataset.Record, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(recs, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
