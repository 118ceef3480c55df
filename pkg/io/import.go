package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
)

// ReadJSON decodes a JSON record array from r.
//
// The records are returned as decoded; keys and values are not validated.
// A JSON null decodes to an empty dataset. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]dataset.Raw, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []dataset.Raw
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if raw == nil {
		raw = []dataset.Raw{}
	}
	return raw, nil
}

// ReadRecords decodes and cleans a JSON record array from r.
func ReadRecords(r io.Reader) ([]dataset.Record, error) {
	raw, err := ReadJSON(r)
	if err != nil {
		return nil, err
	}
	return dataset.Clean(raw)
}

// ImportJSON reads a dataset file at path.
//
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) ([]dataset.Raw, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	raw, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return raw, nil
}
