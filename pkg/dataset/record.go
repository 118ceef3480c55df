package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Raw is one unvalidated input record.
type Raw struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

// Record is one (key, value) pair drawn as a bar.
type Record struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Clean converts raw input into records.
//
// Keys are coerced to text. Values must be numeric: a missing, non-numeric or
// NaN value fails with [errors.ErrCodeInvalidValue]. Two records that produce
// the same key fail with [errors.ErrCodeDuplicateKey]. A nil input yields an
// empty slice, which is a valid dataset.
func Clean(raw []Raw) ([]Record, error) {
	recs := make([]Record, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, r := range raw {
		key, err := keyString(r.Key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d", i)
		}
		v, err := number(r.Value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidValue, err, "record %d (key %q)", i, key)
		}
		if j, dup := seen[key]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateKey, "records %d and %d share key %q", j, i, key)
		}
		seen[key] = i
		recs = append(recs, Record{Key: key, Value: v})
	}
	return recs, nil
}

func keyString(k any) (string, error) {
	switch k := k.(type) {
	case nil:
		return "", fmt.Errorf("missing key")
	case string:
		return k, nil
	case json.Number:
		return k.String(), nil
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(k), 'f', -1, 32), nil
	case fmt.Stringer:
		return k.String(), nil
	default:
		return fmt.Sprint(k), nil
	}
}

func number(v any) (float64, error) {
	var f float64
	switch v := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing value")
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil && !isRangeErr(err) {
			return 0, fmt.Errorf("value %q is not numeric", v.String())
		}
		f = n
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("value is NaN")
	}
	return f, nil
}

// isRangeErr reports whether err is strconv's out-of-range error. The parsed
// value is then ±Inf, which the scale clamping policy handles.
func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
