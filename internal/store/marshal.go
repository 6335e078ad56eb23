package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/dosio/internal/signal"
)

// marshalPayload converts a signal payload to JSON TEXT for storage.
//
// An absent payload is stored as NULL. JSON has no representation for
// non-finite numbers, so NaN and ±Inf are stored as the strings "NaN",
// "+Inf" and "-Inf".
func marshalPayload(io signal.Vector) (sql.NullString, error) {
	values, ok := io.Get()
	if !ok {
		return sql.NullString{}, nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = "NaN"
		case math.IsInf(v, 1):
			out[i] = "+Inf"
		case math.IsInf(v, -1):
			out[i] = "-Inf"
		default:
			out[i] = v
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal payload of %s: %w", io.Kind(), err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalPayload parses the form written by marshalPayload.
// It returns (nil, false) for NULL.
func unmarshalPayload(data sql.NullString) ([]float64, bool, error) {
	if !data.Valid {
		return nil, false, nil
	}
	var raw []any
	if err := json.Unmarshal([]byte(data.String), &raw); err != nil {
		return nil, false, fmt.Errorf("unmarshal payload: %w", err)
	}
	values := make([]float64, len(raw))
	for i, r := range raw {
		switch v := r.(type) {
		case float64:
			values[i] = v
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, false, fmt.Errorf("unmarshal payload element %d: %w", i, err)
			}
			values[i] = f
		default:
			return nil, false, fmt.Errorf("unmarshal payload element %d: unexpected %T", i, r)
		}
	}
	return values, true, nil
}
