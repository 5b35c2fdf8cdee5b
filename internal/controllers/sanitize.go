package controllers

import "math"

// SanitizeRows replaces ±Inf and NaN values in tabular provider output with
// nil, so the rows always encode as valid JSON (which has no infinity or NaN
// tokens). Rows are modified in place.
func SanitizeRows(rows []map[string]any) []map[string]any {
	for _, row := range rows {
		for k, v := range row {
			row[k] = sanitizeValue(v)
		}
	}
	return rows
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return nil
		}
	case float32:
		f := float64(val)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil
		}
	case map[string]any:
		for k, inner := range val {
			val[k] = sanitizeValue(inner)
		}
	case []any:
		for i, inner := range val {
			val[i] = sanitizeValue(inner)
		}
	}
	return v
}
