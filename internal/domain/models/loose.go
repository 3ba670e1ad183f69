package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// LooseRecord is a JSON object whose shape we do not control. Upstream
// scrapers rename fields between seasons, so every read goes through an
// alias chain instead of a struct tag.
type LooseRecord map[string]any

// Float returns the first key that holds a usable number. Numeric strings
// count; NaN and Inf do not.
func (r LooseRecord) Float(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return f, true
	}
	return 0, false
}

// FloatOr is Float with a default.
func (r LooseRecord) FloatOr(def float64, keys ...string) float64 {
	if f, ok := r.Float(keys...); ok {
		return f
	}
	return def
}

// String returns the first key holding a non-empty string.
func (r LooseRecord) String(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// StringOr is String with a default.
func (r LooseRecord) StringOr(def string, keys ...string) string {
	if s, ok := r.String(keys...); ok {
		return s
	}
	return def
}

// Int returns the first key holding an integral number.
func (r LooseRecord) Int(keys ...string) (int, bool) {
	if f, ok := r.Float(keys...); ok {
		return int(f), true
	}
	return 0, false
}

// Child returns a nested object, or nil when the key is absent or not an
// object.
func (r LooseRecord) Child(key string) LooseRecord {
	if v, ok := r[key]; ok {
		switch c := v.(type) {
		case map[string]any:
			return LooseRecord(c)
		case LooseRecord:
			return c
		}
	}
	return nil
}

// Records returns a nested array of objects, skipping non-object elements.
func (r LooseRecord) Records(key string) []LooseRecord {
	v, ok := r[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]LooseRecord, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, LooseRecord(m))
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
