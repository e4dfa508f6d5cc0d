// Package normalize turns raw request bodies into canonical stored records.
//
// Every normalizer is a pure function of its input: it trims strings, applies
// defaults, parses dates, floats and identifiers, and fails with a
// *ValidationError naming the offending field when the input cannot be stored.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Raw is a decoded JSON object as received from the client.
type Raw map[string]any

// Normalizer validates and coerces a raw body into the stored shape T.
type Normalizer[T any] interface {
	Normalize(raw Raw) (T, error)
}

// Func adapts a plain function to the Normalizer interface.
type Func[T any] func(raw Raw) (T, error)

// Normalize calls f(raw).
func (f Func[T]) Normalize(raw Raw) (T, error) { return f(raw) }

// ValidationError is returned when a body cannot be normalized.
// Its message is safe to show to the caller verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// text returns the trimmed textual form of a raw value.
// Absent and null values yield ok=false.
func text(raw Raw, key string) (string, bool) {
	v, found := raw[key]
	if !found || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return strings.TrimSpace(fmt.Sprint(t)), true
	}
}

// requireFields fails when any of keys is absent or blank after trimming.
func requireFields(raw Raw, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if s, ok := text(raw, k); !ok || s == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return invalid(missing[0], "missing required fields: %s", strings.Join(missing, ", "))
}

// requiredString returns the trimmed value of a field already checked by requireFields.
func requiredString(raw Raw, key string) string {
	s, _ := text(raw, key)
	return s
}

// optionalString returns nil for absent, null or blank values.
func optionalString(raw Raw, key string) *string {
	s, ok := text(raw, key)
	if !ok || s == "" {
		return nil
	}
	return &s
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// maxEpochMillis is the widest instant a browser Date can hold.
const maxEpochMillis = 8.64e15

// representable reports whether t survives JSON encoding, which needs a four-digit year.
func representable(t time.Time) bool {
	y := t.Year()
	return y >= 0 && y <= 9999
}

// optionalDate parses a date field. Absent, null or blank values yield nil.
// A JSON number is taken as milliseconds since the Unix epoch.
func optionalDate(raw Raw, key string) (*time.Time, error) {
	v, found := raw[key]
	if !found || v == nil {
		return nil, nil
	}
	if n, ok := number(v); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > maxEpochMillis {
			return nil, invalid(key, "field %q is not a valid date", key)
		}
		t := time.UnixMilli(int64(n)).UTC()
		if !representable(t) {
			return nil, invalid(key, "field %q is not a valid date", key)
		}
		return &t, nil
	}
	s, _ := text(raw, key)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			if !representable(t) {
				break
			}
			return &t, nil
		}
	}
	return nil, invalid(key, "field %q is not a valid date", key)
}

// dateOrNow is optionalDate with the current time as default.
func dateOrNow(raw Raw, key string, now func() time.Time) (time.Time, error) {
	t, err := optionalDate(raw, key)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return now().UTC(), nil
	}
	return *t, nil
}

// flag is true only for literal true-equivalent input; it never fails.
func flag(raw Raw, key string) bool {
	switch v := raw[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1":
			return true
		}
	}
	return false
}

// present reports whether a field carries a non-blank value.
func present(raw Raw, key string) bool {
	s, ok := text(raw, key)
	return ok && s != ""
}

// optionalFloat parses a decimal field. Absent or blank values yield nil.
func optionalFloat(raw Raw, key string) (*float64, error) {
	if !present(raw, key) {
		return nil, nil
	}
	if n, ok := number(raw[key]); ok {
		return &n, nil
	}
	s, _ := text(raw, key)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalid(key, "field %q must be a decimal number", key)
	}
	return &f, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// objectID parses a required identifier field.
func objectID(raw Raw, key string) (bson.ObjectID, error) {
	s, _ := text(raw, key)
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, invalid(key, "field %q is not a valid identifier", key)
	}
	return id, nil
}

// objectIDList accepts a JSON array or a comma separated string of identifiers.
// Malformed entries are dropped. The result is never nil.
func objectIDList(raw Raw, key string) []bson.ObjectID {
	var candidates []string
	switch v := raw[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	case []string:
		candidates = v
	case string:
		candidates = strings.Split(v, ",")
	}

	ids := make([]bson.ObjectID, 0, len(candidates))
	for _, c := range candidates {
		id, err := bson.ObjectIDFromHex(strings.TrimSpace(c))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
