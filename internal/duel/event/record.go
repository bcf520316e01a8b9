// Package event models the opaque tagged records delivered by the host and
// classifies them into the closed set of categories the announcer narrates.
package event

// Record is an opaque tagged record from the host's event feed: a runtime
// type name plus an unordered bag of named fields. Records are immutable once
// received; consumers only read named fields defensively.
type Record struct {
	TypeName string
	Fields   map[string]any
}

// Get reads a named field with typed, defensive semantics: a missing field or
// a type-mismatched field both report not found. It never panics.
func Get[T any](rec Record, name string) (T, bool) {
	var zero T
	raw, ok := rec.Fields[name]
	if !ok || raw == nil {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// GetInt reads a numeric field, accepting the integer and float encodings the
// host boundary produces interchangeably.
func GetInt(rec Record, name string) (int, bool) {
	raw, ok := rec.Fields[name]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// GetRecord reads a nested record field. Nested records arrive either as
// Record values or as raw field bags.
func GetRecord(rec Record, name string) (Record, bool) {
	raw, ok := rec.Fields[name]
	if !ok || raw == nil {
		return Record{}, false
	}
	switch v := raw.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record{Fields: v}, true
	}
	return Record{}, false
}
