package models

import "github.com/tidwall/gjson"

// EntryShape discriminates the two encodings a CMS entry can arrive in.
type EntryShape int

const (
	// ShapeFlat is {id, ...fields}.
	ShapeFlat EntryShape = iota
	// ShapeNested is {id, attributes: {...fields}}.
	ShapeNested
)

func (s EntryShape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	default:
		return "unknown"
	}
}

// RawEntry is one element of a collection response. Fields always points at
// the object holding the content fields, whichever shape the entry had.
type RawEntry struct {
	ID     int64
	Shape  EntryShape
	Fields gjson.Result
}

// Slug returns the entry's slug field, or "" when absent.
func (e RawEntry) Slug() string {
	return e.Fields.Get("slug").String()
}

// ParseEntry unwraps a single entry. An entry with a non-null attributes
// value is nested; everything else is flat.
func ParseEntry(entry gjson.Result) RawEntry {
	id := entry.Get("id").Int()

	attrs := entry.Get("attributes")
	if attrs.Exists() && attrs.Type != gjson.Null {
		// {id, ...attributes}: an id inside attributes wins.
		if inner := attrs.Get("id"); inner.Exists() && inner.Type != gjson.Null {
			id = inner.Int()
		}
		return RawEntry{ID: id, Shape: ShapeNested, Fields: attrs}
	}
	return RawEntry{ID: id, Shape: ShapeFlat, Fields: entry}
}

// ParseCollection reads the top-level data array of a collection response.
// Order is preserved; elements that are not objects are skipped. A payload
// without a data array yields no entries.
func ParseCollection(payload []byte) []RawEntry {
	data := gjson.GetBytes(payload, "data")
	if !data.IsArray() {
		return []RawEntry{}
	}

	entries := make([]RawEntry, 0, len(data.Array()))
	data.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			entries = append(entries, ParseEntry(value))
		}
		return true
	})
	return entries
}
