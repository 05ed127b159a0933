package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"doll-web/pkg/models"
)

// Front matter formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Document is a content file split into front matter fields and body.
// JSON documents have no separate body.
type Document struct {
	Fields map[string]any
	Body   string
	Format string
}

type fencedFormat struct {
	name   string
	fence  string
	decode func([]byte, any) error
	encode func(io.Writer, any) error
}

var fencedFormats = []fencedFormat{
	{
		name:   FormatYAML,
		fence:  "---",
		decode: yaml.Unmarshal,
		encode: func(w io.Writer, v any) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		},
	},
	{
		name:   FormatTOML,
		fence:  "+++",
		decode: toml.Unmarshal,
		encode: func(w io.Writer, v any) error {
			return toml.NewEncoder(w).Encode(v)
		},
	},
}

// ParseDocument recognises YAML (---) and TOML (+++) fenced front matter
// and bare JSON objects.
func ParseDocument(content []byte) (Document, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	for _, f := range fencedFormats {
		rest, ok := strings.CutPrefix(text, f.fence+"\n")
		if !ok {
			continue
		}
		head, body, ok := strings.Cut("\n"+rest, "\n"+f.fence)
		if !ok {
			continue
		}
		fields := map[string]any{}
		if err := f.decode([]byte(head), &fields); err != nil {
			return Document{}, fmt.Errorf("decoding %s front matter: %w", f.name, err)
		}
		return Document{Fields: fields, Body: strings.TrimSpace(body), Format: f.name}, nil
	}

	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(text), &fields); err != nil {
			return Document{}, fmt.Errorf("decoding json document: %w", err)
		}
		return Document{Fields: fields, Format: FormatJSON}, nil
	}

	return Document{}, models.ErrUnknownFormat
}

// Encode renders d in its format. For JSON the body is stored under "body".
func (d Document) Encode() ([]byte, error) {
	fields := normalizeFields(d.Fields, false)

	if d.Format == FormatJSON {
		if d.Body != "" {
			fields["body"] = d.Body
		}
		out, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}

	for _, f := range fencedFormats {
		if f.name != d.Format {
			continue
		}
		var buf bytes.Buffer
		buf.WriteString(f.fence + "\n")
		if err := f.encode(&buf, fields); err != nil {
			return nil, fmt.Errorf("encoding %s front matter: %w", f.name, err)
		}
		buf.WriteString(f.fence + "\n")
		if d.Body != "" {
			buf.WriteString("\n" + d.Body + "\n")
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %s", models.ErrUnknownFormat, d.Format)
}

// JSONFields returns the fields with string keys throughout and decoder
// specific dates flattened to strings.
func (d Document) JSONFields() map[string]any {
	return normalizeFields(d.Fields, true)
}

func normalizeFields(fields map[string]any, flattenDates bool) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = normalizeValue(v, flattenDates)
	}
	return out
}

func normalizeValue(value any, flattenDates bool) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeFields(v, flattenDates)
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, inner := range v {
			m[fmt.Sprint(key)] = normalizeValue(inner, flattenDates)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i := range v {
			s[i] = normalizeValue(v[i], flattenDates)
		}
		return s
	}

	if !flattenDates {
		return value
	}
	switch v := value.(type) {
	case time.Time:
		if h, m, sec := v.Clock(); h == 0 && m == 0 && sec == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.UTC().Format(time.RFC3339Nano)
	case toml.LocalDate:
		return v.String()
	case toml.LocalDateTime:
		return v.String()
	}
	return value
}
