package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
)

// Snapshot copies a collection from src into dir as front-matter files that
// a FileSource can serve. Legacy string bodies become the file body; block
// bodies stay in the front matter. It returns the number of files written.
func Snapshot(ctx context.Context, src ContentSource, q CollectionQuery, dir, format string) (int, error) {
	payload, err := src.FetchCollection(ctx, q)
	if err != nil {
		return 0, err
	}

	ext := ".md"
	if format == "json" {
		ext = ".json"
	}

	written := 0
	for _, e := range models.ParseCollection(payload) {
		slug := e.Slug()
		if slug == "" || strings.ContainsAny(slug, `/\`) {
			logger.Warn("skipping %s entry %d: unusable slug %q", q.Collection, e.ID, slug)
			continue
		}

		fm, ok := e.Fields.Value().(map[string]interface{})
		if !ok {
			continue
		}
		fm["id"] = e.ID

		body := ""
		if s, ok := fm["body"].(string); ok {
			body = s
			delete(fm, "body")
		}

		content, err := Document{Fields: fm, Body: body, Format: format}.Encode()
		if err != nil {
			return written, fmt.Errorf("encoding %s: %w", slug, err)
		}

		path := SafeJoin(dir, q.Collection, slug+ext)
		if path == "" {
			return written, fmt.Errorf("%w: %s", models.ErrInvalidPath, slug)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
