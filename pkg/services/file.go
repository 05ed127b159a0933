package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
)

// SafeJoin joins root, sub and target, returning "" when target would
// escape the root.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") || filepath.IsAbs(cleanTarget) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// FileSource serves collections from a directory tree of front-matter
// files: <dir>/<collection>/*.md. Entries come out flat.
type FileSource struct {
	dir string
}

var _ ContentSource = (*FileSource)(nil)

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Dir() string { return s.dir }

func (s *FileSource) FetchCollection(ctx context.Context, q CollectionQuery) ([]byte, error) {
	collectionDir := SafeJoin(s.dir, "", q.Collection)
	if collectionDir == "" || q.Collection == "" {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPath, q.Collection)
	}

	files, err := os.ReadDir(collectionDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return json.Marshal(map[string]any{"data": []any{}})
		}
		return nil, fmt.Errorf("reading %s: %w", collectionDir, err)
	}

	entries := []map[string]interface{}{}
	parsed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.IsDir() || !isContentFile(f.Name()) {
			continue
		}

		path := filepath.Join(collectionDir, f.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		doc, err := ParseDocument(content)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		parsed++

		entry := doc.JSONFields()
		if _, ok := entry["body"]; !ok && doc.Body != "" {
			entry["body"] = doc.Body
		}
		if _, ok := entry["id"]; !ok {
			entry["id"] = parsed
		}
		if draft, _ := entry["draft"].(bool); draft && !q.Preview {
			continue
		}
		if q.Slug != "" {
			if slug, _ := entry["slug"].(string); slug != q.Slug {
				continue
			}
		}
		entries = append(entries, entry)
	}

	if field, desc := q.SortSpec(); field != "" {
		sortEntries(entries, field, desc)
	}

	return json.Marshal(map[string]any{"data": entries})
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".json":
		return true
	}
	return false
}

// sortEntries orders entries by field. Numbers compare numerically, anything
// else by its string form; entries missing the field sort last.
func sortEntries(entries []map[string]interface{}, field string, desc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, aok := entries[i][field]
		b, bok := entries[j][field]
		if !aok || !bok {
			return aok && !bok
		}
		less, greater := compareValues(a, b)
		if desc {
			return greater
		}
		return less
	})
}

func compareValues(a, b interface{}) (less, greater bool) {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af < bf, af > bf
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	return as < bs, as > bs
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
