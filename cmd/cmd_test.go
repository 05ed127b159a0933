package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doll-web/pkg/services"
)

func newFileService(t *testing.T) *services.ContentService {
	t.Helper()
	dir := t.TempDir()
	news := filepath.Join(dir, services.CollectionNews)
	require.NoError(t, os.MkdirAll(news, 0o755))

	launch := "---\ntitle: Launch\nslug: launch\npublishDate: \"2025-02-01\"\n---\n**Intro**\nHello _world_\n"
	hiring := "---\ntitle: Hiring\nslug: hiring\npublishDate: \"2025-01-01\"\n---\nJoin us\n"
	require.NoError(t, os.WriteFile(filepath.Join(news, "launch.md"), []byte(launch), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(news, "hiring.md"), []byte(hiring), 0o644))

	return services.NewContentService(services.NewFileSource(dir), services.NewAdapter("http://cms.local"),
		services.NewResponseCache(), time.Minute, time.Minute)
}

func TestResolveCollection(t *testing.T) {
	c, err := resolveCollection("News")
	require.NoError(t, err)
	assert.Equal(t, services.CollectionNews, c)

	c, err = resolveCollection("projects")
	require.NoError(t, err)
	assert.Equal(t, services.CollectionProject, c)

	_, err = resolveCollection("pages")
	assert.Error(t, err)
}

func TestListCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listCollection(context.Background(), newFileService(t), services.CollectionNews, &buf))

	out := buf.String()
	assert.Contains(t, out, "SLUG")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("launch")), bytes.Index(buf.Bytes(), []byte("hiring")))
}

func TestLookup(t *testing.T) {
	svc := newFileService(t)

	item, err := lookup(context.Background(), svc, services.CollectionNews, "hiring")
	require.NoError(t, err)
	require.NotNil(t, item)

	item, err = lookup(context.Background(), svc, services.CollectionNews, "missing")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestExportCollection(t *testing.T) {
	svc := newFileService(t)
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exportCollection(ctx, svc, services.CollectionNews, "json", &buf))
		assert.Contains(t, buf.String(), `"slug": "launch"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exportCollection(ctx, svc, services.CollectionNews, "yaml", &buf))
		assert.Contains(t, buf.String(), "slug: launch")
		assert.Contains(t, buf.String(), "publishDate:")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exportCollection(ctx, svc, services.CollectionNews, "markdown", &buf))
		out := buf.String()
		assert.Contains(t, out, "# Launch\n")
		assert.Contains(t, out, "Intro")
		assert.Contains(t, out, "Join us")
		assert.Contains(t, out, "\n---\n")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, exportCollection(ctx, svc, services.CollectionNews, "csv", &bytes.Buffer{}))
	})
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("**Title**\n- one\n- two"), 0o644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"render", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "<h3>Title</h3><ul><li>one</li><li>two</li></ul>\n", buf.String())
}
