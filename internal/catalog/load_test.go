package catalog

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const jsonCatalog = `[
  {"name": "ChatGPT", "category": "Chatbots & Assistants", "difficulty": "low", "description": "General assistant"},
  {"name": "Cursor", "category": "App Builders & Coding", "difficulty": null},
  {"name": 1234, "category": "Research", "difficulty": "impossible"}
]`

const yamlCatalog = `
tools:
  - name: Midjourney
    category: Image Generation
    difficulty: medium
  - name: Notion AI
    category: Productivity & Automation
`

func TestDecodeJSON(t *testing.T) {
	c, err := Decode([]byte(jsonCatalog), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	cursor := c.FindExact("cursor")
	require.NotNil(t, cursor)
	assert.False(t, cursor.Difficulty.IsSet())

	numeric := c.FindExact("1234")
	require.NotNil(t, numeric)
	assert.Equal(t, DifficultyUnset, numeric.Difficulty)
}

func TestDecodeYAMLObject(t *testing.T) {
	c, err := Decode([]byte(yamlCatalog), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"Midjourney", "Notion AI"}, c.Names())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("{broken"), FormatJSON)
	require.ErrorIs(t, err, ErrCatalogUnavailable)

	_, err = Decode([]byte(`{"items": []}`), FormatJSON)
	require.ErrorIs(t, err, ErrCatalogUnavailable)

	_, err = Decode([]byte(`["just a string"]`), FormatJSON)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestDecodeEmpty(t *testing.T) {
	c, err := Decode([]byte(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	c, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Load(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestURLSourceGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "advisor-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(jsonCatalog))
		_ = gz.Close()
	}))
	defer srv.Close()

	c, err := URLSource{URL: srv.URL + "/tools.json", UserAgent: "advisor-test"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestURLSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := URLSource{URL: srv.URL}.Load(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Contains(t, err.Error(), "bad status")
}

func TestLoadOrEmpty(t *testing.T) {
	c := LoadOrEmpty(context.Background(), FileSource{Path: "/does/not/exist.json"}, zap.NewNop())
	require.NotNil(t, c)
	assert.Zero(t, c.Len())

	assert.Zero(t, LoadOrEmpty(context.Background(), nil, zap.NewNop()).Len())
}

func TestLoadOrEmptyWithoutLogger(t *testing.T) {
	c := LoadOrEmpty(context.Background(), FileSource{Path: "/does/not/exist.json"}, nil)
	assert.Zero(t, c.Len())

	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0o600))
	assert.Equal(t, 3, LoadOrEmpty(context.Background(), FileSource{Path: path}, nil).Len())
}
