package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpLoadsBack(t *testing.T) {
	c := New(
		&Tool{Name: "ChatGPT", Category: "Chatbots & Assistants", Difficulty: DifficultyLow, Description: "General assistant"},
		&Tool{Name: "Cursor", Category: "App Builders & Coding"},
	)

	for _, name := range []string{"tools.json", "tools.yaml"} {
		t.Run(name, func(t *testing.T) {
			path, err := c.Dump(filepath.Join(t.TempDir(), name))
			require.NoError(t, err)

			loaded, err := FileSource{Path: path}.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, c.Tools(), loaded.Tools())
			assert.False(t, loaded.FindExact("cursor").Difficulty.IsSet())
		})
	}
}

func TestDumpToTempFile(t *testing.T) {
	path, err := New(&Tool{Name: "Gamma"}).Dump("")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	assert.Equal(t, ".json", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Gamma"`)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, New().Encode(&buf, "toml"))
}
