package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/ai-tool-advisor/internal/logger"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	defaultUserAgent = "ai-tool-advisor"
	acceptEncoding   = "gzip"
)

// ErrCatalogUnavailable is returned when the catalog source cannot be read or parsed.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Source produces a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// FileSource reads a JSON or YAML document from disk. The format is taken from the extension.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCatalogUnavailable, s.Path, err)
	}

	return Decode(data, formatFromPath(s.Path))
}

// URLSource fetches the catalog document over HTTP.
type URLSource struct {
	URL        string
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (s URLSource) Load(ctx context.Context) (*Catalog, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrCatalogUnavailable, s.URL, err)
	}

	return Decode(data, formatFromPath(s.URL))
}

func (s URLSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	userAgent := s.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	if s.Logger != nil {
		s.Logger.Debug("fetch catalog", zap.String("url", req.URL.String()))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// Decode parses a catalog document. Both a bare list of tools and an object with
// a "tools" list are accepted. Fields are matched case-insensitively and scalar
// types are coerced, so a numeric name or a null difficulty does not fail the load.
func Decode(data []byte, format string) (*Catalog, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %w", ErrCatalogUnavailable, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse json: %w", ErrCatalogUnavailable, err)
		}
	}

	rawItems, err := itemsOf(doc)
	if err != nil {
		return nil, err
	}

	tools := make([]*Tool, 0, len(rawItems))
	for i, item := range rawItems {
		tool, err := decodeTool(item)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrCatalogUnavailable, i, err)
		}
		tools = append(tools, tool)
	}

	return New(tools...), nil
}

// LoadOrEmpty loads the catalog and falls back to an empty one on failure.
// Recommendation without a catalog still classifies the user.
func LoadOrEmpty(ctx context.Context, src Source, log *zap.Logger) *Catalog {
	log = logger.WithFields(log)

	if src == nil {
		return New()
	}

	c, err := src.Load(ctx)
	if err != nil {
		log.Warn("catalog is not available, continue with an empty one", zap.Error(err))
		return New()
	}

	log.Info("catalog loaded", zap.Int("tools", c.Len()), zap.Int("categories", len(c.Categories())))
	return c
}

type rawTool struct {
	Name        string  `mapstructure:"name"`
	Category    *string `mapstructure:"category"`
	Difficulty  *string `mapstructure:"difficulty"`
	Description *string `mapstructure:"description"`
}

func decodeTool(item any) (*Tool, error) {
	if _, ok := item.(map[string]any); !ok {
		return nil, fmt.Errorf("expected an object, got %T", item)
	}

	var raw rawTool
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(item); err != nil {
		return nil, err
	}

	tool := &Tool{Name: strings.TrimSpace(raw.Name)}
	if raw.Category != nil {
		tool.Category = strings.TrimSpace(*raw.Category)
	}
	if raw.Difficulty != nil {
		tool.Difficulty = ParseDifficulty(*raw.Difficulty)
	}
	if raw.Description != nil {
		tool.Description = *raw.Description
	}

	return tool, nil
}

func itemsOf(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		for key, value := range v {
			if strings.EqualFold(key, "tools") {
				return itemsOf(value)
			}
		}
		return nil, fmt.Errorf("%w: document has no tools list", ErrCatalogUnavailable)
	default:
		return nil, fmt.Errorf("%w: unexpected document type %T", ErrCatalogUnavailable, doc)
	}
}

func formatFromPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
