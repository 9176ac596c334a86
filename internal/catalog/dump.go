package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Tools []*Tool `json:"tools" yaml:"tools"`
}

// Encode writes the catalog as {"tools": [...]} in json or yaml.
func (c *Catalog) Encode(w io.Writer, format string) error {
	doc := document{Tools: c.Tools()}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported catalog format %q", format)
	}
}

// Dump writes the catalog to path, or to a temporary file when path is empty,
// and returns the file name. The format follows the file extension.
func (c *Catalog) Dump(path string) (string, error) {
	var (
		file *os.File
		err  error
	)
	if path == "" {
		file, err = os.CreateTemp("", "tools_*.json")
	} else {
		file, err = os.Create(path)
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := c.Encode(file, formatFromPath(file.Name())); err != nil {
		return "", err
	}
	return file.Name(), nil
}
