package knowledge

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
)

// Document is a unit of retrievable text.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Text is the indexed representation of the document.
func (d Document) Text() string {
	if d.Title == "" {
		return d.Body
	}
	return d.Title + "\n" + d.Body
}

// Result is a document matched by a search with its relevance, higher is better.
type Result struct {
	Document
	Score float64 `json:"score"`
}

// Retriever finds the documents most relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Result, error)
}

// FromCatalog renders every tool as a document.
func FromCatalog(c *catalog.Catalog) []Document {
	docs := make([]Document, 0, c.Len())
	for _, tool := range c.Tools() {
		var body strings.Builder
		if tool.Category != "" {
			fmt.Fprintf(&body, "Category: %s\n", tool.Category)
		}
		fmt.Fprintf(&body, "Difficulty: %s\n", tool.Difficulty.Effective())
		if desc := strings.TrimSpace(tool.Description); desc != "" {
			body.WriteString(desc)
		}
		docs = append(docs, Document{
			ID:    "tool:" + tool.Key(),
			Title: tool.Name,
			Body:  strings.TrimSpace(body.String()),
		})
	}
	return docs
}

// Split cuts free text into documents on blank lines. The first line of every
// paragraph becomes its title.
func Split(source, text string) []Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var docs []Document
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		title, body, _ := strings.Cut(paragraph, "\n")
		docs = append(docs, Document{
			ID:    fmt.Sprintf("%s#%d", source, len(docs)),
			Title: strings.TrimSpace(title),
			Body:  strings.TrimSpace(body),
		})
	}
	return docs
}

// LoadFile reads a knowledge text file and splits it into documents.
func LoadFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	return Split(path, string(data)), nil
}
