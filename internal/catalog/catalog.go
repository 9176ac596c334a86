package catalog

import (
	"slices"
	"sort"
	"strings"
)

// Catalog holds the tool records of one session. A nil *Catalog behaves as an empty one.
type Catalog struct {
	Items []*Tool
}

// New builds a catalog, dropping nil and nameless records. When two records share
// a name (case-insensitive) the first one wins.
func New(tools ...*Tool) *Catalog {
	items := make([]*Tool, 0, len(tools))
	seen := make(map[string]bool, len(tools))
	for _, tool := range tools {
		key := tool.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, tool)
	}
	return &Catalog{Items: items}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Tools returns the records in catalog order. The slice is a copy, the records are not.
func (c *Catalog) Tools() []*Tool {
	if c == nil {
		return nil
	}
	out := make([]*Tool, len(c.Items))
	copy(out, c.Items)
	return out
}

// Names returns tool names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.Len())
	for _, tool := range c.Tools() {
		names = append(names, tool.Name)
	}
	return names
}

// FindExact returns the record whose name equals name, ignoring case.
func (c *Catalog) FindExact(name string) *Tool {
	key := NormalizeName(name)
	if key == "" {
		return nil
	}
	for _, tool := range c.Tools() {
		if tool.Key() == key {
			return tool
		}
	}
	return nil
}

// FindBestMatch returns the exact match when present, otherwise the first record
// whose name contains name or is contained in it. Catalog order breaks ties.
func (c *Catalog) FindBestMatch(name string) *Tool {
	if tool := c.FindExact(name); tool != nil {
		return tool
	}
	key := NormalizeName(name)
	if key == "" {
		return nil
	}
	for _, tool := range c.Tools() {
		own := tool.Key()
		if strings.Contains(own, key) || strings.Contains(key, own) {
			return tool
		}
	}
	return nil
}

// Categories lists distinct non-empty categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tool := range c.Tools() {
		category := strings.TrimSpace(tool.Category)
		key := NormalizeName(category)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, category)
	}
	return out
}

// Difficulties counts records per difficulty. Unset difficulties are counted under DifficultyUnset.
func (c *Catalog) Difficulties() map[Difficulty]int {
	out := make(map[Difficulty]int)
	for _, tool := range c.Tools() {
		out[tool.Difficulty]++
	}
	return out
}

// Filter returns the tools of category and of one of difficulties in catalog
// order. An empty category or no difficulties match every tool.
func (c *Catalog) Filter(category string, difficulties ...Difficulty) []*Tool {
	var out []*Tool
	for _, tool := range c.Tools() {
		if strings.TrimSpace(category) != "" && !tool.InCategory([]string{category}) {
			continue
		}
		if len(difficulties) > 0 && !slices.Contains(difficulties, tool.Difficulty) {
			continue
		}
		out = append(out, tool)
	}
	return out
}

// Report groups tool names by category, sorted by category name.
func (c *Catalog) Report() map[string][]string {
	report := make(map[string][]string)
	for _, tool := range c.Tools() {
		category := strings.TrimSpace(tool.Category)
		if category == "" {
			category = "uncategorized"
		}
		report[category] = append(report[category], tool.Name)
	}
	for category := range report {
		sort.Strings(report[category])
	}
	return report
}
