package recommend

import (
	"sort"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
)

// DefaultMax is the number of recommendations when none is configured.
const DefaultMax = 3

// Select ranks tools by score and returns at most limit of them. When the top
// limit hold no low difficulty tool, the last one is replaced by the best ranked
// low difficulty tool from the rest. The returned records are the catalog's own.
func Select(c *catalog.Catalog, scores scoring.Scores, limit int) []*catalog.Tool {
	if limit <= 0 {
		return []*catalog.Tool{}
	}

	ranked := Rank(c, scores)

	result := make([]*catalog.Tool, 0, limit)
	hasLow := false
	i := 0
	for ; i < len(ranked) && len(result) < limit; i++ {
		result = append(result, ranked[i])
		if ranked[i].Difficulty == catalog.DifficultyLow {
			hasLow = true
		}
	}

	if hasLow || len(result) < limit {
		return result
	}

	for _, tool := range ranked[i:] {
		if tool.Difficulty == catalog.DifficultyLow {
			result[len(result)-1] = tool
			break
		}
	}

	return result
}

// Rank returns every tool ordered by descending score. Equal scores keep catalog order.
func Rank(c *catalog.Catalog, scores scoring.Scores) []*catalog.Tool {
	ranked := c.Tools()
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Of(ranked[i]) > scores.Of(ranked[j])
	})
	return ranked
}
