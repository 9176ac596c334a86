package scoring

import (
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// Scores holds the points of one scoring pass keyed by tool identity. It is
// built fresh for every pass and never stored on the shared catalog records.
type Scores map[string]int

// Of returns the score of tool, or 0 for unknown tools.
func (s Scores) Of(tool *catalog.Tool) int {
	return s[tool.Key()]
}

// Add adds points to tool and returns the points added.
func (s Scores) Add(tool *catalog.Tool, points int) int {
	s[tool.Key()] += points
	return points
}

// Run applies the enabled criteria to every tool of c and returns the scores.
// Every tool of the catalog is present in the result, starting from zero.
func Run(responses survey.Responses, c *catalog.Catalog, steps []Criterion, logger *zap.Logger) Scores {
	if logger == nil {
		logger = zap.NewNop()
	}

	tools := c.Tools()
	scores := make(Scores, len(tools))
	for _, tool := range tools {
		scores[tool.Key()] = 0
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("criterion disabled", zap.String("name", step.Name()))
			continue
		}

		info := step.Apply(responses, tools, scores)
		logger.Debug("criterion step",
			zap.String("name", step.Name()),
			zap.Int("touched", info.Touched),
			zap.Int("points", info.Points),
		)
	}

	return scores
}

// Score runs the default criteria.
func Score(responses survey.Responses, c *catalog.Catalog) Scores {
	return Run(responses, c, Default(), nil)
}
