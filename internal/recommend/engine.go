package recommend

import (
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/archetype"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// Engine classifies a user and picks the tools to recommend.
type Engine struct {
	catalog  *catalog.Catalog
	criteria func() []scoring.Criterion
	max      int
	logger   *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMax overrides DefaultMax.
func WithMax(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.max = n
		}
	}
}

// WithCriteria replaces the default scoring criteria. The factory is called
// once per recommendation so disabled state never leaks between users.
func WithCriteria(factory func() []scoring.Criterion) Option {
	return func(e *Engine) {
		if factory != nil {
			e.criteria = factory
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine builds an engine over c. A nil catalog behaves as an empty one.
func NewEngine(c *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:  c,
		criteria: scoring.Default,
		max:      DefaultMax,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Criteria returns a fresh set of the criteria the engine scores with.
func (e *Engine) Criteria() []scoring.Criterion { return e.criteria() }

// Max returns the recommendation list bound.
func (e *Engine) Max() int { return e.max }

// Ranked is one recommended tool with its score.
type Ranked struct {
	Tool  *catalog.Tool `json:"tool"`
	Score int           `json:"score"`
}

// Result is the outcome of one recommendation.
type Result struct {
	Archetype archetype.Archetype `json:"archetype"`
	Profile   archetype.Profile   `json:"profile"`
	Tools     []Ranked            `json:"tools"`
	Scores    scoring.Scores      `json:"-"`
}

// Names returns the names of the recommended tools in order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Tools))
	for _, ranked := range r.Tools {
		names = append(names, ranked.Tool.Name)
	}
	return names
}

// Recommend runs the classifier, the scoring pass and the selector for one
// session. It returns survey.ErrIncomplete until the session is complete.
func (e *Engine) Recommend(s *survey.Session) (*Result, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	return e.RecommendResponses(s.Responses), nil
}

// RecommendResponses is Recommend for responses collected elsewhere.
func (e *Engine) RecommendResponses(responses survey.Responses) *Result {
	kind := archetype.Classify(responses)
	scores := scoring.Run(responses, e.catalog, e.criteria(), e.logger)
	selected := Select(e.catalog, scores, e.max)

	result := &Result{
		Archetype: kind,
		Profile:   archetype.Describe(kind),
		Tools:     make([]Ranked, 0, len(selected)),
		Scores:    scores,
	}
	for _, tool := range selected {
		result.Tools = append(result.Tools, Ranked{Tool: tool, Score: scores.Of(tool)})
	}

	e.logger.Info("recommendation ready",
		zap.String("archetype", string(kind)),
		zap.Strings("tools", result.Names()),
		zap.Int("catalog_size", e.catalog.Len()),
	)

	return result
}
