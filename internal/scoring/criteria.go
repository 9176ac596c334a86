package scoring

import (
	"strconv"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// Criterion is one additive scoring rule. A criterion only ever adds points, so
// criteria can be applied in any order.
type Criterion interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(responses survey.Responses, tools []*catalog.Tool, scores Scores) Step
}

// Step describes what one criterion did.
type Step struct {
	Touched int
	Points  int
}

// Status represents runtime information about a criterion.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// Default returns the six criteria with the bundled tables.
func Default() []Criterion {
	return []Criterion{
		NewPreferredDifficulty(),
		NewKnowledgeBias(),
		NewCategoryMatch("interest_category", survey.KeyInterest, InterestTable, WeightInterest),
		NewCategoryMatch("purpose_category", survey.KeyPurpose, PurposeTable, WeightPurpose),
		NewCategoryMatch("job_category", survey.KeyJob, JobTable, WeightJob),
		NewDescriptionBonus(),
	}
}

// DisableByName marks a criterion with the provided name as disabled while
// keeping it in the list. It reports whether any criterion had that name.
func DisableByName(steps []Criterion, name, reason string) bool {
	found := false
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
			found = true
		}
	}
	return found
}

// Describe returns status entries for the provided criteria.
func Describe(steps []Criterion) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type preferredDifficulty struct {
	toggle
}

// NewPreferredDifficulty rewards tools matching the preferred difficulty. A tool
// without a difficulty is a weaker match for a medium preference.
func NewPreferredDifficulty() Criterion {
	return &preferredDifficulty{}
}

func (c *preferredDifficulty) Name() string { return "preferred_difficulty" }

func (c *preferredDifficulty) Apply(responses survey.Responses, tools []*catalog.Tool, scores Scores) Step {
	pref := PreferredDifficulty(responses.Difficulty())
	if !pref.IsSet() {
		return Step{}
	}

	var step Step
	for _, tool := range tools {
		switch {
		case tool.Difficulty == pref:
			step.add(scores.Add(tool, WeightPreferredDifficulty))
		case !tool.Difficulty.IsSet() && pref == catalog.DifficultyMedium:
			step.add(scores.Add(tool, WeightPreferredDifficultyNull))
		}
	}
	return step
}

func (c *preferredDifficulty) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"weight":      strconv.Itoa(WeightPreferredDifficulty),
		"weight_null": strconv.Itoa(WeightPreferredDifficultyNull),
	}}
}

type knowledgeBias struct {
	toggle
}

// NewKnowledgeBias pushes beginners towards low and experts towards hard tools.
func NewKnowledgeBias() Criterion {
	return &knowledgeBias{}
}

func (c *knowledgeBias) Name() string { return "knowledge_bias" }

func (c *knowledgeBias) Apply(responses survey.Responses, tools []*catalog.Tool, scores Scores) Step {
	var target catalog.Difficulty
	switch level := responses.Knowledge(); {
	case survey.IsBeginner(level):
		target = catalog.DifficultyLow
	case survey.IsExpert(level):
		target = catalog.DifficultyHard
	default:
		return Step{}
	}

	var step Step
	for _, tool := range tools {
		if tool.Difficulty == target {
			step.add(scores.Add(tool, WeightKnowledgeBias))
		}
	}
	return step
}

func (c *knowledgeBias) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"weight": strconv.Itoa(WeightKnowledgeBias),
	}}
}

type categoryMatch struct {
	toggle
	name   string
	key    survey.Key
	table  Table
	weight int
}

// NewCategoryMatch adds weight to every tool whose category is mapped from an
// answer of the given question, once per matching answer.
func NewCategoryMatch(name string, key survey.Key, table Table, weight int) Criterion {
	return &categoryMatch{name: name, key: key, table: table, weight: weight}
}

func (c *categoryMatch) Name() string { return c.name }

func (c *categoryMatch) Apply(responses survey.Responses, tools []*catalog.Tool, scores Scores) Step {
	var step Step
	for _, answer := range responses.Multi(c.key) {
		categories := c.table.Categories(answer)
		if len(categories) == 0 {
			continue
		}
		for _, tool := range tools {
			if tool.InCategory(categories) {
				step.add(scores.Add(tool, c.weight))
			}
		}
	}
	return step
}

func (c *categoryMatch) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"question": string(c.key),
		"weight":   strconv.Itoa(c.weight),
		"options":  strconv.Itoa(len(c.table)),
	}}
}

type descriptionBonus struct {
	toggle
}

// NewDescriptionBonus is a tie-breaker for tools with a substantive description.
func NewDescriptionBonus() Criterion {
	return &descriptionBonus{}
}

func (c *descriptionBonus) Name() string { return "description_bonus" }

func (c *descriptionBonus) Apply(_ survey.Responses, tools []*catalog.Tool, scores Scores) Step {
	var step Step
	for _, tool := range tools {
		if tool.DescriptionLength() > descriptionMinLength {
			step.add(scores.Add(tool, WeightDescription))
		}
	}
	return step
}

func (c *descriptionBonus) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"weight":     strconv.Itoa(WeightDescription),
		"min_length": strconv.Itoa(descriptionMinLength),
	}}
}

func (s *Step) add(points int) {
	s.Touched++
	s.Points += points
}
