package archetype

import (
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// Archetype is one of the fixed user types.
type Archetype string

// Declaration order breaks ties in Classify.
const (
	Explorer           Archetype = "Explorer"
	DigitalArtist      Archetype = "DigitalArtist"
	EfficiencySeeker   Archetype = "EfficiencySeeker"
	KnowledgeCollector Archetype = "KnowledgeCollector"
	CodeWizard         Archetype = "CodeWizard"
	ContentCreator     Archetype = "ContentCreator"
	BusinessStrategist Archetype = "BusinessStrategist"
	BeginnerExplorer   Archetype = "BeginnerExplorer"
)

var all = []Archetype{
	Explorer,
	DigitalArtist,
	EfficiencySeeker,
	KnowledgeCollector,
	CodeWizard,
	ContentCreator,
	BusinessStrategist,
	BeginnerExplorer,
}

// beginnerMargin is added to the best total when the user is a beginner.
const beginnerMargin = 5

// All returns every archetype in declaration order.
func All() []Archetype {
	return append([]Archetype(nil), all...)
}

// Points is the per-archetype total of one classification.
type Points map[Archetype]int

// Best returns the archetype with the strictly highest total. Ties go to the
// archetype declared first.
func (p Points) Best() Archetype {
	best := all[0]
	for _, a := range all[1:] {
		if p[a] > p[best] {
			best = a
		}
	}
	return best
}

func (p Points) max() int {
	m := 0
	for _, a := range all {
		if p[a] > m {
			m = p[a]
		}
	}
	return m
}

// Score accumulates the rule weights for responses. Unknown answers add nothing.
func Score(responses survey.Responses) Points {
	points := make(Points, len(all))
	for _, a := range all {
		points[a] = 0
	}

	knowledge := responses.Knowledge()
	points.add(knowledgeRules[knowledge])
	points.add(jobRules[responses.Job()])
	for _, interest := range responses.Interests() {
		points.add(interestRules[interest])
	}
	for _, purpose := range responses.Purposes() {
		points.add(purposeRules[purpose])
	}

	if survey.IsBeginner(knowledge) {
		points[BeginnerExplorer] = points.max() + beginnerMargin
	}

	return points
}

// Classify returns the archetype of one completed set of responses.
func Classify(responses survey.Responses) Archetype {
	return Score(responses).Best()
}

// Valid reports whether a is one of the declared archetypes.
func Valid(a Archetype) bool {
	for _, known := range all {
		if known == a {
			return true
		}
	}
	return false
}

func (p Points) add(weights map[Archetype]int) {
	for a, w := range weights {
		p[a] += w
	}
}
