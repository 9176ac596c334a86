package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/ai-tool-advisor/internal/archetype"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// ErrExplainerDisabled is returned when no text generator is configured.
var ErrExplainerDisabled = errors.New("explainer is disabled")

// Request carries everything an explanation is built from.
type Request struct {
	SessionID string
	Responses survey.Responses
	Archetype archetype.Archetype
	Tools     []*catalog.Tool
}

// ToolNames returns the names of the recommended tools in order.
func (r Request) ToolNames() []string {
	names := make([]string, 0, len(r.Tools))
	for _, tool := range r.Tools {
		if tool != nil {
			names = append(names, tool.Name)
		}
	}
	return names
}

// Explainer turns a recommendation into free text. Recommendations never
// depend on its output.
type Explainer interface {
	Explain(ctx context.Context, req Request) (string, error)
}

// Disabled is the Explainer used when AI is turned off.
type Disabled struct{}

func (Disabled) Explain(context.Context, Request) (string, error) {
	return "", ErrExplainerDisabled
}

const noAnswer = "응답 없음"

// Summary describes the user in the language of the questionnaire.
func Summary(responses survey.Responses) string {
	var b strings.Builder
	fmt.Fprintf(&b, "사용자는 현재 AI에 대해 '%s' 수준의 이해도를 가지고 있고, ", orNoAnswer(responses.Knowledge()))
	fmt.Fprintf(&b, "주된 목적은 '%s', 직업은 '%s'입니다.\n", orNoAnswer(strings.Join(responses.Purposes(), ", ")), orNoAnswer(responses.Job()))
	fmt.Fprintf(&b, "관심 분야는 %s입니다.\n", orNoAnswer(strings.Join(responses.Interests(), ", ")))
	fmt.Fprintf(&b, "선호하는 도구 난이도는 '%s'입니다.", orNoAnswer(responses.Difficulty()))
	return b.String()
}

func orNoAnswer(s string) string {
	if strings.TrimSpace(s) == "" {
		return noAnswer
	}
	return s
}
