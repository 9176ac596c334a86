package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/archetype"
	"github.com/spigell/ai-tool-advisor/internal/knowledge"
	"github.com/spigell/ai-tool-advisor/internal/logger"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultTopK         = 4

	systemInstruction = "You recommend AI tools to Korean speaking users. Answer in Korean, in plain prose."
	noContext         = "(참고 자료 없음)"
	noTools           = "(추천 도구 없음)"
)

type textGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Explainer writes a free text explanation of a recommendation with Gemini.
type Explainer struct {
	generator textGenerator
	retriever knowledge.Retriever
	topK      int
	logger    *zap.Logger
	maxLogLen int
}

// NewExplainer builds an explainer. retriever may be nil, in which case the
// prompt carries no reference material.
func NewExplainer(generator textGenerator, retriever knowledge.Retriever, topK int, log *zap.Logger, maxLogLength int) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Explainer{
		generator: generator,
		retriever: retriever,
		topK:      topK,
		logger:    logger.WithCommonFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (e *Explainer) Explain(ctx context.Context, req ai.Request) (string, error) {
	log := logger.WithSession(e.logger, req.SessionID, string(req.Archetype))

	snippets := e.retrieve(ctx, log, req)
	prompt := buildPrompt(req, snippets)

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return "", err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

// retrieve degrades to no context on any failure.
func (e *Explainer) retrieve(ctx context.Context, log *zap.Logger, req ai.Request) []knowledge.Result {
	if e.retriever == nil {
		return nil
	}

	query := strings.Join(append(req.ToolNames(), req.Responses.Interests()...), " ")
	if strings.TrimSpace(query) == "" {
		return nil
	}

	results, err := e.retriever.Search(ctx, query, e.topK)
	if err != nil {
		log.Warn("knowledge retrieval failed, continue without context", zap.Error(err))
		return nil
	}

	log.Debug("knowledge retrieved", zap.Int("documents", len(results)))
	return results
}

func buildPrompt(req ai.Request, snippets []knowledge.Result) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "User:\n{{USER_SUMMARY}}\n\nType:\n{{ARCHETYPE}}\n\nTools:\n{{TOOLS}}\n\nContext:\n{{CONTEXT}}"
	}

	replacer := strings.NewReplacer(
		"{{USER_SUMMARY}}", ai.Summary(req.Responses),
		"{{ARCHETYPE}}", describeArchetype(req.Archetype),
		"{{TOOLS}}", formatTools(req),
		"{{CONTEXT}}", formatContext(snippets),
	)
	return replacer.Replace(template)
}

func describeArchetype(a archetype.Archetype) string {
	p := archetype.Describe(a)
	return fmt.Sprintf("%s: %s", p.Title, p.Strengths)
}

func formatTools(req ai.Request) string {
	if len(req.Tools) == 0 {
		return noTools
	}

	var b strings.Builder
	for i, tool := range req.Tools {
		if tool == nil {
			continue
		}
		fmt.Fprintf(&b, "%d. %s", i+1, tool.Name)
		if tool.Category != "" {
			fmt.Fprintf(&b, " (%s, 난이도 %s)", tool.Category, tool.Difficulty.Effective())
		}
		if desc := strings.TrimSpace(tool.Description); desc != "" {
			fmt.Fprintf(&b, ": %s", desc)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatContext(snippets []knowledge.Result) string {
	if len(snippets) == 0 {
		return noContext
	}

	var b strings.Builder
	for _, s := range snippets {
		fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(strings.TrimSpace(s.Text()), "\n", " "))
	}
	return strings.TrimSpace(b.String())
}
