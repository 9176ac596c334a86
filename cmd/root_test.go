package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
)

func TestDecodeConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	config, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Catalog.Path != "tools.json" || config.Recommend.Max != 3 {
		t.Fatalf("unexpected defaults: %+v %+v", config.Catalog, config.Recommend)
	}
	if config.Knowledge.Mode != knowledgeModeFTS || config.Knowledge.TopK != 4 {
		t.Fatalf("unexpected knowledge defaults: %+v", config.Knowledge)
	}
	if config.AI.Enabled || config.AI.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected ai defaults: %+v %+v", config.AI, config.AI.Gemini)
	}
	if len(config.Recommend.Disable) != 0 {
		t.Fatalf("expected every criterion enabled by default, got %v", config.Recommend.Disable)
	}
	if config.Server.Addr != ":8080" {
		t.Fatalf("unexpected server addr %q", config.Server.Addr)
	}
}

func TestDecodeConfigFileAndEnv(t *testing.T) {
	t.Setenv("AI_TOOL_ADVISOR_KNOWLEDGE_TOP_K", "9")

	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	v.SetConfigType("yaml")

	yaml := `
catalog:
  url: https://example.com/tools.json
recommend:
  max: 5
  disable: [description_bonus, knowledge_bias]
feedback:
  driver: file
  path: feedback.jsonl
ai:
  enabled: true
  gemini:
    api-key-file: /run/secrets/gemini
    max-retries: 4
`
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("reading config: %v", err)
	}

	config, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Catalog.URL != "https://example.com/tools.json" || config.Catalog.Path != "tools.json" {
		t.Fatalf("unexpected catalog config: %+v", config.Catalog)
	}
	if config.Recommend.Max != 5 {
		t.Fatalf("expected max 5, got %d", config.Recommend.Max)
	}
	if got := config.Recommend.Disable; len(got) != 2 || got[0] != "description_bonus" || got[1] != "knowledge_bias" {
		t.Fatalf("unexpected disabled criteria %v", got)
	}
	if config.Knowledge.TopK != 9 {
		t.Fatalf("expected env override of top-k, got %d", config.Knowledge.TopK)
	}
	if config.Feedback.Driver != "file" || config.Feedback.Path != "feedback.jsonl" {
		t.Fatalf("unexpected feedback config: %+v", config.Feedback)
	}
	if !config.AI.Enabled || config.AI.Gemini.APIKeyFile != "/run/secrets/gemini" || config.AI.Gemini.MaxRetries != 4 {
		t.Fatalf("unexpected ai config: %+v %+v", config.AI, config.AI.Gemini)
	}
	if config.AI.Gemini.EmbeddingModel != "gemini-embedding-001" {
		t.Fatalf("expected default embedding model, got %q", config.AI.Gemini.EmbeddingModel)
	}
}

func TestCatalogSource(t *testing.T) {
	config := &Config{Catalog: &CatalogConfig{Path: "tools.yaml", URL: " "}}
	config.fill()

	if src, ok := catalogSource(config, nil).(catalog.FileSource); !ok || src.Path != "tools.yaml" {
		t.Fatalf("expected file source, got %#v", catalogSource(config, nil))
	}

	config.Catalog.URL = "https://example.com/tools.json"
	if _, ok := catalogSource(config, nil).(catalog.URLSource); !ok {
		t.Fatalf("expected url source to win")
	}

	config.Catalog = &CatalogConfig{}
	if src := catalogSource(config, nil); src != nil {
		t.Fatalf("expected no source, got %#v", src)
	}
}

func TestRedactHidesInlineKey(t *testing.T) {
	config := &Config{AI: &AIConfig{Gemini: &GeminiConfig{APIKey: "secret", Model: "m"}}}

	out := redact(config)

	if out.AI.Gemini.APIKey != "***" || out.AI.Gemini.Model != "m" {
		t.Fatalf("unexpected redacted config: %+v", out.AI.Gemini)
	}
	if config.AI.Gemini.APIKey != "secret" {
		t.Fatalf("redact must not modify the original config")
	}
}

func TestCriteriaFactory(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	factory := criteriaFactory([]string{"description_bonus", "vibes"}, zap.New(core))

	warned := logs.FilterMessage("unknown scoring criterion in recommend.disable").All()
	if len(warned) != 1 || warned[0].ContextMap()["criterion"] != "vibes" {
		t.Fatalf("expected one warning for the unknown name, got %v", warned)
	}

	scratch := factory()
	scoring.DisableByName(scratch, "job_category", "scratch")

	for _, status := range scoring.Describe(factory()) {
		wantEnabled := status.Name != "description_bonus"
		if status.Enabled != wantEnabled {
			t.Fatalf("unexpected status %+v", status)
		}
		if !wantEnabled && status.Reason != "disabled in config" {
			t.Fatalf("unexpected reason %q", status.Reason)
		}
	}
	if n := logs.Len(); n != 1 {
		t.Fatalf("factory calls must not warn again, got %d entries", n)
	}
}

func TestListCriteria(t *testing.T) {
	steps := scoring.Default()
	scoring.DisableByName(steps, "job_category", "disabled in config")

	var out bytes.Buffer
	listCriteria(&out, scoring.Describe(steps))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(steps) {
		t.Fatalf("expected %d lines, got %q", len(steps), out.String())
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if fields[0] == "job_category" {
			if fields[1] != "disabled" || !strings.Contains(line, "disabled in config") {
				t.Fatalf("unexpected line %q", line)
			}
			continue
		}
		if fields[1] != "enabled" {
			t.Fatalf("unexpected line %q", line)
		}
	}
}
