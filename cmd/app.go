package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/ai/gemini"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/feedback"
	"github.com/spigell/ai-tool-advisor/internal/knowledge"
	"github.com/spigell/ai-tool-advisor/internal/logger"
	"github.com/spigell/ai-tool-advisor/internal/recommend"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
	"github.com/spigell/ai-tool-advisor/internal/secrets"
)

const (
	knowledgeModeFTS       = "fts"
	knowledgeModeEmbedding = "embedding"
	knowledgeModeOff       = "off"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

// services are the long-lived dependencies shared by the commands.
type services struct {
	config    *Config
	logger    *zap.Logger
	catalog   *catalog.Catalog
	engine    *recommend.Engine
	explainer ai.Explainer
	feedback  feedback.Store

	closers []func() error
}

// setup builds the logger, reads the config and wires every service. Fatal
// problems end the process the way the rest of the CLI does.
func setup(ctx context.Context) *services {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ai-tool-advisor", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redact(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	s := &services{config: config, logger: logger}
	s.catalog = catalog.LoadOrEmpty(ctx, catalogSource(config, logger), logger)
	s.engine = recommend.NewEngine(s.catalog,
		recommend.WithMax(config.Recommend.Max),
		recommend.WithLogger(logger),
		recommend.WithCriteria(criteriaFactory(config.Recommend.Disable, logger)),
	)

	s.explainer = ai.Disabled{}
	if config.AI.Enabled {
		explainer, err := s.newExplainer(ctx)
		if err != nil {
			logger.Warn("explanations are disabled", zap.Error(err))
		} else {
			s.explainer = explainer
		}
	}

	return s
}

// openFeedback opens the configured feedback store and registers it for Close.
func (s *services) openFeedback() error {
	store, err := feedback.Open(s.config.Feedback.Driver, s.config.Feedback.Path)
	if err != nil {
		return fmt.Errorf("opening feedback store: %w", err)
	}
	s.feedback = store
	s.closers = append(s.closers, store.Close)

	s.logger.Debug("feedback store opened",
		zap.String("driver", s.config.Feedback.Driver),
		zap.String("path", s.config.Feedback.Path),
	)
	return nil
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("closing a resource", zap.Error(err))
		}
	}
	s.closers = nil
	_ = s.logger.Sync()
}

// catalogSource prefers the URL over the local path. No source means an empty catalog.
func catalogSource(config *Config, logger *zap.Logger) catalog.Source {
	if url := strings.TrimSpace(config.Catalog.URL); url != "" {
		return catalog.URLSource{URL: url, UserAgent: config.UserAgent, Logger: logger}
	}
	if path := strings.TrimSpace(config.Catalog.Path); path != "" {
		return catalog.FileSource{Path: path}
	}
	return nil
}

func (s *services) newExplainer(ctx context.Context) (ai.Explainer, error) {
	cfg := s.config.AI

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(s.logger, gemini.Provider, cfg.Gemini.Model).
		With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
	generator := gemini.NewGenerator(client, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)

	retriever, err := s.newRetriever(ctx, client)
	if err != nil {
		s.logger.Warn("knowledge retrieval is disabled", zap.Error(err))
		retriever = nil
	}

	return gemini.NewExplainer(generator, retriever, s.config.Knowledge.TopK, s.logger, cfg.Gemini.MaxLogLength), nil
}

// newRetriever indexes the catalog and the optional knowledge file.
func (s *services) newRetriever(ctx context.Context, client *genai.Client) (knowledge.Retriever, error) {
	cfg := s.config.Knowledge

	mode := strings.TrimSpace(strings.ToLower(cfg.Mode))
	if mode == knowledgeModeOff {
		return nil, nil
	}

	docs := knowledge.FromCatalog(s.catalog)
	if path := strings.TrimSpace(cfg.Path); path != "" {
		extra, err := knowledge.LoadFile(path)
		if err != nil {
			s.logger.Warn("skipping knowledge file", zap.String("path", path), zap.Error(err))
		} else {
			docs = append(docs, extra...)
		}
	}

	switch mode {
	case knowledgeModeFTS, "":
		index, err := knowledge.OpenFTS(cfg.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, index.Close)
		if err := index.Add(ctx, docs...); err != nil {
			return nil, fmt.Errorf("indexing knowledge: %w", err)
		}
		s.logger.Info("knowledge indexed", zap.String("mode", knowledgeModeFTS), zap.Int("documents", len(docs)))
		return index, nil
	case knowledgeModeEmbedding:
		embedder := gemini.NewEmbedder(client, s.config.AI.Gemini.EmbeddingModel, s.logger)
		index := knowledge.NewVectorIndex(embedder, 0)
		if err := index.Add(ctx, docs...); err != nil {
			return nil, fmt.Errorf("embedding knowledge: %w", err)
		}
		s.logger.Info("knowledge indexed", zap.String("mode", knowledgeModeEmbedding), zap.Int("documents", index.Len()))
		return index, nil
	default:
		return nil, fmt.Errorf("unknown knowledge mode: %s", cfg.Mode)
	}
}

// redact hides inline secrets before the config is logged.
func redact(config *Config) Config {
	out := *config
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.APIKey != "" {
		aiCfg := *config.AI
		gem := *config.AI.Gemini
		gem.APIKey = "***"
		aiCfg.Gemini = &gem
		out.AI = &aiCfg
	}
	return out
}

// criteriaFactory returns the default criteria with the named ones switched
// off. Unknown names are reported once.
func criteriaFactory(disable []string, log *zap.Logger) func() []scoring.Criterion {
	const reason = "disabled in config"

	known := scoring.Default()
	for _, name := range disable {
		if !scoring.DisableByName(known, name, reason) {
			log.Warn("unknown scoring criterion in recommend.disable", zap.String("criterion", name))
		}
	}

	return func() []scoring.Criterion {
		criteria := scoring.Default()
		for _, name := range disable {
			scoring.DisableByName(criteria, name, reason)
		}
		return criteria
	}
}
