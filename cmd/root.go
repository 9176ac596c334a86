package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "ai-tool-advisor"
	envPrefix = "AI_TOOL_ADVISOR"
)

type Config struct {
	Catalog   *CatalogConfig   `mapstructure:"catalog"`
	Recommend *RecommendConfig `mapstructure:"recommend"`
	Knowledge *KnowledgeConfig `mapstructure:"knowledge"`
	Feedback  *FeedbackConfig  `mapstructure:"feedback"`
	AI        *AIConfig        `mapstructure:"ai"`
	Server    *ServerConfig    `mapstructure:"server"`
	UserAgent string           `mapstructure:"user-agent"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

type RecommendConfig struct {
	Max     int      `mapstructure:"max"`
	Disable []string `mapstructure:"disable"`
}

type KnowledgeConfig struct {
	Path string `mapstructure:"path"`
	Mode string `mapstructure:"mode"`
	DB   string `mapstructure:"db"`
	TopK int    `mapstructure:"top-k"`
}

type FeedbackConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var defaults = map[string]any{
	"catalog.path":              "tools.json",
	"catalog.url":               "",
	"recommend.max":             3,
	"recommend.disable":         []string{},
	"knowledge.path":            "",
	"knowledge.mode":            "fts",
	"knowledge.db":              "",
	"knowledge.top-k":           4,
	"feedback.driver":           "sqlite",
	"feedback.path":             "feedback.db",
	"ai.enabled":                false,
	"ai.provider":               "gemini",
	"ai.gemini.api-key":         "",
	"ai.gemini.api-key-file":    "",
	"ai.gemini.model":           "gemini-2.5-flash",
	"ai.gemini.embedding-model": "gemini-embedding-001",
	"ai.gemini.max-retries":     2,
	"ai.gemini.max-log-length":  200,
	"server.addr":               ":8080",
	"user-agent":                app,
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ai-tool-advisor asks a few questions and recommends AI tools that fit the answers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ai-tool-advisor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Defaults are enough to run, so only an explicit or broken config is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// bindEnv lets AI_TOOL_ADVISOR_RECOMMEND_MAX override recommend.max and so on.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	config.fill()

	return config, nil
}

// fill makes every section non-nil so callers never check for missing blocks.
func (c *Config) fill() {
	if c.Catalog == nil {
		c.Catalog = &CatalogConfig{}
	}
	if c.Recommend == nil {
		c.Recommend = &RecommendConfig{}
	}
	if c.Knowledge == nil {
		c.Knowledge = &KnowledgeConfig{}
	}
	if c.Feedback == nil {
		c.Feedback = &FeedbackConfig{}
	}
	if c.AI == nil {
		c.AI = &AIConfig{}
	}
	if c.AI.Gemini == nil {
		c.AI.Gemini = &GeminiConfig{}
	}
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
}
