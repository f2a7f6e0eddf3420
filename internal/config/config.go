package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete flexkb configuration (v2 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	IndexDir string `json:"indexDir" mapstructure:"indexDir"`
	StateDir string `json:"stateDir" mapstructure:"stateDir"`

	Corpora CorporaConfig `json:"corpora" mapstructure:"corpora"`
	Search  SearchConfig  `json:"search" mapstructure:"search"`
	Graph   GraphConfig   `json:"graph" mapstructure:"graph"`
	Runner  RunnerConfig  `json:"runner" mapstructure:"runner"`
	Watcher WatcherConfig `json:"watcher" mapstructure:"watcher"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// CorporaConfig locates the three corpus documents relative to IndexDir.
// Any of them may be absent; the affected query surface degrades.
type CorporaConfig struct {
	Flexlibs2Path      string `json:"flexlibs2Path" mapstructure:"flexlibs2Path"`
	FlexlibsStablePath string `json:"flexlibsStablePath" mapstructure:"flexlibsStablePath"`
	LiblcmPath         string `json:"liblcmPath" mapstructure:"liblcmPath"`
	NavigationPath     string `json:"navigationPath" mapstructure:"navigationPath"`
}

// SearchConfig contains search engine configuration
type SearchConfig struct {
	MaxResults     int            `json:"maxResults" mapstructure:"maxResults"`
	SourceBoosts   map[string]int `json:"sourceBoosts" mapstructure:"sourceBoosts"`
	SynonymsPath   string         `json:"synonymsPath" mapstructure:"synonymsPath"`
	EmbeddingsPath string         `json:"embeddingsPath" mapstructure:"embeddingsPath"`
	EmbeddingURL   string         `json:"embeddingUrl" mapstructure:"embeddingUrl"`
	VectorEnabled  bool           `json:"vectorEnabled" mapstructure:"vectorEnabled"`
}

// GraphConfig contains path resolver configuration
type GraphConfig struct {
	MaxDepth int `json:"maxDepth" mapstructure:"maxDepth"`
}

// RunnerConfig contains module runner configuration
type RunnerConfig struct {
	Interpreter    string `json:"interpreter" mapstructure:"interpreter"`
	TimeoutSeconds int    `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

// WatcherConfig contains index watcher configuration
type WatcherConfig struct {
	Enabled    bool `json:"enabled" mapstructure:"enabled"`
	DebounceMs int  `json:"debounceMs" mapstructure:"debounceMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
}

// DefaultStateDir returns the per-user state directory (~/.flexkb).
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flexkb"
	}
	return filepath.Join(home, ".flexkb")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  2,
		IndexDir: "index",
		StateDir: DefaultStateDir(),
		Corpora: CorporaConfig{
			Flexlibs2Path:      "flexlibs/flexlibs2_api.json",
			FlexlibsStablePath: "flexlibs/flexlibs_api.json",
			LiblcmPath:         "liblcm/flex-api-enhanced.json",
			NavigationPath:     "navigation_graph.json",
		},
		Search: SearchConfig{
			MaxResults: 10,
			SourceBoosts: map[string]int{
				"flexlibs2":       5,
				"flexlibs_stable": 3,
				"liblcm":          0,
			},
			SynonymsPath:   "synonyms.yaml",
			EmbeddingsPath: "embeddings/embeddings.json",
			EmbeddingURL:   "",
			VectorEnabled:  true,
		},
		Graph: GraphConfig{
			MaxDepth: 5,
		},
		Runner: RunnerConfig{
			Interpreter:    "python3",
			TimeoutSeconds: 300,
		},
		Watcher: WatcherConfig{
			Enabled:    false,
			DebounceMs: 500,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "flexkb.log",
			MaxSize:    "5MB",
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from <dir>/flexkb.json, falling back to defaults
// when the file does not exist.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("flexkb")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <dir>/flexkb.json
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "flexkb.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.IndexDir == "" {
		return fmt.Errorf("indexDir must not be empty")
	}
	if c.Graph.MaxDepth <= 0 {
		return fmt.Errorf("graph.maxDepth must be positive, got %d", c.Graph.MaxDepth)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.maxResults must be positive, got %d", c.Search.MaxResults)
	}
	if c.Runner.TimeoutSeconds <= 0 {
		return fmt.Errorf("runner.timeoutSeconds must be positive, got %d", c.Runner.TimeoutSeconds)
	}
	return nil
}

// CorpusPath resolves a corpus-relative path against IndexDir.
func (c *Config) CorpusPath(rel string) string {
	if rel == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.IndexDir, rel)
}

// PatternStorePath returns the flat file holding pattern statistics.
func (c *Config) PatternStorePath() string {
	return filepath.Join(c.StateDir, "api_patterns.json")
}

// LogPath returns the operations log path.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, c.Logging.File)
}
