package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type FalkorConfig struct {
	Addr  string `toml:"addr"`
	Graph string `toml:"graph"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ExtractionConfig struct {
	Prompt string `toml:"prompt"`
}

type PipelineConfig struct {
	// Driver selects the sink: "falkor", "memgraph" or "dryrun".
	Driver string `toml:"driver"`
	// Embeddings toggles entity name embeddings.
	Embeddings bool `toml:"embeddings"`
}

type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Falkor     FalkorConfig     `toml:"falkor"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	Extraction ExtractionConfig `toml:"extraction"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
		if c.LLM.Model == "" {
			c.LLM.Model = "gemma3:12b"
		}
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = "http://localhost:11434"
		}
	}
	if c.Falkor.Addr == "" {
		c.Falkor.Addr = "localhost:6379"
	}
	if c.Falkor.Graph == "" {
		c.Falkor.Graph = "graphiti_migration"
	}
	if c.Memgraph.URI == "" {
		c.Memgraph.URI = "bolt://localhost:7687"
	}
	if c.Pipeline.Driver == "" {
		c.Pipeline.Driver = "falkor"
	}
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Falkor.Addr, "FALKOR_ADDR")
	set(&c.Falkor.Graph, "FALKOR_GRAPH")
	set(&c.Memgraph.URI, "MEMGRAPH_URI")
	set(&c.Memgraph.User, "MEMGRAPH_USER")
	set(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	set(&c.Pipeline.Driver, "GRAPH_DRIVER")
}

func set(target *string, env string) {
	if v := os.Getenv(env); v != "" {
		*target = v
	}
}
