// Package config loads server configuration from config files and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/jsonc"
)

// Config holds the full server configuration. Every field has a default, so
// the server is runnable with zero configuration.
type Config struct {
	// LLM generation backend.
	LLMBinding string `json:"llm_binding"`
	LLMHost    string `json:"llm_binding_host"`
	LLMModel   string `json:"llm_model"`

	// Embedding backend.
	EmbeddingBinding string `json:"embedding_binding"`
	EmbeddingHost    string `json:"embedding_binding_host"`
	EmbeddingModel   string `json:"embedding_model"`

	// API keys for OpenAI-compatible bindings. Unused by the ollama binding.
	LLMAPIKey       string `json:"llm_api_key"`
	EmbeddingAPIKey string `json:"embedding_api_key"`

	// HTTP bind address.
	HTTPHost string `json:"http_host"`
	HTTPPort int    `json:"http_port"`

	// StrictJSON makes malformed POST bodies fail with HTTP 400 instead of
	// the canonical 200 response carrying an in-band error status.
	StrictJSON bool `json:"strict_json"`

	LogLevel string `json:"log_level"`
}

// Default returns the built-in defaults, matching a local Ollama setup.
func Default() *Config {
	return &Config{
		LLMBinding:       "ollama",
		LLMHost:          "http://host.docker.internal:11434",
		LLMModel:         "llama3:instruct",
		EmbeddingBinding: "ollama",
		EmbeddingHost:    "http://host.docker.internal:11434",
		EmbeddingModel:   "bge-m3:latest",
		HTTPHost:         "0.0.0.0",
		HTTPPort:         9626,
		StrictJSON:       false,
		LogLevel:         "info",
	}
}

// Load builds the configuration from multiple sources (priority order):
//  1. Built-in defaults
//  2. lightrag.json / lightrag.jsonc in the given directory
//  3. Environment variables
func Load(directory string) (*Config, error) {
	cfg := Default()

	for _, name := range []string{"lightrag.json", "lightrag.jsonc"} {
		path := filepath.Join(directory, name)
		if err := loadConfigFile(path, cfg); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.HTTPPort)
	}

	return cfg, nil
}

// loadConfigFile loads a single JSONC config file into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	return json.Unmarshal(data, cfg)
}

// applyEnvOverrides applies environment variables (highest priority).
func applyEnvOverrides(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.LLMBinding, "LLM_BINDING")
	setString(&cfg.LLMHost, "LLM_BINDING_HOST")
	setString(&cfg.LLMModel, "LLM_MODEL")
	setString(&cfg.LLMAPIKey, "LLM_BINDING_API_KEY")
	setString(&cfg.EmbeddingBinding, "EMBEDDING_BINDING")
	setString(&cfg.EmbeddingHost, "EMBEDDING_BINDING_HOST")
	setString(&cfg.EmbeddingModel, "EMBEDDING_MODEL")
	setString(&cfg.EmbeddingAPIKey, "EMBEDDING_BINDING_API_KEY")
	setString(&cfg.HTTPHost, "MCP_HTTP_HOST")
	setString(&cfg.LogLevel, "MCP_LOG_LEVEL")

	if v := os.Getenv("MCP_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTPPort = port
		}
	}
	if v := os.Getenv("MCP_STRICT_JSON"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.StrictJSON = strict
		}
	}
}

// Addr returns the host:port string the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
