// Package agent selects which model serves each analysis task, driven by a
// yaml config file.
package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"strategic_analyst/pkg/core/llm"
)

// Config is the models.yaml shape: one active provider plus optional
// per-task model overrides.
type Config struct {
	ActiveProvider string            `yaml:"active_provider"`
	DefaultModel   string            `yaml:"default_model"`
	Models         map[string]string `yaml:"models"`
}

// DefaultConfig returns the configuration used when no models.yaml exists.
func DefaultConfig() Config {
	return Config{
		ActiveProvider: "gemini",
		DefaultModel:   "gemini-2.0-flash",
	}
}

// LoadConfig reads a yaml config file, falling back to defaults when the
// file is absent.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = "gemini"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-2.0-flash"
	}
	return cfg, nil
}

// Manager hands out providers per task kind. Only Gemini is wired; the
// config indirection exists so a task (e.g. risk simulation) can run on a
// stronger model without code changes.
type Manager struct {
	config Config
}

// NewManager creates a manager for the config.
func NewManager(config Config) *Manager {
	return &Manager{config: config}
}

// ProviderFor returns the provider serving a task kind, applying any
// per-task model override.
func (m *Manager) ProviderFor(taskKind string) llm.Provider {
	model := m.config.DefaultModel
	if override, ok := m.config.Models[taskKind]; ok && override != "" {
		model = override
	}
	return &llm.GeminiProvider{Model: model}
}

// ActiveProvider returns the configured provider name.
func (m *Manager) ActiveProvider() string {
	return m.config.ActiveProvider
}
