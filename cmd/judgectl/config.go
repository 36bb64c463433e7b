package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultWorkspaceBase = "/tmp/judgectl/workspaces"
	defaultTranscriptDir = "/tmp/judgectl/transcripts"
	defaultDefaultLang   = "python3"
)

// Config holds judgectl's own startup configuration, loaded from a YAML
// file alongside the usual flag overrides.
type Config struct {
	WorkspaceBase    string `yaml:"workspaceBase"`
	TranscriptDir    string `yaml:"transcriptDir"`
	DefaultLanguage  string `yaml:"defaultLanguage"`
	EnableCgroup     bool   `yaml:"enableCgroup"`
	EnableNamespaces bool   `yaml:"enableNamespaces"`
	EnableSeccomp    bool   `yaml:"enableSeccomp"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file failed: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file failed: %w", err)
		}
	}
	applyConfigDefaults(&cfg)
	return cfg, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.WorkspaceBase == "" {
		cfg.WorkspaceBase = defaultWorkspaceBase
	}
	if cfg.TranscriptDir == "" {
		cfg.TranscriptDir = defaultTranscriptDir
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = defaultDefaultLang
	}
}
