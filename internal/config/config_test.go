package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Path != "data/training-data-axolotl.jsonl" {
		t.Fatalf("unexpected default output path %q", cfg.Output.Path)
	}
	if cfg.Corpus.Path != "" {
		t.Fatalf("default corpus path must be empty (embedded pack)")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.JSON {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `output:
  path: /tmp/out.jsonl
corpus:
  path: corpus.yaml
logging:
  level: debug
  json: true
metrics:
  address: ":2112"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Path != "/tmp/out.jsonl" {
		t.Fatalf("output path not applied: %q", cfg.Output.Path)
	}
	if cfg.Corpus.Path != "corpus.yaml" {
		t.Fatalf("corpus path not applied: %q", cfg.Corpus.Path)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Fatalf("logging not applied: %+v", cfg.Logging)
	}
	if cfg.Metrics.Address != ":2112" {
		t.Fatalf("metrics address not applied: %q", cfg.Metrics.Address)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRAINSET_OUTPUT_PATH", "/tmp/env.jsonl")
	t.Setenv("TRAINSET_CORPUS_PATH", "env-corpus.yaml")
	t.Setenv("TRAINSET_LOG_LEVEL", "warn")
	t.Setenv("TRAINSET_LOG_FORMAT", "json")
	t.Setenv("TRAINSET_METRICS_ADDRESS", ":9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Path != "/tmp/env.jsonl" {
		t.Fatalf("output override missing: %q", cfg.Output.Path)
	}
	if cfg.Corpus.Path != "env-corpus.yaml" {
		t.Fatalf("corpus override missing: %q", cfg.Corpus.Path)
	}
	if cfg.Logging.Level != "warn" || !cfg.Logging.JSON {
		t.Fatalf("logging overrides missing: %+v", cfg.Logging)
	}
	if cfg.Metrics.Address != ":9999" {
		t.Fatalf("metrics override missing: %q", cfg.Metrics.Address)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
