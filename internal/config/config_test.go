package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: regwatch
llm:
  openai:
    apiKey: "sk-test"
databases:
  milvus:
    address: "localhost:19530"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.MaxChunkTokens != 100000 {
		t.Errorf("maxChunkTokens default: got %d", cfg.Pipeline.MaxChunkTokens)
	}
	if cfg.Pipeline.PageChunkSize != 2000 {
		t.Errorf("pageChunkSize default: got %d", cfg.Pipeline.PageChunkSize)
	}
	if cfg.Pipeline.PageChunkOverlap == nil || *cfg.Pipeline.PageChunkOverlap != 25 {
		t.Errorf("pageChunkOverlap default: got %v", cfg.Pipeline.PageChunkOverlap)
	}
	if cfg.Pipeline.NeighborTopK != 7 {
		t.Errorf("neighborTopK default: got %d", cfg.Pipeline.NeighborTopK)
	}
	if cfg.Pipeline.CheckpointKey != "regwatch:last_archive" {
		t.Errorf("checkpointKey default: got %q", cfg.Pipeline.CheckpointKey)
	}
	if cfg.Pipeline.ReportPath != "comparison_report.xlsx" {
		t.Errorf("reportPath default: got %q", cfg.Pipeline.ReportPath)
	}
	if cfg.LLM.Embedding.Dimension != 1536 {
		t.Errorf("embedding dimension default: got %d", cfg.LLM.Embedding.Dimension)
	}
	if cfg.LLM.Completion.MaxTokens != 3000 {
		t.Errorf("completion maxTokens default: got %d", cfg.LLM.Completion.MaxTokens)
	}
}

func TestLoadConfigExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
llm:
  embedding:
    model: "text-embedding-3-large"
    dimension: 3072
pipeline:
  maxChunkTokens: 50000
  neighborTopK: 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.MaxChunkTokens != 50000 || cfg.Pipeline.NeighborTopK != 3 {
		t.Errorf("explicit pipeline values overridden: %+v", cfg.Pipeline)
	}
	if cfg.LLM.Embedding.Dimension != 3072 {
		t.Errorf("explicit dimension overridden: got %d", cfg.LLM.Embedding.Dimension)
	}
}

func TestLoadConfigExplicitZeroOverlapKept(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  pageChunkSize: 2000
  pageChunkOverlap: 0
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.PageChunkOverlap == nil || *cfg.Pipeline.PageChunkOverlap != 0 {
		t.Fatalf("an explicit zero overlap must survive, got %v", cfg.Pipeline.PageChunkOverlap)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "app: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
