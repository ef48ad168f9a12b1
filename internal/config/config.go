package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldConfig defines one field of the Milvus collection schema.
type FieldConfig struct {
	Name         string `yaml:"name"`                // field name
	DataType     string `yaml:"dataType"`            // e.g. "VarChar", "FloatVector"
	IsPrimaryKey bool   `yaml:"isPrimaryKey"`        // whether this field is the primary key
	Dim          int    `yaml:"dim,omitempty"`       // vector dimension (vector types only)
	MaxLength    int    `yaml:"maxLength,omitempty"` // max length (VarChar only)
}

// IndexConfig defines the vector index built on the collection.
type IndexConfig struct {
	FieldName  string                 `yaml:"fieldName"`  // field to index
	IndexType  string                 `yaml:"indexType"`  // e.g. "HNSW", "IVF_FLAT"
	MetricType string                 `yaml:"metricType"` // e.g. "L2", "COSINE"
	Params     map[string]interface{} `yaml:"params"`     // index parameters
}

// SchemaConfig defines the Milvus collection schema.
type SchemaConfig struct {
	CollectionName string        `yaml:"collectionName"`
	Description    string        `yaml:"description"`
	VectorField    string        `yaml:"vectorField"`
	Fields         []FieldConfig `yaml:"fields"`
	Index          IndexConfig   `yaml:"index"`
}

// MilvusConfig holds the Milvus connection and schema configuration.
type MilvusConfig struct {
	Address string       `yaml:"address"`
	Schema  SchemaConfig `yaml:"schema"`
}

// MinIOConfig holds the object storage connection configuration.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure"`
}

// RedisConfig holds the Redis connection configuration.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// OpenAIConfig holds the connection settings shared by the completion and
// embedding clients. BaseURL allows pointing at an OpenAI-compatible gateway.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

// CompletionConfig holds the chat-completion request parameters. The knobs
// mirror what the upstream deployment was tuned with.
type CompletionConfig struct {
	Model            string  `yaml:"model"`
	Temperature      float32 `yaml:"temperature"`
	MaxTokens        int     `yaml:"maxTokens"`
	TopP             float32 `yaml:"topP"`
	FrequencyPenalty float32 `yaml:"frequencyPenalty"`
	PresencePenalty  float32 `yaml:"presencePenalty"`
}

// EmbeddingConfig holds the embedding deployment parameters.
type EmbeddingConfig struct {
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// LLMConfig groups the completion and embedding settings under one provider.
type LLMConfig struct {
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Completion CompletionConfig `yaml:"completion"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
}

// EmailConfig holds the SMTP submission settings for report delivery.
type EmailConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
	CC       []string `yaml:"cc,omitempty"`
}

// PipelineConfig holds the batch processing knobs.
type PipelineConfig struct {
	MaxChunkTokens int `yaml:"maxChunkTokens"` // token budget per chunk fed to the LLM
	PageChunkSize  int `yaml:"pageChunkSize"`  // character window for page text segmentation
	// PageChunkOverlap is a pointer so that an explicit 0 is distinguishable
	// from an absent key, which defaults to 25.
	PageChunkOverlap *int   `yaml:"pageChunkOverlap"`
	NeighborTopK     int    `yaml:"neighborTopK"`     // neighbors fetched per document
	CheckpointKey    string `yaml:"checkpointKey"`    // redis key for the batch cursor
	ReportPath       string `yaml:"reportPath"`       // where the xlsx report is written
}

// DatabaseConfigs groups the external store configurations.
type DatabaseConfigs struct {
	Milvus MilvusConfig `yaml:"milvus"`
	MinIO  MinIOConfig  `yaml:"minio"`
	Redis  RedisConfig  `yaml:"redis"`
}

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

// LoggerConfig holds the logger settings.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root of the YAML configuration. It is loaded once at
// startup and passed by injection; nothing mutates it afterwards.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Logger    LoggerConfig    `yaml:"logger"`
	LLM       LLMConfig       `yaml:"llm"`
	Databases DatabaseConfigs `yaml:"databases"`
	Email     EmailConfig     `yaml:"email"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// LoadConfig reads and parses the YAML configuration file at path and
// applies defaults for the pipeline knobs that were left unset.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Pipeline.MaxChunkTokens <= 0 {
		c.Pipeline.MaxChunkTokens = 100000
	}
	if c.Pipeline.PageChunkSize <= 0 {
		c.Pipeline.PageChunkSize = 2000
	}
	if c.Pipeline.PageChunkOverlap == nil || *c.Pipeline.PageChunkOverlap < 0 {
		overlap := 25
		c.Pipeline.PageChunkOverlap = &overlap
	}
	if c.Pipeline.NeighborTopK <= 0 {
		c.Pipeline.NeighborTopK = 7
	}
	if c.Pipeline.CheckpointKey == "" {
		c.Pipeline.CheckpointKey = "regwatch:last_archive"
	}
	if c.Pipeline.ReportPath == "" {
		c.Pipeline.ReportPath = "comparison_report.xlsx"
	}
	if c.LLM.Embedding.Dimension <= 0 {
		c.LLM.Embedding.Dimension = 1536
	}
	if c.LLM.Completion.MaxTokens <= 0 {
		c.LLM.Completion.MaxTokens = 3000
	}
}
