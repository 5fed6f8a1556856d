package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL"`
	ChatModel      string `envconfig:"CHAT_MODEL"`
	// MockLLM short-circuits the model call with a canned verdict, for CI
	// dry runs. Embeddings still use the real provider.
	MockLLM bool `envconfig:"MOCK_LLM" default:"false"`

	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	KnowledgeBasePath string `envconfig:"KNOWLEDGE_BASE_PATH" default:"knowledge-base"`

	// DatabaseURL enables the pgvector-backed index; empty means the
	// per-run in-memory index.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"secubot-knowledge"`
	S3Prefix    string `envconfig:"S3_PREFIX"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	MaxChunkChars int `envconfig:"MAX_CHUNK_CHARS" default:"1200"`
	ChunkOverlap  int `envconfig:"CHUNK_OVERLAP" default:"200"`
	MaxResults    int `envconfig:"MAX_RESULTS" default:"3"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"2m"`
	ReindexInterval time.Duration `envconfig:"REINDEX_INTERVAL" default:"10m"`

	// FailOpen controls the exit code when no verdict could be reached
	// (not the risk gate, which always fails open on UNKNOWN).
	FailOpen bool `envconfig:"FAIL_OPEN" default:"false"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SECUBOT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
