package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/secubot/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.AdaEmbeddingV2
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from ada-002
	DefaultEmbeddingDimensions = 1536
	// DefaultChatModel is the OpenAI model used for review generation
	DefaultChatModel = openai.GPT4oMini
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when an embedding has wrong dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
	// ErrNoChoices is returned when a completion has no choices
	ErrNoChoices = errors.New("no completion choices returned")
)

// CompletionAPI defines the low-level API surface the client depends on
type CompletionAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	CreateChatCompletion(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Client adapts the OpenAI API to the review pipeline's embedding and
// model provider interfaces.
type Client struct {
	api        CompletionAPI
	dimensions int
}

// OpenAIAdapter is the concrete CompletionAPI over go-openai.
type OpenAIAdapter struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	chatModel      string
}

// NewOpenAIAdapter creates a new adapter with the given models; empty
// model names fall back to defaults.
func NewOpenAIAdapter(apiKey string, embeddingModel openai.EmbeddingModel, chatModel string) *OpenAIAdapter {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &OpenAIAdapter{
		client:         openai.NewClient(apiKey),
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
	}
}

// CreateEmbeddings calls the OpenAI API to embed a batch of texts.
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}

// CreateChatCompletion calls the OpenAI chat API with a system and user
// message. API errors carry the HTTP status and body for diagnostics.
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion failed (status %d): %w", apiErr.HTTPStatusCode, err)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// Config holds OpenAI client configuration.
type Config struct {
	APIKey              string
	EmbeddingModel      string
	ChatModel           string
	EmbeddingDimensions int
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, openai.EmbeddingModel(cfg.EmbeddingModel), cfg.ChatModel),
		dimensions: dimensions,
	}
}

// GenerateEmbedding generates an embedding for the given text
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	vectors, err := c.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings generates embeddings for a batch of texts in one call
func (c *Client) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyText
	}

	vectors, err := c.api.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	for _, vec := range vectors {
		if len(vec) != c.dimensions {
			return nil, ErrWrongDimensions
		}
	}
	return vectors, nil
}

// Invoke executes an assembled model request and returns the raw text of
// the first completion choice. Instructions travel on the system channel;
// the untrusted payload is the sole user-channel content.
func (c *Client) Invoke(ctx context.Context, req domain.ModelRequest) (string, error) {
	user := "INPUT_JSON=" + req.Payload
	text, err := c.api.CreateChatCompletion(ctx, req.Instructions, user, req.Temperature, req.MaxOutputTokens)
	if err != nil {
		return "", fmt.Errorf("failed to invoke model: %w", err)
	}
	return text, nil
}
