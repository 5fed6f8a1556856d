package service

import (
	"context"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// RetrieverConfig controls retrieval behavior.
type RetrieverConfig struct {
	MaxResults int
}

// DefaultRetrieverConfig returns the default retrieval configuration.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{MaxResults: 3}
}

// Retriever embeds a query and returns the most relevant stored segment
// texts, ranked by descending similarity.
type Retriever struct {
	embeddings EmbeddingClient
	index      VectorIndex
	maxResults int
}

// NewRetriever creates a new Retriever instance.
func NewRetriever(embeddings EmbeddingClient, index VectorIndex, cfg RetrieverConfig) (*Retriever, error) {
	if cfg.MaxResults <= 0 {
		return nil, domain.ErrInvalidRetrieverConfig
	}
	return &Retriever{
		embeddings: embeddings,
		index:      index,
		maxResults: cfg.MaxResults,
	}, nil
}

// Retrieve embeds the query once and returns up to MaxResults segment
// texts. An empty knowledge base yields an empty result, not an error.
// Scores are not exposed; callers only see ranked text.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	embedding, err := r.embeddings.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	entries, err := r.index.Search(ctx, embedding, r.maxResults)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Segment.Text
	}
	return texts, nil
}
