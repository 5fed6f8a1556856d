package service

import (
	"context"
	"fmt"
	"log"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex stores embedded segments and answers top-k similarity
// queries. Replace swaps the full entry set in atomically, so readers
// never observe a half-built index and a failed rebuild never destroys
// the previous one. Implementations must keep insertion order as the
// tie-break for equal scores.
type VectorIndex interface {
	Replace(ctx context.Context, entries []domain.IndexEntry) error
	Search(ctx context.Context, query []float32, k int) ([]domain.IndexEntry, error)
}

// DocumentSource yields the knowledge base documents to index. A missing
// corpus root is not an error; it yields zero documents.
type DocumentSource interface {
	Documents(ctx context.Context) ([]domain.Document, error)
}

// Indexer populates a vector index from a document corpus.
type Indexer struct {
	source     DocumentSource
	embeddings EmbeddingClient
	index      VectorIndex
	chunkCfg   ChunkConfig
}

// NewIndexer creates a new Indexer instance. The chunk configuration is
// validated here so malformed parameters fail at startup, before any
// external call.
func NewIndexer(source DocumentSource, embeddings EmbeddingClient, index VectorIndex, chunkCfg ChunkConfig) (*Indexer, error) {
	if err := chunkCfg.Validate(); err != nil {
		return nil, err
	}
	return &Indexer{
		source:     source,
		embeddings: embeddings,
		index:      index,
		chunkCfg:   chunkCfg,
	}, nil
}

// BuildIndex loads the corpus from the document source and indexes it.
// The assembled entry set replaces the previous one wholesale, so
// rebuilding never duplicates entries.
func (s *Indexer) BuildIndex(ctx context.Context) error {
	docs, err := s.source.Documents(ctx)
	if err != nil {
		return domain.NewIndexingFailed(err)
	}
	if len(docs) == 0 {
		log.Println("knowledge base is empty, reviews will run without retrieved context")
	}
	return s.IndexDocuments(ctx, docs)
}

// IndexDocuments chunks each document, embeds its segments in one batch
// call per document, and swaps the assembled entry set into the index.
// Any failure leaves the previous index contents untouched, so a daemon
// reindex tick that hits an embedding outage keeps serving the last good
// index.
func (s *Indexer) IndexDocuments(ctx context.Context, docs []domain.Document) error {
	var entries []domain.IndexEntry
	for _, doc := range docs {
		segments, err := Split(doc, s.chunkCfg)
		if err != nil {
			return err
		}
		if len(segments) == 0 {
			continue
		}

		texts := make([]string, len(segments))
		for i, seg := range segments {
			texts[i] = seg.Text
		}

		vectors, err := s.embeddings.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return domain.NewIndexingFailed(fmt.Errorf("embedding document %s: %w", doc.ID, err))
		}
		if len(vectors) != len(segments) {
			return domain.NewIndexingFailed(fmt.Errorf("embedding document %s: got %d vectors for %d segments", doc.ID, len(vectors), len(segments)))
		}

		for i, seg := range segments {
			entries = append(entries, domain.IndexEntry{
				Embedding: vectors[i],
				Segment:   seg,
			})
		}

		log.Printf("embedded knowledge doc: %s (%d segments)", doc.ID, len(segments))
	}

	if err := s.index.Replace(ctx, entries); err != nil {
		return domain.NewIndexingFailed(fmt.Errorf("storing %d entries: %w", len(entries), err))
	}

	return nil
}
