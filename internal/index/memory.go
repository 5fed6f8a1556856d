// Package index provides vector index implementations behind the
// service.VectorIndex interface: an in-memory cosine index used for
// one-shot runs, and a pgvector-backed index for shared deployments.
package index

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// MemoryIndex is an in-memory vector index using cosine similarity.
// Entries are rebuilt on every run; nothing is persisted. Ties rank by
// insertion order. An RWMutex serializes writes against Search so
// daemon-mode reindexing cannot race steady-state queries.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries []domain.IndexEntry
}

// NewMemoryIndex creates an empty MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add appends entries to the index.
func (m *MemoryIndex) Add(ctx context.Context, entries []domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

// Clear removes all entries.
func (m *MemoryIndex) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Replace swaps the entire entry set in one step. Searches see either
// the old set or the new one, never a partial rebuild.
func (m *MemoryIndex) Replace(ctx context.Context, entries []domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]domain.IndexEntry(nil), entries...)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Search returns up to k entries ranked by descending cosine similarity
// to the query. k larger than the index size returns all entries, fully
// ranked; an empty index returns an empty result.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]domain.IndexEntry, error) {
	if k <= 0 {
		return nil, domain.ErrInvalidSearchLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scored := make([]scoredEntry, len(m.entries))
	for i, entry := range m.entries {
		scored[i] = scoredEntry{
			entry: entry,
			score: cosineSimilarity(query, entry.Embedding),
		}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if k > len(scored) {
		k = len(scored)
	}

	results := make([]domain.IndexEntry, k)
	for i := 0; i < k; i++ {
		results[i] = scored[i].entry
	}
	return results, nil
}

type scoredEntry struct {
	entry domain.IndexEntry
	score float64
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either has zero magnitude or the dimensions disagree.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
