package index

import (
	"context"
	"testing"

	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(sourceID, text string, embedding ...float32) domain.IndexEntry {
	return domain.IndexEntry{
		Embedding: embedding,
		Segment:   domain.Segment{SourceID: sourceID, Text: text},
	}
}

func TestMemoryIndex_Search_RanksByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("far.md", "mostly orthogonal", 0, 1),
		entry("near.md", "almost parallel", 0.9, 0.1),
		entry("exact.md", "same direction", 1, 0),
	}))

	results, err := idx.Search(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact.md", results[0].Segment.SourceID)
	assert.Equal(t, "near.md", results[1].Segment.SourceID)
}

// Cosine similarity is magnitude-invariant: a scaled copy of the query
// ranks the same as the query itself.
func TestMemoryIndex_Search_MagnitudeInvariant(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("scaled.md", "big copy", 10, 0),
		entry("other.md", "different", 0, 1),
	}))

	results, err := idx.Search(ctx, []float32{0.1, 0}, 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "scaled.md", results[0].Segment.SourceID)
}

func TestMemoryIndex_Search_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("first.md", "inserted first", 1, 1),
		entry("second.md", "inserted second", 1, 1),
		entry("third.md", "inserted third", 1, 1),
	}))

	results, err := idx.Search(ctx, []float32{1, 1}, 3)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first.md", results[0].Segment.SourceID)
	assert.Equal(t, "second.md", results[1].Segment.SourceID)
	assert.Equal(t, "third.md", results[2].Segment.SourceID)
}

func TestMemoryIndex_Search_KLargerThanIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("a.md", "a", 1, 0),
		entry("b.md", "b", 0, 1),
	}))

	results, err := idx.Search(ctx, []float32{1, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "a.md", results[0].Segment.SourceID)
}

func TestMemoryIndex_Search_EmptyIndex(t *testing.T) {
	idx := NewMemoryIndex()

	results, err := idx.Search(context.Background(), []float32{1, 0}, 5)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryIndex_Search_InvalidLimit(t *testing.T) {
	idx := NewMemoryIndex()

	for _, k := range []int{0, -1} {
		results, err := idx.Search(context.Background(), []float32{1, 0}, k)

		assert.ErrorIs(t, err, domain.ErrInvalidSearchLimit)
		assert.Nil(t, results)
	}
}

// Dimension mismatches score zero instead of failing, so one bad entry
// cannot break every search.
func TestMemoryIndex_Search_DimensionMismatchScoresZero(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("mismatched.md", "three dims", 1, 0, 0),
		entry("matching.md", "two dims", 0.5, 0.5),
	}))

	results, err := idx.Search(ctx, []float32{1, 1}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "matching.md", results[0].Segment.SourceID)
}

func TestMemoryIndex_Clear(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{entry("a.md", "a", 1, 0)}))
	require.Equal(t, 1, idx.Len())

	require.NoError(t, idx.Clear(ctx))

	assert.Equal(t, 0, idx.Len())
	results, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryIndex_Replace_SwapsEntireEntrySet(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{
		entry("old-a.md", "old a", 1, 0),
		entry("old-b.md", "old b", 0, 1),
	}))

	require.NoError(t, idx.Replace(ctx, []domain.IndexEntry{entry("new.md", "new", 1, 0)}))

	require.Equal(t, 1, idx.Len())
	results, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new.md", results[0].Segment.SourceID)
}

func TestMemoryIndex_Replace_Empty(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	require.NoError(t, idx.Add(ctx, []domain.IndexEntry{entry("a.md", "a", 1, 0)}))
	require.NoError(t, idx.Replace(ctx, nil))

	assert.Equal(t, 0, idx.Len())
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}
