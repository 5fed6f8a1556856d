package index

import (
	"context"

	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PGVectorIndex stores segment embeddings in Postgres with the pgvector
// extension. It implements the same contract as MemoryIndex for
// deployments where the knowledge index should survive process restarts
// and be shared between runs.
type PGVectorIndex struct {
	pool *pgxpool.Pool
}

// NewPGVectorIndex creates a PGVectorIndex backed by the given pool. The
// kb_segments table must exist (see migrations).
func NewPGVectorIndex(pool *pgxpool.Pool) *PGVectorIndex {
	return &PGVectorIndex{pool: pool}
}

// Add inserts entries, preserving insertion order via the serial id so
// that equal-distance ties rank earlier-inserted entries first.
func (p *PGVectorIndex) Add(ctx context.Context, entries []domain.IndexEntry) error {
	for _, entry := range entries {
		_, err := p.pool.Exec(ctx,
			`INSERT INTO kb_segments (source_id, ordinal, content, embedding)
			 VALUES ($1, $2, $3, $4)`,
			entry.Segment.SourceID,
			entry.Segment.Ordinal,
			entry.Segment.Text,
			pgvector.NewVector(entry.Embedding),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all stored segments.
func (p *PGVectorIndex) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM kb_segments`)
	return err
}

// Replace swaps the entire entry set in a single transaction, so
// concurrent searches see either the old set or the new one and a failed
// rebuild rolls back to the previous contents.
func (p *PGVectorIndex) Replace(ctx context.Context, entries []domain.IndexEntry) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM kb_segments`); err != nil {
		return err
	}
	for _, entry := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO kb_segments (source_id, ordinal, content, embedding)
			 VALUES ($1, $2, $3, $4)`,
			entry.Segment.SourceID,
			entry.Segment.Ordinal,
			entry.Segment.Text,
			pgvector.NewVector(entry.Embedding),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Search returns up to k entries ordered by ascending cosine distance to
// the query embedding.
func (p *PGVectorIndex) Search(ctx context.Context, query []float32, k int) ([]domain.IndexEntry, error) {
	if k <= 0 {
		return nil, domain.ErrInvalidSearchLimit
	}

	vec := pgvector.NewVector(query)
	rows, err := p.pool.Query(ctx,
		`SELECT source_id, ordinal, content, embedding
		 FROM kb_segments
		 ORDER BY embedding <=> $1, id
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.IndexEntry, 0, k)
	for rows.Next() {
		var entry domain.IndexEntry
		var embedding pgvector.Vector
		if err := rows.Scan(&entry.Segment.SourceID, &entry.Segment.Ordinal, &entry.Segment.Text, &embedding); err != nil {
			return nil, err
		}
		entry.Embedding = embedding.Slice()
		results = append(results, entry)
	}

	return results, rows.Err()
}
