package domain

// Document is a single knowledge base source, identified by its filename
// (or object key). Immutable once loaded.
type Document struct {
	ID   string
	Text string
}

// Segment is a bounded-length slice of a Document, the unit of retrieval.
// Ordinal is the segment's position within its source document.
type Segment struct {
	SourceID string
	Text     string
	Ordinal  int
}

// IndexEntry pairs a segment with its embedding for storage in a vector
// index. Entries live for the process lifetime in the in-memory index and
// indefinitely in the pgvector-backed one.
type IndexEntry struct {
	Embedding []float32
	Segment   Segment
}
