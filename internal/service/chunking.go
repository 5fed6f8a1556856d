package service

import (
	"unicode"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// ChunkConfig controls how documents are split for embedding.
type ChunkConfig struct {
	MaxChars int
	Overlap  int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars: 1200,
		Overlap:  200,
	}
}

// Validate checks the chunking parameters.
func (cfg ChunkConfig) Validate() error {
	if cfg.MaxChars <= 0 {
		return domain.ErrInvalidChunkConfig
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxChars {
		return domain.ErrInvalidChunkConfig
	}
	return nil
}

// Split cuts a document into ordered segments of at most cfg.MaxChars
// runes. Each segment after the first starts exactly cfg.Overlap runes
// before the end of the previous one, so concatenating segments with the
// overlap prefix stripped reproduces the source text. Cuts prefer a
// whitespace boundary near the limit over a hard mid-word cut. Splitting
// is deterministic.
func Split(doc domain.Document, cfg ChunkConfig) ([]domain.Segment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if doc.Text == "" {
		return nil, nil
	}

	runes := []rune(doc.Text)
	segments := make([]domain.Segment, 0, len(runes)/cfg.MaxChars+1)
	start := 0
	for start < len(runes) {
		end := start + cfg.MaxChars
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end, cfg.Overlap)
		}

		segments = append(segments, domain.Segment{
			SourceID: doc.ID,
			Text:     string(runes[start:end]),
			Ordinal:  len(segments),
		})

		if end >= len(runes) {
			break
		}
		start = end - cfg.Overlap
	}

	return segments, nil
}

// cutPoint backtracks from the hard limit looking for a whitespace
// boundary. The cut never moves past start+overlap, which guarantees the
// next segment start advances.
func cutPoint(runes []rune, start, end, overlap int) int {
	minCut := start + (end-start)/2
	if minCut <= start+overlap {
		minCut = start + overlap + 1
	}
	for i := end; i > minCut; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
