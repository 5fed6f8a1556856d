package service

import (
	"strings"
	"testing"
	"unicode"

	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ChunkConfig
		wantErr bool
	}{
		{"defaults", DefaultChunkConfig(), false},
		{"zero max chars", ChunkConfig{MaxChars: 0, Overlap: 0}, true},
		{"negative max chars", ChunkConfig{MaxChars: -1, Overlap: 0}, true},
		{"negative overlap", ChunkConfig{MaxChars: 100, Overlap: -1}, true},
		{"overlap equals max chars", ChunkConfig{MaxChars: 100, Overlap: 100}, true},
		{"overlap exceeds max chars", ChunkConfig{MaxChars: 100, Overlap: 150}, true},
		{"zero overlap allowed", ChunkConfig{MaxChars: 100, Overlap: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplit_EmptyDocument(t *testing.T) {
	segments, err := Split(domain.Document{ID: "empty.md"}, DefaultChunkConfig())

	assert.NoError(t, err)
	assert.Empty(t, segments)
}

func TestSplit_ShortDocument_SingleSegment(t *testing.T) {
	doc := domain.Document{ID: "short.md", Text: "a short document"}

	segments, err := Split(doc, DefaultChunkConfig())

	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, doc.Text, segments[0].Text)
	assert.Equal(t, "short.md", segments[0].SourceID)
	assert.Equal(t, 0, segments[0].Ordinal)
}

func TestSplit_RespectsMaxChars(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: strings.Repeat("word and more ", 200)}
	cfg := ChunkConfig{MaxChars: 50, Overlap: 10}

	segments, err := Split(doc, cfg)

	require.NoError(t, err)
	require.NotEmpty(t, segments)
	for _, seg := range segments {
		assert.LessOrEqual(t, len([]rune(seg.Text)), cfg.MaxChars)
	}
}

func TestSplit_OrdinalsAreSequential(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: strings.Repeat("abc def ghi ", 100)}

	segments, err := Split(doc, ChunkConfig{MaxChars: 40, Overlap: 8})

	require.NoError(t, err)
	for i, seg := range segments {
		assert.Equal(t, i, seg.Ordinal)
		assert.Equal(t, "doc.md", seg.SourceID)
	}
}

// Each segment starts exactly Overlap runes before the end of the
// previous one, so stripping the overlap prefix from every segment after
// the first reconstructs the original text with nothing lost.
func TestSplit_ReconstructsOriginalText(t *testing.T) {
	texts := []string{
		strings.Repeat("never build SQL by string concatenation ", 60),
		strings.Repeat("验证所有输入 sanitize all inputs ", 80),
		strings.Repeat("x", 500),
	}
	cfg := ChunkConfig{MaxChars: 64, Overlap: 16}

	for _, text := range texts {
		doc := domain.Document{ID: "doc.md", Text: text}
		segments, err := Split(doc, cfg)
		require.NoError(t, err)
		require.NotEmpty(t, segments)

		var sb strings.Builder
		sb.WriteString(segments[0].Text)
		for _, seg := range segments[1:] {
			runes := []rune(seg.Text)
			require.Greater(t, len(runes), cfg.Overlap)
			sb.WriteString(string(runes[cfg.Overlap:]))
		}
		assert.Equal(t, text, sb.String())
	}
}

func TestSplit_ConsecutiveSegmentsShareOverlap(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: strings.Repeat("alpha beta gamma delta ", 40)}
	cfg := ChunkConfig{MaxChars: 48, Overlap: 12}

	segments, err := Split(doc, cfg)

	require.NoError(t, err)
	require.Greater(t, len(segments), 1)
	for i := 1; i < len(segments); i++ {
		prev := []rune(segments[i-1].Text)
		cur := []rune(segments[i].Text)
		tail := string(prev[len(prev)-cfg.Overlap:])
		head := string(cur[:cfg.Overlap])
		assert.Equal(t, tail, head)
	}
}

func TestSplit_PrefersWhitespaceBoundary(t *testing.T) {
	// "aaaa aaaa aaaa": the hard limit at 10 runes lands mid-run, but the
	// space at index 9 is within backtracking range.
	doc := domain.Document{ID: "doc.md", Text: "aaaa aaaa aaaa"}

	segments, err := Split(doc, ChunkConfig{MaxChars: 10, Overlap: 2})

	require.NoError(t, err)
	require.Greater(t, len(segments), 1)
	first := []rune(segments[0].Text)
	assert.True(t, unicode.IsSpace(first[len(first)-1]), "first segment should end at a whitespace boundary")
}

func TestSplit_HardCutWhenNoWhitespace(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: strings.Repeat("a", 100)}
	cfg := ChunkConfig{MaxChars: 30, Overlap: 5}

	segments, err := Split(doc, cfg)

	require.NoError(t, err)
	require.Greater(t, len(segments), 1)
	assert.Len(t, []rune(segments[0].Text), cfg.MaxChars)
}

func TestSplit_Deterministic(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: strings.Repeat("determinism matters for embeddings ", 50)}
	cfg := ChunkConfig{MaxChars: 80, Overlap: 20}

	first, err := Split(doc, cfg)
	require.NoError(t, err)
	second, err := Split(doc, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplit_InvalidConfig(t *testing.T) {
	doc := domain.Document{ID: "doc.md", Text: "some text"}

	segments, err := Split(doc, ChunkConfig{MaxChars: 10, Overlap: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
	assert.Nil(t, segments)
}
