// Package kbsource provides document sources for the knowledge base:
// a filesystem walk over markdown files and an S3 bucket prefix.
package kbsource

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// FSSource yields markdown documents found under a directory root. A
// missing or unreadable root is not an error: the review must still run,
// degraded to zero retrieved context.
type FSSource struct {
	root string
}

// NewFSSource creates an FSSource for the given root directory.
func NewFSSource(root string) *FSSource {
	return &FSSource{root: root}
}

// Documents walks the root and returns one Document per .md file, keyed
// by filename.
func (s *FSSource) Documents(ctx context.Context) ([]domain.Document, error) {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		log.Printf("knowledge base directory not found: %s", s.root)
		return nil, nil
	}

	var docs []domain.Document
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		docs = append(docs, domain.Document{
			ID:   d.Name(),
			Text: string(content),
		})
		log.Printf("loaded security doc: %s", d.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}
