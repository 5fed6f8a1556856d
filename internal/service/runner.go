package service

import (
	"context"
	"log"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// CodeHostClient is the code review host collaborator: it supplies the
// diff under review and receives the formatted verdict comment.
type CodeHostClient interface {
	FetchDiff(ctx context.Context, prRef string) (string, error)
	PostComment(ctx context.Context, prRef, body string) error
}

// CommentFormatter renders a verdict into a comment body. Presentation
// lives with the code host adapter, not here.
type CommentFormatter func(domain.ReviewVerdict) string

// ReviewRunner runs a complete review against a pull request: fetch the
// diff, produce a verdict, post the comment.
type ReviewRunner struct {
	engine *ReviewEngine
	host   CodeHostClient
	format CommentFormatter
}

// NewReviewRunner creates a new ReviewRunner instance.
func NewReviewRunner(engine *ReviewEngine, host CodeHostClient, format CommentFormatter) *ReviewRunner {
	return &ReviewRunner{
		engine: engine,
		host:   host,
		format: format,
	}
}

// Run reviews the pull request and posts the verdict comment. A pipeline
// failure propagates before any comment is posted, so a misleading
// partial comment is never published.
func (r *ReviewRunner) Run(ctx context.Context, prRef string) (domain.ReviewVerdict, error) {
	diff, err := r.host.FetchDiff(ctx, prRef)
	if err != nil {
		return domain.ReviewVerdict{}, domain.NewReviewFailed(err)
	}
	log.Printf("fetched diff for %s (%d bytes)", prRef, len(diff))

	verdict, err := r.engine.Process(ctx, diff)
	if err != nil {
		return domain.ReviewVerdict{}, err
	}

	if err := r.host.PostComment(ctx, prRef, r.format(verdict)); err != nil {
		return domain.ReviewVerdict{}, domain.NewReviewFailed(err)
	}

	return verdict, nil
}
