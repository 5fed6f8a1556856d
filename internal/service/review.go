package service

import (
	"context"
	"strings"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// contextSeparator joins retrieved segments into a single context string.
const contextSeparator = "\n\n"

// ContextRetriever returns the most relevant knowledge segments for a
// query, ranked descending.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// ModelClient executes an assembled model request and returns raw text.
type ModelClient interface {
	Invoke(ctx context.Context, req domain.ModelRequest) (string, error)
}

// ReviewEngine orchestrates the review pipeline: retrieve context, build
// the prompt, invoke the model, interpret the response. It owns no state
// beyond its collaborators.
type ReviewEngine struct {
	retriever   ContextRetriever
	model       ModelClient
	prompts     *PromptBuilder
	interpreter *Interpreter
}

// NewReviewEngine creates a new ReviewEngine instance.
func NewReviewEngine(retriever ContextRetriever, model ModelClient) *ReviewEngine {
	return &ReviewEngine{
		retriever:   retriever,
		model:       model,
		prompts:     NewPromptBuilder(),
		interpreter: NewInterpreter(),
	}
}

// Process runs one review over the given diff and returns the verdict.
// Retrieval and generation failures surface as a single ReviewFailed
// error carrying the cause; no verdict is fabricated and no retries
// happen here. Retry policy, if any, belongs to the collaborator
// transport.
func (e *ReviewEngine) Process(ctx context.Context, diff string) (domain.ReviewVerdict, error) {
	segments, err := e.retriever.Retrieve(ctx, diff)
	if err != nil {
		return domain.ReviewVerdict{}, domain.NewReviewFailed(err)
	}
	usedContext := strings.Join(segments, contextSeparator)

	req, err := e.prompts.Build(diff, usedContext)
	if err != nil {
		return domain.ReviewVerdict{}, domain.NewReviewFailed(err)
	}

	rawText, err := e.model.Invoke(ctx, req)
	if err != nil {
		return domain.ReviewVerdict{}, domain.NewReviewFailed(err)
	}

	return e.interpreter.Interpret(rawText, usedContext), nil
}
