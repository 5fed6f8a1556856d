package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCodeHostClient mocks the code review host
type MockCodeHostClient struct {
	mock.Mock
}

func (m *MockCodeHostClient) FetchDiff(ctx context.Context, prRef string) (string, error) {
	args := m.Called(ctx, prRef)
	return args.String(0), args.Error(1)
}

func (m *MockCodeHostClient) PostComment(ctx context.Context, prRef, body string) error {
	args := m.Called(ctx, prRef, body)
	return args.Error(0)
}

func testFormatter(v domain.ReviewVerdict) string {
	return "verdict: " + string(v.RiskLevel.Normalize())
}

func newRunnerFixture(t *testing.T) (*ReviewRunner, *MockContextRetriever, *MockModelProvider, *MockCodeHostClient) {
	t.Helper()
	mockRetriever := new(MockContextRetriever)
	mockModel := new(MockModelProvider)
	mockHost := new(MockCodeHostClient)
	engine := NewReviewEngine(mockRetriever, mockModel)
	return NewReviewRunner(engine, mockHost, testFormatter), mockRetriever, mockModel, mockHost
}

func TestReviewRunner_Run_PostsFormattedComment(t *testing.T) {
	runner, mockRetriever, mockModel, mockHost := newRunnerFixture(t)

	ctx := context.Background()
	prURL := "https://api.github.com/repos/acme/app/pulls/7"

	mockHost.On("FetchDiff", ctx, prURL).Return("+ some change", nil)
	mockRetriever.On("Retrieve", ctx, "+ some change").Return([]string{"ctx"}, nil)
	mockModel.On("Invoke", ctx, mock.Anything).Return(`{"risk_level": "high", "summary": "bad"}`, nil)
	mockHost.On("PostComment", ctx, prURL, "verdict: HIGH").Return(nil)

	verdict, err := runner.Run(ctx, prURL)

	require.NoError(t, err)
	assert.Equal(t, domain.DecisionBlock, verdict.Decide())
	mockHost.AssertExpectations(t)
}

func TestReviewRunner_Run_FetchFailure_NoComment(t *testing.T) {
	runner, _, _, mockHost := newRunnerFixture(t)

	ctx := context.Background()
	fetchErr := errors.New("404 not found")
	mockHost.On("FetchDiff", ctx, "pr").Return("", fetchErr)

	_, err := runner.Run(ctx, "pr")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeReviewFailed, domainErr.Code)
	assert.ErrorIs(t, err, fetchErr)
	mockHost.AssertNotCalled(t, "PostComment")
}

// A pipeline failure must never publish a partial comment.
func TestReviewRunner_Run_PipelineFailure_NoComment(t *testing.T) {
	runner, mockRetriever, _, mockHost := newRunnerFixture(t)

	ctx := context.Background()
	mockHost.On("FetchDiff", ctx, "pr").Return("diff", nil)
	mockRetriever.On("Retrieve", ctx, "diff").Return(nil, errors.New("down"))

	_, err := runner.Run(ctx, "pr")

	assert.Error(t, err)
	mockHost.AssertNotCalled(t, "PostComment")
}

func TestReviewRunner_Run_PostFailure(t *testing.T) {
	runner, mockRetriever, mockModel, mockHost := newRunnerFixture(t)

	ctx := context.Background()
	postErr := errors.New("403 forbidden")
	mockHost.On("FetchDiff", ctx, "pr").Return("diff", nil)
	mockRetriever.On("Retrieve", ctx, "diff").Return([]string{}, nil)
	mockModel.On("Invoke", ctx, mock.Anything).Return(`{"risk_level": "LOW", "summary": "ok"}`, nil)
	mockHost.On("PostComment", ctx, "pr", mock.Anything).Return(postErr)

	_, err := runner.Run(ctx, "pr")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeReviewFailed, domainErr.Code)
	assert.ErrorIs(t, err, postErr)
}
