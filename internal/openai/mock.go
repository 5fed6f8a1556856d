package openai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// MockModelClient is a canned model provider for CI dry runs, selected by
// SECUBOT_MOCK_LLM. It flags diffs touching raw statement execution and
// passes everything else.
type MockModelClient struct{}

// NewMockModelClient creates a new MockModelClient.
func NewMockModelClient() *MockModelClient {
	return &MockModelClient{}
}

// Invoke returns a fixed verdict based on the diff inside the payload.
func (m *MockModelClient) Invoke(ctx context.Context, req domain.ModelRequest) (string, error) {
	var payload struct {
		Diff string `json:"diff"`
	}
	// Payload is produced by the prompt builder; a decode failure just
	// means an empty diff and a LOW verdict.
	_ = json.Unmarshal([]byte(req.Payload), &payload)

	if strings.Contains(payload.Diff, "Statement") || strings.Contains(payload.Diff, "exec") {
		return `{"risk_level": "HIGH", "summary": "Potential SQL Injection detected. Please use parameterized queries."}`, nil
	}
	return `{"risk_level": "LOW", "summary": "Looks good to me."}`, nil
}
