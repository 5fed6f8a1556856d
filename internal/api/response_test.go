package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDomainErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid configuration", domain.ErrInvalidChunkConfig, http.StatusBadRequest},
		{"invalid argument", domain.ErrInvalidSearchLimit, http.StatusBadRequest},
		{"review failed", domain.NewReviewFailed(errors.New("down")), http.StatusBadGateway},
		{"indexing failed", domain.NewIndexingFailed(errors.New("down")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainErrorToHTTP(tt.err))
		})
	}
}

func TestHandleError_WritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, domain.NewReviewFailed(errors.New("model timeout")))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "REVIEW_FAILED")
}
