// Package github implements the code host collaborator: fetching a pull
// request diff and posting the review comment.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// APIError represents a non-success response from the GitHub API,
// carrying status and body for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (%d): %s", e.StatusCode, e.Body)
}

// Client provides access to the GitHub REST API for pull request review.
type Client struct {
	token      string
	httpClient *http.Client
}

// NewClient creates a new Client with the given token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// FetchDiff fetches the unified diff for a pull request. prURL is the API
// pull request URL, e.g. https://api.github.com/repos/owner/repo/pulls/1.
func (c *Client) FetchDiff(ctx context.Context, prURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, prURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, "application/vnd.github.v3.diff")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

type commentRequest struct {
	Body string `json:"body"`
}

// PostComment posts a comment on the pull request. Comments live on the
// issues endpoint, so the pulls URL is rewritten accordingly.
func (c *Client) PostComment(ctx context.Context, prURL, body string) error {
	commentsURL := strings.Replace(prURL, "/pulls/", "/issues/", 1) + "/comments"

	payload, err := json.Marshal(commentRequest{Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, commentsURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, accept string) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", accept)
}
