package github

import (
	"encoding/json"
	"fmt"
	"os"
)

// ResolvePRURL determines which pull request to review. An explicit URL
// wins; otherwise the GitHub Actions event file named by
// GITHUB_EVENT_PATH is consulted for pull_request.url.
func ResolvePRURL(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return "", fmt.Errorf("could not determine pull request URL: --pr-url not set and GITHUB_EVENT_PATH is empty")
	}

	url, err := prURLFromEventFile(eventPath)
	if err != nil {
		return "", fmt.Errorf("could not determine pull request URL: %w", err)
	}
	return url, nil
}

func prURLFromEventFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var event struct {
		PullRequest struct {
			URL string `json:"url"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return "", fmt.Errorf("failed to parse event file: %w", err)
	}

	if event.PullRequest.URL == "" {
		return "", fmt.Errorf("event file has no pull_request.url")
	}
	return event.PullRequest.URL, nil
}
