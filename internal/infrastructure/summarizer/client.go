package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
)

const maxResponseSize = 1 << 20

// Client вызывает внешнюю функцию генерации краткого описания.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	log    *slog.Logger
}

func New(url, apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
		log:    log.With("component", "summarizer"),
	}
}

type summarizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) Summarize(ctx context.Context, title, description string) (string, error) {
	payload, err := json.Marshal(summarizeRequest{Title: title, Description: description})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call summarizer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("summarizer responded", "status", resp.StatusCode, "duration", time.Since(start))

	var out summarizeResponse
	if err := json.Unmarshal(body, &out); err != nil && resp.StatusCode < 400 {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if out.Error != "" {
			return "", fmt.Errorf("summarizer status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("summarizer status %d", resp.StatusCode)
	}

	return out.Summary, nil
}
