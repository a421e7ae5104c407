// internal/common/genai/client.go
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	commonhttp "advisor-services/internal/common/http"
)

var (
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
)

const generatePath = "/api/ai/generate"

// Request is one completion request.
type Request struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client calls a text generation service over HTTP. Every call is a single
// attempt bounded by ctx and the client timeout.
type Client struct {
	baseURL string
	http    *commonhttp.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := commonhttp.NewClient(timeout)
	if apiKey != "" {
		c = c.WithHeader("Authorization", "Bearer "+apiKey)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    c,
	}
}

// Generate returns the trimmed completion text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}

	if err := c.http.PostJSON(ctx, c.baseURL+generatePath, req, &resp); err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}
	return text, nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
