package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	// literal separator the model is expected to emit between markup and style
	styleMarker = "/*CSS*/"
)

// shared HTTP client for Gemini API calls
var geminiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Gemini API calls (10 requests/second with burst capacity of 5)
var geminiRateLimiter = rate.NewLimiter(10, 5)

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	if config.Model == "" {
		config.Model = defaultModel
	}

	return &Client{
		config:     config,
		httpClient: geminiHTTPClient,
	}
}

func (c *Client) Model() string {
	return c.config.Model
}

// generates a fresh component from a natural-language prompt
func (c *Client) Generate(ctx context.Context, prompt string) (*Result, error) {
	return c.call(ctx, buildGeneratePrompt(prompt))
}

// refines an existing component: the prior code and the new instruction are
// folded into one combined prompt
func (c *Client) Refine(ctx context.Context, prompt, priorMarkup, priorStyle string) (*Result, error) {
	return c.call(ctx, buildRefinePrompt(prompt, priorMarkup, priorStyle))
}

// sends one single-turn generateContent request and parses the reply.
// No retries; callers see the raw failure.
func (c *Client) call(ctx context.Context, prompt string) (*Result, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck

		var errResp apiError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, errResp.Error.Message)
		}

		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("unexpected response structure: no generated content")
	}

	return parseReply(apiResp.Candidates[0].Content.Parts[0].Text), nil
}

// splits the raw reply on the first style marker. A reply without the
// marker is treated as all markup with an empty style.
func parseReply(output string) *Result {
	parts := strings.SplitN(output, styleMarker, 2)

	result := &Result{
		Markup:   strings.TrimSpace(parts[0]),
		RawReply: output,
	}

	if len(parts) == 2 {
		result.Style = strings.TrimSpace(parts[1])
	}

	return result
}
