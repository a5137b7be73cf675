package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// timeout for generation requests, the server blocks on the LLM
const generateRequestTimeout = 90 * time.Second

// manages HTTP requests to the craftui REST API
type APIClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new REST client
func NewAPIClient() *APIClient {
	endpoint := os.Getenv("CRAFTUI_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &APIClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: generateRequestTimeout,
		},
	}
}

// REST API request/response types

type authRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionPayload struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	ChatHistory []historyEntry `json:"chat_history"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type historyEntry struct {
	UserPrompt string      `json:"user_prompt"`
	AIResponse string      `json:"ai_response"`
	Code       codePayload `json:"code"`
}

type codePayload struct {
	Markup string `json:"markup"`
	Style  string `json:"style"`
}

type listSessionsResponse struct {
	Sessions []sessionPayload `json:"sessions"`
}

type createSessionRequest struct {
	Title string `json:"title,omitempty"`
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
}

type updateRequest struct {
	Prompt    string `json:"prompt"`
	Markup    string `json:"markup"`
	Style     string `json:"style"`
	SessionID string `json:"session_id"`
}

type generateResponse struct {
	Markup   string `json:"markup"`
	Style    string `json:"style"`
	RawReply string `json:"raw_reply"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// performs a JSON request against the API, decoding into out when non-nil
func (c *APIClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp apiErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return fmt.Errorf("%s: %s (%s)", errResp.Error, errResp.Message, errResp.Details)
			}
			return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// creates an account and stores the returned token on the client
func (c *APIClient) Signup(ctx context.Context, email, name, password string) (*userPayload, error) {
	var result authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", authRequest{Email: email, Name: name, Password: password}, &result); err != nil {
		return nil, err
	}

	c.token = result.Token
	return &result.User, nil
}

// authenticates and stores the returned token on the client
func (c *APIClient) Login(ctx context.Context, email, password string) (*userPayload, error) {
	var result authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", authRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}

	c.token = result.Token
	return &result.User, nil
}

// drops the stored token
func (c *APIClient) Logout() {
	c.token = ""
}

func (c *APIClient) ListSessions(ctx context.Context) ([]sessionPayload, error) {
	var result listSessionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/session/", nil, &result); err != nil {
		return nil, err
	}

	return result.Sessions, nil
}

func (c *APIClient) CreateSession(ctx context.Context, title string) (*sessionPayload, error) {
	var result sessionPayload
	if err := c.do(ctx, http.MethodPost, "/api/session/", createSessionRequest{Title: title}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) GetSession(ctx context.Context, sessionID string) (*sessionPayload, error) {
	var result sessionPayload
	if err := c.do(ctx, http.MethodGet, "/api/session/"+sessionID, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/session/"+sessionID, nil, nil)
}

// requests a fresh component generation for the session
func (c *APIClient) Generate(ctx context.Context, prompt, sessionID string) (*generateResponse, error) {
	var result generateResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate", generateRequest{Prompt: prompt, SessionID: sessionID}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// requests a refinement of previously generated code
func (c *APIClient) Update(ctx context.Context, prompt, markup, style, sessionID string) (*generateResponse, error) {
	var result generateResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/update", updateRequest{Prompt: prompt, Markup: markup, Style: style, SessionID: sessionID}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// downloads the session's zip archive and writes it next to the binary
func (c *APIClient) Export(ctx context.Context, sessionID, title string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/export/"+sessionID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return "", fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return "", fmt.Errorf("export failed with status %d", resp.StatusCode)
	}

	filename := title + ".zip"
	if err := os.WriteFile(filename, body, 0o600); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	return filename, nil
}
