package generator

import "net/http"

// holds configuration for the Gemini client
type Config struct {
	APIKey  string
	Model   string // e.g., "gemini-2.0-flash"
	BaseURL string // overridable for tests
}

// talks to the Gemini generateContent API
type Client struct {
	config     Config
	httpClient *http.Client
}

// structured output of one generation turn
type Result struct {
	Markup   string `json:"markup"`
	Style    string `json:"style"`
	RawReply string `json:"raw_reply"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
