// Package gemini provides a narrow text-completion capability backed by the
// Gemini API.
//
// The rest of the application never touches SDK types: it talks to a
// [Generator], which takes a prompt and returns text. [Client] implements it
// with google.golang.org/genai; [MockGenerator] implements it for tests.
//
// Every failure (missing key, transport error, non-2xx status, empty reply)
// is returned as an error. Callers are expected to fall back to local content;
// nothing in this package retries.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

var (
	// ErrNoAPIKey is returned when no API key is configured. It is the
	// expected state for offline use.
	ErrNoAPIKey = errors.New("gemini API key not configured")

	// ErrEmptyResponse is returned when the service replied without text.
	ErrEmptyResponse = errors.New("gemini returned an empty response")
)

// Request is one text-completion request.
type Request struct {
	// System is an optional system instruction.
	System string

	// Prompt is the user content.
	Prompt string

	// Temperature is the sampling temperature. Zero leaves the service default.
	Temperature float32

	// MaxOutputTokens caps the reply length. Zero leaves the service default.
	MaxOutputTokens int32

	// JSON asks the service to answer with application/json.
	JSON bool
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client implements [Generator] with the Gemini API.
//
// The SDK client is created lazily on first use, so constructing a Client
// without a key is cheap and never fails.
type Client struct {
	apiKey  string
	model   string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithBaseURL sends requests to url instead of the public Gemini endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a [Client]. An empty model selects [DefaultModel].
func NewClient(apiKey, model string, opts ...ClientOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	c := &Client{apiKey: apiKey, model: model}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Generate sends one request and returns the reply text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", ErrNoAPIKey
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt}},
	}}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// MockGenerator implements [Generator] for testing.
//
// Configure Response or Err before use; every call is recorded in Requests.
// When Responses is non-empty, calls consume it in order before falling back
// to Response.
type MockGenerator struct {
	Response  string
	Responses []string
	Err       error

	mu       sync.Mutex
	Requests []Request
}

// Generate records the request and returns the configured reply.
func (m *MockGenerator) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(m.Responses) > 0 {
		r := m.Responses[0]
		m.Responses = m.Responses[1:]
		return r, nil
	}
	return m.Response, nil
}

// Calls returns how many requests were recorded.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
