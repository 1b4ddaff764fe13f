package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultEndpoint is the chat completions endpoint for the scoring API.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// ChatRequest is the wire format for a chat-style scoring request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message is a single message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the wire format of the scoring API's response.
type ChatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Choice is one completion choice in the response.
type Choice struct {
	Message Message `json:"message"`
}

// Transport issues one chat request and returns the response text. It may fail
// with transient errors; the Client owns retries.
type Transport interface {
	Complete(ctx context.Context, req ChatRequest) (responseText string, err error)
}

// HTTPTransport talks to an OpenAI-compatible chat completions API.
type HTTPTransport struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport for the default endpoint. The endpoint
// can be overridden for testing via WithEndpoint.
func NewHTTPTransport(apiKey string) (transport *HTTPTransport) {
	transport = &HTTPTransport{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	return transport
}

// WithEndpoint points the transport at a different endpoint.
func (t *HTTPTransport) WithEndpoint(endpoint string) (transport *HTTPTransport) {
	t.endpoint = endpoint
	transport = t
	return transport
}

// Complete sends a chat request and returns the first choice's message content.
func (t *HTTPTransport) Complete(ctx context.Context, req ChatRequest) (responseText string, err error) {
	var reqBody []byte
	reqBody, err = json.Marshal(req)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	var resp *http.Response
	resp, err = t.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	var chatResp ChatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse API response: %s", string(respBody))
		return responseText, err
	}

	if len(chatResp.Choices) == 0 {
		err = errors.New("no choices in API response")
		return responseText, err
	}

	responseText = chatResp.Choices[0].Message.Content
	return responseText, err
}
