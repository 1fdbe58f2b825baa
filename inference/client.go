// Package inference provides the chat-completion client and the token
// failover executor for the hosted inference API.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client issues chat-completion requests to the inference endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new inference client. Inference calls carry no
// client-side timeout; callers bound them with a context deadline if they
// need one.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest represents the chat completion request.
type ChatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// Choice represents a completion choice.
type Choice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// ChatCompletionResponse is the union of the two response envelopes the
// endpoint is known to return: a structured choice list, or a flat
// generated-text shape.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`

	// Flat shape returned by some text-generation backends.
	GeneratedText string `json:"generated_text"`
}

// Complete sends one chat completion request using the given bearer token
// and normalizes the response into plain text.
func (c *Client) Complete(ctx context.Context, modelID, systemPrompt, userPrompt string, maxTokens int, token string) (string, error) {
	reqBody := &ChatCompletionRequest{
		Model: modelID,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests:
		return "", &QuotaError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		// Not JSON at all; keep the pipeline moving with the raw body.
		return string(respBody), nil
	}
	return normalize(&result, respBody), nil
}

// normalize reduces either response envelope to plain text. When neither
// shape is present the raw body is returned verbatim so the pipeline keeps
// moving.
func normalize(resp *ChatCompletionResponse, raw []byte) string {
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != "" {
		return resp.Choices[0].Message.Content
	}
	if resp.GeneratedText != "" {
		return resp.GeneratedText
	}
	return string(raw)
}
