// Package groq is the chat-completions client used to interpret free-text
// orders. It speaks the OpenAI-compatible API Groq exposes.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the model used when the config names none.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultTimeout = 30 * time.Second
	serviceName    = "groq"
)

// Client calls the chat-completions endpoint and returns the raw JSON the
// model produced.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a Groq client. baseURL and model fall back to the
// defaults when blank.
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt and returns the model's reply as raw JSON.
// Markdown code fences around the reply are stripped before it is returned.
func (c *Client) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewExternalServiceError(serviceName,
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body))))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errs.NewExternalServiceError(serviceName, fmt.Errorf("response contains no choices"))
	}

	content := stripFences(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, errs.NewExternalServiceError(serviceName, fmt.Errorf("response content is empty"))
	}
	return json.RawMessage(content), nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag. Models add one despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && !strings.ContainsAny(s[:idx], "[{") {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
