package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client talks to an OpenAI-compatible chat completions API (Ollama, llama.cpp, OpenAI).
type Client struct {
	BaseURL string
	Model   string
	client  *openai.Client
}

// NewClient creates a new LLM client.
// baseURL is the server root; the /v1 API prefix is appended here.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		client:  openai.NewClientWithConfig(apiConfig(baseURL, apiKey)),
	}
}

func apiConfig(baseURL, apiKey string) openai.ClientConfig {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	return cfg
}

// Chat sends a single user message using the client's default model.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	return c.ChatWithMessages(ctx, []Message{{Role: RoleUser, Content: message}}, ChatParams{})
}

// ChatWithMessages sends an ordered message list and returns the first choice's content.
// Transport and API errors are returned as-is to the caller; there is no retry.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	model := params.Model
	if model == "" {
		model = c.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apiError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// apiError flattens go-openai error types into a message carrying the HTTP status.
func apiError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: bad status %d: %s: %w", op, apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%s: bad status %d: %s: %w", op, reqErr.HTTPStatusCode, string(reqErr.Body), err)
	}
	return fmt.Errorf("%s: failed to send request: %w", op, err)
}
