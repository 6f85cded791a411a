// Package groq is a client for Groq's OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/provider"
)

const (
	providerName = "groq"

	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"

	temperature = 0.7
)

// chatRequest is the minimal request shape for the chat completions endpoint.
type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

// Client sends structured chat conversations to Groq.
type Client struct {
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: provider.NewHTTPClient()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func chatURL(baseURL string) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return provider.JoinURL(baseURL, "chat/completions")
}

// Chat sends systemPrompt followed by the user and assistant turns of
// messages. Messages with any other role are dropped. Without an API key no
// request is made and a canned offline reply is returned.
func (c *Client) Chat(ctx context.Context, cfg domain.ProviderConfig, systemPrompt string, messages []domain.ChatMessage) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return MockReply(messages), nil
	}

	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	raw, err := provider.PostJSON(ctx, c.httpClient, providerName, chatURL(cfg.BaseURL), cfg.APIKey, chatRequest{
		Model:       model,
		Messages:    formatMessages(systemPrompt, messages),
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", errors.New("groq: no choices in response")
	}
	return payload.Choices[0].Message.Content, nil
}

func formatMessages(systemPrompt string, messages []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	}
	for _, m := range messages {
		role := domain.Role(strings.ToLower(string(m.Role)))
		if role != domain.RoleUser && role != domain.RoleAssistant {
			continue
		}
		out = append(out, domain.ChatMessage{Role: role, Content: m.Content})
	}
	return out
}

// MockReply is the offline reply used when no API key is configured. It
// echoes the content of the last message.
func MockReply(messages []domain.ChatMessage) string {
	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return fmt.Sprintf("(mock) I received your message: '%s'", last)
}
