// Package openrouter is a client for the OpenRouter chat completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/provider"
)

const (
	providerName = "openrouter"

	DefaultBaseURL = "https://api.openrouter.ai/v1"
	DefaultModel   = "gpt-4o-mini"
)

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

// ReplyKind says which part of a response a reply was taken from.
type ReplyKind int

const (
	// ReplyMessage is choices[0].message.content.
	ReplyMessage ReplyKind = iota
	// ReplyText is choices[0].text.
	ReplyText
	// ReplyRaw is the whole response body, used when neither field is present.
	ReplyRaw
)

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
		Text *string `json:"text"`
	} `json:"choices"`
}

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

// Chat posts messages to {BaseURL}/chat/completions and returns the reply.
func (c *Client) Chat(ctx context.Context, cfg domain.ProviderConfig, messages []domain.ChatMessage) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", errors.New("openrouter: api key must not be empty")
	}
	baseURL := cfg.BaseURL
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	raw, err := provider.PostJSON(ctx, c.httpClient, providerName, provider.JoinURL(baseURL, "chat/completions"), cfg.APIKey, chatRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	reply, _, err := ParseReply(raw)
	return reply, err
}

// ParseReply extracts the reply from a chat completions body. A body that
// is valid JSON but carries neither choices[0].message.content nor
// choices[0].text is returned verbatim as ReplyRaw.
func ParseReply(raw []byte) (string, ReplyKind, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return "", ReplyRaw, errors.New("openrouter: decode response: invalid JSON")
	}

	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Choices) > 0 {
		choice := payload.Choices[0]
		if choice.Message != nil && choice.Message.Content != nil {
			return *choice.Message.Content, ReplyMessage, nil
		}
		if choice.Text != nil {
			return *choice.Text, ReplyText, nil
		}
	}
	return string(raw), ReplyRaw, nil
}

// BuildMessages flattens persona history into chat messages, user part
// before assistant part, skipping empty parts, and appends message as the
// final user turn.
func BuildMessages(history []domain.Turn, message string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, 2*len(history)+1)
	for _, turn := range history {
		if turn.User != "" {
			out = append(out, domain.ChatMessage{Role: domain.RoleUser, Content: turn.User})
		}
		if turn.Assistant != "" {
			out = append(out, domain.ChatMessage{Role: domain.RoleAssistant, Content: turn.Assistant})
		}
	}
	return append(out, domain.ChatMessage{Role: domain.RoleUser, Content: message})
}
