// Package huggingface is a client for the HuggingFace Inference text
// generation API.
package huggingface

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
	providerName = "huggingface"

	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "google/flan-t5-small"
)

type generateRequest struct {
	Inputs  string          `json:"inputs"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

// ReplyKind says which response shape a reply was taken from.
type ReplyKind int

const (
	// ReplyObject is {"generated_text": ...}.
	ReplyObject ReplyKind = iota
	// ReplyList is [{"generated_text": ...}, ...].
	ReplyList
	// ReplyRaw is the whole response body.
	ReplyRaw
)

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

func modelURL(baseURL, model string) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return provider.JoinURL(baseURL, model)
}

// Generate runs prompt through the configured model and returns the
// generated text.
func (c *Client) Generate(ctx context.Context, cfg domain.ProviderConfig, prompt string) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", errors.New("huggingface: api token must not be empty")
	}

	raw, err := provider.PostJSON(ctx, c.httpClient, providerName, modelURL(cfg.BaseURL, cfg.Model), cfg.APIKey, generateRequest{
		Inputs:  prompt,
		Options: generateOptions{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}

	reply, _, err := ParseReply(raw)
	return reply, err
}

// ParseReply extracts generated_text from an object or from the first
// element of a list. Any other valid JSON body is returned verbatim.
func ParseReply(raw []byte) (string, ReplyKind, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return "", ReplyRaw, errors.New("huggingface: decode response: invalid JSON")
	}

	switch raw[0] {
	case '{':
		var obj generation
		if err := json.Unmarshal(raw, &obj); err == nil && obj.GeneratedText != nil {
			return *obj.GeneratedText, ReplyObject, nil
		}
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			var first generation
			if err := json.Unmarshal(list[0], &first); err == nil && first.GeneratedText != nil {
				return *first.GeneratedText, ReplyList, nil
			}
		}
	}
	return string(raw), ReplyRaw, nil
}

// BuildPrompt renders history as Question/Answer lines followed by the new
// question and a trailing "Answer:" cue.
func BuildPrompt(history []domain.Turn, message string) string {
	parts := make([]string, 0, 2*len(history)+2)
	for _, turn := range history {
		if turn.User != "" {
			parts = append(parts, "Question: "+turn.User)
		}
		if turn.Assistant != "" {
			parts = append(parts, "Answer: "+turn.Assistant)
		}
	}
	parts = append(parts, "Question: "+message, "Answer:")
	return strings.Join(parts, "\n")
}
