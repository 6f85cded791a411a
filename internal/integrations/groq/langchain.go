package groq

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"chatdesk/internal/domain"
)

var _ llms.Model = (*LangChainModel)(nil)

// Chatter is the structured chat call LangChainModel adapts. *Client
// satisfies it.
type Chatter interface {
	Chat(ctx context.Context, cfg domain.ProviderConfig, systemPrompt string, messages []domain.ChatMessage) (string, error)
}

// LangChainModel exposes Client as a langchaingo llms.Model.
//
// Every call collapses the text parts of all input messages into a single
// user message and sends it without a system prompt. Roles do not survive
// the conversion.
type LangChainModel struct {
	client Chatter
	cfg    domain.ProviderConfig
}

func NewLangChainModel(client Chatter, cfg domain.ProviderConfig) (*LangChainModel, error) {
	if client == nil {
		return nil, errors.New("groq: client must not be nil")
	}
	return &LangChainModel{client: client, cfg: cfg}, nil
}

func (m *LangChainModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	var parts []string
	for _, mc := range messages {
		for _, p := range mc.Parts {
			if text, ok := p.(llms.TextContent); ok {
				parts = append(parts, text.Text)
			}
		}
	}

	reply, err := m.client.Chat(ctx, m.cfg, "", []domain.ChatMessage{
		{Role: domain.RoleUser, Content: strings.Join(parts, "\n")},
	})
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: reply}},
	}, nil
}

func (m *LangChainModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
