package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"chatdesk/internal/config"
	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/groq"
	"chatdesk/internal/router"
)

const (
	domainAuto      = "auto"
	domainLangChain = "langchain"
)

type GroqSettingsSource interface {
	Groq(ctx context.Context) (config.GroqSettings, error)
}

type SessionStore interface {
	Lock(id string) (unlock func())
	Get(id string) []domain.ChatMessage
	Put(id string, messages []domain.ChatMessage)
}

// ChatService answers multi-domain desk chat. Conversations are kept in a
// SessionStore keyed by session id.
type ChatService struct {
	llm      groq.Chatter
	settings GroqSettingsSource
	sessions SessionStore
}

type ChatInput struct {
	Domain    string
	Messages  []domain.ChatMessage
	SessionID string
	APIKey    string
}

type ChatOutput struct {
	Reply     string
	Domain    string
	SessionID string
}

func NewChatService(llm groq.Chatter, settings GroqSettingsSource, sessions SessionStore) (*ChatService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	if settings == nil {
		return nil, errors.New("usecase: settings source must not be nil")
	}
	if sessions == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	return &ChatService{llm: llm, settings: settings, sessions: sessions}, nil
}

// Chat merges stored session history with the incoming messages, answers
// with the configured provider and records the exchange. Requests on the
// same session id are serialized for their whole duration.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	cfg, err := s.settings.Groq(ctx)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "settings_error", err)
	}
	if in.APIKey != "" {
		cfg.Provider.APIKey = in.APIKey
	}

	sessionID := strings.TrimSpace(in.SessionID)
	var merged []domain.ChatMessage
	if sessionID != "" {
		unlock := s.sessions.Lock(sessionID)
		defer unlock()
		merged = append(merged, s.sessions.Get(sessionID)...)
	}
	merged = append(merged, in.Messages...)

	category := resolveDomain(in.Domain, merged)
	useLangChain := cfg.UseLangChain || category == domainLangChain

	var reply string
	if useLangChain {
		reply, err = s.chatLangChain(ctx, cfg.Provider, merged)
		if err != nil {
			return ChatOutput{}, newError(ErrorProvider, "langchain_error", fmt.Errorf("LangChain wrapper error: %w", err))
		}
	} else {
		reply, err = s.llm.Chat(ctx, cfg.Provider, systemPrompt(category), merged)
		if err != nil {
			return ChatOutput{}, newError(ErrorProvider, "groq_error", err)
		}
	}

	if sessionID == "" {
		sessionID = newUUID()
	}
	history := make([]domain.ChatMessage, 0, len(merged)+1)
	history = append(history, merged...)
	history = append(history, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
	s.sessions.Put(sessionID, history)

	slog.Debug("chat answered", "domain", category, "session_id", sessionID, "langchain", useLangChain)
	return ChatOutput{Reply: reply, Domain: category, SessionID: sessionID}, nil
}

// chatLangChain is the reduced-fidelity path: message contents are joined
// with newlines into one prompt, dropping roles and the system prompt.
func (s *ChatService) chatLangChain(ctx context.Context, cfg domain.ProviderConfig, merged []domain.ChatMessage) (string, error) {
	model, err := groq.NewLangChainModel(s.llm, cfg)
	if err != nil {
		return "", err
	}
	contents := make([]string, 0, len(merged))
	for _, m := range merged {
		contents = append(contents, m.Content)
	}
	return llms.GenerateFromSinglePrompt(ctx, model, strings.Join(contents, "\n"))
}

func resolveDomain(requested string, merged []domain.ChatMessage) string {
	d := strings.ToLower(strings.TrimSpace(requested))
	if d == "" {
		d = domainAuto
	}
	if d == domainAuto {
		return string(router.ClassifyMessages(merged))
	}
	return d
}

func systemPrompt(category string) string {
	return fmt.Sprintf("You are an assistant handling %s inquiries. Be helpful and concise.", strings.ToUpper(category))
}

var newUUID = func() string {
	return uuid.NewString()
}
