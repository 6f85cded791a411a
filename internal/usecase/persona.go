package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"chatdesk/internal/config"
	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/huggingface"
	"chatdesk/internal/integrations/openrouter"
)

const (
	ProviderOpenRouter  = "openrouter"
	ProviderHuggingFace = "huggingface"
	ProviderDevFallback = "dev-fallback"
	ProviderNone        = "none"
)

type PersonaSettingsSource interface {
	Persona(ctx context.Context) (config.PersonaSettings, error)
}

type OpenRouterChatter interface {
	Chat(ctx context.Context, cfg domain.ProviderConfig, messages []domain.ChatMessage) (string, error)
}

type HuggingFaceGenerator interface {
	Generate(ctx context.Context, cfg domain.ProviderConfig, prompt string) (string, error)
}

// PersonaService answers stateless persona chat. OpenRouter is preferred,
// HuggingFace is the fallback, and an echo reply stands in when neither
// can answer and dev-fallback is enabled.
type PersonaService struct {
	settings    PersonaSettingsSource
	openRouter  OpenRouterChatter
	huggingFace HuggingFaceGenerator
}

type PersonaInput struct {
	Message string
	History []domain.Turn
}

// PersonaHealth reports which provider would serve the next request.
// Model is empty for the dev-fallback and none modes.
type PersonaHealth struct {
	Status   string
	Provider string
	Model    string
}

func NewPersonaService(settings PersonaSettingsSource, orClient OpenRouterChatter, hfClient HuggingFaceGenerator) (*PersonaService, error) {
	if settings == nil {
		return nil, errors.New("usecase: settings source must not be nil")
	}
	if orClient == nil {
		return nil, errors.New("usecase: openrouter client must not be nil")
	}
	if hfClient == nil {
		return nil, errors.New("usecase: huggingface client must not be nil")
	}
	return &PersonaService{settings: settings, openRouter: orClient, huggingFace: hfClient}, nil
}

func (s *PersonaService) Chat(ctx context.Context, in PersonaInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", newError(ErrorInvalidInput, "empty_message", nil)
	}
	policy, err := s.settings.Persona(ctx)
	if err != nil {
		return "", newError(ErrorInternal, "settings_error", err)
	}

	hasHF := policy.HuggingFace.APIKey != ""

	if policy.OpenRouter.APIKey != "" {
		slog.Info("calling openrouter", "model", policy.OpenRouter.Model)
		reply, err := s.openRouter.Chat(ctx, policy.OpenRouter, openrouter.BuildMessages(in.History, in.Message))
		if err == nil {
			return reply, nil
		}
		slog.Error("openrouter call failed", "err", err)
		if !hasHF {
			if policy.DevFallback {
				slog.Warn("openrouter error and no huggingface token, returning dev-fallback", "err", err)
				return devFallbackReply(in.Message), nil
			}
			return "", newError(ErrorUpstream, "openrouter_error",
				fmt.Errorf("openrouter error and no hugging face token to fall back: %w", err))
		}
	}

	if !hasHF {
		if policy.DevFallback {
			slog.Info("no huggingface token configured, returning dev-fallback reply")
			return devFallbackReply(in.Message), nil
		}
		return "", newError(ErrorNotConfigured, "no_provider",
			errors.New("no model API configured (set OPENROUTER_API_KEY or HF_API_TOKEN)"))
	}

	reply, err := s.huggingFace.Generate(ctx, policy.HuggingFace, huggingface.BuildPrompt(in.History, in.Message))
	if err != nil {
		if policy.DevFallback {
			slog.Warn("huggingface error, returning dev-fallback", "err", err)
			return devFallbackReply(in.Message), nil
		}
		return "", newError(ErrorProvider, "huggingface_error", fmt.Errorf("hugging face API error: %w", err))
	}
	return reply, nil
}

func (s *PersonaService) Health(ctx context.Context) (PersonaHealth, error) {
	policy, err := s.settings.Persona(ctx)
	if err != nil {
		return PersonaHealth{}, newError(ErrorInternal, "settings_error", err)
	}
	switch {
	case policy.OpenRouter.APIKey != "":
		return PersonaHealth{Status: "ok", Provider: ProviderOpenRouter, Model: policy.OpenRouter.Model}, nil
	case policy.HuggingFace.APIKey != "":
		return PersonaHealth{Status: "ok", Provider: ProviderHuggingFace, Model: policy.HuggingFace.Model}, nil
	case policy.DevFallback:
		return PersonaHealth{Status: "ok", Provider: ProviderDevFallback}, nil
	default:
		return PersonaHealth{Status: "ok", Provider: ProviderNone}, nil
	}
}

func devFallbackReply(message string) string {
	return fmt.Sprintf("You said: '%s'. How can I help?", message)
}
