package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/groq"
	"chatdesk/internal/integrations/huggingface"
	"chatdesk/internal/integrations/openrouter"
	"chatdesk/internal/router"
)

const (
	KeyGroqAPIKey   = "CHATGROQ_API_KEY"
	KeyGroqBaseURL  = "CHATGROQ_BASE_URL"
	KeyGroqModel    = "CHATGROQ_MODEL"
	KeyUseLangChain = "USE_LANGCHAIN"

	KeyOpenRouterAPIKey  = "OPENROUTER_API_KEY"
	KeyOpenRouterBaseURL = "OPENROUTER_BASE_URL"
	KeyOpenRouterModel   = "OPENROUTER_MODEL"

	KeyHFToken   = "HF_API_TOKEN"
	KeyHFBaseURL = "HF_BASE_URL"
	KeyHFModel   = "HF_MODEL"

	KeyDevFallback = "DEV_FALLBACK"

	KeyContainerDefault = "STORAGE_CONTAINER"
	KeyContainerHR      = "STORAGE_CONTAINER_HR"
	KeyContainerLegal   = "STORAGE_CONTAINER_LEGAL"
	KeyContainerL1      = "STORAGE_CONTAINER_L1"
	KeyContainerL2      = "STORAGE_CONTAINER_L2"
)

// Lookuper is a secondary settings store consulted when a key is not set in
// the environment. *paramstore.Client satisfies it.
type Lookuper interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// GroqSettings configures the multi-domain chat path.
type GroqSettings struct {
	Provider     domain.ProviderConfig
	UseLangChain bool
}

// PersonaSettings is the provider selection policy for persona chat.
type PersonaSettings struct {
	OpenRouter  domain.ProviderConfig
	HuggingFace domain.ProviderConfig
	DevFallback bool
}

// Source resolves request-time settings. Nothing is cached.
type Source struct {
	lookupEnv func(string) (string, bool)
	params    Lookuper
}

// NewSource returns a Source backed by the process environment and, when
// params is non-nil, a parameter store.
func NewSource(params Lookuper) *Source {
	return &Source{lookupEnv: os.LookupEnv, params: params}
}

func (s *Source) get(ctx context.Context, key, fallback string) (string, error) {
	if v, ok := s.lookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if s.params != nil {
		v, ok, err := s.params.Lookup(ctx, key)
		if err != nil {
			return "", fmt.Errorf("config: lookup %s: %w", key, err)
		}
		if ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return fallback, nil
}

// getAll resolves keys in order, stopping at the first error.
func (s *Source) getAll(ctx context.Context, pairs ...*setting) error {
	for _, p := range pairs {
		v, err := s.get(ctx, p.key, p.fallback)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	return nil
}

type setting struct {
	key      string
	fallback string
	dst      *string
}

func (s *Source) Groq(ctx context.Context) (GroqSettings, error) {
	var out GroqSettings
	var useLangChain string
	err := s.getAll(ctx,
		&setting{KeyGroqAPIKey, "", &out.Provider.APIKey},
		&setting{KeyGroqBaseURL, groq.DefaultBaseURL, &out.Provider.BaseURL},
		&setting{KeyGroqModel, groq.DefaultModel, &out.Provider.Model},
		&setting{KeyUseLangChain, "", &useLangChain},
	)
	if err != nil {
		return GroqSettings{}, err
	}
	out.UseLangChain = useLangChain == "1"
	return out, nil
}

func (s *Source) Persona(ctx context.Context) (PersonaSettings, error) {
	var out PersonaSettings
	var devFallback string
	err := s.getAll(ctx,
		&setting{KeyOpenRouterAPIKey, "", &out.OpenRouter.APIKey},
		&setting{KeyOpenRouterBaseURL, openrouter.DefaultBaseURL, &out.OpenRouter.BaseURL},
		&setting{KeyOpenRouterModel, openrouter.DefaultModel, &out.OpenRouter.Model},
		&setting{KeyHFToken, "", &out.HuggingFace.APIKey},
		&setting{KeyHFBaseURL, huggingface.DefaultBaseURL, &out.HuggingFace.BaseURL},
		&setting{KeyHFModel, huggingface.DefaultModel, &out.HuggingFace.Model},
		&setting{KeyDevFallback, "true", &devFallback},
	)
	if err != nil {
		return PersonaSettings{}, err
	}
	out.DevFallback = parseFlag(devFallback)
	return out, nil
}

func (s *Source) Containers(ctx context.Context) (router.ContainerMap, error) {
	var out router.ContainerMap
	err := s.getAll(ctx,
		&setting{KeyContainerDefault, router.DefaultContainer, &out.Default},
		&setting{KeyContainerHR, router.DefaultHRContainer, &out.HR},
		&setting{KeyContainerLegal, router.DefaultLegalContainer, &out.Legal},
		&setting{KeyContainerL1, router.DefaultL1Container, &out.L1},
		&setting{KeyContainerL2, router.DefaultL2Container, &out.L2},
	)
	if err != nil {
		return router.ContainerMap{}, err
	}
	return out, nil
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
