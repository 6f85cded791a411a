// Package app assembles the desk and persona services from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"chatdesk/internal/api"
	"chatdesk/internal/blobstore"
	"chatdesk/internal/config"
	"chatdesk/internal/integrations/groq"
	"chatdesk/internal/integrations/huggingface"
	"chatdesk/internal/integrations/openrouter"
	"chatdesk/internal/integrations/paramstore"
	"chatdesk/internal/session"
	"chatdesk/internal/usecase"
)

type DeskOptions struct {
	Server      config.Server
	Storage     config.Storage
	ParamPrefix string
}

type PersonaOptions struct {
	Server      config.Server
	ParamPrefix string
}

// NewSource returns the request-time settings source. With an empty prefix
// only the environment is consulted.
func NewSource(ctx context.Context, paramPrefix string) (*config.Source, error) {
	if paramPrefix == "" {
		return config.NewSource(nil), nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	params, err := paramstore.New(awsssm.NewFromConfig(cfg), paramPrefix)
	if err != nil {
		return nil, err
	}
	return config.NewSource(params), nil
}

// NewDesk builds the desk router. The default container is created up
// front so that an unreachable store fails startup.
func NewDesk(ctx context.Context, opts DeskOptions) (http.Handler, error) {
	source, err := NewSource(ctx, opts.ParamPrefix)
	if err != nil {
		return nil, err
	}

	store, err := blobstore.NewFromConnectionString(ctx, opts.Storage.ConnectionString, opts.Storage.DefaultContainer)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureContainer(ctx, ""); err != nil {
		return nil, err
	}

	chat, err := usecase.NewChatService(groq.NewClient(), source, session.NewStore())
	if err != nil {
		return nil, err
	}
	files, err := usecase.NewFileService(store, source)
	if err != nil {
		return nil, err
	}

	return api.NewDeskRouter(api.DeskDependencies{
		Chat:           chat,
		Files:          files,
		AllowedOrigins: opts.Server.AllowedOrigins,
	})
}

// NewPersona builds the persona router.
func NewPersona(ctx context.Context, opts PersonaOptions) (http.Handler, error) {
	source, err := NewSource(ctx, opts.ParamPrefix)
	if err != nil {
		return nil, err
	}

	persona, err := usecase.NewPersonaService(source, openrouter.NewClient(), huggingface.NewClient())
	if err != nil {
		return nil, err
	}

	return api.NewPersonaRouter(api.PersonaDependencies{
		Persona:        persona,
		AllowedOrigins: opts.Server.AllowedOrigins,
	})
}
