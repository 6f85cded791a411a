// Package api exposes the desk and persona services over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"chatdesk/internal/domain"
	"chatdesk/internal/usecase"
)

type ChatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type FileUseCase interface {
	Upload(ctx context.Context, in usecase.UploadInput) (domain.UploadedObject, error)
	List(ctx context.Context, in usecase.ListInput) ([]domain.ObjectInfo, error)
}

type PersonaUseCase interface {
	Chat(ctx context.Context, in usecase.PersonaInput) (string, error)
	Health(ctx context.Context) (usecase.PersonaHealth, error)
}

// DeskDependencies holds what the desk router needs.
type DeskDependencies struct {
	Chat           ChatUseCase
	Files          FileUseCase
	AllowedOrigins []string
}

// PersonaDependencies holds what the persona router needs.
type PersonaDependencies struct {
	Persona        PersonaUseCase
	AllowedOrigins []string
}

// NewDeskRouter serves multi-domain chat and document storage.
func NewDeskRouter(deps DeskDependencies) (*chi.Mux, error) {
	if deps.Chat == nil {
		return nil, errors.New("api: chat use case must not be nil")
	}
	if deps.Files == nil {
		return nil, errors.New("api: file use case must not be nil")
	}
	h := &deskHandlers{chat: deps.Chat, files: deps.Files}

	r := newBaseRouter(deps.AllowedOrigins)
	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.handleChat)
		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", h.handleUpload)
			r.Get("/list", h.handleList)
		})
	})
	return r, nil
}

// NewPersonaRouter serves persona chat and its provider health report.
func NewPersonaRouter(deps PersonaDependencies) (*chi.Mux, error) {
	if deps.Persona == nil {
		return nil, errors.New("api: persona use case must not be nil")
	}
	h := &personaHandlers{persona: deps.Persona}

	r := newBaseRouter(deps.AllowedOrigins)
	r.Get("/health", h.handleHealth)
	r.Post("/chat", h.handleChat)
	return r, nil
}

func newBaseRouter(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Detail: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "METHOD_NOT_ALLOWED", Detail: "Method Not Allowed"})
	})
	return r
}
