package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"chatdesk/internal/blobstore"
	"chatdesk/internal/config"
)

func TestNewSource_EnvironmentOnly(t *testing.T) {
	src, err := NewSource(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, src)
}

func TestNewPersona_HealthReflectsEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("HF_API_TOKEN", "")
	t.Setenv("DEV_FALLBACK", "no")

	h, err := NewPersona(context.Background(), PersonaOptions{Server: config.Server{Port: "0"}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","provider":"none"}`, rec.Body.String())

	t.Setenv("HF_API_TOKEN", "hf-token")
	t.Setenv("HF_MODEL", "")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.JSONEq(t, `{"status":"ok","provider":"huggingface","model":"google/flan-t5-small"}`, rec.Body.String())
}

func TestNewDesk_RequiresConnectionString(t *testing.T) {
	_, err := NewDesk(context.Background(), DeskOptions{Storage: config.Storage{DefaultContainer: "uploads"}})
	require.ErrorIs(t, err, blobstore.ErrMissingConnection)
}

func TestServe_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Serve(ctx, "test", "0", http.NotFoundHandler())
	require.NoError(t, err)
}
