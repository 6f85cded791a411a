package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostJSON_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"a":1}`, string(body))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	raw, err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, "sk-test", map[string]int{"a": 1})
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(raw))
}

func TestPostJSON_NoBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, " ", struct{}{})
	require.NoError(t, err)
}

func TestPostJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	_, err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, "", struct{}{})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, http.StatusTooManyRequests, perr.HTTPStatusCode())
	require.Contains(t, perr.Body, "slow down")
	require.Contains(t, err.Error(), "unexpected status 429")
}

func TestPostJSON_TransportFailure(t *testing.T) {
	client := &http.Client{Timeout: 100 * time.Millisecond}
	_, err := PostJSON(context.Background(), client, "test", "http://127.0.0.1:1", "", struct{}{})
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Zero(t, perr.StatusCode)
	require.Contains(t, err.Error(), "request to http://127.0.0.1:1 failed")
}

func TestPostJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := PostJSON(context.Background(), &http.Client{Timeout: 50 * time.Millisecond}, "test", srv.URL, "", struct{}{})
	require.Error(t, err)
}

func TestJoinURL(t *testing.T) {
	require.Equal(t, "https://api.groq.com/openai/v1/chat/completions", JoinURL("https://api.groq.com/openai/v1", "/chat/completions"))
	require.Equal(t, "https://api.groq.com/openai/v1/chat/completions", JoinURL("https://api.groq.com/openai/v1/", "chat/completions"))
	require.Equal(t, "http://hf/models/google/flan-t5-small", JoinURL("http://hf/models", "google/flan-t5-small"))
}

func TestNewHTTPClient_UsesDefaultTimeout(t *testing.T) {
	require.Equal(t, DefaultTimeout, NewHTTPClient().Timeout)
	require.Equal(t, 60*time.Second, DefaultTimeout)
}
