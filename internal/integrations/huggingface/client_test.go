package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"chatdesk/internal/domain"
	"chatdesk/internal/integrations/provider"
)

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt([]domain.Turn{
		{User: "Who are you?", Assistant: "A helper."},
		{Assistant: "Anything else?"},
	}, "Tell me a joke")

	require.Equal(t, "Question: Who are you?\nAnswer: A helper.\nAnswer: Anything else?\nQuestion: Tell me a joke\nAnswer:", got)
	require.Equal(t, "Question: hi\nAnswer:", BuildPrompt(nil, "hi"))
}

func TestParseReply(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		reply string
		kind  ReplyKind
	}{
		{"object", `{"generated_text":"obj"}`, "obj", ReplyObject},
		{"list", `[{"generated_text":"first"},{"generated_text":"second"}]`, "first", ReplyList},
		{"empty list", `[]`, `[]`, ReplyRaw},
		{"list without field", `[{"score":1}]`, `[{"score":1}]`, ReplyRaw},
		{"object without field", `{"error":"loading"}`, `{"error":"loading"}`, ReplyRaw},
		{"bare string", `"text"`, `"text"`, ReplyRaw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply, kind, err := ParseReply([]byte(tc.body))
			require.NoError(t, err)
			require.Equal(t, tc.reply, reply)
			require.Equal(t, tc.kind, kind)
		})
	}

	_, _, err := ParseReply([]byte(`oops`))
	require.Error(t, err)
}

func TestModelURL(t *testing.T) {
	require.Equal(t, "https://api-inference.huggingface.co/models/google/flan-t5-small", modelURL("", ""))
	require.Equal(t, "http://local/models/my/model", modelURL("http://local/models/", "my/model"))
}

func TestClient_Generate_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/org/model", r.URL.Path)
		require.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req generateRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		require.Equal(t, "Question: hi\nAnswer:", req.Inputs)
		require.True(t, req.Options.WaitForModel)
		_, _ = w.Write([]byte(`[{"generated_text":"hello there"}]`))
	}))
	defer srv.Close()

	c := NewClient(WithHTTPClient(srv.Client()))
	reply, err := c.Generate(context.Background(), domain.ProviderConfig{APIKey: "hf-token", BaseURL: srv.URL, Model: "org/model"}, BuildPrompt(nil, "hi"))
	require.NoError(t, err)
	require.Equal(t, "hello there", reply)
}

func TestClient_Generate_MissingToken(t *testing.T) {
	_, err := NewClient().Generate(context.Background(), domain.ProviderConfig{}, "x")
	require.Error(t, err)
}

func TestClient_Generate_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	_, err := NewClient(WithHTTPClient(srv.Client())).Generate(context.Background(), domain.ProviderConfig{APIKey: "t", BaseURL: srv.URL}, "x")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
}
