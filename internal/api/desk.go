package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"chatdesk/internal/domain"
	"chatdesk/internal/usecase"
)

const (
	defaultListMax     = 100
	maxMultipartMemory = 32 << 20
)

type deskHandlers struct {
	chat  ChatUseCase
	files FileUseCase
}

type chatRequest struct {
	Domain    string               `json:"domain"`
	Messages  []domain.ChatMessage `json:"messages"`
	SessionID string               `json:"session_id"`
	APIKey    string               `json:"api_key"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	Domain    string `json:"domain"`
	SessionID string `json:"session_id"`
}

func (h *deskHandlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *deskHandlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalid(w, "invalid JSON body: "+err.Error())
		return
	}

	out, err := h.chat.Chat(r.Context(), usecase.ChatInput{
		Domain:    req.Domain,
		Messages:  req.Messages,
		SessionID: req.SessionID,
		APIKey:    req.APIKey,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{Reply: out.Reply, Domain: out.Domain, SessionID: out.SessionID})
}

func (h *deskHandlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondInvalid(w, "invalid multipart body: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondInvalid(w, "missing form file \"file\"")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondInvalid(w, "read upload: "+err.Error())
		return
	}

	d := strings.TrimSpace(r.FormValue("domain"))
	if d == "" {
		d = "auto"
	}

	obj, err := h.files.Upload(r.Context(), usecase.UploadInput{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Domain:      d,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, obj)
}

func (h *deskHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults := defaultListMax
	if v := strings.TrimSpace(q.Get("max_results")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondInvalid(w, "max_results must be an integer")
			return
		}
		maxResults = n
	}

	files, err := h.files.List(r.Context(), usecase.ListInput{MaxResults: maxResults, Domain: q.Get("domain")})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, files)
}
