package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"chatdesk/internal/usecase"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func respondInvalid(w http.ResponseWriter, detail string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Detail: detail})
}

// respondError writes err as {"error": code, "detail": text}. Errors that
// are not *usecase.Error are reported as INTERNAL_ERROR.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := usecase.ErrorInternal
	detail := err.Error()

	var ue *usecase.Error
	if errors.As(err, &ue) {
		code = ue.Code
		detail = ue.Detail()
	}

	status := statusFor(code)
	attrs := []any{"path", r.URL.Path, "code", code, "status", status, "err", err}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}
	respondJSON(w, status, errorResponse{Error: string(code), Detail: detail})
}

func statusFor(code usecase.ErrorCode) int {
	switch code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest
	case usecase.ErrorUpstream:
		return http.StatusBadGateway
	case usecase.ErrorNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
