// Package handler runs an http.Handler behind API Gateway proxy events.
package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-Id"

type Handler struct {
	adapter *httpadapter.HandlerAdapter
}

func NewHandler(next http.Handler) (*Handler, error) {
	if next == nil {
		return nil, errors.New("handler: http handler must not be nil")
	}
	return &Handler{adapter: httpadapter.New(next)}, nil
}

// Handle proxies the event through the wrapped handler. Every response
// carries a correlation id, taken from the request when present.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = firstValue(event.MultiValueHeaders, correlationHeader)
	}
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	if event.IsBase64Encoded {
		if _, err := base64.StdEncoding.DecodeString(event.Body); err != nil {
			slog.Warn("rejecting malformed proxy event", "correlation_id", correlationID, "err", err)
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers: map[string]string{
					"Content-Type":    "application/json",
					correlationHeader: correlationID,
				},
				Body: `{"error":"INVALID_INPUT","detail":"malformed request"}`,
			}, nil
		}
	}

	event.Headers = stampHeader(event.Headers, correlationID)
	if event.MultiValueHeaders != nil {
		event.MultiValueHeaders = stampMultiHeader(event.MultiValueHeaders, correlationID)
	}

	resp, err := h.adapter.ProxyWithContext(ctx, event)
	if err != nil {
		slog.Error("proxying event failed", "correlation_id", correlationID, "err", err)
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	for k, vs := range resp.MultiValueHeaders {
		if _, ok := resp.Headers[k]; !ok && len(vs) > 0 {
			resp.Headers[k] = vs[0]
		}
	}
	resp.Headers[correlationHeader] = correlationID
	if resp.MultiValueHeaders != nil {
		resp.MultiValueHeaders[correlationHeader] = []string{correlationID}
	}
	return resp, nil
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func firstValue(headers map[string][]string, name string) string {
	for k, vs := range headers {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
	}
	return ""
}

// stampHeader returns a copy of headers with every spelling of the
// correlation header replaced by the canonical one.
func stampHeader(headers map[string]string, correlationID string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		if !strings.EqualFold(k, correlationHeader) {
			out[k] = v
		}
	}
	out[correlationHeader] = correlationID
	return out
}

func stampMultiHeader(headers map[string][]string, correlationID string) map[string][]string {
	out := make(map[string][]string, len(headers)+1)
	for k, vs := range headers {
		if !strings.EqualFold(k, correlationHeader) {
			out[k] = vs
		}
	}
	out[correlationHeader] = []string{correlationID}
	return out
}
