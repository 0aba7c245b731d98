package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/contactform/backend/internal/model"
	"github.com/contactform/backend/internal/service"
)

// Request is the transport-independent view of an incoming HTTP request.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response is the transport-independent view of an HTTP response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Handler dispatches requests to the contact API routes. It keeps no state
// between requests; the only shared resource is the contact service.
type Handler struct {
	contacts service.ContactService
	log      *slog.Logger
	now      func() time.Time
}

// New creates a Handler. A nil logger uses slog.Default().
func New(contacts service.ContactService, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{contacts: contacts, log: log, now: time.Now}
}

// Handle maps req to exactly one route and always returns a JSON response.
// Unknown routes get the endpoint index with 200, not 404.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("panic while handling request", "method", req.Method, "path", req.Path, "panic", r)
			resp = h.internalError(errProcessRequest, fmt.Errorf("%v", r))
		}
	}()

	path := normalizePath(req.Path)
	h.log.Debug("event", "method", req.Method, "path", req.Path, "body_bytes", len(req.Body))

	switch {
	case req.Method == http.MethodGet && path == "/hello":
		return h.hello(req)
	case req.Method == http.MethodGet && path == "/contacts":
		return h.listContacts(ctx)
	case req.Method == http.MethodPost && path == "/contact":
		return h.submitContact(ctx, req)
	default:
		return h.index()
	}
}

// normalizePath drops a single trailing slash so "/hello/" routes like "/hello".
func normalizePath(p string) string {
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}

func (h *Handler) timestamp() string {
	return model.FormatTimestamp(h.now())
}

// jsonResponse encodes v with the headers every response carries.
func (h *Handler) jsonResponse(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Error("encode response failed", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to process request","details":"response encoding failed"}`)
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: body,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

const (
	errProcessRequest = "Failed to process request"
	errFetchContacts  = "Failed to fetch contacts"
)

// internalError renders the generic 500 body. Malformed input and store
// failures share this response.
func (h *Handler) internalError(summary string, err error) Response {
	return h.jsonResponse(http.StatusInternalServerError, errorResponse{
		Error:   summary,
		Details: err.Error(),
	})
}
