package handler

import "net/http"

// Greeting is the message returned by GET /hello.
const Greeting = "Hello from your contact API! 🚀"

type helloResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Method    string `json:"method"`
}

func (h *Handler) hello(req Request) Response {
	return h.jsonResponse(http.StatusOK, helloResponse{
		Message:   Greeting,
		Timestamp: h.timestamp(),
		Path:      req.Path,
		Method:    req.Method,
	})
}

type endpoint struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Body        map[string]string `json:"body,omitempty"`
}

type indexResponse struct {
	Message            string     `json:"message"`
	AvailableEndpoints []endpoint `json:"availableEndpoints"`
	Timestamp          string     `json:"timestamp"`
}

var availableEndpoints = []endpoint{
	{Method: http.MethodGet, Path: "/hello", Description: "Get a hello message"},
	{Method: http.MethodGet, Path: "/contacts", Description: "List submitted contact messages, newest first"},
	{
		Method:      http.MethodPost,
		Path:        "/contact",
		Description: "Submit contact form",
		Body:        map[string]string{"name": "string", "message": "string", "email": "string (optional)"},
	},
}

// index is the capability-discovery payload served for every route that is
// not one of the API endpoints.
func (h *Handler) index() Response {
	return h.jsonResponse(http.StatusOK, indexResponse{
		Message:            "Welcome to your contact REST API! 🚀",
		AvailableEndpoints: availableEndpoints,
		Timestamp:          h.timestamp(),
	})
}
