package handler

import (
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies read by ServeHTTP.
const maxBodyBytes = 1 << 20

// ServeHTTP adapts Handle to net/http for the local development server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.Error("read request body failed", "error", err)
		writeResponse(w, h.internalError(errProcessRequest, fmt.Errorf("read body: %w", err)))
		return
	}

	writeResponse(w, h.Handle(r.Context(), Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
	}))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
