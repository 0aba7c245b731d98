package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/contactform/backend/internal/model"
	"github.com/contactform/backend/internal/service"
)

type listResponse struct {
	Contacts []*model.Contact `json:"contacts"`
	Count    int              `json:"count"`
}

// listContacts handles GET /contacts.
func (h *Handler) listContacts(ctx context.Context) Response {
	contacts, err := h.contacts.List(ctx)
	if err != nil {
		h.log.Error("list contacts failed", "error", err)
		return h.internalError(errFetchContacts, err)
	}
	return h.jsonResponse(http.StatusOK, listResponse{Contacts: contacts, Count: len(contacts)})
}

type validationResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
}

type submitResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Saved   *model.Contact `json:"saved"`
}

// submitContact handles POST /contact.
// name and message are required; email is optional.
func (h *Handler) submitContact(ctx context.Context, req Request) Response {
	in, err := service.SubmitInputFromJSON(req.Body)
	if err != nil {
		h.log.Error("decode contact body failed", "error", err)
		return h.internalError(errProcessRequest, err)
	}

	saved, err := h.contacts.Submit(ctx, in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return h.jsonResponse(http.StatusBadRequest, validationResponse{
				Error:    "Missing required fields",
				Required: verr.Required,
			})
		}
		h.log.Error("submit contact failed", "error", err)
		return h.internalError(errProcessRequest, err)
	}

	h.log.Info("contact saved", "id", saved.ID)
	return h.jsonResponse(http.StatusOK, submitResponse{
		Success: true,
		Message: fmt.Sprintf("Thanks for your message, %s!", saved.Name),
		Saved:   saved,
	})
}
