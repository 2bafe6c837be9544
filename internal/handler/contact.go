package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-server/internal/service"
)

// ContactHandler accepts contact-form submissions from the public site.
type ContactHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewContactHandler(messages *service.MessageService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HandleSubmit stores a contact message.
//
// HTTP: POST /api/contact
// REQUEST BODY: {"name": "...", "email": "...", "message": "..."}
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid contact JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	msg, err := h.messages.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
