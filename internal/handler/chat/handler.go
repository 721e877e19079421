package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/spurlabs/support-chat/backend/internal/model/chat"
	chatService "github.com/spurlabs/support-chat/backend/internal/service/chat"
	"github.com/spurlabs/support-chat/backend/pkg/utils"
)

// Wire-level error strings of the public contract.
const (
	errEmptyMessage    = "Message cannot be empty"
	errSessionNotFound = "Session not found"
	errInternal        = "Internal Server Error"
)

// Handler exposes the chat service over HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/message", h.handleMessage)
	r.Get("/history/{sessionID}", h.handleHistory)
}

// handleMessage runs one conversation turn.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errEmptyMessage)
		return
	}

	reply, err := h.chatSvc.Send(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"reply":     reply.Text,
		"sessionId": reply.SessionID,
	})
}

// handleHistory returns the full ordered transcript of a session.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []chatModel.Message{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
	})
}

// respondServiceError maps service errors to the wire contract. Structural
// errors are explicit; everything else is logged and kept opaque.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, errEmptyMessage)
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, errSessionNotFound)
	default:
		log.Printf("[chat] request failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, errInternal)
	}
}
