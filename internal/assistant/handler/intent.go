package handler

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gautham-8087/Event-IQ/internal/assistant"
	"github.com/gautham-8087/Event-IQ/internal/assistant/service"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	httputil "github.com/gautham-8087/Event-IQ/pkg/http"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/middleware"
)

type IntentHandler struct {
	service service.AssistantService
	log     *logger.Logger
}

func NewIntentHandler(service service.AssistantService, log *logger.Logger) *IntentHandler {
	return &IntentHandler{
		service: service,
		log:     log,
	}
}

func (h *IntentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/intents", h.Execute)
}

func (h *IntentHandler) Execute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Actor identity is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("failed to read request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	intent, err := assistant.DecodeIntent(payload)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Execute(r.Context(), actor, intent)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Execute", "operation", "WriteSuccess", "error", err)
	}
}
