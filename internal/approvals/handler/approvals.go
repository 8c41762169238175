package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gautham-8087/Event-IQ/internal/approvals/service"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	httputil "github.com/gautham-8087/Event-IQ/pkg/http"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/middleware"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/timeutil"
)

type ApprovalHandler struct {
	workflow service.WorkflowService
	log      *logger.Logger
}

func NewApprovalHandler(workflow service.WorkflowService, log *logger.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		workflow: workflow,
		log:      log,
	}
}

func (h *ApprovalHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/event-requests", h.Submit)
	router.GET("/api/event-requests", h.ListPending)
	router.POST("/api/event-requests/:id/approve", h.Approve)
	router.POST("/api/event-requests/:id/reject", h.Reject)

	router.POST("/api/events/:id/deletion-request", h.RequestDeletion)
	router.GET("/api/deletion-requests", h.ListPendingDeletions)
	router.POST("/api/deletion-requests/:id/approve", h.ApproveDeletion)
	router.POST("/api/deletion-requests/:id/reject", h.RejectDeletion)
}

func (h *ApprovalHandler) actor(w http.ResponseWriter, r *http.Request, op string) (model.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Actor identity is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", op, "operation", "WriteError", "error", writeErr)
		}
	}
	return actor, ok
}

type submitRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description,omitempty"`
	ResourceIDs []string `json:"resource_ids"`
}

func (h *ApprovalHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "Submit")
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	start, end, err := timeutil.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Validation(err.Error(), nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	draft := &model.EventDraft{
		Title:       req.Title,
		Type:        req.Type,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
		Creator:     actor.ID,
	}
	request, err := h.workflow.Submit(r.Context(), draft, req.ResourceIDs)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteCreated(w, request); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *ApprovalHandler) ListPending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "ListPending")
	if !ok {
		return
	}

	requests, err := h.workflow.ListPending(r.Context(), actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListPending", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, requests); err != nil {
		h.log.Error("failed to write success response", "handler", "ListPending", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "Approve")
	if !ok {
		return
	}

	event, err := h.workflow.Approve(r.Context(), ps.ByName("id"), actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Approve", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, event); err != nil {
		h.log.Error("failed to write success response", "handler", "Approve", "operation", "WriteSuccess", "error", err)
	}
}

type rejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "Reject")
	if !ok {
		return
	}

	// The body is optional; rejection falls back to the default reason.
	var req rejectRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "Invalid request body",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "Reject", "operation", "WriteJSON", "error", writeErr)
			}
			return
		}
	}

	if err := h.workflow.Reject(r.Context(), ps.ByName("id"), actor, req.Reason); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reject", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ApprovalHandler) RequestDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "RequestDeletion")
	if !ok {
		return
	}

	request, err := h.workflow.RequestDeletion(r.Context(), ps.ByName("id"), actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RequestDeletion", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteCreated(w, request); err != nil {
		h.log.Error("failed to write created response", "handler", "RequestDeletion", "operation", "WriteCreated", "error", err)
	}
}

func (h *ApprovalHandler) ListPendingDeletions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "ListPendingDeletions")
	if !ok {
		return
	}

	requests, err := h.workflow.ListPendingDeletions(r.Context(), actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListPendingDeletions", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, requests); err != nil {
		h.log.Error("failed to write success response", "handler", "ListPendingDeletions", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ApprovalHandler) ApproveDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "ApproveDeletion")
	if !ok {
		return
	}

	if err := h.workflow.ApproveDeletion(r.Context(), ps.ByName("id"), actor); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApproveDeletion", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ApprovalHandler) RejectDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "RejectDeletion")
	if !ok {
		return
	}

	if err := h.workflow.RejectDeletion(r.Context(), ps.ByName("id"), actor); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RejectDeletion", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}
