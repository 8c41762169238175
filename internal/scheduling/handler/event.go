package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/gautham-8087/Event-IQ/internal/scheduling/service"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	httputil "github.com/gautham-8087/Event-IQ/pkg/http"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/middleware"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/roles"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
	"github.com/gautham-8087/Event-IQ/pkg/timeutil"
)

type EventHandler struct {
	coordinator  service.CoordinatorService
	availability service.AvailabilityService
	log          *logger.Logger
}

func NewEventHandler(coordinator service.CoordinatorService, availability service.AvailabilityService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		coordinator:  coordinator,
		availability: availability,
		log:          log,
	}
}

func (h *EventHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/check-availability", h.CheckAvailability)
	router.POST("/api/events", h.Create)
	router.GET("/api/events", h.GetAll)
	router.GET("/api/events/:id", h.GetByID)
	router.DELETE("/api/events/:id", h.Delete)
}

type checkAvailabilityRequest struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MinCapacity    int    `json:"min_capacity,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

func (h *EventHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req checkAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	start, end, err := timeutil.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Validation(err.Error(), nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.availability.CheckAvailability(r.Context(), start, end, req.MinCapacity, sanitizer.NormalizeSpecialization(req.Specialization))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

type createEventRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description,omitempty"`
	ResourceIDs []string `json:"resource_ids"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Actor identity is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if roles.RequiresApproval(actor.Role) {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("Your role cannot book directly; submit an event request instead")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	start, end, err := timeutil.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Validation(err.Error(), nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
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
	event, err := h.coordinator.Schedule(r.Context(), draft, req.ResourceIDs)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteCreated(w, event); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	events, total, err := h.coordinator.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WritePaginated(w, events, total, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	details, err := h.coordinator.GetDetails(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, details); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Actor identity is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.coordinator.Delete(r.Context(), ps.ByName("id"), actor); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}
