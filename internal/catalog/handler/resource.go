package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/gautham-8087/Event-IQ/internal/catalog/service"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	httputil "github.com/gautham-8087/Event-IQ/pkg/http"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
)

type ResourceHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewResourceHandler(service service.CatalogService, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		log:     log,
	}
}

func (h *ResourceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/resources", h.List)
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	typeParam := query.Get("type")
	if typeParam == "" {
		resources, err := h.service.ListAll(r.Context())
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if err := httputil.WriteSuccess(w, resources); err != nil {
			h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	resourceType := model.ResourceType(typeParam)
	if !resourceType.Valid() {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("unknown resource type: %s", typeParam))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filter := model.ResourceFilter{
		Specialization: sanitizer.NormalizeSpecialization(query.Get("specialization")),
	}
	if capStr := query.Get("min_capacity"); capStr != "" {
		minCapacity, err := strconv.Atoi(capStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid min_capacity parameter: %s", capStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		filter.MinCapacity = minCapacity
	}

	resources, err := h.service.List(r.Context(), resourceType, filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, resources); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}
