// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/ledgerweek/internal/domain/model"
)

// DeliverableDependencies defines the interface for deliverable record
// operations.
type DeliverableDependencies interface {
	Deliverables(ctx context.Context) []model.Deliverable
	AddDeliverable(ctx context.Context, d model.Deliverable) (model.Deliverable, error)
	UpdateDeliverable(ctx context.Context, d model.Deliverable) error
	RemoveDeliverable(ctx context.Context, id string) error
}

// DeliverableHandler handles deliverable record requests.
type DeliverableHandler struct {
	deps DeliverableDependencies
}

// NewDeliverableHandler creates a new deliverable handler.
func NewDeliverableHandler(deps DeliverableDependencies) *DeliverableHandler {
	return &DeliverableHandler{deps: deps}
}

func validateDeliverable(d model.Deliverable) error {
	switch {
	case strings.TrimSpace(d.ClientID) == "":
		return errors.New("missing clientId")
	case strings.TrimSpace(d.Title) == "":
		return errors.New("missing title")
	case d.CompletionPercent < 0 || d.CompletionPercent > 100:
		return errors.New("completionPercent must be in [0,100]")
	case d.EstimatedHours < 0:
		return errors.New("estimatedHours must be >= 0")
	}
	return nil
}

// HandleCollection handles GET and POST /deliverables requests.
func (h *DeliverableHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.deliverables"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Deliverables(r.Context()))
	case http.MethodPost:
		var d model.Deliverable
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateDeliverable(d); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		created, err := h.deps.AddDeliverable(r.Context(), d)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles PUT and DELETE /deliverables/{id} requests.
func (h *DeliverableHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.deliverable"
	id, ok := pathID(r.URL.Path, "/deliverables/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodPut:
		var d model.Deliverable
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateDeliverable(d); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		d.ID = id
		if err := h.deps.UpdateDeliverable(r.Context(), d); err != nil {
			h.writeMutationError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	case http.MethodDelete:
		if err := h.deps.RemoveDeliverable(r.Context(), id); err != nil {
			h.writeMutationError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *DeliverableHandler) writeMutationError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
