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

// TouchDependencies defines the interface for pipeline touch operations.
// Touches are immutable once logged, so there is no update.
type TouchDependencies interface {
	Touches(ctx context.Context) []model.PipelineTouch
	AddTouch(ctx context.Context, t model.PipelineTouch) (model.PipelineTouch, error)
	RemoveTouch(ctx context.Context, id string) error
}

// TouchHandler handles pipeline touch requests.
type TouchHandler struct {
	deps TouchDependencies
}

// NewTouchHandler creates a new touch handler.
func NewTouchHandler(deps TouchDependencies) *TouchHandler {
	return &TouchHandler{deps: deps}
}

func validateTouch(t model.PipelineTouch) error {
	switch {
	case strings.TrimSpace(t.Date) == "":
		return errors.New("missing date")
	case !t.Type.Valid():
		return errors.New("invalid type")
	case t.ValueHint < 0:
		return errors.New("valueHint must be >= 0")
	}
	return nil
}

// HandleCollection handles GET and POST /touches requests.
func (h *TouchHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.touches"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Touches(r.Context()))
	case http.MethodPost:
		var t model.PipelineTouch
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateTouch(t); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		created, err := h.deps.AddTouch(r.Context(), t)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles DELETE /touches/{id} requests.
func (h *TouchHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.touch"
	id, ok := pathID(r.URL.Path, "/touches/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.RemoveTouch(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
