// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ledgerweek/internal/adapters/repository"
	"github.com/okian/ledgerweek/internal/domain/model"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	Profile(ctx context.Context) (model.Profile, error)
	SetProfile(ctx context.Context, p model.Profile) error
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

func validateProfile(p model.Profile) error {
	switch {
	case p.WeeklyBillableTargetHours <= 0:
		return errors.New("weeklyBillableTargetHours must be > 0")
	case p.WeeklyPipelineTarget < 0:
		return errors.New("weeklyPipelineTarget must be >= 0")
	case p.InvoiceGraceDays < 0:
		return errors.New("invoiceGraceDays must be >= 0")
	case p.WeeklyBillableHoursPlanned < 0:
		return errors.New("weeklyBillableHoursPlanned must be >= 0")
	}
	return nil
}

// HandleProfile routes /profile requests: GET reads, PUT creates or
// overwrites.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile"
	switch r.Method {
	case http.MethodGet:
		p, err := h.deps.Profile(r.Context())
		if err != nil {
			if errors.Is(err, repository.ErrNoProfile) {
				writeError(w, http.StatusNotFound, "no_profile", Wrap(op, err))
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var p model.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateProfile(p); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.SetProfile(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		http.NotFound(w, r)
	}
}
