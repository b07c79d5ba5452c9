// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ledgerweek/internal/domain/model"
)

// WeeksDependencies defines the interface for week card history and the
// weekly workflows.
type WeeksDependencies interface {
	WeekCards(ctx context.Context) []model.WeekCard
	WeeklyReset(ctx context.Context, plannedHours float64, touchesLogged int, notes string) (model.WeekCard, error)
	Recovery(ctx context.Context, plannedHours float64, notes string) (model.WeekCard, error)
	SeedDemo(ctx context.Context) error
}

// weeklyResetRequest mirrors the wire schema for POST /weeks/reset.
type weeklyResetRequest struct {
	PlannedBillableHours       float64 `json:"plannedBillableHours"`
	PipelineTouchesLoggedToday int     `json:"pipelineTouchesLoggedToday"`
	Notes                      string  `json:"notes"`
}

// recoveryRequest mirrors the wire schema for POST /weeks/recovery.
type recoveryRequest struct {
	PlannedBillableHours float64 `json:"plannedBillableHours"`
	Notes                string  `json:"notes"`
}

// WeeksHandler handles week card history and workflow requests.
type WeeksHandler struct {
	deps WeeksDependencies
}

// NewWeeksHandler creates a new weeks handler.
func NewWeeksHandler(deps WeeksDependencies) *WeeksHandler {
	return &WeeksHandler{deps: deps}
}

// HandleHistory handles GET /weeks requests, most recent week first.
func (h *WeeksHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.WeekCards(r.Context()))
}

// HandleWeeklyReset handles POST /weeks/reset requests.
func (h *WeeksHandler) HandleWeeklyReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.weekly_reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req weeklyResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.PlannedBillableHours < 0 || req.PipelineTouchesLoggedToday < 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("planned hours and touch count must be >= 0")))
		return
	}
	card, err := h.deps.WeeklyReset(r.Context(), req.PlannedBillableHours, req.PipelineTouchesLoggedToday, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleRecovery handles POST /weeks/recovery requests.
func (h *WeeksHandler) HandleRecovery(w http.ResponseWriter, r *http.Request) {
	const op = "api.recovery"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.PlannedBillableHours < 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("planned hours must be >= 0")))
		return
	}
	card, err := h.deps.Recovery(r.Context(), req.PlannedBillableHours, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleSeed handles POST /seed requests.
func (h *WeeksHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	const op = "api.seed"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.SeedDemo(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}
