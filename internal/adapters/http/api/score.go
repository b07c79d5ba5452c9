// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ledgerweek/internal/adapters/repository"
	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/scoring"
)

// ScoreDependencies defines the interface for scoring operations.
type ScoreDependencies interface {
	ComputeScore(ctx context.Context, in scoring.Input) model.ScoreBreakdown
	CurrentScore(ctx context.Context) (model.ScoreBreakdown, error)
}

// scoreRequest mirrors the wire schema for POST /score. Everything except
// the profile defaults to empty.
type scoreRequest struct {
	Profile       *model.Profile        `json:"profile"`
	Clients       []model.Client        `json:"clients"`
	Deliverables  []model.Deliverable   `json:"deliverables"`
	Invoices      []model.Invoice       `json:"invoices"`
	Touches       []model.PipelineTouch `json:"touches"`
	ReferenceDate string                `json:"referenceDate"`
}

// ScoreHandler handles score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore routes /score requests: POST is a stateless pass-through
// over the request body, GET scores the stored ledger.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ScoreHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Profile == nil {
		writeError(w, http.StatusBadRequest, "missing_profile", NewKind(op, ErrMissingProfile))
		return
	}
	res := h.deps.ComputeScore(r.Context(), scoring.Input{
		Profile:       *req.Profile,
		Clients:       req.Clients,
		Deliverables:  req.Deliverables,
		Invoices:      req.Invoices,
		Touches:       req.Touches,
		ReferenceDate: req.ReferenceDate,
	})
	writeJSON(w, http.StatusOK, res)
}

func (h *ScoreHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	res, err := h.deps.CurrentScore(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoProfile) {
			writeError(w, http.StatusNotFound, "no_profile", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
