// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/ledgerweek/internal/adapters/repository"
	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	repository.Store

	// ComputeScore runs the score engine over caller-supplied records
	// without touching the store.
	ComputeScore(ctx context.Context, in scoring.Input) model.ScoreBreakdown

	// CurrentScore scores the ledger as stored.
	CurrentScore(ctx context.Context) (model.ScoreBreakdown, error)

	// WeeklyReset and Recovery run the weekly workflows and return the
	// upserted week card.
	WeeklyReset(ctx context.Context, plannedHours float64, touchesLogged int, notes string) (model.WeekCard, error)
	Recovery(ctx context.Context, plannedHours float64, notes string) (model.WeekCard, error)

	// SeedDemo loads the demo ledger.
	SeedDemo(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoreHandler       *ScoreHandler
	profileHandler     *ProfileHandler
	clientHandler      *ClientHandler
	deliverableHandler *DeliverableHandler
	invoiceHandler     *InvoiceHandler
	touchHandler       *TouchHandler
	weeksHandler       *WeeksHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoreHandler:       NewScoreHandler(deps),
		profileHandler:     NewProfileHandler(deps),
		clientHandler:      NewClientHandler(deps),
		deliverableHandler: NewDeliverableHandler(deps),
		invoiceHandler:     NewInvoiceHandler(deps),
		touchHandler:       NewTouchHandler(deps),
		weeksHandler:       NewWeeksHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/clients", MetricsMiddleware(s.clientHandler.HandleCollection, "clients"))
	mux.HandleFunc("/clients/", MetricsMiddleware(s.clientHandler.HandleItem, "clients"))
	mux.HandleFunc("/deliverables", MetricsMiddleware(s.deliverableHandler.HandleCollection, "deliverables"))
	mux.HandleFunc("/deliverables/", MetricsMiddleware(s.deliverableHandler.HandleItem, "deliverables"))
	mux.HandleFunc("/invoices", MetricsMiddleware(s.invoiceHandler.HandleCollection, "invoices"))
	mux.HandleFunc("/invoices/", MetricsMiddleware(s.invoiceHandler.HandleItem, "invoices"))
	mux.HandleFunc("/touches", MetricsMiddleware(s.touchHandler.HandleCollection, "touches"))
	mux.HandleFunc("/touches/", MetricsMiddleware(s.touchHandler.HandleItem, "touches"))
	mux.HandleFunc("/weeks", MetricsMiddleware(s.weeksHandler.HandleHistory, "weeks"))
	mux.HandleFunc("/weeks/reset", MetricsMiddleware(s.weeksHandler.HandleWeeklyReset, "weekly_reset"))
	mux.HandleFunc("/weeks/recovery", MetricsMiddleware(s.weeksHandler.HandleRecovery, "recovery"))
	mux.HandleFunc("/seed", MetricsMiddleware(s.weeksHandler.HandleSeed, "seed"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// pathID extracts the trailing id from an item path like /clients/{id}.
func pathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
