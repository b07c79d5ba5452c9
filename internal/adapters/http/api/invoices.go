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

// InvoiceDependencies defines the interface for invoice record operations.
type InvoiceDependencies interface {
	Invoices(ctx context.Context) []model.Invoice
	AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	UpdateInvoice(ctx context.Context, inv model.Invoice) error
	RemoveInvoice(ctx context.Context, id string) error
}

// InvoiceHandler handles invoice record requests.
type InvoiceHandler struct {
	deps InvoiceDependencies
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(deps InvoiceDependencies) *InvoiceHandler {
	return &InvoiceHandler{deps: deps}
}

func validateInvoice(inv model.Invoice) error {
	switch {
	case strings.TrimSpace(inv.ClientID) == "":
		return errors.New("missing clientId")
	case strings.TrimSpace(inv.Title) == "":
		return errors.New("missing title")
	case inv.Amount < 0:
		return errors.New("amount must be >= 0")
	case !inv.Paid && inv.PaidDate != nil:
		return errors.New("paidDate requires paid")
	}
	return nil
}

// HandleCollection handles GET and POST /invoices requests.
func (h *InvoiceHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.invoices"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Invoices(r.Context()))
	case http.MethodPost:
		var inv model.Invoice
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateInvoice(inv); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		created, err := h.deps.AddInvoice(r.Context(), inv)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles PUT and DELETE /invoices/{id} requests.
func (h *InvoiceHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.invoice"
	id, ok := pathID(r.URL.Path, "/invoices/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodPut:
		var inv model.Invoice
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateInvoice(inv); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		inv.ID = id
		if err := h.deps.UpdateInvoice(r.Context(), inv); err != nil {
			h.writeMutationError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	case http.MethodDelete:
		if err := h.deps.RemoveInvoice(r.Context(), id); err != nil {
			h.writeMutationError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *InvoiceHandler) writeMutationError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
