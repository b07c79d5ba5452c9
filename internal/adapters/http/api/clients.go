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

// ClientDependencies defines the interface for client record operations.
type ClientDependencies interface {
	Clients(ctx context.Context) []model.Client
	AddClient(ctx context.Context, c model.Client) (model.Client, error)
	UpdateClient(ctx context.Context, c model.Client) error
	RemoveClient(ctx context.Context, id string) error
}

// ClientHandler handles client record requests.
type ClientHandler struct {
	deps ClientDependencies
}

// NewClientHandler creates a new client handler.
func NewClientHandler(deps ClientDependencies) *ClientHandler {
	return &ClientHandler{deps: deps}
}

func validateClient(c model.Client) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return errors.New("missing name")
	case !c.Status.Valid():
		return errors.New("invalid status")
	case c.ContractValue < 0:
		return errors.New("contractValue must be >= 0")
	}
	return nil
}

// HandleCollection handles GET and POST /clients requests.
func (h *ClientHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.clients"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Clients(r.Context()))
	case http.MethodPost:
		var c model.Client
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateClient(c); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		created, err := h.deps.AddClient(r.Context(), c)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles PUT and DELETE /clients/{id} requests.
func (h *ClientHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.client"
	id, ok := pathID(r.URL.Path, "/clients/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodPut:
		var c model.Client
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := validateClient(c); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		c.ID = id
		if err := h.deps.UpdateClient(r.Context(), c); err != nil {
			h.writeUpdateError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		if err := h.deps.RemoveClient(r.Context(), id); err != nil {
			h.writeUpdateError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *ClientHandler) writeUpdateError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
