// Package repository defines the ledger store interface and errors.
package repository

import (
	"context"

	"github.com/okian/ledgerweek/internal/domain/model"
)

// Store provides read/write access to the ledger state. The store owns
// identity assignment and mutation; the scoring core only ever reads the
// slices it returns.
type Store interface {
	// Profile returns the account profile. Returns ErrNoProfile until
	// onboarding has set one.
	Profile(ctx context.Context) (model.Profile, error)
	// SetProfile creates or overwrites the account profile.
	SetProfile(ctx context.Context, p model.Profile) error

	// Clients lists all clients in insertion order.
	Clients(ctx context.Context) []model.Client
	// AddClient assigns an id and stores the client.
	AddClient(ctx context.Context, c model.Client) (model.Client, error)
	// UpdateClient replaces the client with the same id.
	// Returns ErrNotFound for unknown ids.
	UpdateClient(ctx context.Context, c model.Client) error
	// RemoveClient deletes the client with the given id.
	RemoveClient(ctx context.Context, id string) error

	Deliverables(ctx context.Context) []model.Deliverable
	AddDeliverable(ctx context.Context, d model.Deliverable) (model.Deliverable, error)
	UpdateDeliverable(ctx context.Context, d model.Deliverable) error
	RemoveDeliverable(ctx context.Context, id string) error

	Invoices(ctx context.Context) []model.Invoice
	AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	UpdateInvoice(ctx context.Context, inv model.Invoice) error
	RemoveInvoice(ctx context.Context, id string) error

	// Touches lists all pipeline touches. Touches are immutable once
	// logged, so there is no update operation.
	Touches(ctx context.Context) []model.PipelineTouch
	AddTouch(ctx context.Context, t model.PipelineTouch) (model.PipelineTouch, error)
	RemoveTouch(ctx context.Context, id string) error

	// WeekCards returns the snapshot history, most recent week first.
	WeekCards(ctx context.Context) []model.WeekCard
	// UpsertWeekCard merges a card into history under the
	// one-card-per-week rule.
	UpsertWeekCard(ctx context.Context, card model.WeekCard) error

	// Counts reports the number of records per entity.
	Counts(ctx context.Context) map[string]int

	// Close flushes pending writes and releases the backing file.
	Close() error
}
