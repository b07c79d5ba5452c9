// Package repository defines the ledger store interface and errors.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/snapshot"
	"github.com/okian/ledgerweek/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultFlushQueueSize = 64
	storeFileMode         = 0o600
	storeDirMode          = 0o755
)

// ledgerState is the JSON snapshot persisted to disk. Field names follow
// the wire schema so a snapshot file is readable as API output.
type ledgerState struct {
	Profile      *model.Profile        `json:"profile"`
	Clients      []model.Client        `json:"clients"`
	Deliverables []model.Deliverable   `json:"deliverables"`
	Invoices     []model.Invoice       `json:"invoices"`
	Touches      []model.PipelineTouch `json:"touches"`
	WeekCards    []model.WeekCard      `json:"weekCards"`
}

// FileStore implements Store with an in-memory ledger persisted as a JSON
// snapshot file. All mutations run under the write lock; serialized
// snapshots are handed to a single writer goroutine, so the file only ever
// has one writer regardless of how the host drives the store.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state ledgerState

	historyLimit   int
	flushQueueSize int

	flushCh chan []byte
	done    chan struct{}
	closed  bool
}

// Open loads (or creates) the snapshot file at path and starts the flush
// writer.
func Open(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:           path,
		flushQueueSize: defaultFlushQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fresh store; first mutation writes the file.
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &s.state); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}

	s.flushCh = make(chan []byte, s.flushQueueSize)
	s.done = make(chan struct{})
	go s.flusher()

	s.updateGauges()
	return s, nil
}

// Close drains pending flushes and stops the writer.
func (s *FileStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.flushCh)
	s.mu.Unlock()

	<-s.done
	return nil
}

// flusher is the single writer. It drains the channel, always keeping only
// the most recent snapshot, and writes via temp-file rename so a crash
// never leaves a torn file.
func (s *FileStore) flusher() {
	defer close(s.done)
	for snap := range s.flushCh {
		// Coalesce: later snapshots supersede earlier ones.
		for {
			select {
			case next, ok := <-s.flushCh:
				if !ok {
					s.write(snap)
					return
				}
				snap = next
				continue
			default:
			}
			break
		}
		s.write(snap)
	}
}

func (s *FileStore) write(snap []byte) {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, snap, storeFileMode); err != nil {
		metrics.RecordStoreFlushError()
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		metrics.RecordStoreFlushError()
		return
	}
	metrics.RecordStoreFlush()
}

// persistLocked serializes the current state and enqueues it for the
// writer. Callers must hold the write lock.
func (s *FileStore) persistLocked() {
	if s.closed {
		return
	}
	raw, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		metrics.RecordStoreFlushError()
		return
	}
	select {
	case s.flushCh <- raw:
	default:
		// Queue full: drop one stale snapshot and retry with the newest.
		select {
		case <-s.flushCh:
		default:
		}
		select {
		case s.flushCh <- raw:
		default:
			metrics.RecordStoreFlushError()
		}
	}
}

func (s *FileStore) updateGauges() {
	metrics.UpdateStoreRecords("clients", len(s.state.Clients))
	metrics.UpdateStoreRecords("deliverables", len(s.state.Deliverables))
	metrics.UpdateStoreRecords("invoices", len(s.state.Invoices))
	metrics.UpdateStoreRecords("touches", len(s.state.Touches))
	metrics.UpdateStoreRecords("week_cards", len(s.state.WeekCards))
}

// Profile returns the account profile.
func (s *FileStore) Profile(_ context.Context) (model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Profile == nil {
		return model.Profile{}, ErrNoProfile
	}
	return *s.state.Profile, nil
}

// SetProfile creates or overwrites the account profile.
func (s *FileStore) SetProfile(_ context.Context, p model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.state.Profile = &p
	s.persistLocked()
	return nil
}

// Clients lists all clients in insertion order.
func (s *FileStore) Clients(_ context.Context) []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Client, len(s.state.Clients))
	copy(out, s.state.Clients)
	return out
}

// AddClient assigns an id and stores the client.
func (s *FileStore) AddClient(_ context.Context, c model.Client) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Client{}, ErrClosed
	}
	c.ID = uuid.NewString()
	s.state.Clients = append(s.state.Clients, c)
	s.updateGauges()
	s.persistLocked()
	return c, nil
}

// UpdateClient replaces the client with the same id.
func (s *FileStore) UpdateClient(_ context.Context, c model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Clients {
		if s.state.Clients[i].ID == c.ID {
			s.state.Clients[i] = c
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
}

// RemoveClient deletes the client with the given id.
func (s *FileStore) RemoveClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Clients {
		if s.state.Clients[i].ID == id {
			s.state.Clients = append(s.state.Clients[:i], s.state.Clients[i+1:]...)
			s.updateGauges()
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("client %s: %w", id, ErrNotFound)
}

// Deliverables lists all deliverables in insertion order.
func (s *FileStore) Deliverables(_ context.Context) []model.Deliverable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Deliverable, len(s.state.Deliverables))
	copy(out, s.state.Deliverables)
	return out
}

// AddDeliverable assigns an id and stores the deliverable.
func (s *FileStore) AddDeliverable(_ context.Context, d model.Deliverable) (model.Deliverable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Deliverable{}, ErrClosed
	}
	d.ID = uuid.NewString()
	s.state.Deliverables = append(s.state.Deliverables, d)
	s.updateGauges()
	s.persistLocked()
	return d, nil
}

// UpdateDeliverable replaces the deliverable with the same id.
func (s *FileStore) UpdateDeliverable(_ context.Context, d model.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Deliverables {
		if s.state.Deliverables[i].ID == d.ID {
			s.state.Deliverables[i] = d
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("deliverable %s: %w", d.ID, ErrNotFound)
}

// RemoveDeliverable deletes the deliverable with the given id.
func (s *FileStore) RemoveDeliverable(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Deliverables {
		if s.state.Deliverables[i].ID == id {
			s.state.Deliverables = append(s.state.Deliverables[:i], s.state.Deliverables[i+1:]...)
			s.updateGauges()
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("deliverable %s: %w", id, ErrNotFound)
}

// Invoices lists all invoices in insertion order.
func (s *FileStore) Invoices(_ context.Context) []model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Invoice, len(s.state.Invoices))
	copy(out, s.state.Invoices)
	return out
}

// AddInvoice assigns an id and stores the invoice.
func (s *FileStore) AddInvoice(_ context.Context, inv model.Invoice) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Invoice{}, ErrClosed
	}
	inv.ID = uuid.NewString()
	s.state.Invoices = append(s.state.Invoices, inv)
	s.updateGauges()
	s.persistLocked()
	return inv, nil
}

// UpdateInvoice replaces the invoice with the same id.
func (s *FileStore) UpdateInvoice(_ context.Context, inv model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID == inv.ID {
			s.state.Invoices[i] = inv
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("invoice %s: %w", inv.ID, ErrNotFound)
}

// RemoveInvoice deletes the invoice with the given id.
func (s *FileStore) RemoveInvoice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID == id {
			s.state.Invoices = append(s.state.Invoices[:i], s.state.Invoices[i+1:]...)
			s.updateGauges()
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("invoice %s: %w", id, ErrNotFound)
}

// Touches lists all pipeline touches in insertion order.
func (s *FileStore) Touches(_ context.Context) []model.PipelineTouch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PipelineTouch, len(s.state.Touches))
	copy(out, s.state.Touches)
	return out
}

// AddTouch assigns an id and stores the touch.
func (s *FileStore) AddTouch(_ context.Context, t model.PipelineTouch) (model.PipelineTouch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.PipelineTouch{}, ErrClosed
	}
	t.ID = uuid.NewString()
	s.state.Touches = append(s.state.Touches, t)
	s.updateGauges()
	s.persistLocked()
	return t, nil
}

// RemoveTouch deletes the touch with the given id.
func (s *FileStore) RemoveTouch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.state.Touches {
		if s.state.Touches[i].ID == id {
			s.state.Touches = append(s.state.Touches[:i], s.state.Touches[i+1:]...)
			s.updateGauges()
			s.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("touch %s: %w", id, ErrNotFound)
}

// WeekCards returns the snapshot history, most recent week first.
func (s *FileStore) WeekCards(_ context.Context) []model.WeekCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.WeekCard, len(s.state.WeekCards))
	copy(out, s.state.WeekCards)
	return out
}

// UpsertWeekCard merges a card into history under the one-card-per-week
// rule, trimming the oldest cards past the history limit.
func (s *FileStore) UpsertWeekCard(_ context.Context, card model.WeekCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.state.WeekCards = snapshot.Upsert(s.state.WeekCards, card)
	if s.historyLimit > 0 && len(s.state.WeekCards) > s.historyLimit {
		s.state.WeekCards = s.state.WeekCards[:s.historyLimit]
	}
	metrics.RecordWeekCardUpsert()
	s.updateGauges()
	s.persistLocked()
	return nil
}

// Counts reports the number of records per entity.
func (s *FileStore) Counts(_ context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{
		"clients":      len(s.state.Clients),
		"deliverables": len(s.state.Deliverables),
		"invoices":     len(s.state.Invoices),
		"touches":      len(s.state.Touches),
		"weekCards":    len(s.state.WeekCards),
	}
	if s.state.Profile != nil {
		counts["profile"] = 1
	} else {
		counts["profile"] = 0
	}
	return counts
}
