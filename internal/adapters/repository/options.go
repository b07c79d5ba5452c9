// Package repository defines the ledger store interface and errors.
package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithHistoryLimit caps the number of week cards kept after an upsert.
// Zero or negative means unlimited.
func WithHistoryLimit(limit int) Option {
	return func(s *FileStore) {
		s.historyLimit = limit
	}
}

// WithFlushQueueSize bounds the snapshot flush channel feeding the single
// writer goroutine.
func WithFlushQueueSize(size int) Option {
	return func(s *FileStore) {
		if size > 0 {
			s.flushQueueSize = size
		}
	}
}
