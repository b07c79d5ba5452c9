package repository

import "errors"

// Sentinel kinds for ledger store errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrNoProfile = errors.New("profile not set")
	ErrClosed    = errors.New("store closed")
)
