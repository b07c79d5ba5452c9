// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorePath locates the JSON ledger snapshot file.
	StorePath string `koanf:"store_path"`

	// HistoryLimit caps the number of week cards kept (0 = unlimited).
	HistoryLimit int `koanf:"history_limit"`

	// FlushQueueSize bounds the store's snapshot flush channel.
	FlushQueueSize int `koanf:"flush_queue_size"`

	// RiskHorizonDays is how far ahead a deliverable due date counts as
	// imminent for the at-risk rule.
	RiskHorizonDays int `koanf:"risk_horizon_days"`

	// CompletionCutoff is the completion percent below which an imminent
	// deliverable is at risk.
	CompletionCutoff float64 `koanf:"completion_cutoff"`

	// Penalty weights applied by the score engine. All negative.
	PipelinePenalty    int `koanf:"pipeline_penalty"`
	BillablePenalty    int `koanf:"billable_penalty"`
	OverduePenalty     int `koanf:"overdue_penalty"`
	DeliverablePenalty int `koanf:"deliverable_penalty"`

	// Default profile targets used by the demo seed workflow.
	SeedBillableTargetHours  float64 `koanf:"seed_billable_target_hours"`
	SeedPipelineTarget       int     `koanf:"seed_pipeline_target"`
	SeedInvoiceGraceDays     int     `koanf:"seed_invoice_grace_days"`
	SeedBillableHoursPlanned float64 `koanf:"seed_billable_hours_planned"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":9080",
		StorePath:                "data/ledger.json",
		HistoryLimit:             0,
		FlushQueueSize:           64,
		RiskHorizonDays:          14,
		CompletionCutoff:         50,
		PipelinePenalty:          -20,
		BillablePenalty:          -25,
		OverduePenalty:           -15,
		DeliverablePenalty:       -20,
		SeedBillableTargetHours:  10,
		SeedPipelineTarget:       3,
		SeedInvoiceGraceDays:     7,
		SeedBillableHoursPlanned: 8,
	}
}
