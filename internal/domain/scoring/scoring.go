// Package scoring computes the weekly Revenue Risk Score from the ledger.
//
// The score starts at 100 and takes independent, non-interacting penalties
// for each threshold rule that fails, then clamps to [0,100]. Every point
// lost traces to exactly one reason, which is the whole value of the
// number: it is diagnostic, not an optimization target.
package scoring

import (
	"fmt"

	"github.com/okian/ledgerweek/internal/domain/dates"
	"github.com/okian/ledgerweek/internal/domain/model"
)

// Default scoring policy constants.
const (
	maxScore = 100

	defaultPipelinePenalty    = -20
	defaultBillablePenalty    = -25
	defaultOverduePenalty     = -15 // per overdue invoice, uncapped before the clamp
	defaultDeliverablePenalty = -20

	defaultRiskHorizonDays  = 14
	defaultCompletionCutoff = 50.0

	stableThreshold  = 80
	warningThreshold = 60

	daysPerWeek = 7
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPenalties overrides the four penalty weights. Values must be
// negative; non-negative values are ignored.
func WithPenalties(pipeline, billable, overduePerInvoice, deliverable int) Option {
	return func(e *Engine) {
		if pipeline < 0 {
			e.pipelinePenalty = pipeline
		}
		if billable < 0 {
			e.billablePenalty = billable
		}
		if overduePerInvoice < 0 {
			e.overduePenalty = overduePerInvoice
		}
		if deliverable < 0 {
			e.deliverablePenalty = deliverable
		}
	}
}

// WithRiskHorizon sets how many days ahead a deliverable due date counts
// as imminent.
func WithRiskHorizon(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.riskHorizonDays = days
		}
	}
}

// WithCompletionCutoff sets the completion percent below which an imminent
// deliverable counts as at risk.
func WithCompletionCutoff(percent float64) Option {
	return func(e *Engine) {
		if percent > 0 {
			e.completionCutoff = percent
		}
	}
}

// Input carries everything a score computation reads. ReferenceDate is an
// ISO date; when empty it defaults to the current wall-clock date.
type Input struct {
	Profile       model.Profile
	Clients       []model.Client
	Deliverables  []model.Deliverable
	Invoices      []model.Invoice
	Touches       []model.PipelineTouch
	ReferenceDate string
}

// Engine computes score breakdowns under a fixed penalty policy.
type Engine struct {
	pipelinePenalty    int
	billablePenalty    int
	overduePenalty     int
	deliverablePenalty int
	riskHorizonDays    int
	completionCutoff   float64
}

// NewEngine creates a score engine with the default policy, adjusted by
// options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		pipelinePenalty:    defaultPipelinePenalty,
		billablePenalty:    defaultBillablePenalty,
		overduePenalty:     defaultOverduePenalty,
		deliverablePenalty: defaultDeliverablePenalty,
		riskHorizonDays:    defaultRiskHorizonDays,
		completionCutoff:   defaultCompletionCutoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute derives the score, label, reasons and metrics for the given
// ledger state. It never mutates its input and is deterministic for a
// fixed ReferenceDate.
func (e *Engine) Compute(in Input) model.ScoreBreakdown {
	ref := in.ReferenceDate
	if ref == "" {
		ref = dates.Today()
	}

	weekStart := dates.StartOfWeekISO(ref)
	weekEnd := dates.AddDays(weekStart, daysPerWeek)

	// Half-open window [weekStart, weekEnd); ISO strings order
	// chronologically under plain string comparison.
	touchesThisWeek := 0
	for _, t := range in.Touches {
		if t.Date >= weekStart && t.Date < weekEnd {
			touchesThisWeek++
		}
	}

	billableHours := in.Profile.WeeklyBillableHoursPlanned
	if billableHours < 0 {
		billableHours = 0
	}

	overdue := 0
	for _, inv := range in.Invoices {
		if !inv.Paid && dates.DaysBetween(inv.DueDate, ref) > in.Profile.InvoiceGraceDays {
			overdue++
		}
	}

	horizon := dates.AddDays(ref, e.riskHorizonDays)
	atRisk := 0
	for _, d := range in.Deliverables {
		if d.DueDate <= horizon && d.CompletionPercent < e.completionCutoff {
			atRisk++
		}
	}

	score := maxScore
	var reasons []model.Reason

	if touchesThisWeek < in.Profile.WeeklyPipelineTarget {
		score += e.pipelinePenalty
		reasons = append(reasons, model.Reason{
			Title:  "Pipeline minimum missed",
			Delta:  e.pipelinePenalty,
			Detail: fmt.Sprintf("This week: %d. Target: %d.", touchesThisWeek, in.Profile.WeeklyPipelineTarget),
		})
	}
	if billableHours < in.Profile.WeeklyBillableTargetHours {
		score += e.billablePenalty
		reasons = append(reasons, model.Reason{
			Title:  "Billable hours below target",
			Delta:  e.billablePenalty,
			Detail: fmt.Sprintf("Planned: %gh. Target: %gh.", billableHours, in.Profile.WeeklyBillableTargetHours),
		})
	}
	if overdue > 0 {
		delta := e.overduePenalty * overdue
		score += delta
		reasons = append(reasons, model.Reason{
			Title:  "Overdue invoices",
			Delta:  delta,
			Detail: fmt.Sprintf("%d invoice(s) overdue > %d days.", overdue, in.Profile.InvoiceGraceDays),
		})
	}
	if atRisk > 0 {
		score += e.deliverablePenalty
		reasons = append(reasons, model.Reason{
			Title:  "Deliverables at risk",
			Delta:  e.deliverablePenalty,
			Detail: fmt.Sprintf("%d deliverable(s) due in %d days are < %g%% complete.", atRisk, e.riskHorizonDays, e.completionCutoff),
		})
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	if len(reasons) == 0 {
		reasons = append(reasons, model.Reason{
			Title:  "All systems stable",
			Delta:  0,
			Detail: "Meeting pipeline + billable + invoice + delivery thresholds.",
		})
	}

	return model.ScoreBreakdown{
		Score:   score,
		Label:   LabelFor(score),
		Reasons: reasons,
		Metrics: model.Metrics{
			PipelineTouches:        touchesThisWeek,
			BillableHoursScheduled: billableHours,
			OverdueInvoices:        overdue,
			DeliverablesAtRisk:     atRisk,
		},
	}
}

// LabelFor maps a clamped score to its risk band.
func LabelFor(score int) model.Label {
	switch {
	case score >= stableThreshold:
		return model.LabelStable
	case score >= warningThreshold:
		return model.LabelWarning
	default:
		return model.LabelRisk
	}
}
