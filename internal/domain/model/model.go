// Package model contains the ledger record shapes passed between layers.
package model

// ClientStatus is the lifecycle state of a client engagement.
type ClientStatus string

// Client lifecycle states.
const (
	StatusLead       ClientStatus = "lead"
	StatusBooked     ClientStatus = "booked"
	StatusDelivering ClientStatus = "delivering"
	StatusDelivered  ClientStatus = "delivered"
	StatusArchived   ClientStatus = "archived"
)

// Valid reports whether s is a known lifecycle state.
func (s ClientStatus) Valid() bool {
	switch s {
	case StatusLead, StatusBooked, StatusDelivering, StatusDelivered, StatusArchived:
		return true
	default:
		return false
	}
}

// TouchType classifies a pipeline outreach event.
type TouchType string

// Pipeline touch types.
const (
	TouchInquiry     TouchType = "inquiry"
	TouchFollowUp    TouchType = "follow_up"
	TouchReferralAsk TouchType = "referral_ask"
)

// Valid reports whether t is a known touch type.
func (t TouchType) Valid() bool {
	switch t {
	case TouchInquiry, TouchFollowUp, TouchReferralAsk:
		return true
	default:
		return false
	}
}

// Label is the risk band derived from a score.
type Label string

// Score labels, a pure function of the score value.
const (
	LabelStable  Label = "Stable"
	LabelWarning Label = "Warning"
	LabelRisk    Label = "Risk"
)

// Profile is the business configuration. Exactly one exists per account;
// the weekly-reset and recovery workflows overwrite WeeklyBillableHoursPlanned.
type Profile struct {
	BusinessName               string  `json:"businessName"`
	Role                       string  `json:"role"`
	WeeklyBillableTargetHours  float64 `json:"weeklyBillableTargetHours"`
	WeeklyPipelineTarget       int     `json:"weeklyPipelineTarget"`
	InvoiceGraceDays           int     `json:"invoiceGraceDays"`
	WeeklyBillableHoursPlanned float64 `json:"weeklyBillableHoursPlanned"`
}

// Client is a tracked engagement. Deliverables and invoices reference it by
// ClientID; referential integrity is the store caller's concern.
type Client struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Status        ClientStatus `json:"status"`
	EventDateISO  string       `json:"eventDateISO"`
	ContractValue float64      `json:"contractValue"`
	Notes         string       `json:"notes"`
}

// Deliverable is a unit of promised work with a due date and progress.
type Deliverable struct {
	ID                string  `json:"id"`
	ClientID          string  `json:"clientId"`
	Title             string  `json:"title"`
	DueDate           string  `json:"dueDate"`
	CompletionPercent float64 `json:"completionPercent"`
	EstimatedHours    float64 `json:"estimatedHours"`
}

// Invoice is a billed amount with a due date and paid state.
type Invoice struct {
	ID       string  `json:"id"`
	ClientID string  `json:"clientId"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"dueDate"`
	Paid     bool    `json:"paid"`
	PaidDate *string `json:"paidDate"`
}

// PipelineTouch is one logged outreach event. Immutable once logged except
// for deletion.
type PipelineTouch struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Type      TouchType `json:"type"`
	Who       string    `json:"who"`
	ValueHint float64   `json:"valueHint"`
	Notes     string    `json:"notes"`
}

// Metrics is the four-field summary behind every score.
type Metrics struct {
	PipelineTouches        int     `json:"pipelineTouches"`
	BillableHoursScheduled float64 `json:"billableHoursScheduled"`
	OverdueInvoices        int     `json:"overdueInvoices"`
	DeliverablesAtRisk     int     `json:"deliverablesAtRisk"`
}

// Reason explains one score adjustment. Delta is zero only for the
// all-clear reason emitted when no penalty fires.
type Reason struct {
	Title  string `json:"title"`
	Delta  int    `json:"delta"`
	Detail string `json:"detail"`
}

// ScoreBreakdown is the full result of a score computation.
type ScoreBreakdown struct {
	Score   int      `json:"score"`
	Label   Label    `json:"label"`
	Reasons []Reason `json:"reasons"`
	Metrics Metrics  `json:"metrics"`
}

// WeekCard is the archivable snapshot of one calendar week's score.
// At most one card exists per distinct WeekStartISO.
type WeekCard struct {
	ID           string   `json:"id"`
	WeekStartISO string   `json:"weekStartISO"`
	CreatedAtISO string   `json:"createdAtISO"`
	Score        int      `json:"score"`
	Label        Label    `json:"label"`
	Metrics      Metrics  `json:"metrics"`
	Notes        string   `json:"notes"`
	Actions      []string `json:"actions"`
}
