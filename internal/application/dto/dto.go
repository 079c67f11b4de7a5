package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// AccrueDemandLoansRequest triggers a demand-loan accrual batch.
type AccrueDemandLoansRequest struct {
	// PostingDate defaults to the current date when zero.
	PostingDate time.Time
	// LoanType optionally restricts the batch to one loan product.
	LoanType string
	// PreloadedLoans, when non-nil, is used instead of querying the store.
	PreloadedLoans []model.Loan
	// ProcessRunID links created accruals to the triggering batch. A run ID
	// is generated when empty.
	ProcessRunID string
}

// AccrueTermLoansRequest triggers a term-loan accrual batch.
type AccrueTermLoansRequest struct {
	// CutoffDate defaults to tomorrow when zero: installments due up to and
	// including the cutoff are accrued.
	CutoffDate time.Time
	// PostingDate defaults to the current date when zero.
	PostingDate time.Time
	ProcessRunID string
}

// RecordAccrualRequest builds, submits and posts a single accrual.
type RecordAccrualRequest struct {
	Loan             model.Loan
	PostingDate      time.Time
	PendingPrincipal decimal.Decimal
	InterestAmount   decimal.NullDecimal
	PayablePrincipal decimal.NullDecimal
	ProcessRunID     string
	ScheduleRowID    string
}

// CancelAccrualRequest reverses a submitted accrual.
type CancelAccrualRequest struct {
	AccrualID string
}

// ListAccrualsRequest queries accruals for one loan.
type ListAccrualsRequest struct {
	LoanID string
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

// AccrualResponse is the external view of an interest accrual.
type AccrualResponse struct {
	ID               string              `json:"id"`
	LoanID           string              `json:"loan_id"`
	Company          string              `json:"company"`
	PostingDate      time.Time           `json:"posting_date"`
	PendingPrincipal decimal.Decimal     `json:"pending_principal"`
	InterestAmount   decimal.Decimal     `json:"interest_amount"`
	PayablePrincipal decimal.NullDecimal `json:"payable_principal,omitempty"`
	ProcessRunID     string              `json:"process_run_id,omitempty"`
	ScheduleRowID    string              `json:"schedule_row_id,omitempty"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
}

// LoanFailure reports one loan that failed during a batch run. Failures do
// not abort the run; remaining loans are still processed.
type LoanFailure struct {
	LoanID string `json:"loan_id"`
	Error  string `json:"error"`
}

// BatchRunResponse summarises one accrual batch run.
type BatchRunResponse struct {
	ProcessRunID string            `json:"process_run_id"`
	PostingDate  time.Time         `json:"posting_date"`
	Accrued      []AccrualResponse `json:"accrued"`
	Skipped      int               `json:"skipped"`
	Failures     []LoanFailure     `json:"failures"`
}

// FromAccrual maps the aggregate to its response shape.
func FromAccrual(rec model.InterestAccrual) AccrualResponse {
	return AccrualResponse{
		ID:               rec.ID(),
		LoanID:           rec.LoanID(),
		Company:          rec.Company(),
		PostingDate:      rec.PostingDate(),
		PendingPrincipal: rec.PendingPrincipal(),
		InterestAmount:   rec.InterestAmount(),
		PayablePrincipal: rec.PayablePrincipal(),
		ProcessRunID:     rec.ProcessRunID(),
		ScheduleRowID:    rec.ScheduleRowID(),
		Status:           rec.Status().String(),
		CreatedAt:        rec.CreatedAt(),
	}
}
