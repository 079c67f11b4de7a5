package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Accrual events
// ---------------------------------------------------------------------------

// InterestAccrued is raised when an interest accrual is submitted and its
// ledger postings have been made.
type InterestAccrued struct {
	events.BaseEvent
	LoanID           string              `json:"loan_id"`
	PostingDate      time.Time           `json:"posting_date"`
	PendingPrincipal decimal.Decimal     `json:"pending_principal"`
	InterestAmount   decimal.Decimal     `json:"interest_amount"`
	PayablePrincipal decimal.NullDecimal `json:"payable_principal,omitempty"`
	ProcessRunID     string              `json:"process_run_id,omitempty"`
}

func NewInterestAccrued(
	accrualID, company, loanID string,
	postingDate time.Time,
	pendingPrincipal, interestAmount decimal.Decimal,
	payablePrincipal decimal.NullDecimal,
	processRunID string,
) InterestAccrued {
	return InterestAccrued{
		BaseEvent:        events.NewBaseEvent("accrual.interest_accrued", accrualID, "LoanInterestAccrual", company),
		LoanID:           loanID,
		PostingDate:      postingDate,
		PendingPrincipal: pendingPrincipal,
		InterestAmount:   interestAmount,
		PayablePrincipal: payablePrincipal,
		ProcessRunID:     processRunID,
	}
}

// InterestAccrualCancelled is raised when a submitted accrual is cancelled
// and its ledger postings have been reversed.
type InterestAccrualCancelled struct {
	events.BaseEvent
	LoanID         string          `json:"loan_id"`
	PostingDate    time.Time       `json:"posting_date"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
}

func NewInterestAccrualCancelled(
	accrualID, company, loanID string,
	postingDate time.Time,
	interestAmount decimal.Decimal,
) InterestAccrualCancelled {
	return InterestAccrualCancelled{
		BaseEvent:      events.NewBaseEvent("accrual.cancelled", accrualID, "LoanInterestAccrual", company),
		LoanID:         loanID,
		PostingDate:    postingDate,
		InterestAmount: interestAmount,
	}
}
