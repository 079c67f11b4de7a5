package port

import (
	"context"
	"errors"
	"time"

	"github.com/crestbank/accrual-service/internal/domain/event"
	"github.com/crestbank/accrual-service/internal/domain/model"
)

// ErrAccrualNotFound is returned by AccrualRepository lookups that match
// nothing. Adapters translate their store's no-rows condition into it.
var ErrAccrualNotFound = errors.New("accrual not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository reads loans from the servicing system's store. The accrual
// engine never writes loans.
type LoanRepository interface {
	FindByID(ctx context.Context, id string) (model.Loan, error)
	// FindOpenDemandLoans returns finalized, disbursed demand loans,
	// optionally filtered by loan type (product). An empty loanType matches all.
	FindOpenDemandLoans(ctx context.Context, loanType string) ([]model.Loan, error)
}

// ScheduleRepository reads and marks term-loan repayment schedule rows.
type ScheduleRepository interface {
	// FindDueUnaccrued returns schedule rows with paymentDate <= cutoff and
	// accrued = false across all eligible term loans, joined with their loans.
	FindDueUnaccrued(ctx context.Context, cutoff time.Time) ([]model.DueInstallment, error)
	// MarkAccrued flips the accrued flag for the given rows in a single
	// batch update. Callers run it inside the same transaction as the
	// accrual records the rows were converted into.
	MarkAccrued(ctx context.Context, rowIDs []string) error
}

// AccrualRepository persists and retrieves interest accruals.
type AccrualRepository interface {
	Save(ctx context.Context, rec model.InterestAccrual) error
	FindByID(ctx context.Context, id string) (model.InterestAccrual, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.InterestAccrual, error)
	// LastPostingDate returns the max posting date among the loan's
	// accruals. ok is false when the loan has no accruals yet.
	LastPostingDate(ctx context.Context, loanID string) (last time.Time, ok bool, err error)
}

// ---------------------------------------------------------------------------
// Ledger poster port
// ---------------------------------------------------------------------------

// LedgerPoster writes the balanced GL pair for an accrual. With reverse set
// it posts the exact mirror referencing the same accrual; existing rows are
// never mutated.
type LedgerPoster interface {
	Post(ctx context.Context, rec model.InterestAccrual, reverse bool) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Transaction scope port
// ---------------------------------------------------------------------------

// LoanScope runs fn atomically for a single loan: everything fn persists
// commits together or not at all, and concurrent scopes for the same loan
// are mutually exclusive. Scopes for different loans do not block each other.
type LoanScope interface {
	Within(ctx context.Context, loanID string, fn func(ctx context.Context) error) error
}
