package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgpostgres "github.com/crestbank/accrual-service/pkg/postgres"
)

// LoanScope implements port.LoanScope with one transaction per loan guarded
// by a loan-keyed advisory lock. Repositories called under the scope's
// context join the transaction, so an accrual record, its GL rows and (for
// term loans) the schedule marks commit together or not at all. Two
// concurrent runs touching the same loan serialize; different loans proceed
// in parallel.
type LoanScope struct {
	pool *pgxpool.Pool
}

// NewLoanScope creates a loan-scoped transaction runner.
func NewLoanScope(pool *pgxpool.Pool) *LoanScope {
	return &LoanScope{pool: pool}
}

// Within runs fn inside the loan's transaction.
func (s *LoanScope) Within(ctx context.Context, loanID string, fn func(ctx context.Context) error) error {
	return pkgpostgres.WithKeyedTransaction(ctx, s.pool, "loan:"+loanID, fn)
}
