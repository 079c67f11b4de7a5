package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/port"
)

// PeriodResolver determines how many days of interest a loan has left to
// accrue up to a target posting date.
type PeriodResolver struct {
	accruals port.AccrualRepository
}

// NewPeriodResolver wires the accrual repository dependency.
func NewPeriodResolver(accruals port.AccrualRepository) *PeriodResolver {
	return &PeriodResolver{accruals: accruals}
}

// ElapsedDays resolves the unaccrued day count for a loan up to postingDate.
//
// The anchor is the latest posting date among the loan's existing accruals;
// if none exist, the loan's disbursement date. A disbursement anchor counts
// inclusively (disbursed on D, posting on D+29 accrues 30 days). A
// prior-accrual anchor was itself already accrued, so only the days after it
// count; re-running at the same posting date therefore yields 0.
//
// A result <= 0 means there is nothing to accrue. That is a valid no-op
// outcome, not an error.
func (r *PeriodResolver) ElapsedDays(ctx context.Context, loan model.Loan, postingDate time.Time) (int, error) {
	last, ok, err := r.accruals.LastPostingDate(ctx, loan.ID)
	if err != nil {
		return 0, fmt.Errorf("last posting date for loan %s: %w", loan.ID, err)
	}

	if ok {
		return DayDifference(postingDate, last), nil
	}
	return DayDifference(postingDate, loan.DisbursementDate) + 1, nil
}
