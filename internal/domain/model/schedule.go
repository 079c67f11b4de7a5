package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleRow is one installment of a term loan's repayment schedule. The
// principal/interest split is precomputed at sanction time; the accrual
// engine consumes it as-is and only ever flips the Accrued flag, exactly
// once, through the repository's batch update.
type ScheduleRow struct {
	ID                string
	LoanID            string
	PaymentDate       time.Time
	PrincipalAmount   decimal.Decimal
	InterestAmount    decimal.Decimal
	BalanceLoanAmount decimal.Decimal // running balance after this installment
	Accrued           bool
}

// DueInstallment pairs a due, not-yet-accrued schedule row with its loan.
type DueInstallment struct {
	Loan Loan
	Row  ScheduleRow
}
