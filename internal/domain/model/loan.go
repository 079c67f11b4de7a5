package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan read model
// ---------------------------------------------------------------------------

// Loan is the accrual engine's read-only view of a loan. Loans are owned by
// the servicing system; this service never mutates them, so Loan is a plain
// snapshot rather than an aggregate.
type Loan struct {
	ID                    string
	Company               string
	ApplicantType         string
	Applicant             string
	LoanType              string
	Classification        valueobject.LoanClassification
	Status                valueobject.LoanStatus
	RateOfInterest        decimal.Decimal // annual percentage, e.g. 13.5
	DisbursementDate      time.Time
	TotalPayment          decimal.Decimal
	TotalInterestPayable  decimal.Decimal
	TotalAmountPaid       decimal.Decimal
	LoanAccount           string
	InterestIncomeAccount string
}

// OutstandingPrincipal derives the principal still outstanding:
// total payment obligation minus total interest payable minus the amount
// already paid.
func (l Loan) OutstandingPrincipal() decimal.Decimal {
	return l.TotalPayment.Sub(l.TotalInterestPayable).Sub(l.TotalAmountPaid)
}

// EligibleForAccrual reports whether interest may accrue on this loan.
func (l Loan) EligibleForAccrual() bool {
	return l.Status.Equal(valueobject.LoanStatusDisbursed)
}
