package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan as seen by the accrual
// engine. Only finalized loans in DISBURSED status are eligible for accrual.
type LoanStatus struct {
	value string
}

const (
	loanStatusSanctioned = "SANCTIONED"
	loanStatusDisbursed  = "DISBURSED"
	loanStatusClosed     = "CLOSED"
)

var (
	LoanStatusSanctioned = LoanStatus{value: loanStatusSanctioned}
	LoanStatusDisbursed  = LoanStatus{value: loanStatusDisbursed}
	LoanStatusClosed     = LoanStatus{value: loanStatusClosed}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusSanctioned: LoanStatusSanctioned,
	loanStatusDisbursed:  LoanStatusDisbursed,
	loanStatusClosed:     LoanStatusClosed,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// LoanClassification – immutable value object
// ---------------------------------------------------------------------------

// LoanClassification distinguishes revolving/demand loans from
// fixed-schedule term loans. Demand loans accrue pro-rata on outstanding
// principal; term loans accrue from their repayment schedule.
type LoanClassification struct {
	value string
}

const (
	loanClassDemand = "DEMAND"
	loanClassTerm   = "TERM"
)

var (
	LoanClassificationDemand = LoanClassification{value: loanClassDemand}
	LoanClassificationTerm   = LoanClassification{value: loanClassTerm}
)

var validLoanClassifications = map[string]LoanClassification{
	loanClassDemand: LoanClassificationDemand,
	loanClassTerm:   LoanClassificationTerm,
}

// NewLoanClassification creates a LoanClassification from a raw string.
func NewLoanClassification(s string) (LoanClassification, error) {
	v, ok := validLoanClassifications[s]
	if !ok {
		return LoanClassification{}, fmt.Errorf("invalid loan classification: %q", s)
	}
	return v, nil
}

// String returns the string representation of the classification.
func (c LoanClassification) String() string { return c.value }

// IsZero returns true if the classification has not been initialised.
func (c LoanClassification) IsZero() bool { return c.value == "" }

// Equal returns true when both classifications carry the same value.
func (c LoanClassification) Equal(other LoanClassification) bool { return c.value == other.value }
