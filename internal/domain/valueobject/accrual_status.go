package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// AccrualStatus – immutable value object
// ---------------------------------------------------------------------------

// AccrualStatus represents the lifecycle stage of a loan interest accrual.
// The lifecycle is draft -> submitted -> cancelled; a cancelled accrual is
// never deleted.
type AccrualStatus struct {
	value string
}

const (
	accrualStatusDraft     = "DRAFT"
	accrualStatusSubmitted = "SUBMITTED"
	accrualStatusCancelled = "CANCELLED"
)

var (
	AccrualStatusDraft     = AccrualStatus{value: accrualStatusDraft}
	AccrualStatusSubmitted = AccrualStatus{value: accrualStatusSubmitted}
	AccrualStatusCancelled = AccrualStatus{value: accrualStatusCancelled}
)

var validAccrualStatuses = map[string]AccrualStatus{
	accrualStatusDraft:     AccrualStatusDraft,
	accrualStatusSubmitted: AccrualStatusSubmitted,
	accrualStatusCancelled: AccrualStatusCancelled,
}

// NewAccrualStatus creates an AccrualStatus from a raw string.
func NewAccrualStatus(s string) (AccrualStatus, error) {
	v, ok := validAccrualStatuses[s]
	if !ok {
		return AccrualStatus{}, fmt.Errorf("invalid accrual status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s AccrualStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s AccrualStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s AccrualStatus) Equal(other AccrualStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
