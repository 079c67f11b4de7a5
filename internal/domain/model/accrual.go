package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/event"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// InterestAccrual aggregate root
// ---------------------------------------------------------------------------

var (
	// ErrLoanRequired is returned when an accrual is built without a loan reference.
	ErrLoanRequired = errors.New("loan is mandatory")
	// ErrInterestAmountRequired is returned when the interest amount was never
	// computed. A computed zero is valid; an undefined amount is not.
	ErrInterestAmountRequired = errors.New("interest amount is mandatory")
)

// InterestAccrual records interest earned on a loan over an elapsed period.
// It is an immutable aggregate: mutations return a new copy, and the
// monetary values are frozen at creation time (copied from the loan, rounded
// to 2 decimals). Cancellation reverses the ledger postings but the record
// itself is retained for the audit trail.
type InterestAccrual struct {
	id                    string
	loanID                string
	company               string
	applicantType         string
	applicant             string
	loanAccount           string
	interestIncomeAccount string
	postingDate           time.Time
	pendingPrincipal      decimal.Decimal
	interestAmount        decimal.Decimal
	payablePrincipal      decimal.NullDecimal
	processRunID          string
	scheduleRowID         string
	status                valueobject.AccrualStatus
	version               int
	createdAt             time.Time
	updatedAt             time.Time
	domainEvents          []event.DomainEvent
}

// NewAccrualParams carries everything needed to build a draft accrual.
// InterestAmount is a NullDecimal so that "never computed" is distinguishable
// from a legitimate zero.
type NewAccrualParams struct {
	LoanID                string
	Company               string
	ApplicantType         string
	Applicant             string
	LoanAccount           string
	InterestIncomeAccount string
	PostingDate           time.Time // zero value defaults to now's date
	PendingPrincipal      decimal.Decimal
	InterestAmount        decimal.NullDecimal
	PayablePrincipal      decimal.NullDecimal
	ProcessRunID          string
	ScheduleRowID         string
}

// NewInterestAccrual validates the params and creates a draft accrual.
func NewInterestAccrual(p NewAccrualParams, now time.Time) (InterestAccrual, error) {
	if p.LoanID == "" {
		return InterestAccrual{}, ErrLoanRequired
	}
	if !p.InterestAmount.Valid {
		return InterestAccrual{}, ErrInterestAmountRequired
	}

	postingDate := p.PostingDate
	if postingDate.IsZero() {
		postingDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	payable := p.PayablePrincipal
	if payable.Valid {
		payable.Decimal = payable.Decimal.Round(2)
	}

	return InterestAccrual{
		id:                    uuid.New().String(),
		loanID:                p.LoanID,
		company:               p.Company,
		applicantType:         p.ApplicantType,
		applicant:             p.Applicant,
		loanAccount:           p.LoanAccount,
		interestIncomeAccount: p.InterestIncomeAccount,
		postingDate:           postingDate,
		pendingPrincipal:      p.PendingPrincipal.Round(2),
		interestAmount:        p.InterestAmount.Decimal.Round(2),
		payablePrincipal:      payable,
		processRunID:          p.ProcessRunID,
		scheduleRowID:         p.ScheduleRowID,
		status:                valueobject.AccrualStatusDraft,
		version:               1,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// ReconstructInterestAccrual rebuilds an InterestAccrual from persistence.
func ReconstructInterestAccrual(
	id, loanID, company, applicantType, applicant, loanAccount, interestIncomeAccount string,
	postingDate time.Time,
	pendingPrincipal, interestAmount decimal.Decimal,
	payablePrincipal decimal.NullDecimal,
	processRunID, scheduleRowID string,
	status valueobject.AccrualStatus,
	version int,
	createdAt, updatedAt time.Time,
) InterestAccrual {
	return InterestAccrual{
		id:                    id,
		loanID:                loanID,
		company:               company,
		applicantType:         applicantType,
		applicant:             applicant,
		loanAccount:           loanAccount,
		interestIncomeAccount: interestIncomeAccount,
		postingDate:           postingDate,
		pendingPrincipal:      pendingPrincipal,
		interestAmount:        interestAmount,
		payablePrincipal:      payablePrincipal,
		processRunID:          processRunID,
		scheduleRowID:         scheduleRowID,
		status:                status,
		version:               version,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Submit transitions DRAFT -> SUBMITTED and emits InterestAccrued. From this
// point the accrual's values are frozen.
func (a InterestAccrual) Submit(now time.Time) (InterestAccrual, error) {
	if !a.status.Equal(valueobject.AccrualStatusDraft) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.AccrualStatusSubmitted
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewInterestAccrued(
		a.id, a.company, a.loanID, a.postingDate,
		a.pendingPrincipal, a.interestAmount, a.payablePrincipal, a.processRunID,
	))
	return next, nil
}

// Cancel transitions SUBMITTED -> CANCELLED and emits InterestAccrualCancelled.
// The record is retained; the caller reverses the ledger postings.
func (a InterestAccrual) Cancel(now time.Time) (InterestAccrual, error) {
	if !a.status.Equal(valueobject.AccrualStatusSubmitted) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.AccrualStatusCancelled
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewInterestAccrualCancelled(
		a.id, a.company, a.loanID, a.postingDate, a.interestAmount,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a InterestAccrual) ID() string                            { return a.id }
func (a InterestAccrual) LoanID() string                        { return a.loanID }
func (a InterestAccrual) Company() string                       { return a.company }
func (a InterestAccrual) ApplicantType() string                 { return a.applicantType }
func (a InterestAccrual) Applicant() string                     { return a.applicant }
func (a InterestAccrual) LoanAccount() string                   { return a.loanAccount }
func (a InterestAccrual) InterestIncomeAccount() string         { return a.interestIncomeAccount }
func (a InterestAccrual) PostingDate() time.Time                { return a.postingDate }
func (a InterestAccrual) PendingPrincipal() decimal.Decimal     { return a.pendingPrincipal }
func (a InterestAccrual) InterestAmount() decimal.Decimal       { return a.interestAmount }
func (a InterestAccrual) PayablePrincipal() decimal.NullDecimal { return a.payablePrincipal }
func (a InterestAccrual) ProcessRunID() string                  { return a.processRunID }
func (a InterestAccrual) ScheduleRowID() string                 { return a.scheduleRowID }
func (a InterestAccrual) Status() valueobject.AccrualStatus     { return a.status }
func (a InterestAccrual) Version() int                          { return a.version }
func (a InterestAccrual) CreatedAt() time.Time                  { return a.createdAt }
func (a InterestAccrual) UpdatedAt() time.Time                  { return a.updatedAt }
func (a InterestAccrual) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (a InterestAccrual) ClearEvents() InterestAccrual {
	next := a
	next.domainEvents = nil
	return next
}

func copyEvents(in []event.DomainEvent) []event.DomainEvent {
	if in == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(in))
	copy(out, in)
	return out
}
