package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/crestbank/accrual-service/internal/domain/event"
	"github.com/crestbank/accrual-service/internal/domain/model"
)

type mockLoanRepository struct {
	findByIDFunc            func(ctx context.Context, id string) (model.Loan, error)
	findOpenDemandLoansFunc func(ctx context.Context, loanType string) ([]model.Loan, error)
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, fmt.Errorf("loan not found")
}

func (m *mockLoanRepository) FindOpenDemandLoans(ctx context.Context, loanType string) ([]model.Loan, error) {
	if m.findOpenDemandLoansFunc != nil {
		return m.findOpenDemandLoansFunc(ctx, loanType)
	}
	return nil, nil
}

type mockScheduleRepository struct {
	findDueUnaccruedFunc func(ctx context.Context, cutoff time.Time) ([]model.DueInstallment, error)
	markAccruedFunc      func(ctx context.Context, rowIDs []string) error
	markedRows           [][]string
}

func (m *mockScheduleRepository) FindDueUnaccrued(ctx context.Context, cutoff time.Time) ([]model.DueInstallment, error) {
	if m.findDueUnaccruedFunc != nil {
		return m.findDueUnaccruedFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockScheduleRepository) MarkAccrued(ctx context.Context, rowIDs []string) error {
	if m.markAccruedFunc != nil {
		return m.markAccruedFunc(ctx, rowIDs)
	}
	m.markedRows = append(m.markedRows, rowIDs)
	return nil
}

type mockAccrualRepository struct {
	saveFunc            func(ctx context.Context, rec model.InterestAccrual) error
	findByIDFunc        func(ctx context.Context, id string) (model.InterestAccrual, error)
	findByLoanIDFunc    func(ctx context.Context, loanID string) ([]model.InterestAccrual, error)
	lastPostingDateFunc func(ctx context.Context, loanID string) (time.Time, bool, error)
	saved               []model.InterestAccrual
}

func (m *mockAccrualRepository) Save(ctx context.Context, rec model.InterestAccrual) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, rec)
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockAccrualRepository) FindByID(ctx context.Context, id string) (model.InterestAccrual, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.InterestAccrual{}, fmt.Errorf("accrual not found")
}

func (m *mockAccrualRepository) FindByLoanID(ctx context.Context, loanID string) ([]model.InterestAccrual, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockAccrualRepository) LastPostingDate(ctx context.Context, loanID string) (time.Time, bool, error) {
	if m.lastPostingDateFunc != nil {
		return m.lastPostingDateFunc(ctx, loanID)
	}
	return time.Time{}, false, nil
}

type postedEntry struct {
	rec     model.InterestAccrual
	reverse bool
}

type mockLedgerPoster struct {
	postFunc func(ctx context.Context, rec model.InterestAccrual, reverse bool) error
	posted   []postedEntry
}

func (m *mockLedgerPoster) Post(ctx context.Context, rec model.InterestAccrual, reverse bool) error {
	if m.postFunc != nil {
		return m.postFunc(ctx, rec, reverse)
	}
	m.posted = append(m.posted, postedEntry{rec: rec, reverse: reverse})
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// mockLoanScope runs the callback inline and records the loan IDs it was
// entered for, in order.
type mockLoanScope struct {
	enteredLoans []string
}

func (m *mockLoanScope) Within(ctx context.Context, loanID string, fn func(ctx context.Context) error) error {
	m.enteredLoans = append(m.enteredLoans, loanID)
	return fn(ctx)
}
