package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/port"
)

// RecordAccrualUseCase is the accrual recorder: it builds a draft accrual,
// submits it, posts the balanced GL pair and publishes the resulting events.
// Both batch paths funnel through it.
type RecordAccrualUseCase struct {
	accruals  port.AccrualRepository
	poster    port.LedgerPoster
	publisher port.EventPublisher
}

// NewRecordAccrualUseCase wires dependencies.
func NewRecordAccrualUseCase(
	accruals port.AccrualRepository,
	poster port.LedgerPoster,
	publisher port.EventPublisher,
) *RecordAccrualUseCase {
	return &RecordAccrualUseCase{
		accruals:  accruals,
		poster:    poster,
		publisher: publisher,
	}
}

// Execute records one accrual end to end. Callers that need atomicity with
// other writes (term-loan schedule marking) run it inside a LoanScope.
func (uc *RecordAccrualUseCase) Execute(
	ctx context.Context,
	req dto.RecordAccrualRequest,
) (dto.AccrualResponse, error) {
	now := time.Now().UTC()

	// 1. Build the draft. Validation (loan reference, defined interest
	// amount) happens here.
	rec, err := model.NewInterestAccrual(model.NewAccrualParams{
		LoanID:                req.Loan.ID,
		Company:               req.Loan.Company,
		ApplicantType:         req.Loan.ApplicantType,
		Applicant:             req.Loan.Applicant,
		LoanAccount:           req.Loan.LoanAccount,
		InterestIncomeAccount: req.Loan.InterestIncomeAccount,
		PostingDate:           req.PostingDate,
		PendingPrincipal:      req.PendingPrincipal,
		InterestAmount:        req.InterestAmount,
		PayablePrincipal:      req.PayablePrincipal,
		ProcessRunID:          req.ProcessRunID,
		ScheduleRowID:         req.ScheduleRowID,
	}, now)
	if err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("build accrual: %w", err)
	}

	// 2. Persist the draft.
	if err := uc.accruals.Save(ctx, rec); err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("save draft accrual: %w", err)
	}

	// 3. Submit. Values are frozen from here on.
	rec, err = rec.Submit(now)
	if err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("submit accrual: %w", err)
	}
	if err := uc.accruals.Save(ctx, rec); err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("save submitted accrual: %w", err)
	}

	// 4. Submission triggers the ledger posting.
	if err := uc.poster.Post(ctx, rec, false); err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("post ledger entries: %w", err)
	}

	// 5. Publish events.
	if err := uc.publisher.Publish(ctx, rec.DomainEvents()...); err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.FromAccrual(rec), nil
}
