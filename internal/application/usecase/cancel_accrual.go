package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/domain/port"
)

// CancelAccrualUseCase reverses a submitted accrual: the record transitions
// to CANCELLED and the ledger poster writes the mirror GL pair. The record
// and its original postings are retained.
type CancelAccrualUseCase struct {
	accruals  port.AccrualRepository
	poster    port.LedgerPoster
	publisher port.EventPublisher
	scope     port.LoanScope
}

// NewCancelAccrualUseCase wires dependencies.
func NewCancelAccrualUseCase(
	accruals port.AccrualRepository,
	poster port.LedgerPoster,
	publisher port.EventPublisher,
	scope port.LoanScope,
) *CancelAccrualUseCase {
	return &CancelAccrualUseCase{
		accruals:  accruals,
		poster:    poster,
		publisher: publisher,
		scope:     scope,
	}
}

// Execute cancels the accrual identified by the request.
func (uc *CancelAccrualUseCase) Execute(
	ctx context.Context,
	req dto.CancelAccrualRequest,
) (dto.AccrualResponse, error) {
	now := time.Now().UTC()

	rec, err := uc.accruals.FindByID(ctx, req.AccrualID)
	if err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("find accrual: %w", err)
	}

	err = uc.scope.Within(ctx, rec.LoanID(), func(ctx context.Context) error {
		cancelled, err := rec.Cancel(now)
		if err != nil {
			return fmt.Errorf("cancel accrual: %w", err)
		}
		if err := uc.accruals.Save(ctx, cancelled); err != nil {
			return fmt.Errorf("save cancelled accrual: %w", err)
		}
		if err := uc.poster.Post(ctx, cancelled, true); err != nil {
			return fmt.Errorf("post reversal entries: %w", err)
		}
		rec = cancelled
		return nil
	})
	if err != nil {
		return dto.AccrualResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, rec.DomainEvents()...); err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.FromAccrual(rec), nil
}
