package usecase

import (
	"context"
	"fmt"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/domain/port"
)

// ListAccrualsUseCase returns a loan's accruals, newest first.
type ListAccrualsUseCase struct {
	accruals port.AccrualRepository
}

// NewListAccrualsUseCase wires dependencies.
func NewListAccrualsUseCase(accruals port.AccrualRepository) *ListAccrualsUseCase {
	return &ListAccrualsUseCase{accruals: accruals}
}

// Execute lists the accruals recorded for one loan.
func (uc *ListAccrualsUseCase) Execute(
	ctx context.Context,
	req dto.ListAccrualsRequest,
) ([]dto.AccrualResponse, error) {
	recs, err := uc.accruals.FindByLoanID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("find accruals: %w", err)
	}

	out := make([]dto.AccrualResponse, len(recs))
	for i, rec := range recs {
		out[i] = dto.FromAccrual(rec)
	}
	return out, nil
}
