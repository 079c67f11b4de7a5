package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/application/usecase"
	"github.com/crestbank/accrual-service/internal/domain/event"
	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

func disbursedDemandLoan() model.Loan {
	return model.Loan{
		ID:                    "loan-001",
		Company:               "Crest Bank",
		ApplicantType:         "Customer",
		Applicant:             "cust-042",
		LoanType:              "Working Capital",
		Classification:        valueobject.LoanClassificationDemand,
		Status:                valueobject.LoanStatusDisbursed,
		RateOfInterest:        decimal.NewFromFloat(13.5),
		DisbursementDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		TotalPayment:          decimal.NewFromInt(1_000_000),
		LoanAccount:           "Loans Receivable - CB",
		InterestIncomeAccount: "Interest Income - CB",
	}
}

func TestRecordAccrual_Execute(t *testing.T) {
	posting := time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC)

	validRequest := func() dto.RecordAccrualRequest {
		return dto.RecordAccrualRequest{
			Loan:             disbursedDemandLoan(),
			PostingDate:      posting,
			PendingPrincipal: decimal.NewFromInt(1_000_000),
			InterestAmount:   decimal.NewNullDecimal(decimal.NewFromFloat(11095.89)),
			ProcessRunID:     "run-001",
		}
	}

	t.Run("saves, submits, posts and publishes", func(t *testing.T) {
		accrualRepo := &mockAccrualRepository{}
		poster := &mockLedgerPoster{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordAccrualUseCase(accrualRepo, poster, publisher)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, "loan-001", resp.LoanID)
		assert.Equal(t, "SUBMITTED", resp.Status)
		assert.True(t, resp.InterestAmount.Equal(decimal.NewFromFloat(11095.89)))

		// Draft save then submitted save.
		require.Len(t, accrualRepo.saved, 2)
		assert.True(t, accrualRepo.saved[0].Status().Equal(valueobject.AccrualStatusDraft))
		assert.True(t, accrualRepo.saved[1].Status().Equal(valueobject.AccrualStatusSubmitted))

		require.Len(t, poster.posted, 1)
		assert.False(t, poster.posted[0].reverse)

		require.Len(t, publisher.publishedEvents, 1)
		_, ok := publisher.publishedEvents[0].(event.InterestAccrued)
		assert.True(t, ok)
	})

	t.Run("rejects an undefined interest amount", func(t *testing.T) {
		accrualRepo := &mockAccrualRepository{}
		poster := &mockLedgerPoster{}
		uc := usecase.NewRecordAccrualUseCase(accrualRepo, poster, &mockEventPublisher{})

		req := validRequest()
		req.InterestAmount = decimal.NullDecimal{}
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInterestAmountRequired)
		assert.Empty(t, accrualRepo.saved)
		assert.Empty(t, poster.posted)
	})

	t.Run("stops before posting when the save fails", func(t *testing.T) {
		accrualRepo := &mockAccrualRepository{
			saveFunc: func(ctx context.Context, rec model.InterestAccrual) error {
				return fmt.Errorf("connection reset")
			},
		}
		poster := &mockLedgerPoster{}
		uc := usecase.NewRecordAccrualUseCase(accrualRepo, poster, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), validRequest())

		require.Error(t, err)
		assert.Empty(t, poster.posted)
	})

	t.Run("surfaces posting failures", func(t *testing.T) {
		poster := &mockLedgerPoster{
			postFunc: func(ctx context.Context, rec model.InterestAccrual, reverse bool) error {
				return fmt.Errorf("gl insert failed")
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordAccrualUseCase(&mockAccrualRepository{}, poster, publisher)

		_, err := uc.Execute(context.Background(), validRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "post ledger entries")
		assert.Empty(t, publisher.publishedEvents)
	})
}
