package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/service"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

func submittedAccrual(t *testing.T) model.InterestAccrual {
	t.Helper()
	now := time.Date(2025, time.January, 30, 8, 0, 0, 0, time.UTC)

	rec, err := model.NewInterestAccrual(model.NewAccrualParams{
		LoanID:                "loan-001",
		Company:               "Crest Bank",
		ApplicantType:         "Customer",
		Applicant:             "cust-042",
		LoanAccount:           "Loans Receivable - CB",
		InterestIncomeAccount: "Interest Income - CB",
		PostingDate:           time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC),
		PendingPrincipal:      decimal.NewFromInt(1_000_000),
		InterestAmount:        decimal.NewNullDecimal(decimal.NewFromFloat(11095.89)),
	}, now)
	require.NoError(t, err)

	rec, err = rec.Submit(now)
	require.NoError(t, err)
	return rec
}

func TestBuildAccrualPostings(t *testing.T) {
	defaults := valueobject.NewPostingDefaults(
		map[string]string{"Crest Bank": "Main - CB"}, "Main")

	t.Run("builds a balanced debit/credit pair", func(t *testing.T) {
		rec := submittedAccrual(t)

		entries, err := service.BuildAccrualPostings(rec, defaults, false)

		require.NoError(t, err)
		require.Len(t, entries, 2)

		loanSide, incomeSide := entries[0], entries[1]
		assert.Equal(t, "Loans Receivable - CB", loanSide.Account)
		assert.Equal(t, "Interest Income - CB", loanSide.Against)
		assert.True(t, loanSide.Debit.Equal(decimal.NewFromFloat(11095.89)))
		assert.True(t, loanSide.Credit.IsZero())

		assert.Equal(t, "Interest Income - CB", incomeSide.Account)
		assert.Equal(t, "Loans Receivable - CB", incomeSide.Against)
		assert.True(t, incomeSide.Credit.Equal(decimal.NewFromFloat(11095.89)))
		assert.True(t, incomeSide.Debit.IsZero())

		for _, e := range entries {
			assert.Equal(t, "Loan", e.AgainstVoucherType)
			assert.Equal(t, "loan-001", e.AgainstVoucher)
			assert.Equal(t, "Loan Interest Accrual", e.VoucherType)
			assert.Equal(t, rec.ID(), e.VoucherNo)
			assert.Equal(t, "Against Loan: loan-001", e.Remarks)
			assert.Equal(t, "Main - CB", e.CostCenter)
			assert.False(t, e.IsReversal)
		}
	})

	t.Run("reversal mirrors the pair", func(t *testing.T) {
		rec := submittedAccrual(t)

		entries, err := service.BuildAccrualPostings(rec, defaults, true)

		require.NoError(t, err)
		require.Len(t, entries, 2)

		loanSide, incomeSide := entries[0], entries[1]
		assert.True(t, loanSide.Credit.Equal(decimal.NewFromFloat(11095.89)))
		assert.True(t, loanSide.Debit.IsZero())
		assert.True(t, incomeSide.Debit.Equal(decimal.NewFromFloat(11095.89)))
		assert.True(t, incomeSide.Credit.IsZero())

		for _, e := range entries {
			assert.Equal(t, rec.ID(), e.VoucherNo)
			assert.True(t, e.IsReversal)
		}
	})

	t.Run("falls back to the default cost center", func(t *testing.T) {
		rec := submittedAccrual(t)
		other := valueobject.NewPostingDefaults(nil, "Head Office")

		entries, err := service.BuildAccrualPostings(rec, other, false)

		require.NoError(t, err)
		assert.Equal(t, "Head Office", entries[0].CostCenter)
		assert.Equal(t, "Head Office", entries[1].CostCenter)
	})
}
