package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// ErrLedgerImbalance means a posting pair was about to be written with
// unequal debit and credit totals. This is a programming invariant
// violation, never a recoverable runtime condition.
var ErrLedgerImbalance = errors.New("ledger postings do not balance")

// BuildAccrualPostings produces the balanced GL pair for an accrual: a debit
// to the loan account and an equal credit to the interest-income account,
// both against the loan voucher. With reverse set, the pair is the exact
// mirror (debit and credit swapped) referencing the same accrual, which is
// how cancellation is posted without touching the original rows.
func BuildAccrualPostings(
	rec model.InterestAccrual,
	defaults valueobject.PostingDefaults,
	reverse bool,
) ([]model.LedgerEntry, error) {
	amount := rec.InterestAmount()
	costCenter := defaults.CostCenterFor(rec.Company())
	remarks := "Against Loan: " + rec.LoanID()

	loanSide := model.LedgerEntry{
		ID:                 uuid.New().String(),
		Account:            rec.LoanAccount(),
		PartyType:          rec.ApplicantType(),
		Party:              rec.Applicant(),
		Against:            rec.InterestIncomeAccount(),
		Debit:              amount,
		AgainstVoucherType: "Loan",
		AgainstVoucher:     rec.LoanID(),
		VoucherType:        "Loan Interest Accrual",
		VoucherNo:          rec.ID(),
		CostCenter:         costCenter,
		Remarks:            remarks,
		Company:            rec.Company(),
		PostingDate:        rec.PostingDate(),
		IsReversal:         reverse,
	}

	incomeSide := model.LedgerEntry{
		ID:                 uuid.New().String(),
		Account:            rec.InterestIncomeAccount(),
		PartyType:          rec.ApplicantType(),
		Party:              rec.Applicant(),
		Against:            rec.LoanAccount(),
		Credit:             amount,
		AgainstVoucherType: "Loan",
		AgainstVoucher:     rec.LoanID(),
		VoucherType:        "Loan Interest Accrual",
		VoucherNo:          rec.ID(),
		CostCenter:         costCenter,
		Remarks:            remarks,
		Company:            rec.Company(),
		PostingDate:        rec.PostingDate(),
		IsReversal:         reverse,
	}

	if reverse {
		loanSide.Debit, loanSide.Credit = loanSide.Credit, loanSide.Debit
		incomeSide.Debit, incomeSide.Credit = incomeSide.Credit, incomeSide.Debit
	}

	entries := []model.LedgerEntry{loanSide, incomeSide}
	if err := checkBalanced(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func checkBalanced(entries []model.LedgerEntry) error {
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	if !debit.Equal(credit) {
		return ErrLedgerImbalance
	}
	return nil
}
