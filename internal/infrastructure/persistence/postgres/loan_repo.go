package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository over the servicing system's loans
// table. Read-only by design.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `
	id, company, applicant_type, applicant, loan_type, classification, status,
	rate_of_interest, disbursement_date,
	total_payment, total_interest_payable, total_amount_paid,
	loan_account, interest_income_account
`

// FindByID retrieves one loan.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	row := querier(ctx, r.pool).QueryRow(ctx, query, id)
	return scanLoanRow(row)
}

// FindOpenDemandLoans retrieves finalized, disbursed demand loans, optionally
// filtered by loan type.
func (r *LoanRepo) FindOpenDemandLoans(ctx context.Context, loanType string) ([]model.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = $1 AND classification = $2
	`
	args := []any{valueobject.LoanStatusDisbursed.String(), valueobject.LoanClassificationDemand.String()}
	if loanType != "" {
		query += ` AND loan_type = $3`
		args = append(args, loanType)
	}
	query += ` ORDER BY id`

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query demand loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, company, applicantType, applicant, loanType  string
		classStr, statusStr                              string
		rate                                             decimal.Decimal
		disbursementDate                                 time.Time
		totalPayment, totalInterestPayable, totalPaid    decimal.Decimal
		loanAccount, interestIncomeAccount               string
	)

	err := s.Scan(
		&id, &company, &applicantType, &applicant, &loanType, &classStr, &statusStr,
		&rate, &disbursementDate,
		&totalPayment, &totalInterestPayable, &totalPaid,
		&loanAccount, &interestIncomeAccount,
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	classification, err := valueobject.NewLoanClassification(classStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan classification: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.Loan{
		ID:                    id,
		Company:               company,
		ApplicantType:         applicantType,
		Applicant:             applicant,
		LoanType:              loanType,
		Classification:        classification,
		Status:                status,
		RateOfInterest:        rate,
		DisbursementDate:      disbursementDate,
		TotalPayment:          totalPayment,
		TotalInterestPayable:  totalInterestPayable,
		TotalAmountPaid:       totalPaid,
		LoanAccount:           loanAccount,
		InterestIncomeAccount: interestIncomeAccount,
	}, nil
}
