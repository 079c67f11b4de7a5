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

// ScheduleRepo implements port.ScheduleRepository.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleRepo creates a new PostgreSQL-backed schedule repository.
func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

// FindDueUnaccrued returns due, not-yet-accrued installments of disbursed
// term loans, joined with their loan snapshots.
func (r *ScheduleRepo) FindDueUnaccrued(ctx context.Context, cutoff time.Time) ([]model.DueInstallment, error) {
	query := `
		SELECT l.id, l.company, l.applicant_type, l.applicant, l.loan_type,
		       l.classification, l.status, l.rate_of_interest, l.disbursement_date,
		       l.total_payment, l.total_interest_payable, l.total_amount_paid,
		       l.loan_account, l.interest_income_account,
		       rs.id, rs.payment_date, rs.principal_amount, rs.interest_amount,
		       rs.balance_loan_amount, rs.is_accrued
		FROM loans l
		JOIN repayment_schedule rs ON rs.loan_id = l.id
		WHERE l.status = $1
		  AND l.classification = $2
		  AND rs.payment_date <= $3
		  AND rs.is_accrued = FALSE
		ORDER BY l.id, rs.payment_date
	`
	rows, err := querier(ctx, r.pool).Query(ctx, query,
		valueobject.LoanStatusDisbursed.String(),
		valueobject.LoanClassificationTerm.String(),
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("query due installments: %w", err)
	}
	defer rows.Close()

	var out []model.DueInstallment
	for rows.Next() {
		var (
			loan                                          model.Loan
			classStr, statusStr                           string
			rowID                                         string
			paymentDate                                   time.Time
			principal, interest, balance                  decimal.Decimal
			accrued                                       bool
		)
		err := rows.Scan(
			&loan.ID, &loan.Company, &loan.ApplicantType, &loan.Applicant, &loan.LoanType,
			&classStr, &statusStr, &loan.RateOfInterest, &loan.DisbursementDate,
			&loan.TotalPayment, &loan.TotalInterestPayable, &loan.TotalAmountPaid,
			&loan.LoanAccount, &loan.InterestIncomeAccount,
			&rowID, &paymentDate, &principal, &interest, &balance, &accrued,
		)
		if err != nil {
			return nil, fmt.Errorf("scan due installment: %w", err)
		}
		if loan.Classification, err = valueobject.NewLoanClassification(classStr); err != nil {
			return nil, fmt.Errorf("parse loan classification: %w", err)
		}
		if loan.Status, err = valueobject.NewLoanStatus(statusStr); err != nil {
			return nil, fmt.Errorf("parse loan status: %w", err)
		}

		out = append(out, model.DueInstallment{
			Loan: loan,
			Row: model.ScheduleRow{
				ID:                rowID,
				LoanID:            loan.ID,
				PaymentDate:       paymentDate,
				PrincipalAmount:   principal,
				InterestAmount:    interest,
				BalanceLoanAmount: balance,
				Accrued:           accrued,
			},
		})
	}
	return out, rows.Err()
}

// MarkAccrued flips the accrued flag for the given rows in one statement.
// Rows already marked are not touched, which keeps the flag single-shot.
func (r *ScheduleRepo) MarkAccrued(ctx context.Context, rowIDs []string) error {
	if len(rowIDs) == 0 {
		return nil
	}
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE repayment_schedule
		SET is_accrued = TRUE
		WHERE id = ANY($1) AND is_accrued = FALSE
	`, rowIDs)
	if err != nil {
		return fmt.Errorf("mark schedule rows accrued: %w", err)
	}
	if int(tag.RowsAffected()) != len(rowIDs) {
		return fmt.Errorf("mark schedule rows accrued: expected %d rows, updated %d", len(rowIDs), tag.RowsAffected())
	}
	return nil
}
