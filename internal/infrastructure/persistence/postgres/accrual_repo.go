package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/port"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// AccrualRepo implements port.AccrualRepository.
type AccrualRepo struct {
	pool *pgxpool.Pool
}

// NewAccrualRepo creates a new PostgreSQL-backed accrual repository.
func NewAccrualRepo(pool *pgxpool.Pool) *AccrualRepo {
	return &AccrualRepo{pool: pool}
}

// Save persists an accrual. Monetary values and account references are
// written once on insert and never updated; only the lifecycle status moves,
// guarded by an optimistic version check.
func (r *AccrualRepo) Save(ctx context.Context, rec model.InterestAccrual) error {
	query := `
		INSERT INTO loan_interest_accruals (
			id, loan_id, company, applicant_type, applicant,
			loan_account, interest_income_account, posting_date,
			pending_principal, interest_amount, payable_principal,
			process_run_id, schedule_row_id,
			status, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			version    = loan_interest_accruals.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE loan_interest_accruals.version = $15
	`
	var scheduleRowID any
	if rec.ScheduleRowID() != "" {
		scheduleRowID = rec.ScheduleRowID()
	}

	tag, err := querier(ctx, r.pool).Exec(ctx, query,
		rec.ID(), rec.LoanID(), rec.Company(), rec.ApplicantType(), rec.Applicant(),
		rec.LoanAccount(), rec.InterestIncomeAccount(), rec.PostingDate(),
		rec.PendingPrincipal(), rec.InterestAmount(), rec.PayablePrincipal(),
		rec.ProcessRunID(), scheduleRowID,
		rec.Status().String(), rec.Version(), rec.CreatedAt(), rec.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save accrual: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on accrual")
	}
	return nil
}

// FindByID retrieves one accrual.
func (r *AccrualRepo) FindByID(ctx context.Context, id string) (model.InterestAccrual, error) {
	query := accrualSelect + ` WHERE id = $1`
	row := querier(ctx, r.pool).QueryRow(ctx, query, id)
	rec, err := scanAccrualRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.InterestAccrual{}, port.ErrAccrualNotFound
	}
	return rec, err
}

// FindByLoanID retrieves all accruals for a loan, newest posting first.
func (r *AccrualRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.InterestAccrual, error) {
	query := accrualSelect + ` WHERE loan_id = $1 ORDER BY posting_date DESC, created_at DESC`
	rows, err := querier(ctx, r.pool).Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query accruals: %w", err)
	}
	defer rows.Close()

	var out []model.InterestAccrual
	for rows.Next() {
		rec, err := scanAccrualRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LastPostingDate returns the max posting date among a loan's accruals.
func (r *AccrualRepo) LastPostingDate(ctx context.Context, loanID string) (time.Time, bool, error) {
	var last *time.Time
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT MAX(posting_date) FROM loan_interest_accruals WHERE loan_id = $1`,
		loanID,
	).Scan(&last)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("max posting date: %w", err)
	}
	if last == nil {
		return time.Time{}, false, nil
	}
	return *last, true, nil
}

const accrualSelect = `
	SELECT id, loan_id, company, applicant_type, applicant,
	       loan_account, interest_income_account, posting_date,
	       pending_principal, interest_amount, payable_principal,
	       process_run_id, schedule_row_id,
	       status, version, created_at, updated_at
	FROM loan_interest_accruals
`

func scanAccrualRow(s scannable) (model.InterestAccrual, error) {
	var (
		id, loanID, company, applicantType, applicant string
		loanAccount, interestIncomeAccount            string
		postingDate                                   time.Time
		pendingPrincipal, interestAmount              decimal.Decimal
		payablePrincipal                              decimal.NullDecimal
		processRunID                                  string
		scheduleRowID                                 *string
		statusStr                                     string
		version                                       int
		createdAt, updatedAt                          time.Time
	)

	err := s.Scan(
		&id, &loanID, &company, &applicantType, &applicant,
		&loanAccount, &interestIncomeAccount, &postingDate,
		&pendingPrincipal, &interestAmount, &payablePrincipal,
		&processRunID, &scheduleRowID,
		&statusStr, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.InterestAccrual{}, fmt.Errorf("scan accrual: %w", err)
	}

	status, err := valueobject.NewAccrualStatus(statusStr)
	if err != nil {
		return model.InterestAccrual{}, fmt.Errorf("parse accrual status: %w", err)
	}

	var rowID string
	if scheduleRowID != nil {
		rowID = *scheduleRowID
	}

	return model.ReconstructInterestAccrual(
		id, loanID, company, applicantType, applicant,
		loanAccount, interestIncomeAccount,
		postingDate, pendingPrincipal, interestAmount, payablePrincipal,
		processRunID, rowID, status, version, createdAt, updatedAt,
	), nil
}
