package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/port"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
	pgrepo "github.com/crestbank/accrual-service/internal/infrastructure/persistence/postgres"
	"github.com/crestbank/accrual-service/pkg/testutil"
)

func startDatabase(t *testing.T) *testutil.PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test requires docker")
	}

	pc := testutil.NewPostgresContainer(context.Background(), t)
	t.Cleanup(func() { pc.Cleanup(t) })
	pc.RunMigrations(t, "migrations")
	return pc
}

func insertLoan(t *testing.T, pool *pgxpool.Pool, id string, class valueobject.LoanClassification) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO loans (id, company, applicant_type, applicant, loan_type,
			classification, status, rate_of_interest, disbursement_date,
			total_payment, total_interest_payable, total_amount_paid,
			loan_account, interest_income_account)
		VALUES ($1, 'Crest Bank', 'Customer', 'CUST-001', '',
			$2, $3, 13.5, '2025-01-01',
			1000000, 0, 0,
			'Loans - CB', 'Interest Income - CB')`,
		id, class.String(), valueobject.LoanStatusDisbursed.String(),
	)
	require.NoError(t, err)
}

func insertScheduleRow(t *testing.T, pool *pgxpool.Pool, id, loanID string, due time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO repayment_schedule (id, loan_id, payment_date,
			principal_amount, interest_amount, balance_loan_amount, is_accrued)
		VALUES ($1, $2, $3, 25000, 4500, 900000, FALSE)`,
		id, loanID, due,
	)
	require.NoError(t, err)
}

func draftAccrual(t *testing.T, loanID string, postingDate time.Time) model.InterestAccrual {
	t.Helper()
	rec, err := model.NewInterestAccrual(model.NewAccrualParams{
		LoanID:                loanID,
		Company:               "Crest Bank",
		ApplicantType:         "Customer",
		Applicant:             "CUST-001",
		LoanAccount:           "Loans - CB",
		InterestIncomeAccount: "Interest Income - CB",
		PostingDate:           postingDate,
		PendingPrincipal:      decimal.NewFromInt(1_000_000),
		InterestAmount:        decimal.NewNullDecimal(decimal.NewFromFloat(11095.89)),
	}, time.Now().UTC())
	require.NoError(t, err)
	return rec
}

func TestAccrualRepo_Integration(t *testing.T) {
	pc := startDatabase(t)
	ctx := context.Background()
	repo := pgrepo.NewAccrualRepo(pc.Pool)
	posting := time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC)

	insertLoan(t, pc.Pool, "loan-001", valueobject.LoanClassificationDemand)

	t.Run("save and find round-trip", func(t *testing.T) {
		rec := draftAccrual(t, "loan-001", posting)
		require.NoError(t, repo.Save(ctx, rec))

		got, err := repo.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, "loan-001", got.LoanID())
		assert.True(t, got.Status().Equal(valueobject.AccrualStatusDraft))
		assert.True(t, got.InterestAmount().Equal(decimal.NewFromFloat(11095.89)),
			"got %s", got.InterestAmount())
		assert.True(t, got.PostingDate().Equal(posting))
		assert.Equal(t, 1, got.Version())
	})

	t.Run("missing accrual yields the not-found sentinel", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "no-such-accrual")
		assert.ErrorIs(t, err, port.ErrAccrualNotFound)
	})

	t.Run("stale version cannot overwrite a newer row", func(t *testing.T) {
		rec := draftAccrual(t, "loan-001", posting.AddDate(0, 0, 1))
		require.NoError(t, repo.Save(ctx, rec))

		submitted, err := rec.Submit(time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, submitted)) // row version moves to 2

		err = repo.Save(ctx, submitted) // still carries version 1
		require.Error(t, err)
		assert.Contains(t, err.Error(), "optimistic locking conflict")

		got, err := repo.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.True(t, got.Status().Equal(valueobject.AccrualStatusSubmitted))
		assert.Equal(t, 2, got.Version())
	})

	t.Run("last posting date is the max across accruals", func(t *testing.T) {
		insertLoan(t, pc.Pool, "loan-002", valueobject.LoanClassificationDemand)

		_, found, err := repo.LastPostingDate(ctx, "loan-002")
		require.NoError(t, err)
		assert.False(t, found)

		first := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
		second := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Save(ctx, draftAccrual(t, "loan-002", second)))
		require.NoError(t, repo.Save(ctx, draftAccrual(t, "loan-002", first)))

		last, found, err := repo.LastPostingDate(ctx, "loan-002")
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, last.Equal(second), "got %s", last)
	})
}

func TestScheduleRepo_Integration(t *testing.T) {
	pc := startDatabase(t)
	ctx := context.Background()
	repo := pgrepo.NewScheduleRepo(pc.Pool)
	cutoff := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	insertLoan(t, pc.Pool, "loan-101", valueobject.LoanClassificationTerm)
	insertScheduleRow(t, pc.Pool, "row-1", "loan-101", cutoff.AddDate(0, -1, 0))
	insertScheduleRow(t, pc.Pool, "row-2", "loan-101", cutoff)
	insertScheduleRow(t, pc.Pool, "row-3", "loan-101", cutoff.AddDate(0, 1, 0))

	t.Run("due unaccrued rows join their loan snapshot", func(t *testing.T) {
		due, err := repo.FindDueUnaccrued(ctx, cutoff)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, "row-1", due[0].Row.ID)
		assert.Equal(t, "row-2", due[1].Row.ID)
		assert.Equal(t, "loan-101", due[0].Loan.ID)
		assert.True(t, due[0].Row.InterestAmount.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("mark accrued is single-shot per row", func(t *testing.T) {
		require.NoError(t, repo.MarkAccrued(ctx, []string{"row-1", "row-2"}))

		due, err := repo.FindDueUnaccrued(ctx, cutoff)
		require.NoError(t, err)
		assert.Empty(t, due)

		err = repo.MarkAccrued(ctx, []string{"row-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 1 rows, updated 0")
	})

	t.Run("marking an unknown row fails loudly", func(t *testing.T) {
		err := repo.MarkAccrued(ctx, []string{"no-such-row"})
		require.Error(t, err)
	})
}

func TestLoanScope_Integration(t *testing.T) {
	pc := startDatabase(t)
	ctx := context.Background()
	scope := pgrepo.NewLoanScope(pc.Pool)
	accruals := pgrepo.NewAccrualRepo(pc.Pool)
	schedules := pgrepo.NewScheduleRepo(pc.Pool)
	posting := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	insertLoan(t, pc.Pool, "loan-201", valueobject.LoanClassificationTerm)
	insertScheduleRow(t, pc.Pool, "row-201", "loan-201", posting)

	t.Run("a failed scope rolls back the record and the mark together", func(t *testing.T) {
		rec := draftAccrual(t, "loan-201", posting)
		boom := errors.New("downstream posting failed")

		err := scope.Within(ctx, "loan-201", func(ctx context.Context) error {
			if err := accruals.Save(ctx, rec); err != nil {
				return err
			}
			if err := schedules.MarkAccrued(ctx, []string{"row-201"}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = accruals.FindByID(ctx, rec.ID())
		assert.ErrorIs(t, err, port.ErrAccrualNotFound)

		due, err := schedules.FindDueUnaccrued(ctx, posting)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "row-201", due[0].Row.ID)
	})

	t.Run("a successful scope commits both", func(t *testing.T) {
		rec := draftAccrual(t, "loan-201", posting)

		err := scope.Within(ctx, "loan-201", func(ctx context.Context) error {
			if err := accruals.Save(ctx, rec); err != nil {
				return err
			}
			return schedules.MarkAccrued(ctx, []string{"row-201"})
		})
		require.NoError(t, err)

		got, err := accruals.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, "loan-201", got.LoanID())

		due, err := schedules.FindDueUnaccrued(ctx, posting)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("concurrent scopes on one loan serialize", func(t *testing.T) {
		var (
			mu    sync.Mutex
			order []string
		)
		entered := make(chan struct{})
		firstDone := make(chan error, 1)

		go func() {
			firstDone <- scope.Within(ctx, "loan-201", func(ctx context.Context) error {
				close(entered)
				time.Sleep(300 * time.Millisecond)
				mu.Lock()
				order = append(order, "first")
				mu.Unlock()
				return nil
			})
		}()

		<-entered
		err := scope.Within(ctx, "loan-201", func(ctx context.Context) error {
			mu.Lock()
			order = append(order, "second")
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, <-firstDone)

		assert.Equal(t, []string{"first", "second"}, order)
	})
}
