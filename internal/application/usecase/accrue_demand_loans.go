package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/domain/port"
	"github.com/crestbank/accrual-service/internal/domain/service"
)

// AccrueDemandLoansUseCase runs the demand-loan accrual batch: per eligible
// loan it resolves the unaccrued window, computes pro-rata interest on the
// outstanding principal and records one accrual. Each loan runs in its own
// transaction; one loan failing never aborts the rest of the run.
type AccrueDemandLoansUseCase struct {
	loans    port.LoanRepository
	resolver *service.PeriodResolver
	recorder *RecordAccrualUseCase
	scope    port.LoanScope
	logger   *slog.Logger
}

// NewAccrueDemandLoansUseCase wires dependencies.
func NewAccrueDemandLoansUseCase(
	loans port.LoanRepository,
	resolver *service.PeriodResolver,
	recorder *RecordAccrualUseCase,
	scope port.LoanScope,
	logger *slog.Logger,
) *AccrueDemandLoansUseCase {
	return &AccrueDemandLoansUseCase{
		loans:    loans,
		resolver: resolver,
		recorder: recorder,
		scope:    scope,
		logger:   logger,
	}
}

// Execute processes the batch and reports per-loan outcomes.
func (uc *AccrueDemandLoansUseCase) Execute(
	ctx context.Context,
	req dto.AccrueDemandLoansRequest,
) (dto.BatchRunResponse, error) {
	postingDate := req.PostingDate
	if postingDate.IsZero() {
		postingDate = today()
	}
	runID := req.ProcessRunID
	if runID == "" {
		runID = uuid.New().String()
	}

	candidates := req.PreloadedLoans
	if candidates == nil {
		var err error
		candidates, err = uc.loans.FindOpenDemandLoans(ctx, req.LoanType)
		if err != nil {
			return dto.BatchRunResponse{}, err
		}
	}

	out := dto.BatchRunResponse{ProcessRunID: runID, PostingDate: postingDate}

	for _, loan := range candidates {
		loan := loan

		// The store query already filters on status; preloaded loans have not
		// been vetted yet.
		if !loan.EligibleForAccrual() {
			out.Skipped++
			continue
		}

		var resp dto.AccrualResponse
		var skipped bool

		err := uc.scope.Within(ctx, loan.ID, func(ctx context.Context) error {
			days, err := uc.resolver.ElapsedDays(ctx, loan, postingDate)
			if err != nil {
				return err
			}
			if days <= 0 {
				skipped = true
				return nil
			}

			outstanding := loan.OutstandingPrincipal()
			interest := service.ComputeDemandInterest(outstanding, loan.RateOfInterest, postingDate, days)

			resp, err = uc.recorder.Execute(ctx, dto.RecordAccrualRequest{
				Loan:             loan,
				PostingDate:      postingDate,
				PendingPrincipal: outstanding,
				InterestAmount:   decimal.NewNullDecimal(interest),
				ProcessRunID:     runID,
			})
			return err
		})

		switch {
		case err != nil:
			uc.logger.Error("demand accrual failed",
				"loan_id", loan.ID, "posting_date", postingDate, "error", err)
			out.Failures = append(out.Failures, dto.LoanFailure{LoanID: loan.ID, Error: err.Error()})
		case skipped:
			out.Skipped++
		default:
			out.Accrued = append(out.Accrued, resp)
		}
	}

	uc.logger.Info("demand accrual run complete",
		"run_id", runID,
		"posting_date", postingDate,
		"accrued", len(out.Accrued),
		"skipped", out.Skipped,
		"failed", len(out.Failures),
	)
	return out, nil
}

// today returns the current UTC calendar date at midnight.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
