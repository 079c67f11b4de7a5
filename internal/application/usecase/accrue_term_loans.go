package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/port"
)

// AccrueTermLoansUseCase converts due, not-yet-accrued repayment schedule
// rows into interest accruals. The schedule already carries the
// principal/interest split, so the row's interest component is used verbatim
// rather than recomputed.
//
// Rows are grouped by loan; each loan's record creation and the batch mark
// of its rows commit in one transaction, so a row is never marked accrued
// without its record nor the other way round. Loans remain isolated from one
// another: a failing loan is reported and skipped, its rows stay unmarked.
type AccrueTermLoansUseCase struct {
	schedules port.ScheduleRepository
	recorder  *RecordAccrualUseCase
	scope     port.LoanScope
	logger    *slog.Logger
}

// NewAccrueTermLoansUseCase wires dependencies.
func NewAccrueTermLoansUseCase(
	schedules port.ScheduleRepository,
	recorder *RecordAccrualUseCase,
	scope port.LoanScope,
	logger *slog.Logger,
) *AccrueTermLoansUseCase {
	return &AccrueTermLoansUseCase{
		schedules: schedules,
		recorder:  recorder,
		scope:     scope,
		logger:    logger,
	}
}

// Execute processes all due installments up to the cutoff (default tomorrow).
func (uc *AccrueTermLoansUseCase) Execute(
	ctx context.Context,
	req dto.AccrueTermLoansRequest,
) (dto.BatchRunResponse, error) {
	postingDate := req.PostingDate
	if postingDate.IsZero() {
		postingDate = today()
	}
	cutoff := req.CutoffDate
	if cutoff.IsZero() {
		cutoff = today().AddDate(0, 0, 1)
	}
	runID := req.ProcessRunID
	if runID == "" {
		runID = uuid.New().String()
	}

	due, err := uc.schedules.FindDueUnaccrued(ctx, cutoff)
	if err != nil {
		return dto.BatchRunResponse{}, err
	}

	// Group by loan, preserving installment order within each loan.
	byLoan := make(map[string][]model.DueInstallment)
	var loanOrder []string
	for _, inst := range due {
		if _, seen := byLoan[inst.Loan.ID]; !seen {
			loanOrder = append(loanOrder, inst.Loan.ID)
		}
		byLoan[inst.Loan.ID] = append(byLoan[inst.Loan.ID], inst)
	}

	out := dto.BatchRunResponse{ProcessRunID: runID, PostingDate: postingDate}

	for _, loanID := range loanOrder {
		installments := byLoan[loanID]
		var created []dto.AccrualResponse

		err := uc.scope.Within(ctx, loanID, func(ctx context.Context) error {
			rowIDs := make([]string, 0, len(installments))
			for _, inst := range installments {
				resp, err := uc.recorder.Execute(ctx, dto.RecordAccrualRequest{
					Loan:             inst.Loan,
					PostingDate:      postingDate,
					PendingPrincipal: inst.Row.PrincipalAmount.Add(inst.Row.BalanceLoanAmount),
					InterestAmount:   decimal.NewNullDecimal(inst.Row.InterestAmount),
					PayablePrincipal: decimal.NewNullDecimal(inst.Row.PrincipalAmount),
					ProcessRunID:     runID,
					ScheduleRowID:    inst.Row.ID,
				})
				if err != nil {
					return err
				}
				created = append(created, resp)
				rowIDs = append(rowIDs, inst.Row.ID)
			}
			return uc.schedules.MarkAccrued(ctx, rowIDs)
		})

		if err != nil {
			uc.logger.Error("term accrual failed",
				"loan_id", loanID, "cutoff", cutoff, "error", err)
			out.Failures = append(out.Failures, dto.LoanFailure{LoanID: loanID, Error: err.Error()})
			continue
		}
		out.Accrued = append(out.Accrued, created...)
	}

	uc.logger.Info("term accrual run complete",
		"run_id", runID,
		"cutoff", cutoff,
		"accrued", len(out.Accrued),
		"failed", len(out.Failures),
	)
	return out, nil
}
