package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/application/usecase"
	"github.com/crestbank/accrual-service/internal/domain/port"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// AccrualHandler adapts the accrual use cases to the AccrualService gRPC API.
type AccrualHandler struct {
	UnimplementedAccrualServiceServer

	demandUC *usecase.AccrueDemandLoansUseCase
	termUC   *usecase.AccrueTermLoansUseCase
	listUC   *usecase.ListAccrualsUseCase
	cancelUC *usecase.CancelAccrualUseCase
	logger   *slog.Logger
}

// NewAccrualHandler creates the gRPC handler.
func NewAccrualHandler(
	demandUC *usecase.AccrueDemandLoansUseCase,
	termUC *usecase.AccrueTermLoansUseCase,
	listUC *usecase.ListAccrualsUseCase,
	cancelUC *usecase.CancelAccrualUseCase,
	logger *slog.Logger,
) *AccrualHandler {
	return &AccrualHandler{
		demandUC: demandUC,
		termUC:   termUC,
		listUC:   listUC,
		cancelUC: cancelUC,
		logger:   logger,
	}
}

// RunDemandAccrual triggers the demand-loan accrual batch.
func (h *AccrualHandler) RunDemandAccrual(ctx context.Context, req *RunDemandAccrualRequest) (*BatchRunResponse, error) {
	postingDate, err := parseDate(req.PostingDate, "posting_date")
	if err != nil {
		return nil, err
	}

	res, err := h.demandUC.Execute(ctx, dto.AccrueDemandLoansRequest{
		PostingDate: postingDate,
		LoanType:    req.LoanType,
	})
	if err != nil {
		h.logger.Error("demand accrual run failed", "error", err)
		return nil, status.Errorf(codes.Internal, "demand accrual run failed: %v", err)
	}
	return toBatchRunResponse(res), nil
}

// RunTermAccrual triggers the term-loan accrual batch.
func (h *AccrualHandler) RunTermAccrual(ctx context.Context, req *RunTermAccrualRequest) (*BatchRunResponse, error) {
	cutoff, err := parseDate(req.CutoffDate, "cutoff_date")
	if err != nil {
		return nil, err
	}
	postingDate, err := parseDate(req.PostingDate, "posting_date")
	if err != nil {
		return nil, err
	}

	res, err := h.termUC.Execute(ctx, dto.AccrueTermLoansRequest{
		CutoffDate:  cutoff,
		PostingDate: postingDate,
	})
	if err != nil {
		h.logger.Error("term accrual run failed", "error", err)
		return nil, status.Errorf(codes.Internal, "term accrual run failed: %v", err)
	}
	return toBatchRunResponse(res), nil
}

// ListAccruals returns a loan's accruals, newest first.
func (h *AccrualHandler) ListAccruals(ctx context.Context, req *ListAccrualsRequest) (*ListAccrualsResponse, error) {
	if req.LoanId == "" {
		return nil, status.Error(codes.InvalidArgument, "loan_id is required")
	}

	accruals, err := h.listUC.Execute(ctx, dto.ListAccrualsRequest{LoanID: req.LoanId})
	if err != nil {
		h.logger.Error("list accruals failed", "loan_id", req.LoanId, "error", err)
		return nil, status.Errorf(codes.Internal, "list accruals: %v", err)
	}

	out := make([]*AccrualMessage, 0, len(accruals))
	for _, a := range accruals {
		out = append(out, toAccrualMessage(a))
	}
	return &ListAccrualsResponse{Accruals: out}, nil
}

// CancelAccrual reverses a submitted accrual.
func (h *AccrualHandler) CancelAccrual(ctx context.Context, req *CancelAccrualRequest) (*CancelAccrualResponse, error) {
	if req.AccrualId == "" {
		return nil, status.Error(codes.InvalidArgument, "accrual_id is required")
	}

	res, err := h.cancelUC.Execute(ctx, dto.CancelAccrualRequest{AccrualID: req.AccrualId})
	if err != nil {
		h.logger.Error("cancel accrual failed", "accrual_id", req.AccrualId, "error", err)
		return nil, toStatusError(err)
	}
	return &CancelAccrualResponse{Accrual: toAccrualMessage(res)}, nil
}

func toStatusError(err error) error {
	switch {
	case errors.Is(err, port.ErrAccrualNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Errorf(codes.Internal, "%v", err)
	}
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s must be YYYY-MM-DD: %v", field, err)
	}
	return t, nil
}

func toBatchRunResponse(res dto.BatchRunResponse) *BatchRunResponse {
	accrued := make([]*AccrualMessage, 0, len(res.Accrued))
	for _, a := range res.Accrued {
		accrued = append(accrued, toAccrualMessage(a))
	}
	failures := make([]*LoanFailureMessage, 0, len(res.Failures))
	for _, f := range res.Failures {
		failures = append(failures, &LoanFailureMessage{LoanId: f.LoanID, Error: f.Error})
	}
	return &BatchRunResponse{
		ProcessRunId: res.ProcessRunID,
		PostingDate:  res.PostingDate.Format("2006-01-02"),
		Accrued:      accrued,
		Skipped:      int32(res.Skipped),
		Failures:     failures,
	}
}

func toAccrualMessage(a dto.AccrualResponse) *AccrualMessage {
	var payable string
	if a.PayablePrincipal.Valid {
		payable = a.PayablePrincipal.Decimal.String()
	}
	return &AccrualMessage{
		Id:               a.ID,
		LoanId:           a.LoanID,
		Company:          a.Company,
		PostingDate:      a.PostingDate.Format("2006-01-02"),
		PendingPrincipal: a.PendingPrincipal.String(),
		InterestAmount:   a.InterestAmount.String(),
		PayablePrincipal: payable,
		ProcessRunId:     a.ProcessRunID,
		ScheduleRowId:    a.ScheduleRowID,
		Status:           a.Status,
	}
}
