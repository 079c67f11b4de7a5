package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/application/usecase"
	"github.com/crestbank/accrual-service/internal/domain/port"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

// AccrualHandler exposes the accrual use cases over REST. The batch
// endpoints exist for operational reruns; the daily runs come from the
// scheduler.
type AccrualHandler struct {
	demandUC *usecase.AccrueDemandLoansUseCase
	termUC   *usecase.AccrueTermLoansUseCase
	listUC   *usecase.ListAccrualsUseCase
	cancelUC *usecase.CancelAccrualUseCase
	logger   *slog.Logger
}

// NewAccrualHandler creates the REST handler.
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

// RegisterRoutes attaches accrual routes to the given mux.
func (h *AccrualHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/accrual-runs/demand", h.runDemand)
	mux.HandleFunc("POST /v1/accrual-runs/term", h.runTerm)
	mux.HandleFunc("GET /v1/loans/{loanID}/accruals", h.listAccruals)
	mux.HandleFunc("POST /v1/accruals/{accrualID}/cancel", h.cancelAccrual)
}

type runDemandBody struct {
	PostingDate string `json:"posting_date,omitempty"`
	LoanType    string `json:"loan_type,omitempty"`
}

func (h *AccrualHandler) runDemand(w http.ResponseWriter, r *http.Request) {
	var body runDemandBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	postingDate, err := parseDate(body.PostingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.demandUC.Execute(r.Context(), dto.AccrueDemandLoansRequest{
		PostingDate: postingDate,
		LoanType:    body.LoanType,
	})
	if err != nil {
		h.logger.Error("demand accrual run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type runTermBody struct {
	CutoffDate  string `json:"cutoff_date,omitempty"`
	PostingDate string `json:"posting_date,omitempty"`
}

func (h *AccrualHandler) runTerm(w http.ResponseWriter, r *http.Request) {
	var body runTermBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cutoff, err := parseDate(body.CutoffDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	postingDate, err := parseDate(body.PostingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.termUC.Execute(r.Context(), dto.AccrueTermLoansRequest{
		CutoffDate:  cutoff,
		PostingDate: postingDate,
	})
	if err != nil {
		h.logger.Error("term accrual run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AccrualHandler) listAccruals(w http.ResponseWriter, r *http.Request) {
	loanID := r.PathValue("loanID")
	accruals, err := h.listUC.Execute(r.Context(), dto.ListAccrualsRequest{LoanID: loanID})
	if err != nil {
		h.logger.Error("list accruals failed", "loan_id", loanID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accruals": accruals})
}

func (h *AccrualHandler) cancelAccrual(w http.ResponseWriter, r *http.Request) {
	accrualID := r.PathValue("accrualID")
	res, err := h.cancelUC.Execute(r.Context(), dto.CancelAccrualRequest{AccrualID: accrualID})
	if err != nil {
		switch {
		case errors.Is(err, port.ErrAccrualNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, valueobject.ErrInvalidStatusTransition):
			writeError(w, http.StatusConflict, err)
		default:
			h.logger.Error("cancel accrual failed", "accrual_id", accrualID, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeBody tolerates an empty body: both batch endpoints accept a bare POST.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("dates must be YYYY-MM-DD")
	}
	return t, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
