package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"github.com/crestbank/accrual-service/internal/application/dto"
	"github.com/crestbank/accrual-service/internal/application/usecase"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accrual_runs_total",
		Help: "Scheduled accrual runs by loan class and outcome.",
	}, []string{"class", "outcome"})

	accrualsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accruals_created_total",
		Help: "Interest accruals created by scheduled runs, by loan class.",
	}, []string{"class"})
)

// AccrualScheduler drives the daily accrual batches. One cron entry runs the
// demand batch followed by the term batch; each batch already isolates
// per-loan failures internally, so a scheduler run only fails when a batch
// cannot start at all.
type AccrualScheduler struct {
	engine   *cron.Cron
	demand   *usecase.AccrueDemandLoansUseCase
	term     *usecase.AccrueTermLoansUseCase
	cronSpec string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAccrualScheduler creates the scheduler. cronSpec is a standard 5-field
// cron expression, e.g. "30 0 * * *" for 00:30 daily.
func NewAccrualScheduler(
	demand *usecase.AccrueDemandLoansUseCase,
	term *usecase.AccrueTermLoansUseCase,
	cronSpec string,
	timeout time.Duration,
	logger *slog.Logger,
) *AccrualScheduler {
	return &AccrualScheduler{
		engine:   cron.New(cron.WithLocation(time.UTC)),
		demand:   demand,
		term:     term,
		cronSpec: cronSpec,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start registers the cron entry and starts the engine.
func (s *AccrualScheduler) Start() error {
	if _, err := s.engine.AddFunc(s.cronSpec, s.runOnce); err != nil {
		return err
	}
	s.engine.Start()
	s.logger.Info("accrual scheduler started", "cron", s.cronSpec)
	return nil
}

// Stop stops the engine and waits for a running job to finish.
func (s *AccrualScheduler) Stop() {
	ctx := s.engine.Stop()
	<-ctx.Done()
	s.logger.Info("accrual scheduler stopped")
}

func (s *AccrualScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Info("scheduled accrual run starting")

	demandRes, err := s.demand.Execute(ctx, dto.AccrueDemandLoansRequest{})
	s.observe("demand", demandRes, err)

	termRes, err := s.term.Execute(ctx, dto.AccrueTermLoansRequest{})
	s.observe("term", termRes, err)
}

func (s *AccrualScheduler) observe(class string, res dto.BatchRunResponse, err error) {
	if err != nil {
		runsTotal.WithLabelValues(class, "error").Inc()
		s.logger.Error("scheduled accrual batch failed", "class", class, "error", err)
		return
	}
	outcome := "ok"
	if len(res.Failures) > 0 {
		outcome = "partial"
	}
	runsTotal.WithLabelValues(class, outcome).Inc()
	accrualsCreated.WithLabelValues(class).Add(float64(len(res.Accrued)))
}
