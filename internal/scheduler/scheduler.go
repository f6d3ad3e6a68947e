package scheduler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/rentaltrack/rental-api/internal/model"
)

var (
	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_sweep_runs_total",
		Help: "Scheduled reminder sweeps by result.",
	}, []string{"result"})

	sweepOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_sweep_outcomes_total",
		Help: "Per-lease sweep outcomes by status.",
	}, []string{"status"})
)

// Sweeper is the reminder engine entry point the scheduler drives.
type Sweeper interface {
	CheckAndSendReminders(ctx context.Context) (*model.SweepResult, error)
}

// Scheduler runs the daily reminder sweep on a cron expression.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  zerolog.Logger
	timeout time.Duration
}

func New(sweeper Sweeper, location *time.Location, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		sweeper: sweeper,
		logger:  logger,
		timeout: 10 * time.Minute,
	}
}

func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("reminder scheduler started")
	return nil
}

// Stop waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("reminder scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.sweeper.CheckAndSendReminders(ctx)
	if result == nil {
		sweepRuns.WithLabelValues("aborted").Inc()
		s.logger.Error().Err(err).Msg("scheduled sweep aborted")
		return
	}

	if err != nil {
		sweepRuns.WithLabelValues("partial").Inc()
		s.logger.Warn().Err(err).Msg("scheduled sweep completed with scan errors")
	} else {
		sweepRuns.WithLabelValues("ok").Inc()
	}

	summary := result.Summary()
	sweepOutcomes.WithLabelValues(string(model.OutcomeSent)).Add(float64(summary.Sent))
	sweepOutcomes.WithLabelValues(string(model.OutcomeAlreadySent)).Add(float64(summary.AlreadySent))
	sweepOutcomes.WithLabelValues(string(model.OutcomeError)).Add(float64(summary.Errors))
}
