package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rentaltrack/rental-api/internal/email"
	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	"github.com/rentaltrack/rental-api/pkg/cache"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type Config struct {
	// Horizons defaults to model.ReminderHorizons; processed in order.
	Horizons []int
	// LenientDedupCheck treats a failed ledger check as "not sent yet"
	// instead of erroring the lease out, trading duplicate risk for
	// availability. The uniqueness constraint still bounds duplicates.
	LenientDedupCheck bool
	// Location is the timezone in which "today" is computed for horizon
	// matching.
	Location *time.Location
}

// Service drives the lease expiration reminder sweep: for each horizon it
// scans for leases ending exactly that many days out and processes each
// (lease, horizon) pair through the idempotency protocol. Per-lease work
// is sequential; the ledger's uniqueness constraint is the authoritative
// duplicate guard.
type Service struct {
	leases     repository.LeaseRepository
	ledger     repository.ReminderRepository
	mailer     email.Service
	cfg        Config
	statsCache *cache.Client
	logger     zerolog.Logger

	now func() time.Time
}

func NewService(
	leases repository.LeaseRepository,
	ledger repository.ReminderRepository,
	mailer email.Service,
	cfg Config,
	statsCache *cache.Client,
	logger zerolog.Logger,
) *Service {
	if len(cfg.Horizons) == 0 {
		cfg.Horizons = model.ReminderHorizons
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		leases:     leases,
		ledger:     ledger,
		mailer:     mailer,
		cfg:        cfg,
		statsCache: statsCache,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckAndSendReminders runs one sweep across all horizons. The transport
// is verified once up front; an unreachable transport aborts the whole
// sweep before any lease is touched. A failed horizon scan skips that
// horizon only and is reported both in the result and the joined error;
// per-lease failures never escape the outcome list.
func (s *Service) CheckAndSendReminders(ctx context.Context) (*model.SweepResult, error) {
	if err := s.mailer.Verify(); err != nil {
		return nil, apperrors.Unavailable("mail transport unreachable", err)
	}

	today := s.today()
	result := &model.SweepResult{Outcomes: []*model.ReminderOutcome{}}
	var scanErrs []error

	s.logger.Info().Str("date", today.Format("2006-01-02")).Msg("starting lease expiration sweep")

	for _, days := range s.cfg.Horizons {
		target := today.AddDate(0, 0, days)

		leases, err := s.leases.ListExpiringOn(ctx, target)
		if err != nil {
			s.logger.Error().Err(err).Int("horizon_days", days).Msg("horizon scan failed")
			if result.ScanErrors == nil {
				result.ScanErrors = make(map[int]string)
			}
			result.ScanErrors[days] = err.Error()
			scanErrs = append(scanErrs, fmt.Errorf("horizon %d: %w", days, err))
			continue
		}

		for _, lease := range leases {
			result.Outcomes = append(result.Outcomes, s.processLease(ctx, lease, days))
		}
	}

	summary := result.Summary()
	s.logger.Info().
		Int("processed", summary.TotalProcessed).
		Int("sent", summary.Sent).
		Int("already_sent", summary.AlreadySent).
		Int("errors", summary.Errors).
		Msg("lease expiration sweep completed")

	return result, errors.Join(scanErrs...)
}

// processLease runs the per-(lease,horizon) idempotency protocol:
// check the ledger, validate recipients, send, record. Failures are
// captured in the outcome, never raised.
func (s *Service) processLease(ctx context.Context, lease *model.LeaseWithRelations, days int) *model.ReminderOutcome {
	outcome := &model.ReminderOutcome{
		LeaseID:  lease.ID,
		Days:     days,
		Property: lease.Property.Title,
		Landlord: lease.Landlord.FullName(),
	}

	exists, err := s.ledger.Exists(ctx, lease.ID, days)
	switch {
	case err != nil && !s.cfg.LenientDedupCheck:
		outcome.Status = model.OutcomeError
		outcome.Error = fmt.Sprintf("dedup check failed: %v", err)
		return outcome
	case err != nil:
		s.logger.Warn().Err(err).
			Stringer("lease_id", lease.ID).
			Int("horizon_days", days).
			Msg("ledger check failed, assuming unsent")
	case exists:
		outcome.Status = model.OutcomeAlreadySent
		return outcome
	}

	if err := validateRecipients(lease); err != nil {
		outcome.Status = model.OutcomeError
		outcome.Error = err.Error()
		return outcome
	}

	if err := s.mailer.SendExpirationReminder(ctx, lease, days); err != nil {
		// No ledger write on a failed send; the next sweep retries.
		outcome.Status = model.OutcomeError
		outcome.Error = err.Error()
		return outcome
	}

	s.record(ctx, lease.ID, days)
	outcome.Status = model.OutcomeSent
	return outcome
}

// record writes the ledger entry after a successful send. A uniqueness
// conflict means a concurrent sweep already recorded the pair; the send
// did happen, so the caller's outcome stays sent. Any other fault is
// logged and swallowed: losing the record risks at most one future
// duplicate, which beats discarding the fact that the notification went
// out.
func (s *Service) record(ctx context.Context, leaseID uuid.UUID, days int) {
	status, err := s.ledger.Insert(ctx, &model.ReminderRecord{
		LeaseID:      leaseID,
		ReminderDays: days,
		SentAt:       s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).
			Stringer("lease_id", leaseID).
			Int("horizon_days", days).
			Msg("reminder sent but not recorded")
		return
	}
	if status == model.ReminderDuplicate {
		s.logger.Debug().
			Stringer("lease_id", leaseID).
			Int("horizon_days", days).
			Msg("reminder record already present")
	}
}

// TriggerManual sends a reminder for one lease and horizon, bypassing the
// dedup check as an operator override. It still records the send, so the
// next sweep treats the pair as already sent.
func (s *Service) TriggerManual(ctx context.Context, realtorID, leaseID uuid.UUID, days int) error {
	if !model.IsValidHorizon(days) {
		return apperrors.BadRequest(fmt.Sprintf("invalid reminder days %d: must be 90, 60 or 30", days), nil)
	}

	lease, err := s.leases.GetWithRelations(ctx, leaseID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("lease", err)
	}
	if err != nil {
		return err
	}
	if lease.RealtorID != realtorID {
		return apperrors.NotFound("lease", nil)
	}

	if err := validateRecipients(lease); err != nil {
		return apperrors.BadRequest(err.Error(), nil)
	}

	if err := s.mailer.SendExpirationReminder(ctx, lease, days); err != nil {
		return apperrors.Unavailable("failed to send reminder", err)
	}

	s.record(ctx, lease.ID, days)

	s.logger.Info().
		Stringer("lease_id", leaseID).
		Int("horizon_days", days).
		Msg("manual reminder sent")
	return nil
}

// History returns the reminder records for one of the realtor's leases,
// newest first.
func (s *Service) History(ctx context.Context, realtorID, leaseID uuid.UUID) ([]*model.ReminderRecord, error) {
	if _, err := s.leases.Get(ctx, realtorID, leaseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lease", err)
		}
		return nil, err
	}
	return s.ledger.ListByLease(ctx, leaseID)
}

// ListExpiring returns the realtor's active and pending leases ending
// within the next N days, soonest first.
func (s *Service) ListExpiring(ctx context.Context, realtorID uuid.UUID, days int) ([]*model.LeaseWithRelations, error) {
	start := s.today()
	end := start.AddDate(0, 0, days)
	return s.leases.ListExpiringBetween(ctx, realtorID, start, end)
}

// Stats buckets the realtor's expiring leases by horizon and by
// expiration month. Results are cached briefly when a cache client is
// configured; the dedup ledger itself is never cached.
func (s *Service) Stats(ctx context.Context, realtorID uuid.UUID, days int) (*model.ReminderStats, error) {
	key := fmt.Sprintf("reminders:stats:%s:%d", realtorID, days)
	if s.statsCache != nil {
		var cached model.ReminderStats
		ok, err := s.statsCache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		} else if ok {
			return &cached, nil
		}
	}

	leases, err := s.ListExpiring(ctx, realtorID, days)
	if err != nil {
		return nil, err
	}

	today := s.today()
	stats := &model.ReminderStats{
		TotalExpiring: len(leases),
		ByMonth:       make(map[string]int),
	}
	for _, lease := range leases {
		until := int(lease.EndDate.Sub(today).Hours() / 24)
		switch {
		case until <= 30:
			stats.Expiring30Days++
		case until <= 60:
			stats.Expiring60Days++
		case until <= 90:
			stats.Expiring90Days++
		}
		stats.ByMonth[lease.EndDate.Format("2006-01")]++
	}

	if s.statsCache != nil {
		if err := s.statsCache.SetJSON(ctx, key, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

// today truncates the current time to a calendar date in the configured
// timezone; horizon matching is date equality, time of day is irrelevant.
func (s *Service) today() time.Time {
	now := s.now().In(s.cfg.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
}

func validateRecipients(lease *model.LeaseWithRelations) error {
	if lease.Landlord.ID == uuid.Nil || lease.Realtor.ID == uuid.Nil {
		return fmt.Errorf("missing landlord or realtor contact for lease %s", lease.ID)
	}
	if lease.Landlord.Email == "" || lease.Realtor.Email == "" {
		return fmt.Errorf("missing email addresses for lease %s", lease.ID)
	}
	return nil
}
