package reminder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func testToday() time.Time {
	return time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
}

type fakeLeaseRepo struct {
	repository.LeaseRepository

	// leases the scan can find, matched on end date equality
	leases []*model.LeaseWithRelations

	listExpiringOnFn      func(ctx context.Context, date time.Time) ([]*model.LeaseWithRelations, error)
	listExpiringBetweenFn func(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error)
	getWithRelationsFn    func(ctx context.Context, id uuid.UUID) (*model.LeaseWithRelations, error)
	getFn                 func(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error)

	scannedDates []time.Time
}

func (f *fakeLeaseRepo) ListExpiringOn(ctx context.Context, date time.Time) ([]*model.LeaseWithRelations, error) {
	f.scannedDates = append(f.scannedDates, date)
	if f.listExpiringOnFn != nil {
		return f.listExpiringOnFn(ctx, date)
	}
	var out []*model.LeaseWithRelations
	for _, l := range f.leases {
		if l.EndDate.Equal(date) && l.ReminderEligible() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListExpiringBetween(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error) {
	if f.listExpiringBetweenFn != nil {
		return f.listExpiringBetweenFn(ctx, realtorID, start, end)
	}
	var out []*model.LeaseWithRelations
	for _, l := range f.leases {
		if l.RealtorID == realtorID && !l.EndDate.Before(start) && !l.EndDate.After(end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*model.LeaseWithRelations, error) {
	if f.getWithRelationsFn != nil {
		return f.getWithRelationsFn(ctx, id)
	}
	for _, l := range f.leases {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLeaseRepo) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error) {
	if f.getFn != nil {
		return f.getFn(ctx, realtorID, id)
	}
	for _, l := range f.leases {
		if l.ID == id && l.RealtorID == realtorID {
			lease := l.Lease
			return &lease, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeLedger struct {
	records map[string]*model.ReminderRecord

	existsFn func(ctx context.Context, leaseID uuid.UUID, days int) (bool, error)
	insertFn func(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error)

	inserts int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*model.ReminderRecord)}
}

func ledgerKey(leaseID uuid.UUID, days int) string {
	return fmt.Sprintf("%s:%d", leaseID, days)
}

func (f *fakeLedger) Exists(ctx context.Context, leaseID uuid.UUID, days int) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, leaseID, days)
	}
	_, ok := f.records[ledgerKey(leaseID, days)]
	return ok, nil
}

func (f *fakeLedger) Insert(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error) {
	f.inserts++
	if f.insertFn != nil {
		return f.insertFn(ctx, record)
	}
	key := ledgerKey(record.LeaseID, record.ReminderDays)
	if _, ok := f.records[key]; ok {
		return model.ReminderDuplicate, nil
	}
	record.ID = uuid.New()
	f.records[key] = record
	return model.ReminderInserted, nil
}

func (f *fakeLedger) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*model.ReminderRecord, error) {
	var out []*model.ReminderRecord
	for _, r := range f.records {
		if r.LeaseID == leaseID {
			out = append(out, r)
		}
	}
	return out, nil
}

type sentCall struct {
	leaseID uuid.UUID
	days    int
}

type fakeMailer struct {
	verifyErr error
	sendFn    func(lease *model.LeaseWithRelations, days int) error

	sent []sentCall
}

func (f *fakeMailer) Verify() error { return f.verifyErr }

func (f *fakeMailer) SendExpirationReminder(ctx context.Context, lease *model.LeaseWithRelations, days int) error {
	if f.sendFn != nil {
		if err := f.sendFn(lease, days); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, sentCall{leaseID: lease.ID, days: days})
	return nil
}

func newTestService(leases *fakeLeaseRepo, ledger *fakeLedger, mailer *fakeMailer, cfg Config) *Service {
	svc := NewService(leases, ledger, mailer, cfg, nil, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func expiringLease(realtorID uuid.UUID, endOffsetDays int) *model.LeaseWithRelations {
	return &model.LeaseWithRelations{
		Lease: model.Lease{
			Base:        model.Base{ID: uuid.New()},
			RealtorID:   realtorID,
			EndDate:     testToday().AddDate(0, 0, endOffsetDays),
			MonthlyRent: 1850,
			LeaseType:   model.LeaseTypeFixed,
			Status:      model.LeaseStatusActive,
		},
		Property: model.Property{
			Base:  model.Base{ID: uuid.New()},
			Title: "Oak Street Duplex",
		},
		Tenant: model.Contact{
			Base:      model.Base{ID: uuid.New()},
			FirstName: "Tia", LastName: "Moss", Email: "tia@example.com",
		},
		Landlord: model.Contact{
			Base:      model.Base{ID: uuid.New()},
			FirstName: "Lena", LastName: "Ortiz", Email: "lena@example.com",
		},
		Realtor: model.Realtor{
			Base:      model.Base{ID: realtorID},
			FirstName: "Ray", LastName: "Chen", Email: "ray@example.com",
		},
	}
}

func TestSweepSendsOncePerHorizon(t *testing.T) {
	realtorID := uuid.New()
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{
		expiringLease(realtorID, 90),
		expiringLease(realtorID, 60),
		expiringLease(realtorID, 30),
	}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	summary := result.Summary()
	assert.Equal(t, 3, summary.TotalProcessed)
	assert.Equal(t, 3, summary.Sent)
	assert.Equal(t, 0, summary.AlreadySent)
	assert.Equal(t, 0, summary.Errors)
	assert.Len(t, mailer.sent, 3)
	assert.Len(t, ledger.records, 3)

	// horizons scanned in fixed order
	require.Len(t, leases.scannedDates, 3)
	assert.Equal(t, testToday().AddDate(0, 0, 90), leases.scannedDates[0])
	assert.Equal(t, testToday().AddDate(0, 0, 60), leases.scannedDates[1])
	assert.Equal(t, testToday().AddDate(0, 0, 30), leases.scannedDates[2])
}

func TestSweepIsIdempotent(t *testing.T) {
	realtorID := uuid.New()
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{
		expiringLease(realtorID, 30),
		expiringLease(realtorID, 60),
		expiringLease(realtorID, 90),
		expiringLease(realtorID, 45),
	}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	first, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Summary().Sent)

	second, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	summary := second.Summary()
	assert.Equal(t, 3, summary.TotalProcessed)
	assert.Equal(t, 0, summary.Sent)
	assert.Equal(t, 3, summary.AlreadySent)

	// the +45 lease never matches a horizon, nothing new was delivered
	// or recorded by the second run
	assert.Len(t, mailer.sent, 3)
	assert.Len(t, ledger.records, 3)
}

func TestSweepVerifyFailureAbortsBeforeScanning(t *testing.T) {
	leases := &fakeLeaseRepo{}
	mailer := &fakeMailer{verifyErr: errors.New("connection refused")}
	svc := newTestService(leases, newFakeLedger(), mailer, Config{})

	result, err := svc.CheckAndSendReminders(context.Background())
	assert.Nil(t, result)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.StatusCode())
	assert.Empty(t, leases.scannedDates)
}

func TestSweepScanFaultSkipsOnlyThatHorizon(t *testing.T) {
	realtorID := uuid.New()
	backing := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{
		expiringLease(realtorID, 90),
		expiringLease(realtorID, 60),
		expiringLease(realtorID, 30),
	}}
	backing.listExpiringOnFn = func(ctx context.Context, date time.Time) ([]*model.LeaseWithRelations, error) {
		if date.Equal(testToday().AddDate(0, 0, 90)) {
			return nil, errors.New("query timeout")
		}
		var out []*model.LeaseWithRelations
		for _, l := range backing.leases {
			if l.EndDate.Equal(date) {
				out = append(out, l)
			}
		}
		return out, nil
	}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	svc := newTestService(backing, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.Error(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.Summary().Sent)
	require.Contains(t, result.ScanErrors, 90)
	assert.Contains(t, result.ScanErrors[90], "query timeout")
	assert.Len(t, mailer.sent, 2)
}

func TestSweepLeaseFailureDoesNotStopOthers(t *testing.T) {
	realtorID := uuid.New()
	first := expiringLease(realtorID, 60)
	broken := expiringLease(realtorID, 60)
	last := expiringLease(realtorID, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{first, broken, last}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{sendFn: func(lease *model.LeaseWithRelations, days int) error {
		if lease.ID == broken.ID {
			return errors.New("smtp 550 mailbox unavailable")
		}
		return nil
	}}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	summary := result.Summary()
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Errors)

	// the failed lease gets no ledger row so the next sweep retries it
	exists, _ := ledger.Exists(context.Background(), broken.ID, 60)
	assert.False(t, exists)
	assert.Len(t, ledger.records, 2)
}

func TestSweepMissingLandlordEmailSkipsWithoutRecording(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 30)
	lease.Landlord.Email = ""
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, model.OutcomeError, result.Outcomes[0].Status)
	assert.Contains(t, result.Outcomes[0].Error, "email")
	assert.Empty(t, mailer.sent)
	assert.Empty(t, ledger.records)
}

func TestSweepLedgerCheckFaultLenientStillSends(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 30)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	ledger.existsFn = func(ctx context.Context, leaseID uuid.UUID, days int) (bool, error) {
		return false, errors.New("read replica down")
	}
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, model.OutcomeSent, result.Outcomes[0].Status)
	assert.Len(t, mailer.sent, 1)
}

func TestSweepLedgerCheckFaultStrictErrorsOut(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 30)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	ledger.existsFn = func(ctx context.Context, leaseID uuid.UUID, days int) (bool, error) {
		return false, errors.New("read replica down")
	}
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: false})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, model.OutcomeError, result.Outcomes[0].Status)
	assert.Empty(t, mailer.sent)
}

func TestSweepInsertConflictCountsAsSent(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	ledger.insertFn = func(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error) {
		return model.ReminderDuplicate, nil
	}
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, model.OutcomeSent, result.Outcomes[0].Status)
}

func TestSweepRecordFaultStillReportsSent(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	ledger.insertFn = func(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error) {
		return 0, errors.New("connection reset")
	}
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	result, err := svc.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, model.OutcomeSent, result.Outcomes[0].Status)
	assert.Len(t, mailer.sent, 1)
}

func TestTriggerManualBypassesDedupCheck(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	svc := newTestService(leases, ledger, mailer, Config{LenientDedupCheck: true})

	// already recorded, a sweep would skip it
	_, err := ledger.Insert(context.Background(), &model.ReminderRecord{
		LeaseID: lease.ID, ReminderDays: 60, SentAt: testNow,
	})
	require.NoError(t, err)

	err = svc.TriggerManual(context.Background(), realtorID, lease.ID, 60)
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
	// the duplicate insert is tolerated and the ledger still has one row
	assert.Len(t, ledger.records, 1)
}

func TestTriggerManualRejectsInvalidHorizon(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	mailer := &fakeMailer{}
	svc := newTestService(leases, newFakeLedger(), mailer, Config{})

	err := svc.TriggerManual(context.Background(), realtorID, lease.ID, 45)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Empty(t, mailer.sent)
}

func TestTriggerManualHidesForeignLease(t *testing.T) {
	owner := uuid.New()
	lease := expiringLease(owner, 60)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	mailer := &fakeMailer{}
	svc := newTestService(leases, newFakeLedger(), mailer, Config{})

	err := svc.TriggerManual(context.Background(), uuid.New(), lease.ID, 60)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.Empty(t, mailer.sent)
}

func TestTriggerManualMissingEmailIsBadRequest(t *testing.T) {
	realtorID := uuid.New()
	lease := expiringLease(realtorID, 30)
	lease.Landlord.Email = ""
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{lease}}
	mailer := &fakeMailer{}
	svc := newTestService(leases, newFakeLedger(), mailer, Config{})

	err := svc.TriggerManual(context.Background(), realtorID, lease.ID, 30)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Empty(t, mailer.sent)
}

func TestHistoryUnknownLease(t *testing.T) {
	svc := newTestService(&fakeLeaseRepo{}, newFakeLedger(), &fakeMailer{}, Config{})

	_, err := svc.History(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestStatsBucketsByHorizonAndMonth(t *testing.T) {
	realtorID := uuid.New()
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{
		expiringLease(realtorID, 10),
		expiringLease(realtorID, 30),
		expiringLease(realtorID, 45),
		expiringLease(realtorID, 80),
		expiringLease(uuid.New(), 20), // another realtor, invisible
	}}
	svc := newTestService(leases, newFakeLedger(), &fakeMailer{}, Config{})

	stats, err := svc.Stats(context.Background(), realtorID, 90)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalExpiring)
	assert.Equal(t, 2, stats.Expiring30Days)
	assert.Equal(t, 1, stats.Expiring60Days)
	assert.Equal(t, 1, stats.Expiring90Days)

	total := 0
	for _, n := range stats.ByMonth {
		total += n
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 1, stats.ByMonth[testToday().AddDate(0, 0, 10).Format("2006-01")])
}

func TestListExpiringScopesToRealtor(t *testing.T) {
	realtorID := uuid.New()
	mine := expiringLease(realtorID, 30)
	leases := &fakeLeaseRepo{leases: []*model.LeaseWithRelations{
		mine,
		expiringLease(uuid.New(), 30),
	}}
	svc := newTestService(leases, newFakeLedger(), &fakeMailer{}, Config{})

	out, err := svc.ListExpiring(context.Background(), realtorID, 90)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mine.ID, out[0].ID)
}
