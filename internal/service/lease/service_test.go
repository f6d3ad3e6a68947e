package lease

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type fakeLeaseRepo struct {
	repository.LeaseRepository

	created             *model.Lease
	countByStatusFn     func(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) (int, error)
	listExpiringBetween func(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error)
}

func (f *fakeLeaseRepo) Create(ctx context.Context, lease *model.Lease) error {
	lease.ID = uuid.New()
	f.created = lease
	return nil
}

func (f *fakeLeaseRepo) CountByStatus(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) (int, error) {
	return f.countByStatusFn(ctx, realtorID, status)
}

func (f *fakeLeaseRepo) ListExpiringBetween(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error) {
	return f.listExpiringBetween(ctx, realtorID, start, end)
}

type fakePropertyRepo struct {
	repository.PropertyRepository

	properties map[uuid.UUID]*model.Property
	count      int
}

func (f *fakePropertyRepo) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Property, error) {
	if p, ok := f.properties[id]; ok && p.RealtorID == realtorID {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePropertyRepo) Count(ctx context.Context, realtorID uuid.UUID) (int, error) {
	return f.count, nil
}

type fakeContactRepo struct {
	repository.ContactRepository

	contacts map[uuid.UUID]*model.Contact
	count    int
}

func (f *fakeContactRepo) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Contact, error) {
	if c, ok := f.contacts[id]; ok && c.RealtorID == realtorID {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeContactRepo) Count(ctx context.Context, realtorID uuid.UUID) (int, error) {
	return f.count, nil
}

func testFixtures(realtorID uuid.UUID) (*fakePropertyRepo, *fakeContactRepo, *model.CreateLeaseRequest) {
	property := &model.Property{Base: model.Base{ID: uuid.New()}, RealtorID: realtorID}
	tenant := &model.Contact{Base: model.Base{ID: uuid.New()}, RealtorID: realtorID, Type: model.ContactTypeTenant}
	landlord := &model.Contact{Base: model.Base{ID: uuid.New()}, RealtorID: realtorID, Type: model.ContactTypeLandlord}

	properties := &fakePropertyRepo{properties: map[uuid.UUID]*model.Property{property.ID: property}}
	contacts := &fakeContactRepo{contacts: map[uuid.UUID]*model.Contact{tenant.ID: tenant, landlord.ID: landlord}}

	req := &model.CreateLeaseRequest{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		LandlordID:  landlord.ID,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 1850,
		LeaseType:   model.LeaseTypeFixed,
	}
	return properties, contacts, req
}

func TestCreateDefaultsToActive(t *testing.T) {
	realtorID := uuid.New()
	properties, contacts, req := testFixtures(realtorID)
	leases := &fakeLeaseRepo{}
	svc := NewService(leases, properties, contacts)

	lease, err := svc.Create(context.Background(), realtorID, req)
	require.NoError(t, err)
	assert.Equal(t, model.LeaseStatusActive, lease.Status)
	assert.Equal(t, realtorID, lease.RealtorID)
	require.NotNil(t, leases.created)
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	realtorID := uuid.New()
	properties, contacts, req := testFixtures(realtorID)
	req.EndDate = req.StartDate.AddDate(0, -1, 0)
	svc := NewService(&fakeLeaseRepo{}, properties, contacts)

	_, err := svc.Create(context.Background(), realtorID, req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateRejectsWrongContactRole(t *testing.T) {
	realtorID := uuid.New()
	properties, contacts, req := testFixtures(realtorID)
	// swap the two roles
	req.TenantID, req.LandlordID = req.LandlordID, req.TenantID
	svc := NewService(&fakeLeaseRepo{}, properties, contacts)

	_, err := svc.Create(context.Background(), realtorID, req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateRejectsForeignProperty(t *testing.T) {
	realtorID := uuid.New()
	properties, contacts, req := testFixtures(uuid.New())
	svc := NewService(&fakeLeaseRepo{}, properties, contacts)

	_, err := svc.Create(context.Background(), realtorID, req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestDashboardAggregatesCounts(t *testing.T) {
	realtorID := uuid.New()
	properties := &fakePropertyRepo{count: 7}
	contacts := &fakeContactRepo{count: 12}
	leases := &fakeLeaseRepo{
		countByStatusFn: func(ctx context.Context, id uuid.UUID, status model.LeaseStatus) (int, error) {
			assert.Equal(t, model.LeaseStatusActive, status)
			return 5, nil
		},
		listExpiringBetween: func(ctx context.Context, id uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error) {
			assert.Equal(t, realtorID, id)
			return make([]*model.LeaseWithRelations, 2), nil
		},
	}
	svc := NewService(leases, properties, contacts)

	stats, err := svc.Dashboard(context.Background(), realtorID)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Properties)
	assert.Equal(t, 12, stats.Contacts)
	assert.Equal(t, 5, stats.ActiveLeases)
	assert.Equal(t, 2, stats.ExpiringSoon)
}
