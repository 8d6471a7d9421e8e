package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/ptr"
)

const (
	plannerID = int64(7)
	clientID  = int64(100)
	packageID = int64(1)
)

type stubPackages struct{}

func (stubPackages) GetPackage(_ context.Context, id int64) (*domain.Package, error) {
	if id != packageID {
		return nil, packageservice.ErrPackageNotFound
	}
	return &domain.Package{ID: id, PlannerID: plannerID, IsActive: true}, nil
}

type fixture struct {
	store    *memstore.Store
	capacity *capacity.Service
	svc      *Service
}

func newFixture() *fixture {
	log := logger.NewNop()
	store := memstore.New()
	capSvc := capacity.NewService(store.Capacity(), stubPackages{}, nil, log)
	return &fixture{
		store:    store,
		capacity: capSvc,
		svc:      NewService(store.Bookings(), stubPackages{}, capSvc, store.TxManager(), log),
	}
}

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func (f *fixture) book(t *testing.T, client int64, day string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.capacity.ReserveSlot(ctx, packageID, date(day)))
	b, err := f.store.Bookings().Create(ctx, &domain.Booking{
		PackageID:   packageID,
		ClientID:    client,
		WeddingDate: date(day),
		Location:    "Old Manor",
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func TestGetByIDAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, clientID, "2025-12-01", domain.StatusPending)

	resp, err := f.svc.GetByID(ctx, b.ID, clientID)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", resp.WeddingDate)
	assert.Equal(t, "pending", resp.Status)

	_, err = f.svc.GetByID(ctx, b.ID, plannerID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, 999)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 42, clientID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetClientBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, clientID, "2025-12-01", domain.StatusPending)
	f.book(t, clientID, "2025-12-10", domain.StatusConfirmed)
	f.book(t, 200, "2025-12-05", domain.StatusPending)

	resp, err := f.svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{UserID: clientID, ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "2025-12-10", resp.Bookings[0].WeddingDate)

	resp, err = f.svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{UserID: clientID, ClientID: clientID, Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{UserID: clientID, ClientID: clientID, Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{UserID: 200, ClientID: clientID})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestGetPackageBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, clientID, "2025-12-01", domain.StatusPending)
	f.book(t, 200, "2025-12-05", domain.StatusCancelled)
	f.book(t, 300, "2025-12-09", domain.StatusConfirmed)

	resp, err := f.svc.GetPackageBookings(ctx, &models.GetPackageBookingsRequest{UserID: plannerID, PackageID: packageID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = f.svc.GetPackageBookings(ctx, &models.GetPackageBookingsRequest{
		UserID:           plannerID,
		PackageID:        packageID,
		StartDate:        ptr.Ptr(date("2025-12-02")),
		EndDate:          ptr.Ptr(date("2025-12-31")),
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "2025-12-05", resp.Bookings[0].WeddingDate)

	_, err = f.svc.GetPackageBookings(ctx, &models.GetPackageBookingsRequest{
		UserID:    plannerID,
		PackageID: packageID,
		StartDate: ptr.Ptr(date("2025-12-31")),
		EndDate:   ptr.Ptr(date("2025-12-01")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetPackageBookings(ctx, &models.GetPackageBookingsRequest{UserID: clientID, PackageID: packageID})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestPurgeReleasesSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, clientID, "2025-12-01", domain.StatusConfirmed)

	require.NoError(t, f.svc.Purge(ctx, b.ID))

	c, err := f.capacity.GetCapacity(ctx, packageID, date("2025-12-01"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.BookedSlots)

	_, err = f.store.Bookings().GetByID(ctx, b.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, f.svc.Purge(ctx, b.ID), domain.ErrNotFound)
}

func TestPurgeCompletedKeepsCounter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, clientID, "2025-12-01", domain.StatusCompleted)

	require.NoError(t, f.svc.Purge(ctx, b.ID))

	c, err := f.capacity.GetCapacity(ctx, packageID, date("2025-12-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.BookedSlots)
}
