package cleanup_package

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
)

var day = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

type stubPackages struct {
	pkg *domain.Package
}

func (s stubPackages) GetPackage(context.Context, int64) (*domain.Package, error) {
	if s.pkg == nil {
		return nil, packageservice.ErrPackageNotFound
	}
	return s.pkg, nil
}

type failingBlackouts struct{}

func (failingBlackouts) DeleteByPackage(context.Context, int64) error {
	return errors.New("connection reset")
}

func seed(t *testing.T, store *memstore.Store, packageID int64) {
	t.Helper()
	ctx := context.Background()
	_, err := store.Capacity().UpsertDefault(ctx, packageID, 3)
	require.NoError(t, err)
	require.NoError(t, store.Capacity().EnsureOverride(ctx, packageID, day, 3))
	_, err = store.Blackouts().Create(ctx, &domain.Blackout{PackageID: packageID, Date: day})
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{PackageID: packageID, ClientID: packageID, WeddingDate: day, Location: "x", Status: domain.StatusConfirmed})
	require.NoError(t, err)
}

func TestCleanupRemovesAvailabilityButKeepsBookings(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seed(t, store, 1)
	seed(t, store, 2)

	uc := NewUseCase(store.Capacity(), store.Blackouts(), stubPackages{pkg: &domain.Package{ID: 1, IsActive: false}},
		store.TxManager(), logger.NewNop())

	require.NoError(t, uc.Execute(ctx, 1))

	_, err := store.Capacity().GetDefault(ctx, 1)
	assert.ErrorIs(t, err, capacity.ErrDefaultNotFound)
	_, err = store.Capacity().GetOverride(ctx, 1, day)
	assert.ErrorIs(t, err, capacity.ErrOverrideNotFound)
	list, err := store.Blackouts().GetByPackageInRange(ctx, 1, day, day)
	require.NoError(t, err)
	assert.Empty(t, list)

	bookings, err := store.Bookings().GetByPackageWithFilter(ctx, domain.PackageBookingsFilter{PackageID: 1})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = store.Capacity().GetDefault(ctx, 2)
	assert.NoError(t, err)
}

func TestCleanupMissingPackage(t *testing.T) {
	store := memstore.New()
	seed(t, store, 1)
	uc := NewUseCase(store.Capacity(), store.Blackouts(), stubPackages{}, store.TxManager(), logger.NewNop())

	require.NoError(t, uc.Execute(context.Background(), 1))
}

func TestCleanupActivePackageRejected(t *testing.T) {
	store := memstore.New()
	seed(t, store, 1)
	uc := NewUseCase(store.Capacity(), store.Blackouts(), stubPackages{pkg: &domain.Package{ID: 1, IsActive: true}},
		store.TxManager(), logger.NewNop())

	err := uc.Execute(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = store.Capacity().GetDefault(context.Background(), 1)
	assert.NoError(t, err)
}

func TestCleanupRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seed(t, store, 1)
	uc := NewUseCase(store.Capacity(), failingBlackouts{}, stubPackages{}, store.TxManager(), logger.NewNop())

	err := uc.Execute(ctx, 1)

	assert.ErrorIs(t, err, ErrInternal)
	_, err = store.Capacity().GetDefault(ctx, 1)
	assert.NoError(t, err)
}
