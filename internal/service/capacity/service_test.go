package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
)

const (
	packageID = int64(5)
	plannerID = int64(2)
)

var day = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

type stubPackages struct{}

func (stubPackages) GetPackage(_ context.Context, id int64) (*domain.Package, error) {
	if id != packageID {
		return nil, packageservice.ErrPackageNotFound
	}
	return &domain.Package{ID: id, PlannerID: plannerID, IsActive: true}, nil
}

func newService() *Service {
	return NewService(memstore.New().Capacity(), stubPackages{}, nil, logger.NewNop())
}

func TestGetCapacityWithoutRecordsDefaultsToOne(t *testing.T) {
	svc := newService()

	c, err := svc.GetCapacity(context.Background(), packageID, day)

	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalSlots)
	assert.Equal(t, 0, c.BookedSlots)
	assert.Equal(t, 1, c.AvailableSlots())
}

func TestReserveAndReleaseSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SetDefaultCapacity(ctx, plannerID, packageID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ReserveSlot(ctx, packageID, day))
	require.NoError(t, svc.ReserveSlot(ctx, packageID, day))

	err = svc.ReserveSlot(ctx, packageID, day)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, domain.ReasonNoSlots, domain.ReasonOf(err))

	c, err := svc.GetCapacity(ctx, packageID, day)
	require.NoError(t, err)
	assert.Equal(t, 2, c.BookedSlots)

	require.NoError(t, svc.ReleaseSlot(ctx, packageID, day))
	require.NoError(t, svc.ReleaseSlot(ctx, packageID, day))
	assert.ErrorIs(t, svc.ReleaseSlot(ctx, packageID, day), ErrNothingToRelease)
}

func TestGetCapacityRangeMatchesSingleLookups(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SetDefaultCapacity(ctx, plannerID, packageID, 3)
	require.NoError(t, err)
	_, err = svc.SetDateCapacity(ctx, plannerID, packageID, day.AddDate(0, 0, 2), 0)
	require.NoError(t, err)
	require.NoError(t, svc.ReserveSlot(ctx, packageID, day.AddDate(0, 0, 1)))

	end := day.AddDate(0, 0, 4)
	rng, err := svc.GetCapacityRange(ctx, packageID, day, end)
	require.NoError(t, err)
	require.Len(t, rng, 5)

	for d := day; !d.After(end); d = d.AddDate(0, 0, 1) {
		single, err := svc.GetCapacity(ctx, packageID, d)
		require.NoError(t, err)
		assert.Equal(t, single, rng[domain.DateKey(d)], domain.DateKey(d))
	}
}

func TestSetDateCapacityBelowBooked(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SetDateCapacity(ctx, plannerID, packageID, day, 2)
	require.NoError(t, err)
	require.NoError(t, svc.ReserveSlot(ctx, packageID, day))
	require.NoError(t, svc.ReserveSlot(ctx, packageID, day))

	_, err = svc.SetDateCapacity(ctx, plannerID, packageID, day, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCapacityManagementRequiresPlanner(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SetDefaultCapacity(ctx, 999, packageID, 2)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = svc.SetDefaultCapacity(ctx, plannerID, 404, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.SetDefaultCapacity(ctx, plannerID, packageID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
