package blackouts

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
	"github.com/m04kA/SMC-PlannerBookingService/pkg/ptr"
)

const (
	packageID = int64(5)
	plannerID = int64(2)
)

var july4 = time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

type stubPackages struct{}

func (stubPackages) GetPackage(_ context.Context, id int64) (*domain.Package, error) {
	if id != packageID && id != packageID+1 {
		return nil, packageservice.ErrPackageNotFound
	}
	return &domain.Package{ID: id, PlannerID: plannerID, IsActive: true}, nil
}

func newService() *Service {
	return NewService(memstore.New().Blackouts(), stubPackages{}, logger.NewNop())
}

func TestAddAndCheckBlackout(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, plannerID, packageID, july4, ptr.Ptr("holiday"))
	require.NoError(t, err)

	blocked, reason, err := svc.IsBlackedOut(ctx, packageID, july4)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, "holiday", reason)

	blocked, _, err = svc.IsBlackedOut(ctx, packageID, july4.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestAddDuplicateBlackout(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, plannerID, packageID, july4, nil)
	require.NoError(t, err)

	_, err = svc.Add(ctx, plannerID, packageID, july4, ptr.Ptr("again"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBlackout)
}

func TestDefaultReason(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, plannerID, packageID, july4, ptr.Ptr(""))
	require.NoError(t, err)

	_, reason, err := svc.IsBlackedOut(ctx, packageID, july4)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonBlackoutDefault, reason)
}

func TestRemoveIsNoOpSafe(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	b, err := svc.Add(ctx, plannerID, packageID, july4, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, plannerID, packageID, b.ID))
	require.NoError(t, svc.Remove(ctx, plannerID, packageID, b.ID))

	blocked, _, err := svc.IsBlackedOut(ctx, packageID, july4)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestRemoveForeignPackageBlackout(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	b, err := svc.Add(ctx, plannerID, packageID+1, july4, nil)
	require.NoError(t, err)

	err = svc.Remove(ctx, plannerID, packageID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddRequiresPlanner(t *testing.T) {
	_, err := newService().Add(context.Background(), 77, packageID, july4, nil)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestListInvalidRange(t *testing.T) {
	_, err := newService().List(context.Background(), packageID, july4, july4.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
