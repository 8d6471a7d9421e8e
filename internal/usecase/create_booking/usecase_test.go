package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/availability"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/blackouts"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/preparation"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/ptr"
)

const (
	plannerID = int64(7)
	packageID = int64(1)
	otherPkg  = int64(2)
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type stubPackages struct{}

func (stubPackages) GetPackage(_ context.Context, id int64) (*domain.Package, error) {
	switch id {
	case packageID, otherPkg:
		return &domain.Package{ID: id, PlannerID: plannerID, IsActive: true}, nil
	}
	return nil, packageservice.ErrPackageNotFound
}

type stubClients struct{}

func (stubClients) Exists(_ context.Context, id int64) (bool, error) {
	return id < 1000, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *recordingMetrics) RecordBooking(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (lock.ReleaseFunc, error) {
	return nil, lock.ErrLockTimeout
}

type failingCreate struct {
	BookingRepository
}

func (failingCreate) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, errors.New("insert failed")
}

type fixture struct {
	store     *memstore.Store
	capacity  *capacity.Service
	blackouts *blackouts.Service
	publisher *recordingPublisher
	metrics   *recordingMetrics
	uc        *UseCase
}

func newFixture() *fixture {
	log := logger.NewNop()
	store := memstore.New()
	packages := stubPackages{}

	capSvc := capacity.NewService(store.Capacity(), packages, nil, log)
	blackoutSvc := blackouts.NewService(store.Blackouts(), packages, log)
	prepSvc := preparation.NewService(store.Bookings(), log)
	availSvc := availability.NewService(packages, capSvc, blackoutSvc, prepSvc, 0, log)

	publisher := &recordingPublisher{}
	metrics := &recordingMetrics{}
	uc := NewUseCase(store.Bookings(), packages, stubClients{}, availSvc, capSvc,
		lock.Noop{}, publisher, metrics, store.TxManager(), log)
	uc.timeProvider = fixedTime{}

	return &fixture{
		store:     store,
		capacity:  capSvc,
		blackouts: blackoutSvc,
		publisher: publisher,
		metrics:   metrics,
		uc:        uc,
	}
}

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func request(clientID, pkgID int64, day string) *Request {
	return &Request{
		ClientID:    clientID,
		PackageID:   pkgID,
		WeddingDate: date(day),
		WeddingTime: ptr.Ptr("16:30"),
		Location:    "  Old Manor  ",
	}
}

func (f *fixture) booked(t *testing.T, pkgID int64, day string) int {
	t.Helper()
	c, err := f.capacity.GetCapacity(context.Background(), pkgID, date(day))
	require.NoError(t, err)
	return c.BookedSlots
}

func TestCreateBookingReservesSlotAtPending(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(100, packageID, "2025-12-01"))

	require.NoError(t, err)
	b := resp.Booking
	assert.NotZero(t, b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "Old Manor", b.Location)
	require.NotNil(t, b.WeddingTime)
	assert.Equal(t, "16:30", b.WeddingTime.String())
	assert.Equal(t, 1, f.booked(t, packageID, "2025-12-01"))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, eventbus.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, 1, f.metrics.outcomes["ok"])
}

func TestCreateBookingSecondRequestExceedsCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(100, packageID, "2025-12-01"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(101, packageID, "2025-12-01"))

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, domain.ReasonNoSlots, domain.ReasonOf(err))
	assert.Equal(t, 1, f.booked(t, packageID, "2025-12-01"))
	assert.Equal(t, 1, f.metrics.outcomes["CapacityExceeded"])
}

func TestCreateBookingSameClientSameDateAcrossPackages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(100, packageID, "2025-12-01"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(100, otherPkg, "2025-12-01"))

	assert.ErrorIs(t, err, domain.ErrDuplicateBooking)
	assert.Equal(t, 0, f.booked(t, otherPkg, "2025-12-01"))
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
		kind error
	}{
		{"today", request(100, packageID, "2025-06-01"), domain.ErrInvalidDate},
		{"past", request(100, packageID, "2025-05-01"), domain.ErrInvalidDate},
		{"bad time", func() *Request {
			r := request(100, packageID, "2025-12-01")
			r.WeddingTime = ptr.Ptr("25:99")
			return r
		}(), domain.ErrInvalidDate},
		{"empty location", func() *Request {
			r := request(100, packageID, "2025-12-01")
			r.Location = "   "
			return r
		}(), domain.ErrInvalidInput},
		{"unknown package", request(100, 99, "2025-12-01"), domain.ErrNotFound},
		{"unknown client", request(5000, packageID, "2025-12-01"), domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
	assert.Empty(t, f.publisher.events)
}

func TestCreateBookingOnBlackoutDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.blackouts.Add(ctx, plannerID, packageID, date("2025-07-04"), ptr.Ptr("holiday"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(100, packageID, "2025-07-04"))

	assert.ErrorIs(t, err, domain.ErrBlackout)
	assert.Equal(t, "holiday", domain.ReasonOf(err))
	assert.Equal(t, 0, f.booked(t, packageID, "2025-07-04"))
}

func TestCreateBookingRollsBackReservationOnInsertFailure(t *testing.T) {
	f := newFixture()
	f.uc.bookingRepo = failingCreate{BookingRepository: f.store.Bookings()}

	_, err := f.uc.Execute(context.Background(), request(100, packageID, "2025-12-01"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.booked(t, packageID, "2025-12-01"))
	assert.Equal(t, 1, f.metrics.outcomes["Internal"])
}

func TestCreateBookingSlotBusy(t *testing.T) {
	f := newFixture()
	f.uc.locker = busyLocker{}

	_, err := f.uc.Execute(context.Background(), request(100, packageID, "2025-12-01"))

	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Equal(t, 0, f.booked(t, packageID, "2025-12-01"))
}

func TestCreateBookingConcurrentRequestsNeverOversubscribe(t *testing.T) {
	const (
		requests = 20
		slots    = 5
	)
	f := newFixture()
	ctx := context.Background()

	_, err := f.capacity.SetDefaultCapacity(ctx, plannerID, packageID, slots)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		exceeded  int
	)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, request(clientID, packageID, "2025-12-01"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrCapacityExceeded):
				exceeded++
			}
		}(int64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, slots, succeeded)
	assert.Equal(t, requests-slots, exceeded)
	assert.Equal(t, slots, f.booked(t, packageID, "2025-12-01"))
}
