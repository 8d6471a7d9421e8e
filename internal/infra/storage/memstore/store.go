// Package memstore хранилище в памяти с той же семантикой, что и PostgreSQL репозитории:
// те же ошибки, охраняемые инкременты и откат транзакций.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type overrideKey struct {
	packageID int64
	date      time.Time
}

type txKey struct{}

// Store общее состояние всех репозиториев
type Store struct {
	mu sync.Mutex

	defaults  map[int64]domain.DefaultAvailability
	overrides map[overrideKey]domain.DateOverride
	blackouts map[int64]domain.Blackout
	bookings  map[int64]domain.Booking

	nextBlackoutID int64
	nextBookingID  int64

	now func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		defaults:  make(map[int64]domain.DefaultAvailability),
		overrides: make(map[overrideKey]domain.DateOverride),
		blackouts: make(map[int64]domain.Blackout),
		bookings:  make(map[int64]domain.Booking),
		now:       time.Now,
	}
}

// Capacity репозиторий емкости
func (s *Store) Capacity() *CapacityRepository {
	return &CapacityRepository{s: s}
}

// Blackouts репозиторий закрытых дат
func (s *Store) Blackouts() *BlackoutRepository {
	return &BlackoutRepository{s: s}
}

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// TxManager менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

// lock берет мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

type snapshot struct {
	defaults       map[int64]domain.DefaultAvailability
	overrides      map[overrideKey]domain.DateOverride
	blackouts      map[int64]domain.Blackout
	bookings       map[int64]domain.Booking
	nextBlackoutID int64
	nextBookingID  int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		defaults:       make(map[int64]domain.DefaultAvailability, len(s.defaults)),
		overrides:      make(map[overrideKey]domain.DateOverride, len(s.overrides)),
		blackouts:      make(map[int64]domain.Blackout, len(s.blackouts)),
		bookings:       make(map[int64]domain.Booking, len(s.bookings)),
		nextBlackoutID: s.nextBlackoutID,
		nextBookingID:  s.nextBookingID,
	}
	for k, v := range s.defaults {
		snap.defaults[k] = v
	}
	for k, v := range s.overrides {
		snap.overrides[k] = v
	}
	for k, v := range s.blackouts {
		snap.blackouts[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.defaults = snap.defaults
	s.overrides = snap.overrides
	s.blackouts = snap.blackouts
	s.bookings = snap.bookings
	s.nextBlackoutID = snap.nextBlackoutID
	s.nextBookingID = snap.nextBookingID
}

// TxManager сериализует транзакции глобальным мьютексом и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.s.inTx(ctx) {
		return fn(ctx)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	snap := m.s.snapshot()
	err := fn(context.WithValue(ctx, txKey{}, m.s))
	if err != nil {
		m.s.restore(snap)
	}
	return err
}

// DoSerializable в памяти все транзакции и так сериализуемы
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
