package get_availability_range

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	calendar domain.Calendar
	err      error
}

func (f *fakeService) GetAvailabilityRange(_ context.Context, _ int64, _, _ time.Time) (domain.Calendar, error) {
	return f.calendar, f.err
}

func router(svc AvailabilityService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/packages/{packageId}/availability/range", NewHandler(svc, nopLogger{}).Handle)
	return r
}

func TestHandle_Calendar(t *testing.T) {
	d1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	svc := &fakeService{calendar: domain.Calendar{
		domain.DateKey(d1): {Date: d1, Status: domain.AvailabilityBlocked, Reason: "Planner vacation", IsBlocked: true},
		domain.DateKey(d2): {Date: d2, Status: domain.AvailabilityAvailable, Available: true, TotalSlots: 2, AvailableSlots: 2},
	}}

	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/packages/1/availability/range?start=2025-06-10&end=2025-06-11", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.RangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-10", resp.StartDate)
	assert.Equal(t, "2025-06-11", resp.EndDate)
	require.Len(t, resp.Dates, 2)

	blocked := resp.Dates["2025-06-10"]
	assert.False(t, blocked.Available)
	assert.True(t, blocked.IsBlocked)
	assert.Equal(t, "Planner vacation", blocked.Reason)
	assert.Nil(t, blocked.TotalSlots)

	free := resp.Dates["2025-06-11"]
	assert.True(t, free.Available)
	require.NotNil(t, free.AvailableSlots)
	assert.Equal(t, 2, *free.AvailableSlots)
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{name: "bad package id", url: "/packages/abc/availability/range?start=2025-06-10&end=2025-06-11", status: http.StatusBadRequest},
		{name: "missing end", url: "/packages/1/availability/range?start=2025-06-10", status: http.StatusBadRequest},
		{name: "bad start format", url: "/packages/1/availability/range?start=10-06-2025&end=2025-06-11", status: http.StatusUnprocessableEntity},
		{name: "reversed range", url: "/packages/1/availability/range?start=2025-06-11&end=2025-06-10",
			err: domain.Reject(domain.ErrInvalidInput, "end date must not be before start date"), status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router(&fakeService{err: tt.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
