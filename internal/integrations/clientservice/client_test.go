package clientservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/clients/9", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetClient(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"id":9,"full_name":"Anna","email":"anna@example.com","is_active":true}`)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	client, err := c.GetClient(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "Anna", client.FullName)
	assert.True(t, client.IsActive)
}

func TestExistsNotFound(t *testing.T) {
	srv := newServer(t, http.StatusNotFound, `{"code":404,"message":"not found"}`)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	ok, err := c.Exists(context.Background(), 9)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetClientUnexpectedStatus(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "upstream down")
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := c.GetClient(context.Background(), 9)

	assert.ErrorIs(t, err, ErrInvalidResponse)
}
