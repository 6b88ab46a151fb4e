package employeeservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/employees/by-email", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		if r.URL.Query().Get("email") != "kim@corp.example" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(Employee{EmployeeID: "E100", Email: "kim@corp.example", Name: "Kim"})
	})
	mux.HandleFunc("/internal/employees", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Employee{
			{EmployeeID: "E100", Email: "kim@corp.example", Name: "Kim"},
			{EmployeeID: "E200", Email: "lee@corp.example", Name: "Lee"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FindEmployeeByEmail(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, "secret", time.Second, logger.NewNop())

	e, err := client.FindEmployeeByEmail(context.Background(), "kim@corp.example")
	require.NoError(t, err)
	assert.Equal(t, "E100", e.ID)
	assert.Equal(t, "Kim", e.Name)

	_, err = client.FindEmployeeByEmail(context.Background(), "ghost@corp.example")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestClient_FetchAllEmployees(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, "secret", time.Second, logger.NewNop())

	list, err := client.FetchAllEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "E200", list[1].ID)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, logger.NewNop())
	_, err := client.FetchAllEmployees(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

type countingDirectory struct {
	calls int
	err   error
}

func (d *countingDirectory) FindEmployeeByEmail(_ context.Context, _ string) (*domain.Employee, error) {
	return nil, ErrEmployeeNotFound
}

func (d *countingDirectory) FetchAllEmployees(_ context.Context) ([]domain.Employee, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return []domain.Employee{{ID: "E100"}}, nil
}

func TestCachedDirectory_ServesFromCacheUntilExpiry(t *testing.T) {
	now := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	next := &countingDirectory{}
	dir := NewCachedDirectory(next, cache, 5*time.Minute, logger.NewNop())

	for i := 0; i < 3; i++ {
		list, err := dir.FetchAllEmployees(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 1, next.calls)

	now = now.Add(5 * time.Minute)
	_, err := dir.FetchAllEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedDirectory_PropagatesFetchError(t *testing.T) {
	next := &countingDirectory{err: errors.New("down")}
	dir := NewCachedDirectory(next, NewMemoryCache(), time.Minute, logger.NewNop())

	_, err := dir.FetchAllEmployees(context.Background())
	assert.Error(t, err)

	_, err = dir.FindEmployeeByEmail(context.Background(), "x@corp.example")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
