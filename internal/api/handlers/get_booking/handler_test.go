package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

type fakeService struct {
	got *models.GetBookingRequest
	err error
}

func (f *fakeService) GetBooking(_ context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: req.RecordID, EmployeeID: "E100", Status: "canceled"}, nil
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{recordId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/bookings/1756800000000-ab12cd34?employeeId=E100")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"canceled"`)
	assert.Equal(t, "1756800000000-ab12cd34", svc.got.RecordID)
	assert.Equal(t, "E100", svc.got.EmployeeID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid", fmt.Errorf("%w: x", bookings.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", fmt.Errorf("%w: x", bookings.ErrBookingNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"unavailable", fmt.Errorf("%w: x", bookings.ErrStoreUnavailable), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/api/v1/bookings/r1?employeeId=E100")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}
