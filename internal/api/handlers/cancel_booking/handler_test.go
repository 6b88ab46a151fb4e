package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	cancelBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

type fakeUseCase struct {
	got *cancelBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &cancelBooking.Response{RecordID: req.RecordID, Mode: domain.CancelModeSoft}, nil
}

func serve(uc CancelBookingUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/cancel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"recordId":"r1","employeeId":"E100","reason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recordId":"r1","status":"canceled"}`, rec.Body.String())
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "sick", *uc.got.Reason)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{cancelBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeValidation},
		{cancelBooking.ErrTooLateToCancel, http.StatusBadRequest, handlers.CodeTooLateToCancel},
		{cancelBooking.ErrNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{cancelBooking.ErrAlreadyCanceled, http.StatusConflict, handlers.CodeAlreadyCanceled},
		{cancelBooking.ErrStoreUnavailable, http.StatusServiceUnavailable, handlers.CodeStoreUnavailable},
		{cancelBooking.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.err}, `{"recordId":"r1","employeeId":"E100"}`)
			assert.Equal(t, tc.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
