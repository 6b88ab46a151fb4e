package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{ID: "1757000000000-abcdef12", EmployeeID: req.EmployeeID}, nil
}

const validBody = `{
	"employeeId": "E100",
	"name": "Kim",
	"activityType": "education",
	"date": "2025-09-10",
	"slot": 3,
	"details": {"language": "japanese", "mode": "small-group", "category": "new"}
}`

func serve(t *testing.T, uc CreateBookingUseCase, body string) (*httptest.ResponseRecorder, handlers.ErrorResponse) {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var errResp handlers.ErrorResponse
	if rec.Code >= 400 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	}
	return rec, errResp
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec, _ := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"recordId":"1757000000000-abcdef12"}`, rec.Body.String())
	assert.Equal(t, "japanese", string(uc.got.Details.Language))
	assert.Equal(t, 3, uc.got.Slot)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeValidation},
		{createBooking.ErrDuplicateBooking, http.StatusConflict, handlers.CodeDuplicateBooking},
		{createBooking.ErrLanguageAlreadyBooked, http.StatusConflict, handlers.CodeLanguageAlreadyBooked},
		{createBooking.ErrSlotFull, http.StatusConflict, handlers.CodeSlotFull},
		{createBooking.ErrSlotClosed, http.StatusConflict, handlers.CodeSlotClosed},
		{createBooking.ErrStoreUnavailable, http.StatusServiceUnavailable, handlers.CodeStoreUnavailable},
		{createBooking.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec, errResp := serve(t, &fakeUseCase{err: fmt.Errorf("%w: details", tc.err)}, validBody)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, errResp.Code)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}

func TestHandle_SlotFullMessage(t *testing.T) {
	_, errResp := serve(t, &fakeUseCase{err: createBooking.ErrSlotFull}, validBody)
	assert.Equal(t, "해당 차수는 정원이 마감되었습니다", errResp.Message)
}

func TestHandle_DateOutOfRangeMessage(t *testing.T) {
	rec, errResp := serve(t, &fakeUseCase{err: createBooking.ErrDateOutOfRange}, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeValidation, errResp.Code)
	assert.Contains(t, errResp.Message, "신청 가능한 기간이 아닙니다")
}

func TestHandle_BoundaryValidation(t *testing.T) {
	cases := map[string]string{
		"bad json":      `{"employeeId":`,
		"unknown field": `{"employeeId":"E100","seat":1}`,
		"slot zero":     strings.Replace(validBody, `"slot": 3`, `"slot": 0`, 1),
		"slot nine":     strings.Replace(validBody, `"slot": 3`, `"slot": 9`, 1),
		"bad date":      strings.Replace(validBody, `2025-09-10`, `2025/09/10`, 1),
		"details shape": strings.Replace(validBody, `{"language": "japanese", "mode": "small-group", "category": "new"}`, `"japanese"`, 1),
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec, errResp := serve(t, uc, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, handlers.CodeValidation, errResp.Code)
			assert.Nil(t, uc.got)
		})
	}
}
