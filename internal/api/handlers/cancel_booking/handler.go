package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	cancelBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidInput       = "취소 요청 정보가 올바르지 않습니다"
	msgNotFound           = "신청 내역을 찾을 수 없습니다"
	msgTooLateToCancel    = "취소 가능 기간이 지났습니다"
	msgAlreadyCanceled    = "이미 취소된 신청입니다"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cancelBooking.ErrTooLateToCancel):
			h.logger.Warn("POST /bookings/cancel - Too late to cancel: record_id=%s, employee_id=%s", req.RecordID, req.EmployeeID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeTooLateToCancel, msgTooLateToCancel)

		case errors.Is(err, cancelBooking.ErrNotFound):
			h.logger.Warn("POST /bookings/cancel - Booking not found: record_id=%s, employee_id=%s", req.RecordID, req.EmployeeID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCanceled):
			h.logger.Warn("POST /bookings/cancel - Already canceled: record_id=%s", req.RecordID)
			handlers.RespondConflict(w, handlers.CodeAlreadyCanceled, msgAlreadyCanceled)

		case errors.Is(err, cancelBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/cancel - Store unavailable: record_id=%s, error=%v", req.RecordID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel booking: record_id=%s, error=%v", req.RecordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking canceled successfully: record_id=%s, mode=%s", result.RecordID, result.Mode)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		RecordID: result.RecordID,
		Status:   string(domain.StatusCanceled),
	})
}
