package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	createBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "요청 본문이 올바르지 않습니다"
	msgInvalidSlot           = "차수는 1부터 8 사이여야 합니다"
	msgInvalidDate           = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgInvalidInput          = "신청 정보가 올바르지 않습니다"
	msgDateOutOfRange        = "신청 가능한 기간이 아닙니다. 이번 달부터 두 달 뒤까지의 날짜만 신청할 수 있습니다"
	msgDuplicateBooking      = "이미 같은 날짜와 차수에 신청한 내역이 있습니다"
	msgLanguageAlreadyBooked = "이미 해당 언어로 신청한 교육이 있습니다"
	msgSlotFull              = "해당 차수는 정원이 마감되었습니다"
	msgSlotClosed            = "해당 날짜와 차수는 신청을 받지 않습니다"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверки формата на границе API
	if req.Slot < domain.MinSlot || req.Slot > domain.MaxSlot {
		h.logger.Warn("POST /bookings - Invalid slot: employee_id=%s, slot=%d", req.EmployeeID, req.Slot)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}
	if _, err := domain.ParseDate(req.Date); err != nil {
		h.logger.Warn("POST /bookings - Invalid date: employee_id=%s, date=%q", req.EmployeeID, req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateOutOfRange):
			h.logger.Warn("POST /bookings - Date outside booking window: employee_id=%s, date=%s", req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: employee_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: employee_id=%s, date=%s, slot=%d", req.EmployeeID, req.Date, req.Slot)
			handlers.RespondConflict(w, handlers.CodeDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrLanguageAlreadyBooked):
			h.logger.Warn("POST /bookings - Language already booked: employee_id=%s, language=%s", req.EmployeeID, req.Details.Language)
			handlers.RespondConflict(w, handlers.CodeLanguageAlreadyBooked, msgLanguageAlreadyBooked)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%d, language=%s, mode=%s", req.Date, req.Slot, req.Details.Language, req.Details.Mode)
			handlers.RespondConflict(w, handlers.CodeSlotFull, msgSlotFull)

		case errors.Is(err, createBooking.ErrSlotClosed):
			h.logger.Warn("POST /bookings - Slot not open: date=%s, slot=%d, type=%s, language=%s", req.Date, req.Slot, req.ActivityType, req.Details.Language)
			handlers.RespondConflict(w, handlers.CodeSlotClosed, msgSlotClosed)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: employee_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: employee_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: record_id=%s, employee_id=%s", result.ID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, CreateBookingResponse{RecordID: result.ID})
}
