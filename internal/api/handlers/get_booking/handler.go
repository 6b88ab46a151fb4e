package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "employeeId 또는 email 이 필요합니다"
	msgNotFound     = "신청 내역을 찾을 수 없습니다"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{recordId}?employeeId=&email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["recordId"]
	query := r.URL.Query()

	serviceReq := &models.GetBookingRequest{
		RecordID:   recordID,
		EmployeeID: query.Get("employeeId"),
		Email:      query.Get("email"),
	}

	// Сервис сам проверит, что запись принадлежит сотруднику
	booking, err := h.service.GetBooking(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id} - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: record_id=%s", recordID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings/{id} - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: record_id=%s, error=%v", recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: record_id=%s, employee_id=%s",
		recordID, booking.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
