package get_employee_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "employeeId 또는 email 이 필요합니다"
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

// Handle GET /api/v1/bookings?employeeId=&email=&month=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq := &models.GetEmployeeBookingsRequest{
		EmployeeID: query.Get("employeeId"),
		Email:      query.Get("email"),
		Month:      query.Get("month"),
	}

	result, err := h.service.GetEmployeeBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: employee_id=%s, error=%v",
				serviceReq.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: employee_id=%s, count=%d",
		serviceReq.EmployeeID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
