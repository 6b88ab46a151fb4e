package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ClassReservation/internal/usecase/get_availability"
)

const (
	msgInvalidQuery = "month, date 값이 올바르지 않습니다 (YYYY-MM, YYYY-MM-DD)"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?month=YYYY-MM&date=YYYY-MM-DD&employeeId=&email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq := &getAvailability.Request{
		Month:      query.Get("month"),
		Date:       query.Get("date"),
		EmployeeID: query.Get("employeeId"),
		Email:      query.Get("email"),
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid query: month=%q, date=%q, error=%v", useCaseReq.Month, useCaseReq.Date, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, total_requests=%d",
		result.Date, result.TotalRequests)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
