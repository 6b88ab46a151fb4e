package get_booking

import (
	"context"

	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings/models"
)

type BookingService interface {
	GetBooking(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
