package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	RecordID   string  `json:"recordId"`
	EmployeeID string  `json:"employeeId"`
	Email      string  `json:"email,omitempty"`
	Reason     *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	RecordID string `json:"recordId"`
	Status   string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest() *cancelBooking.Request {
	return &cancelBooking.Request{
		RecordID:   r.RecordID,
		EmployeeID: r.EmployeeID,
		Email:      r.Email,
		Reason:     r.Reason,
	}
}
