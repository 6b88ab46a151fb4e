package create_booking

import (
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	createBooking "github.com/m04kA/SMC-ClassReservation/internal/usecase/create_booking"
)

// DetailsRequest параметры активности
type DetailsRequest struct {
	Language string `json:"language"`
	Mode     string `json:"mode,omitempty"`
	Category string `json:"category,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EmployeeID   string         `json:"employeeId"`
	Email        string         `json:"email,omitempty"`
	Name         string         `json:"name"`
	Department   string         `json:"department,omitempty"`
	Position     string         `json:"position,omitempty"`
	ActivityType string         `json:"activityType"`
	Date         string         `json:"date"` // "2025-09-10"
	Slot         int            `json:"slot"` // 1..8
	Details      DetailsRequest `json:"details"`
	Notes        *string        `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	RecordID string `json:"recordId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		EmployeeID:   r.EmployeeID,
		Email:        r.Email,
		Name:         r.Name,
		Department:   r.Department,
		Position:     r.Position,
		ActivityType: domain.ActivityType(r.ActivityType),
		Date:         r.Date,
		Slot:         r.Slot,
		Details: domain.Details{
			Language: domain.Language(r.Details.Language),
			Mode:     domain.Mode(r.Details.Mode),
			Category: domain.Category(r.Details.Category),
		},
		Notes: r.Notes,
	}
}
