package models

import (
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// GetEmployeeBookingsRequest запрос на получение бронирований сотрудника
type GetEmployeeBookingsRequest struct {
	EmployeeID string `json:"employeeId,omitempty"`
	Email      string `json:"email,omitempty"`
	Month      string `json:"month,omitempty"` // YYYY-MM; без месяца берутся текущий и два следующих
}

// GetBookingRequest запрос на получение одного бронирования
type GetBookingRequest struct {
	RecordID   string
	EmployeeID string
	Email      string
}

// DetailsResponse параметры активности
type DetailsResponse struct {
	Language string `json:"language"`
	Mode     string `json:"mode,omitempty"`
	Category string `json:"category,omitempty"`
}

// BookingResponse бронирование сотрудника
type BookingResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	Name         string          `json:"name"`
	Department   string          `json:"department,omitempty"`
	Position     string          `json:"position,omitempty"`
	ActivityType string          `json:"activityType"`
	Date         string          `json:"date"`
	Slot         int             `json:"slot"`
	Details      DetailsResponse `json:"details"`
	SubmittedAt  time.Time       `json:"submittedAt"`
	Status       string          `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	CanceledAt   *time.Time      `json:"canceledAt,omitempty"`
	CancelReason *string         `json:"cancelReason,omitempty"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) BookingResponse {
	return BookingResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Name:         r.Name,
		Department:   r.Department,
		Position:     r.Position,
		ActivityType: string(r.ActivityType),
		Date:         r.Date,
		Slot:         r.Slot,
		Details: DetailsResponse{
			Language: string(r.Details.Language),
			Mode:     string(r.Details.Mode),
			Category: string(r.Details.Category),
		},
		SubmittedAt:  r.SubmittedAt,
		Status:       string(domain.NormalizeStatus(r.Status)),
		Notes:        r.Notes,
		CanceledAt:   r.CanceledAt,
		CancelReason: r.CancelReason,
	}
}
