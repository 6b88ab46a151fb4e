package domain

import (
	"strings"
	"time"
)

// ActivityType тип активности
type ActivityType string

const (
	ActivityEducation ActivityType = "education"
	ActivityRecording ActivityType = "recording"
)

// IsValid проверяет, что тип активности известен
func (t ActivityType) IsValid() bool {
	return t == ActivityEducation || t == ActivityRecording
}

// Language язык занятия
type Language string

const (
	LanguageKoreanEnglish Language = "korean-english"
	LanguageJapanese      Language = "japanese"
	LanguageChinese       Language = "chinese"
)

func (l Language) IsValid() bool {
	for _, known := range AllLanguages {
		if l == known {
			return true
		}
	}
	return false
}

// Mode формат занятия
type Mode string

const (
	ModeOneToOne   Mode = "one-to-one"
	ModeSmallGroup Mode = "small-group"
)

func (m Mode) IsValid() bool {
	return m == ModeOneToOne || m == ModeSmallGroup
}

// Capacity максимальное количество активных бронирований на (дата, слот, язык, формат)
func (m Mode) Capacity() int {
	switch m {
	case ModeOneToOne:
		return OneToOneCapacity
	case ModeSmallGroup:
		return SmallGroupCapacity
	default:
		return 0
	}
}

// Category категория обучения
type Category string

const (
	CategoryNew             Category = "new"
	CategoryRequalification Category = "requalification"
	CategoryCommon          Category = "common"
	CategorySpecial         Category = "special"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryNew, CategoryRequalification, CategoryCommon, CategorySpecial:
		return true
	default:
		return false
	}
}

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusActive   ReservationStatus = "active"
	StatusCanceled ReservationStatus = "canceled"
)

// NormalizeStatus приводит статус из хранилища к каноническому виду.
// Старые записи без статуса считаются активными.
func NormalizeStatus(s ReservationStatus) ReservationStatus {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "", "active":
		return StatusActive
	case "canceled", "cancelled":
		return StatusCanceled
	default:
		return ReservationStatus(strings.ToLower(strings.TrimSpace(string(s))))
	}
}

// Details параметры, зависящие от типа активности.
// Для education обязательны language, mode и category, для recording только language.
type Details struct {
	Language Language `json:"language"`
	Mode     Mode     `json:"mode,omitempty"`
	Category Category `json:"category,omitempty"`
}

// Reservation одно забронированное место в слоте
type Reservation struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employeeId"`
	Name         string            `json:"name"`
	Department   string            `json:"department,omitempty"`
	Position     string            `json:"position,omitempty"`
	ActivityType ActivityType      `json:"activityType"`
	Date         string            `json:"date"` // "2025-09-10"
	Slot         int               `json:"slot"`
	Details      Details           `json:"details"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	Status       ReservationStatus `json:"status"`
	Notes        *string           `json:"notes,omitempty"`

	CanceledAt   *time.Time `json:"canceledAt,omitempty"`
	CancelReason *string    `json:"cancelReason,omitempty"`
}

// IsActive returns true if the reservation occupies its slot
func (r *Reservation) IsActive() bool {
	return NormalizeStatus(r.Status) == StatusActive
}

// IsCanceled returns true if the reservation was soft-deleted
func (r *Reservation) IsCanceled() bool {
	return NormalizeStatus(r.Status) == StatusCanceled
}

// Occupies проверяет, что активная запись занимает место в (дата, слот, язык, формат)
func (r *Reservation) Occupies(date string, slot int, language Language, mode Mode) bool {
	return r.IsActive() &&
		r.Date == date &&
		r.Slot == slot &&
		r.Details.Language == language &&
		r.Details.Mode == mode
}

// Month месяц записи в формате YYYY-MM
func (r *Reservation) Month() string {
	if len(r.Date) < len(MonthFormat) {
		return ""
	}
	return r.Date[:len(MonthFormat)]
}

// CancelMode способ отмены бронирования
type CancelMode string

const (
	// CancelModeSoft запись остаётся в коллекции со статусом canceled
	CancelModeSoft CancelMode = "soft"
	// CancelModeHard запись удаляется из коллекции
	CancelModeHard CancelMode = "hard"
)

func (m CancelMode) IsValid() bool {
	return m == CancelModeSoft || m == CancelModeHard
}
