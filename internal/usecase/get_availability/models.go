package get_availability

import "github.com/m04kA/SMC-ClassReservation/internal/domain"

// Request модель запроса доступности слотов
type Request struct {
	Month      string // YYYY-MM, по умолчанию месяц даты
	Date       string // YYYY-MM-DD
	EmployeeID string // опционально, для languageRestrictions
	Email      string // опционально
}

// Response модель ответа с доступностью слотов
type Response struct {
	Date                 string
	Slots                map[string][]domain.SlotAvailability // ключ "<language>:<mode>"
	LanguageRestrictions []domain.Language
	TotalRequests        int
}
