package get_availability

import (
	getAvailability "github.com/m04kA/SMC-ClassReservation/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                 string                    `json:"date"`
	SlotAvailability     map[string][]SlotResponse `json:"slotAvailability"`
	LanguageRestrictions []string                  `json:"languageRestrictions"`
	TotalRequests        int                       `json:"totalRequests"`
}

// SlotResponse занятость одного слота
type SlotResponse struct {
	Slot         int  `json:"slot"`
	Available    bool `json:"available"`
	CurrentCount int  `json:"currentCount"`
	MaxCount     int  `json:"maxCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make(map[string][]SlotResponse, len(resp.Slots))
	for key, list := range resp.Slots {
		converted := make([]SlotResponse, len(list))
		for i, s := range list {
			converted[i] = SlotResponse{
				Slot:         s.Slot,
				Available:    s.Available,
				CurrentCount: s.CurrentCount,
				MaxCount:     s.MaxCount,
			}
		}
		slots[key] = converted
	}

	restrictions := make([]string, len(resp.LanguageRestrictions))
	for i, l := range resp.LanguageRestrictions {
		restrictions[i] = string(l)
	}

	return &AvailabilityResponse{
		Date:                 resp.Date,
		SlotAvailability:     slots,
		LanguageRestrictions: restrictions,
		TotalRequests:        resp.TotalRequests,
	}
}
