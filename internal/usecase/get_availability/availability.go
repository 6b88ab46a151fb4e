package get_availability

import (
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// SlotKey ключ группы слотов в ответе
func SlotKey(language domain.Language, mode domain.Mode) string {
	return string(language) + ":" + string(mode)
}

// ComputeAvailability считает занятость слотов дня по активным записям обучения.
//
// Для каждой пары (язык, формат) возвращаются все слоты 1..8. Слот доступен,
// если число активных записей меньше вместимости формата и слот открыт в
// расписании дня. schedule == nil означает, что расписание не применяется.
func ComputeAvailability(collection *domain.MonthlyCollection, date string, schedule *domain.DaySchedule) map[string][]domain.SlotAvailability {
	type groupKey struct {
		language domain.Language
		mode     domain.Mode
		slot     int
	}

	counts := make(map[groupKey]int)
	if collection != nil {
		for i := range collection.Education {
			r := &collection.Education[i]
			if !r.IsActive() || r.Date != date {
				continue
			}
			counts[groupKey{r.Details.Language, r.Details.Mode, r.Slot}]++
		}
	}

	result := make(map[string][]domain.SlotAvailability, len(domain.AllLanguages)*len(domain.AllModes))
	for _, language := range domain.AllLanguages {
		for _, mode := range domain.AllModes {
			maxCount := mode.Capacity()
			slots := make([]domain.SlotAvailability, 0, domain.MaxSlot)

			for slot := domain.MinSlot; slot <= domain.MaxSlot; slot++ {
				current := counts[groupKey{language, mode, slot}]
				open := schedule == nil || schedule.IsEducationSlotOpen(language, mode, slot)

				slots = append(slots, domain.SlotAvailability{
					Slot:         slot,
					Available:    open && current < maxCount,
					CurrentCount: current,
					MaxCount:     maxCount,
				})
			}

			result[SlotKey(language, mode)] = slots
		}
	}

	return result
}

// bookedLanguages языки обучения, на которые у сотрудника есть активные записи
func bookedLanguages(collections []*domain.MonthlyCollection, identity domain.Identity) []domain.Language {
	seen := make(map[domain.Language]bool)
	for _, c := range collections {
		for i := range c.Education {
			r := &c.Education[i]
			if r.IsActive() && identity.Matches(r.EmployeeID) {
				seen[r.Details.Language] = true
			}
		}
	}

	languages := make([]domain.Language, 0, len(seen))
	for _, l := range domain.AllLanguages {
		if seen[l] {
			languages = append(languages, l)
		}
	}
	return languages
}
