package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/pkg/ptr"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)

	if req.EmployeeID == "" && req.Email == "" {
		return fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if !req.ActivityType.IsValid() {
		return fmt.Errorf("%w: unknown activityType %q", ErrInvalidInput, req.ActivityType)
	}

	if _, err := domain.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Slot < domain.MinSlot || req.Slot > domain.MaxSlot {
		return fmt.Errorf("%w: slot must be between %d and %d", ErrInvalidInput, domain.MinSlot, domain.MaxSlot)
	}

	if err := validateDetails(req.ActivityType, req.Details); err != nil {
		return err
	}

	if utf8.RuneCountInString(ptr.Value(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// checkBookingWindow отклоняет прошедшие даты и месяцы за пределами окна записи
func checkBookingWindow(date string, now time.Time, loc *time.Location) error {
	now = now.In(loc)
	today := now.Format(domain.DateFormat)
	if date < today {
		return fmt.Errorf("%w: %s is in the past (today is %s)", ErrDateOutOfRange, date, today)
	}

	month := date[:len(domain.MonthFormat)]
	for _, m := range domain.MonthWindow(now, bookingWindow) {
		if m == month {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is beyond the next %d months", ErrDateOutOfRange, date, bookingWindow-1)
}

// validateDetails проверяет, что details соответствуют типу активности
func validateDetails(activityType domain.ActivityType, d domain.Details) error {
	if !d.Language.IsValid() {
		return fmt.Errorf("%w: unknown language %q", ErrInvalidInput, d.Language)
	}

	if activityType == domain.ActivityRecording {
		if d.Mode != "" || d.Category != "" {
			return fmt.Errorf("%w: recording details accept only language", ErrInvalidInput)
		}
		return nil
	}

	if !d.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, d.Mode)
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, d.Category)
	}

	return nil
}

// hasDuplicate проверяет наличие активной записи сотрудника на тот же (дата, слот)
func hasDuplicate(records []domain.Reservation, identity domain.Identity, date string, slot int) bool {
	for i := range records {
		r := &records[i]
		if r.IsActive() && r.Date == date && r.Slot == slot && identity.Matches(r.EmployeeID) {
			return true
		}
	}
	return false
}

// hasLanguageBooking проверяет наличие активной записи обучения сотрудника на язык
func hasLanguageBooking(records []domain.Reservation, identity domain.Identity, language domain.Language) bool {
	for i := range records {
		r := &records[i]
		if r.IsActive() && r.Details.Language == language && identity.Matches(r.EmployeeID) {
			return true
		}
	}
	return false
}

// occupancy количество активных записей на (дата, слот, язык, формат)
func occupancy(records []domain.Reservation, date string, slot int, language domain.Language, mode domain.Mode) int {
	count := 0
	for i := range records {
		if records[i].Occupies(date, slot, language, mode) {
			count++
		}
	}
	return count
}
