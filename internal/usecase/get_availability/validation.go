package get_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// validateRequest валидирует запрос и заполняет месяц по умолчанию
func validateRequest(req *Request) error {
	req.Date = strings.TrimSpace(req.Date)
	req.Month = strings.TrimSpace(req.Month)

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Month == "" {
		req.Month = domain.MonthOf(date)
		return nil
	}

	if _, err := domain.ParseMonth(req.Month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Month != domain.MonthOf(date) {
		return fmt.Errorf("%w: date %s is outside month %s", ErrInvalidInput, req.Date, req.Month)
	}

	return nil
}
