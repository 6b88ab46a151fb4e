package cancel_booking

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
	req.RecordID = strings.TrimSpace(req.RecordID)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.TrimSpace(req.Email)

	if req.RecordID == "" {
		return fmt.Errorf("%w: recordId is required", ErrInvalidInput)
	}

	if req.EmployeeID == "" && req.Email == "" {
		return fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(ptr.Value(req.Reason)) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	return nil
}

// checkCutoff проверяет, что до начала занятия осталось не меньше cutoff
func checkCutoff(start, now time.Time, cutoff time.Duration) error {
	if left := start.Sub(now); left < cutoff {
		return fmt.Errorf("%w: class starts in %s, cancellation closes %s before start",
			ErrTooLateToCancel, left.Truncate(time.Minute), cutoff)
	}
	return nil
}
