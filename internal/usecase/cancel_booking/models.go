package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// Config параметры отмены
type Config struct {
	Cutoff    time.Duration        // минимальное время до начала занятия
	Mode      domain.CancelMode    // soft | hard
	SlotTimes domain.SlotTimeTable // время начала слотов
	Location  *time.Location       // часовой пояс расписания
}

// Request модель запроса на отмену бронирования
type Request struct {
	RecordID   string
	EmployeeID string
	Email      string
	Reason     *string
}

// Response модель ответа на отмену
type Response struct {
	RecordID     string
	ActivityType domain.ActivityType
	Date         string
	Slot         int
	Mode         domain.CancelMode
}
