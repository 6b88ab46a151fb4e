package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// Config параметры записи
type Config struct {
	Location *time.Location // часовой пояс расписания, по нему считается "сегодня"
}

// Request модель запроса на создание бронирования
type Request struct {
	EmployeeID   string              // ID сотрудника или логин
	Email        string              // опционально, для поиска в справочнике
	Name         string              // имя сотрудника
	Department   string              // опционально
	Position     string              // опционально
	ActivityType domain.ActivityType // education | recording
	Date         string              // YYYY-MM-DD
	Slot         int                 // 1..8
	Details      domain.Details      // параметры активности
	Notes        *string             // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           string
	EmployeeID   string
	ActivityType domain.ActivityType
	Date         string
	Slot         int
}
