package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// ReservationRepository интерфейс хранилища коллекций месяца
type ReservationRepository interface {
	LoadMonth(ctx context.Context, month string, activityType domain.ActivityType) (*domain.MonthlyCollection, error)
	LoadOrEmpty(ctx context.Context, month string, activityType domain.ActivityType) (*domain.MonthlyCollection, error)
	SaveMonth(ctx context.Context, collection *domain.MonthlyCollection, activityType domain.ActivityType) error
}

// ScheduleFeed календарь открытых слотов; nil означает, что день не опубликован
type ScheduleFeed interface {
	DaySchedule(ctx context.Context, date string) (*domain.DaySchedule, error)
}

// SerialExecutor выполняет функции строго по одной на ключ
type SerialExecutor interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EmployeeLocker блокировка по сотруднику
type EmployeeLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// IdentityResolver интерфейс разрешения личности сотрудника
type IdentityResolver interface {
	Resolve(ctx context.Context, rawID, email string) domain.Identity
}

// Metrics интерфейс метрик результатов бронирования
type Metrics interface {
	IncReservationOutcome(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
