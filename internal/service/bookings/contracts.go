package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// ReservationRepository интерфейс хранилища коллекций месяца
type ReservationRepository interface {
	LoadMonth(ctx context.Context, month string, activityType domain.ActivityType) (*domain.MonthlyCollection, error)
}

// IdentityResolver интерфейс разрешения личности сотрудника
type IdentityResolver interface {
	Resolve(ctx context.Context, rawID, email string) domain.Identity
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
