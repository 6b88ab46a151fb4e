package identity

import (
	"context"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// EmployeeDirectory интерфейс справочника сотрудников
type EmployeeDirectory interface {
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FetchAllEmployees(ctx context.Context) ([]domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
