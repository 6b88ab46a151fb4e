package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/integrations/employeeservice"
)

// Service разрешает личность вызывающего по справочнику сотрудников.
// Ошибки справочника не пробрасываются: используется идентификатор клиента.
type Service struct {
	directory EmployeeDirectory
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(directory EmployeeDirectory, logger Logger) *Service {
	return &Service{
		directory: directory,
		logger:    logger,
	}
}

// Resolve возвращает личность для пары (rawID, email).
//
// Порядок поиска:
//  1. по email;
//  2. по идентификатору сотрудника в полном справочнике;
//  3. по rawID, похожему на email, в полном справочнике.
func (s *Service) Resolve(ctx context.Context, rawID, email string) domain.Identity {
	rawID = strings.TrimSpace(rawID)
	email = strings.TrimSpace(email)

	fallback := domain.Identity{
		CanonicalID: rawID,
		RawID:       rawID,
		Email:       email,
	}
	if fallback.CanonicalID == "" {
		fallback.CanonicalID = email
	}

	if s.directory == nil {
		return fallback
	}

	// 1. Поиск по email
	if email != "" {
		employee, err := s.directory.FindEmployeeByEmail(ctx, email)
		switch {
		case err == nil && employee != nil:
			return identityFrom(employee, rawID)
		case errors.Is(err, employeeservice.ErrEmployeeNotFound):
			s.logger.Warn("ResolveIdentity: employee with email=%s not found", email)
		case err != nil:
			s.logger.Error("ResolveIdentity: lookup by email=%s failed: %v", email, err)
			return fallback
		}
	}

	if rawID == "" {
		return fallback
	}

	// 2-3. Поиск в полном справочнике
	employees, err := s.directory.FetchAllEmployees(ctx)
	if err != nil {
		s.logger.Error("ResolveIdentity: directory fetch failed for id=%s: %v", rawID, err)
		return fallback
	}

	for i := range employees {
		if employees[i].ID == rawID {
			return identityFrom(&employees[i], rawID)
		}
	}

	if strings.Contains(rawID, "@") {
		for i := range employees {
			if strings.EqualFold(employees[i].Email, rawID) {
				return identityFrom(&employees[i], rawID)
			}
		}
	}

	s.logger.Warn("ResolveIdentity: id=%s not found in directory, using raw id", rawID)
	return fallback
}

func identityFrom(e *domain.Employee, rawID string) domain.Identity {
	if rawID == "" {
		rawID = e.ID
	}
	return domain.Identity{
		CanonicalID: e.ID,
		RawID:       rawID,
		Email:       e.Email,
		Name:        e.Name,
		Department:  e.Department,
		Position:    e.Position,
		Resolved:    true,
	}
}
