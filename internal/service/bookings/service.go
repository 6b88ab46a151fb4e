package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
	"github.com/m04kA/SMC-ClassReservation/internal/service/bookings/models"
)

// defaultWindow количество месяцев, начиная с текущего, когда месяц не указан
const defaultWindow = 3

// Service сервис для чтения бронирований сотрудника
type Service struct {
	repo         ReservationRepository
	identity     IdentityResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo ReservationRepository,
	identity IdentityResolver,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		identity:     identity,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetEmployeeBookings возвращает активные бронирования сотрудника, новые первыми
func (s *Service) GetEmployeeBookings(ctx context.Context, req *models.GetEmployeeBookingsRequest) (*models.BookingListResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.TrimSpace(req.Email)
	req.Month = strings.TrimSpace(req.Month)

	s.logger.Info("GetEmployeeBookings: employee=%s, email=%s, month=%s", req.EmployeeID, req.Email, req.Month)

	if req.EmployeeID == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: employeeId or email is required", ErrInvalidInput)
	}

	months := domain.MonthWindow(s.timeProvider.Now(), defaultWindow)
	if req.Month != "" {
		if _, err := domain.ParseMonth(req.Month); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		months = []string{req.Month}
	}

	identity := s.identity.Resolve(ctx, req.EmployeeID, req.Email)

	var found []domain.Reservation
	err := s.scan(ctx, "GetEmployeeBookings", months, func(r *domain.Reservation) bool {
		if r.IsActive() && identity.Matches(r.EmployeeID) {
			found = append(found, *r)
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].SubmittedAt.After(found[j].SubmittedAt)
	})

	result := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(found)),
		Total:    len(found),
	}
	for i := range found {
		result.Bookings = append(result.Bookings, models.FromDomainReservation(&found[i]))
	}

	s.logger.Info("GetEmployeeBookings: found %d bookings for employee=%s", result.Total, identity.CanonicalID)
	return result, nil
}

// GetBooking возвращает бронирование сотрудника по идентификатору записи,
// включая отменённые. Чужая запись не отличается от отсутствующей.
func (s *Service) GetBooking(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	req.RecordID = strings.TrimSpace(req.RecordID)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.TrimSpace(req.Email)

	s.logger.Info("GetBooking: record=%s, employee=%s", req.RecordID, req.EmployeeID)

	if req.RecordID == "" {
		return nil, fmt.Errorf("%w: recordId is required", ErrInvalidInput)
	}
	if req.EmployeeID == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: employeeId or email is required", ErrInvalidInput)
	}

	identity := s.identity.Resolve(ctx, req.EmployeeID, req.Email)
	months := domain.MonthWindow(s.timeProvider.Now(), defaultWindow)

	var found *domain.Reservation
	err := s.scan(ctx, "GetBooking", months, func(r *domain.Reservation) bool {
		if r.ID != req.RecordID {
			return false
		}
		if identity.Matches(r.EmployeeID) {
			rec := *r
			found = &rec
		} else {
			s.logger.Warn("GetBooking: record=%s belongs to another employee (requested by %s)", req.RecordID, identity.CanonicalID)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, fmt.Errorf("%w: record %s", ErrBookingNotFound, req.RecordID)
	}

	resp := models.FromDomainReservation(found)
	return &resp, nil
}

// scan обходит коллекции обоих типов в указанных месяцах.
// visit возвращает true, чтобы остановить обход.
func (s *Service) scan(ctx context.Context, op string, months []string, visit func(r *domain.Reservation) bool) error {
	for _, month := range months {
		for _, activityType := range domain.AllActivityTypes {
			collection, err := s.repo.LoadMonth(ctx, month, activityType)
			if errors.Is(err, reservations.ErrCollectionNotFound) {
				continue
			}
			if err != nil {
				if errors.Is(err, reservations.ErrStoreUnavailable) {
					s.logger.Error("%s: store unavailable for month=%s: %v", op, month, err)
					return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
				}
				s.logger.Error("%s: failed to load month=%s type=%s: %v", op, month, activityType, err)
				return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
			}

			records := collection.Records(activityType)
			for i := range records {
				if visit(&records[i]) {
					return nil
				}
			}
		}
	}
	return nil
}
