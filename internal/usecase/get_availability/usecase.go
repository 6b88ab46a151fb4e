package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
)

// restrictionWindow количество месяцев (текущий и следующий) для languageRestrictions
const restrictionWindow = 2

// UseCase use case для получения доступности слотов
type UseCase struct {
	repo         ReservationRepository
	feed         ScheduleFeed
	identity     IdentityResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// feed может быть nil: тогда учитывается только вместимость.
func NewUseCase(
	repo ReservationRepository,
	feed ScheduleFeed,
	identity IdentityResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		feed:         feed,
		identity:     identity,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: month=%s, date=%s, employee=%s", req.Month, req.Date, req.EmployeeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем коллекцию обучения за месяц
	collection, err := uc.repo.LoadOrEmpty(ctx, req.Month, domain.ActivityEducation)
	if err != nil {
		return nil, uc.mapRepoError(err, req.Month)
	}

	// 3. Получаем расписание дня
	var schedule *domain.DaySchedule
	if uc.feed != nil {
		schedule, err = uc.feed.DaySchedule(ctx, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get schedule for %s: %v", req.Date, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if schedule == nil {
			// День не опубликован: все слоты закрыты
			schedule = &domain.DaySchedule{Date: req.Date}
		}
	}

	// 4. Считаем занятость
	response := &Response{
		Date:          req.Date,
		Slots:         ComputeAvailability(collection, req.Date, schedule),
		TotalRequests: collection.ActiveCount(domain.ActivityEducation),
	}

	// 5. Языковые ограничения сотрудника (информативно, окончательная проверка при бронировании)
	if req.EmployeeID != "" || req.Email != "" {
		restrictions, err := uc.languageRestrictions(ctx, req)
		if err != nil {
			return nil, err
		}
		response.LanguageRestrictions = restrictions
	}
	if response.LanguageRestrictions == nil {
		response.LanguageRestrictions = []domain.Language{}
	}

	uc.logger.Info("GetAvailability: date=%s, totalRequests=%d, restrictions=%v",
		req.Date, response.TotalRequests, response.LanguageRestrictions)

	return response, nil
}

func (uc *UseCase) languageRestrictions(ctx context.Context, req *Request) ([]domain.Language, error) {
	identity := uc.identity.Resolve(ctx, req.EmployeeID, req.Email)

	months := domain.MonthWindow(uc.timeProvider.Now(), restrictionWindow)
	collections := make([]*domain.MonthlyCollection, 0, len(months))
	for _, month := range months {
		c, err := uc.repo.LoadOrEmpty(ctx, month, domain.ActivityEducation)
		if err != nil {
			return nil, uc.mapRepoError(err, month)
		}
		collections = append(collections, c)
	}

	return bookedLanguages(collections, identity), nil
}

func (uc *UseCase) mapRepoError(err error, month string) error {
	if errors.Is(err, reservations.ErrStoreUnavailable) {
		uc.logger.Error("GetAvailability: store unavailable for month=%s: %v", month, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	uc.logger.Error("GetAvailability: failed to load month=%s: %v", month, err)
	return fmt.Errorf("%w: failed to load month %s: %v", ErrInternal, month, err)
}
