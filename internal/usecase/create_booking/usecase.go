package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
	"github.com/m04kA/SMC-ClassReservation/pkg/keyedqueue"
)

const (
	operationName = "create_booking"

	// bookingWindow количество месяцев, начиная с текущего, открытых для записи.
	// В них же ищутся активные записи на тот же язык.
	bookingWindow = 3
)

// UseCase use case для создания бронирования
type UseCase struct {
	repo         ReservationRepository
	feed         ScheduleFeed
	executor     SerialExecutor
	locker       EmployeeLocker
	identity     IdentityResolver
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// feed может быть nil: тогда слоты не сверяются с календарём.
func NewUseCase(
	repo ReservationRepository,
	feed ScheduleFeed,
	executor SerialExecutor,
	locker EmployeeLocker,
	identity IdentityResolver,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}

	return &UseCase{
		repo:         repo,
		feed:         feed,
		executor:     executor,
		locker:       locker,
		identity:     identity,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Чтение, проверки и перезапись коллекции выполняются одной задачей
// в очереди ключа (месяц, тип активности), поэтому проверки вместимости и
// дубликатов не гоняются с параллельными запросами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: employee=%s, type=%s, date=%s, slot=%d, language=%s, mode=%s",
		req.EmployeeID, req.ActivityType, req.Date, req.Slot, req.Details.Language, req.Details.Mode)

	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата должна попадать в окно записи
	if err := checkBookingWindow(req.Date, uc.timeProvider.Now(), uc.config.Location); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Слот должен быть открыт в календаре
	if err := uc.checkSchedule(ctx, req); err != nil {
		return nil, err
	}

	// 4. Разрешаем личность сотрудника
	identity := uc.identity.Resolve(ctx, req.EmployeeID, req.Email)
	month := req.Date[:len(domain.MonthFormat)]

	// 5. Для обучения: блокировка по сотруднику и проверка языка в других месяцах
	if req.ActivityType == domain.ActivityEducation {
		unlock, err := uc.lockEmployee(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to acquire employee lock: %v", ErrStoreUnavailable, err)
		}
		defer unlock()

		if err := uc.checkLanguageInOtherMonths(ctx, identity, month, req.Details.Language); err != nil {
			return nil, err
		}
	}

	// 6. Чтение, проверки и запись в очереди ключа коллекции
	var created domain.Reservation
	key := domain.CollectionKey(month, req.ActivityType)

	err := uc.executor.Do(ctx, key, func(jobCtx context.Context) error {
		// 6.1. Загружаем коллекцию месяца заново, без кэша
		collection, err := uc.repo.LoadOrEmpty(jobCtx, month, req.ActivityType)
		if err != nil {
			return uc.mapRepoError("load", month, err)
		}
		records := collection.Records(req.ActivityType)

		// 6.2. Дубликат (сотрудник, дата, слот, тип)
		if hasDuplicate(records, identity, req.Date, req.Slot) {
			uc.logger.Warn("CreateBooking: employee=%s already booked %s slot %d", identity.CanonicalID, req.Date, req.Slot)
			return ErrDuplicateBooking
		}

		if req.ActivityType == domain.ActivityEducation {
			// 6.3. Язык уже забронирован в этом месяце
			if hasLanguageBooking(records, identity, req.Details.Language) {
				uc.logger.Warn("CreateBooking: employee=%s already has an active %s booking", identity.CanonicalID, req.Details.Language)
				return ErrLanguageAlreadyBooked
			}

			// 6.4. Вместимость слота
			taken := occupancy(records, req.Date, req.Slot, req.Details.Language, req.Details.Mode)
			capacity := req.Details.Mode.Capacity()
			if taken >= capacity {
				uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", taken, capacity)
				return ErrSlotFull
			}
			uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", taken, capacity)
		}

		// 6.5. Создаём запись
		now := uc.timeProvider.Now()
		created = uc.buildReservation(req, identity, now, collection)
		collection.Append(created)
		collection.LastUpdated = now

		// 6.6. Перезаписываем коллекцию целиком
		if err := uc.repo.SaveMonth(jobCtx, collection, req.ActivityType); err != nil {
			return uc.mapRepoError("save", month, err)
		}

		return nil
	})
	if err != nil {
		return nil, uc.mapExecutorError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	return &Response{
		ID:           created.ID,
		EmployeeID:   created.EmployeeID,
		ActivityType: created.ActivityType,
		Date:         created.Date,
		Slot:         created.Slot,
	}, nil
}

// checkSchedule сверяет слот с календарём, если он подключен
func (uc *UseCase) checkSchedule(ctx context.Context, req *Request) error {
	if uc.feed == nil {
		return nil
	}

	schedule, err := uc.feed.DaySchedule(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read schedule for date=%s: %v", req.Date, err)
		return fmt.Errorf("%w: schedule lookup: %v", ErrInternal, err)
	}

	var open bool
	switch req.ActivityType {
	case domain.ActivityEducation:
		open = schedule.IsEducationSlotOpen(req.Details.Language, req.Details.Mode, req.Slot)
	case domain.ActivityRecording:
		open = schedule.IsRecordingSlotOpen(req.Details.Language, req.Slot)
	}
	if !open {
		uc.logger.Warn("CreateBooking: slot %d on %s is not open for %s %s", req.Slot, req.Date, req.ActivityType, req.Details.Language)
		return fmt.Errorf("%w: %s slot %d", ErrSlotClosed, req.Date, req.Slot)
	}
	return nil
}

// lockEmployee блокирует сотрудника по каноническому и исходному идентификатору.
// Ключи берутся в отсортированном порядке.
func (uc *UseCase) lockEmployee(ctx context.Context, identity domain.Identity) (func(), error) {
	keys := []string{"employee:" + identity.CanonicalID}
	if identity.RawID != "" && identity.RawID != identity.CanonicalID {
		keys = append(keys, "employee:"+identity.RawID)
	}
	sort.Strings(keys)

	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, key := range keys {
		unlock, err := uc.locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// checkLanguageInOtherMonths ищет активную запись на тот же язык в окне месяцев.
// Целевой месяц проверяется внутри задачи очереди.
func (uc *UseCase) checkLanguageInOtherMonths(ctx context.Context, identity domain.Identity, targetMonth string, language domain.Language) error {
	for _, month := range domain.MonthWindow(uc.timeProvider.Now().In(uc.config.Location), bookingWindow) {
		if month == targetMonth {
			continue
		}

		collection, err := uc.repo.LoadMonth(ctx, month, domain.ActivityEducation)
		if errors.Is(err, reservations.ErrCollectionNotFound) {
			continue
		}
		if err != nil {
			return uc.mapRepoError("load", month, err)
		}

		if hasLanguageBooking(collection.Education, identity, language) {
			uc.logger.Warn("CreateBooking: employee=%s already has an active %s booking in %s",
				identity.CanonicalID, language, month)
			return ErrLanguageAlreadyBooked
		}
	}
	return nil
}

func (uc *UseCase) buildReservation(req *Request, identity domain.Identity, now time.Time, collection *domain.MonthlyCollection) domain.Reservation {
	id := newRecordID(now)
	for collection.IndexOf(req.ActivityType, id) != -1 {
		id = newRecordID(now)
	}

	return domain.Reservation{
		ID:           id,
		EmployeeID:   identity.CanonicalID,
		Name:         preferResolved(identity.Resolved, identity.Name, req.Name),
		Department:   preferResolved(identity.Resolved, identity.Department, req.Department),
		Position:     preferResolved(identity.Resolved, identity.Position, req.Position),
		ActivityType: req.ActivityType,
		Date:         req.Date,
		Slot:         req.Slot,
		Details:      req.Details,
		SubmittedAt:  now,
		Status:       domain.StatusActive,
		Notes:        req.Notes,
	}
}

// newRecordID генерирует id вида "<unix-millis>-<8 hex>"
func newRecordID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

func preferResolved(resolved bool, canonical, supplied string) string {
	if resolved && canonical != "" {
		return canonical
	}
	return strings.TrimSpace(supplied)
}

func (uc *UseCase) mapRepoError(op, month string, err error) error {
	if errors.Is(err, reservations.ErrStoreUnavailable) {
		uc.logger.Error("CreateBooking: store unavailable on %s month=%s: %v", op, month, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	uc.logger.Error("CreateBooking: failed to %s month=%s: %v", op, month, err)
	return fmt.Errorf("%w: failed to %s month %s: %v", ErrInternal, op, month, err)
}

// mapExecutorError оставляет ошибки usecase как есть и переводит ошибки очереди
func (uc *UseCase) mapExecutorError(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateBooking),
		errors.Is(err, ErrLanguageAlreadyBooked),
		errors.Is(err, ErrSlotFull),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, keyedqueue.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("CreateBooking: request was not processed: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: unexpected error: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.IncReservationOutcome(operationName, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrSlotClosed):
		return "slot_closed"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrLanguageAlreadyBooked):
		return "language_booked"
	case errors.Is(err, ErrSlotFull):
		return "slot_full"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
