package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
	"github.com/m04kA/SMC-ClassReservation/pkg/keyedqueue"
)

const (
	operationName = "cancel_booking"

	// searchWindow количество месяцев (текущий, +1, +2), в которых ищется бронирование
	searchWindow = 3
)

// UseCase use case для отмены бронирования
type UseCase struct {
	repo         ReservationRepository
	executor     SerialExecutor
	identity     IdentityResolver
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// Незаданные поля config заменяются значениями по умолчанию.
func NewUseCase(
	repo ReservationRepository,
	executor SerialExecutor,
	identity IdentityResolver,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Cutoff <= 0 {
		config.Cutoff = domain.DefaultCancelCutoff
	}
	if !config.Mode.IsValid() {
		config.Mode = domain.CancelModeSoft
	}
	if config.SlotTimes == nil {
		config.SlotTimes = domain.DefaultSlotTimeTable()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	return &UseCase{
		repo:         repo,
		executor:     executor,
		identity:     identity,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: record=%s, employee=%s", req.RecordID, req.EmployeeID)

	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем личность: в записях может быть как канонический, так и сырой id
	identity := uc.identity.Resolve(ctx, req.EmployeeID, req.Email)

	// 3. Перебираем месяцы и типы активности, каждый ключ в своей очереди
	for _, month := range domain.MonthWindow(uc.timeProvider.Now().In(uc.config.Location), searchWindow) {
		for _, activityType := range domain.AllActivityTypes {
			var result *Response

			err := uc.executor.Do(ctx, domain.CollectionKey(month, activityType), func(jobCtx context.Context) error {
				var err error
				result, err = uc.cancelIn(jobCtx, month, activityType, req, identity)
				return err
			})
			if err != nil {
				return nil, uc.mapExecutorError(err)
			}

			if result != nil {
				uc.logger.Info("CancelBooking: successfully canceled booking id=%s (%s, mode=%s)",
					result.RecordID, domain.CollectionKey(month, activityType), result.Mode)
				return result, nil
			}
		}
	}

	uc.logger.Warn("CancelBooking: booking id=%s of employee=%s not found", req.RecordID, identity.CanonicalID)
	return nil, ErrNotFound
}

// cancelIn ищет и отменяет запись в одной коллекции.
// Возвращает nil без ошибки, если записи сотрудника в коллекции нет.
func (uc *UseCase) cancelIn(
	ctx context.Context,
	month string,
	activityType domain.ActivityType,
	req *Request,
	identity domain.Identity,
) (*Response, error) {
	// 3.1. Загружаем коллекцию; отсутствующий месяц пропускаем
	collection, err := uc.repo.LoadMonth(ctx, month, activityType)
	if errors.Is(err, reservations.ErrCollectionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, uc.mapRepoError("load", month, err)
	}

	// 3.2. Ищем запись по id и проверяем владельца
	idx := collection.IndexOf(activityType, req.RecordID)
	if idx == -1 {
		return nil, nil
	}

	records := collection.Records(activityType)
	record := records[idx]

	if !identity.Matches(record.EmployeeID) {
		uc.logger.Warn("CancelBooking: booking id=%s belongs to another employee", req.RecordID)
		return nil, nil
	}

	if record.IsCanceled() {
		uc.logger.Warn("CancelBooking: booking id=%s is already canceled", req.RecordID)
		return nil, ErrAlreadyCanceled
	}

	// 3.3. Проверяем окно отмены по времени начала слота
	now := uc.timeProvider.Now()
	start, err := uc.config.SlotTimes.StartTime(record.Date, record.Slot, uc.config.Location)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute start of booking id=%s: %v", req.RecordID, err)
		return nil, fmt.Errorf("%w: failed to compute start time: %v", ErrInternal, err)
	}

	if err := checkCutoff(start, now, uc.config.Cutoff); err != nil {
		uc.logger.Warn("CancelBooking: booking id=%s: %v", req.RecordID, err)
		return nil, err
	}

	// 3.4. Отменяем запись
	switch uc.config.Mode {
	case domain.CancelModeHard:
		collection.Remove(activityType, idx)
	default:
		canceledAt := now
		records[idx].Status = domain.StatusCanceled
		records[idx].CanceledAt = &canceledAt
		records[idx].CancelReason = req.Reason
	}
	collection.LastUpdated = now

	// 3.5. Перезаписываем коллекцию
	if err := uc.repo.SaveMonth(ctx, collection, activityType); err != nil {
		return nil, uc.mapRepoError("save", month, err)
	}

	return &Response{
		RecordID:     record.ID,
		ActivityType: activityType,
		Date:         record.Date,
		Slot:         record.Slot,
		Mode:         uc.config.Mode,
	}, nil
}

func (uc *UseCase) mapRepoError(op, month string, err error) error {
	if errors.Is(err, reservations.ErrStoreUnavailable) {
		uc.logger.Error("CancelBooking: store unavailable on %s month=%s: %v", op, month, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	uc.logger.Error("CancelBooking: failed to %s month=%s: %v", op, month, err)
	return fmt.Errorf("%w: failed to %s month %s: %v", ErrInternal, op, month, err)
}

func (uc *UseCase) mapExecutorError(err error) error {
	switch {
	case errors.Is(err, ErrAlreadyCanceled),
		errors.Is(err, ErrTooLateToCancel),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, keyedqueue.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("CancelBooking: request was not processed: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		uc.logger.Error("CancelBooking: unexpected error: %v", err)
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
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTooLateToCancel):
		return "too_late"
	case errors.Is(err, ErrAlreadyCanceled):
		return "already_canceled"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
