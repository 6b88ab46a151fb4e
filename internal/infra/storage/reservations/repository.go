package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/blob"
)

// Repository адаптер хранилища: один JSON-документ на (месяц, тип активности)
// Путь документа: requests/{YYYY-MM}/{education|recording}.json
type Repository struct {
	store BlobStore
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(store BlobStore) *Repository {
	return &Repository{store: store}
}

// Path возвращает путь документа для месяца и типа активности
func Path(month string, activityType domain.ActivityType) string {
	return fmt.Sprintf("requests/%s/%s.json", month, activityType)
}

// LoadMonth читает коллекцию месяца.
// Статусы записей нормализуются: запись без статуса считается активной.
func (r *Repository) LoadMonth(ctx context.Context, month string, activityType domain.ActivityType) (*domain.MonthlyCollection, error) {
	if err := validateKey(month, activityType); err != nil {
		return nil, err
	}

	path := Path(month, activityType)
	body, err := r.store.Load(ctx, path)
	if err != nil {
		return nil, mapStoreError("LoadMonth", path, err)
	}

	var collection domain.MonthlyCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, fmt.Errorf("%w: LoadMonth - path=%s: %v", ErrDecode, path, err)
	}

	if collection.Month == "" {
		collection.Month = month
	}
	collection.Normalize()

	return &collection, nil
}

// LoadOrEmpty читает коллекцию месяца, а при её отсутствии возвращает пустую
func (r *Repository) LoadOrEmpty(ctx context.Context, month string, activityType domain.ActivityType) (*domain.MonthlyCollection, error) {
	collection, err := r.LoadMonth(ctx, month, activityType)
	if errors.Is(err, ErrCollectionNotFound) {
		return domain.NewMonthlyCollection(month), nil
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// SaveMonth перезаписывает документ коллекции целиком.
// LastUpdated выставляет вызывающий код.
func (r *Repository) SaveMonth(ctx context.Context, collection *domain.MonthlyCollection, activityType domain.ActivityType) error {
	if collection == nil {
		return fmt.Errorf("%w: SaveMonth - nil collection", ErrInvalidKey)
	}
	if err := validateKey(collection.Month, activityType); err != nil {
		return err
	}

	body, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: SaveMonth - month=%s: %v", ErrEncode, collection.Month, err)
	}

	path := Path(collection.Month, activityType)
	if err := r.store.Overwrite(ctx, path, body); err != nil {
		return mapStoreError("SaveMonth", path, err)
	}

	return nil
}

func validateKey(month string, activityType domain.ActivityType) error {
	if _, err := domain.ParseMonth(month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if !activityType.IsValid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidKey, activityType)
	}
	return nil
}

func mapStoreError(op, path string, err error) error {
	switch {
	case errors.Is(err, blob.ErrNotFound):
		return ErrCollectionNotFound
	case errors.Is(err, blob.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s - path=%s: %v", ErrStoreUnavailable, op, path, err)
	default:
		return fmt.Errorf("%w: %s - path=%s: %v", ErrStore, op, path, err)
	}
}
