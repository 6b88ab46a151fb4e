package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/blob"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "requests/2025-09/education.json", Path("2025-09", domain.ActivityEducation))
	assert.Equal(t, "requests/2025-09/recording.json", Path("2025-09", domain.ActivityRecording))
}

func TestRepository_LoadOrEmpty(t *testing.T) {
	repo := NewRepository(blob.NewMemoryStore())

	_, err := repo.LoadMonth(context.Background(), "2025-09", domain.ActivityEducation)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	c, err := repo.LoadOrEmpty(context.Background(), "2025-09", domain.ActivityEducation)
	require.NoError(t, err)
	assert.Equal(t, "2025-09", c.Month)
	assert.Empty(t, c.Education)
	assert.NotNil(t, c.Recording)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()
	repo := NewRepository(store)

	notes := "first lesson"
	c := domain.NewMonthlyCollection("2025-09")
	c.Append(domain.Reservation{
		ID:           "1757000000000-abcd1234",
		EmployeeID:   "E100",
		Name:         "Kim",
		ActivityType: domain.ActivityEducation,
		Date:         "2025-09-10",
		Slot:         2,
		Details: domain.Details{
			Language: domain.LanguageKoreanEnglish,
			Mode:     domain.ModeOneToOne,
			Category: domain.CategoryNew,
		},
		SubmittedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusActive,
		Notes:       &notes,
	})
	c.LastUpdated = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveMonth(ctx, c, domain.ActivityEducation))
	first, err := store.Load(ctx, Path("2025-09", domain.ActivityEducation))
	require.NoError(t, err)

	loaded, err := repo.LoadMonth(ctx, "2025-09", domain.ActivityEducation)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	// saveMonth(loadMonth(m)) не меняет содержимое
	require.NoError(t, repo.SaveMonth(ctx, loaded, domain.ActivityEducation))
	second, err := store.Load(ctx, Path("2025-09", domain.ActivityEducation))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestRepository_LegacyRecordsWithoutStatus(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()
	legacy := `{
  "month": "2025-09",
  "education": [
    {"id": "1", "employeeId": "E1", "date": "2025-09-10", "slot": 3,
     "activityType": "education",
     "details": {"language": "japanese", "mode": "small-group", "category": "common"}},
    {"id": "2", "employeeId": "E2", "date": "2025-09-10", "slot": 3, "status": "CANCELLED",
     "activityType": "education",
     "details": {"language": "japanese", "mode": "small-group", "category": "common"}}
  ]
}`
	require.NoError(t, store.Overwrite(ctx, Path("2025-09", domain.ActivityEducation), []byte(legacy)))

	c, err := NewRepository(store).LoadMonth(ctx, "2025-09", domain.ActivityEducation)
	require.NoError(t, err)
	require.Len(t, c.Education, 2)
	assert.Equal(t, domain.StatusActive, c.Education[0].Status)
	assert.Equal(t, domain.StatusCanceled, c.Education[1].Status)
	assert.NotNil(t, c.Recording)
}

func TestRepository_InvalidKey(t *testing.T) {
	repo := NewRepository(blob.NewMemoryStore())

	_, err := repo.LoadMonth(context.Background(), "2025/09", domain.ActivityEducation)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = repo.LoadMonth(context.Background(), "2025-09", domain.ActivityType("sports"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestRepository_DecodeError(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()
	require.NoError(t, store.Overwrite(ctx, Path("2025-09", domain.ActivityRecording), []byte("{not json")))

	_, err := NewRepository(store).LoadMonth(ctx, "2025-09", domain.ActivityRecording)
	assert.ErrorIs(t, err, ErrDecode)
}

type unavailableStore struct{}

func (unavailableStore) Load(context.Context, string) ([]byte, error) {
	return nil, blob.ErrUnavailable
}

func (unavailableStore) Overwrite(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestRepository_StoreErrors(t *testing.T) {
	repo := NewRepository(unavailableStore{})

	_, err := repo.LoadOrEmpty(context.Background(), "2025-09", domain.ActivityEducation)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = repo.SaveMonth(context.Background(), domain.NewMonthlyCollection("2025-09"), domain.ActivityEducation)
	assert.ErrorIs(t, err, ErrStore)
}
