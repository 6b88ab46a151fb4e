package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/blob"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
	getAvailability "github.com/m04kA/SMC-ClassReservation/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

type rawIdentity struct{}

func (rawIdentity) Resolve(_ context.Context, rawID, email string) domain.Identity {
	return domain.Identity{CanonicalID: rawID, RawID: rawID, Email: email}
}

func TestHandle_ReturnsAvailability(t *testing.T) {
	repo := reservations.NewRepository(blob.NewMemoryStore())
	c := domain.NewMonthlyCollection("2025-09")
	c.Append(domain.Reservation{
		ID:           "r1",
		EmployeeID:   "E100",
		ActivityType: domain.ActivityEducation,
		Date:         "2025-09-10",
		Slot:         3,
		Details:      domain.Details{Language: domain.LanguageJapanese, Mode: domain.ModeSmallGroup, Category: domain.CategoryNew},
	})
	require.NoError(t, repo.SaveMonth(context.Background(), c, domain.ActivityEducation))

	uc := getAvailability.NewUseCase(repo, nil, rawIdentity{}, logger.NewNop())
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?month=2025-09&date=2025-09-10", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2025-09-10", body.Date)
	assert.Equal(t, 1, body.TotalRequests)
	assert.Len(t, body.SlotAvailability, 6)
	assert.Equal(t, SlotResponse{Slot: 3, Available: true, CurrentCount: 1, MaxCount: 4},
		body.SlotAvailability["japanese:small-group"][2])
	assert.NotNil(t, body.LanguageRestrictions)
}

func TestHandle_InvalidQuery(t *testing.T) {
	uc := getAvailability.NewUseCase(reservations.NewRepository(blob.NewMemoryStore()), nil, rawIdentity{}, logger.NewNop())
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=tomorrow", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
