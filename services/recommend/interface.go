package recommend

import (
	"context"

	"lexconnect/models"
)

// Result is the ranked recommendation response. Broadened flags the
// district-fallback pass so the UI can surface a "broadened search" notice.
type Result struct {
	Recommendations []models.Provider `json:"recommendations"`
	Broadened       bool              `json:"broadened,omitempty"`
}

// Service is the recommendation engine contract the HTTP layer consumes.
type Service interface {
	Initialize(ctx context.Context) error
	GetRecommendations(ctx context.Context, prefs models.Preferences) (Result, error)
	GetSimilarProviders(ctx context.Context, providerID string) ([]models.Provider, error)
	UpdateReward(ctx context.Context, providerID string, amount float64) error
	TrackInteraction(ctx context.Context, userID, interactionType string, data map[string]string) error
	RecordBooking(ctx context.Context, providerID, userID string, details models.BookingDetails) (models.BookingDetails, error)
	GetProviderAvailability(ctx context.Context, providerID string, daysAhead int) ([]models.TimeSlot, error)
	ProviderByID(ctx context.Context, providerID string) (models.Provider, bool)
	ProviderOrFallback(ctx context.Context, providerID string) (models.Provider, bool)
	Pool() []models.Provider
}
