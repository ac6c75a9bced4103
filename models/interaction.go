package models

// Interaction types the telemetry endpoint understands. Only the first
// three carry a score reward; the rest are recorded for analytics only.
const (
	InteractionViewProvider     = "view_provider"
	InteractionSaveProvider     = "save_provider"
	InteractionStartBooking     = "start_booking"
	InteractionBookProvider     = "book_provider"
	InteractionViewAvailability = "view_availability"
	InteractionShareProvider    = "share_provider"
)

// UserInteraction is a single recorded telemetry event.
type UserInteraction struct {
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// UserInteractionProfile aggregates a user's interaction history and the
// preference counters derived from it.
type UserInteractionProfile struct {
	CategoryPreferences map[string]float64 `json:"categoryPreferences"`
	DistrictPreferences map[string]float64 `json:"districtPreferences"`
	ViewedProviders     []string           `json:"viewedProviders"`
	InteractionHistory  []UserInteraction  `json:"interactionHistory"`
}

// NewUserInteractionProfile returns an empty profile with all maps ready.
func NewUserInteractionProfile() *UserInteractionProfile {
	return &UserInteractionProfile{
		CategoryPreferences: make(map[string]float64),
		DistrictPreferences: make(map[string]float64),
		ViewedProviders:     []string{},
		InteractionHistory:  []UserInteraction{},
	}
}
