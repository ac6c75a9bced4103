package models

// Coordinate is a latitude/longitude pair. It is used as a value type:
// copied, never shared.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Legal service categories offered by providers.
const (
	CategoryCriminalLaw = "Criminal Law"
	CategoryFamilyLaw   = "Family Law"
	CategoryPropertyLaw = "Property Law"
	CategoryCivilLaw    = "Civil Law"
	CategoryTaxation    = "Taxation"
)

// LegalCategories lists every provider category.
var LegalCategories = []string{
	CategoryCriminalLaw,
	CategoryFamilyLaw,
	CategoryPropertyLaw,
	CategoryCivilLaw,
	CategoryTaxation,
}

// AllCategoriesSentinel is the "no category filter" value the UI sends.
const AllCategoriesSentinel = "all-categories"

// Provider is a legal-service professional record. Score, Distance, Badges,
// Reward and Cluster are derived per query and are not stable truth.
type Provider struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	District       string     `json:"district"`
	Address        string     `json:"address"`
	Rating         float64    `json:"rating"`     // 3.0 - 5.0
	Experience     int        `json:"experience"` // years, 1 - 20
	Verified       bool       `json:"verified"`
	Languages      []string   `json:"languages"`
	Location       Coordinate `json:"location"`
	ResponseTime   int        `json:"responseTime"` // hours, 1 - 24
	AvailableSlots int        `json:"availableSlots"`

	// Derived per recommendation pass.
	Score    float64  `json:"score"`
	Distance *float64 `json:"distance,omitempty"` // km from the query location, when known
	Badges   []string `json:"badges,omitempty"`
	Reward   float64  `json:"rl_reward,omitempty"`
	Cluster  int      `json:"cluster"`
}

// Preferences carries the user's recommendation filters. Zero values mean
// "no constraint"; Category may also carry the all-categories sentinel.
type Preferences struct {
	Category      string      `json:"category,omitempty"`
	District      string      `json:"district,omitempty"`
	MinRating     float64     `json:"minRating,omitempty"`
	MinExperience int         `json:"minExperience,omitempty"`
	MaxDistanceKm float64     `json:"maxDistanceKm,omitempty"`
	Location      *Coordinate `json:"location,omitempty"`
}

// Badge labels attached by the fuzzy rules in the scoring engine.
const (
	BadgeHighlyRecommended = "Highly Recommended"
	BadgeFastTrusted       = "Fast & Trusted"
	BadgeNewProvider       = "New Provider"
	BadgeTrustedAdvisor    = "Trusted Advisor"
	BadgePopularChoice     = "Popular Choice"
	BadgeHighAvailability  = "High Availability"
)
