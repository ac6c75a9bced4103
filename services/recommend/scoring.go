package recommend

import (
	"math"

	"lexconnect/models"
	"lexconnect/services/geo"
)

// Fixed weights of the suitability score. The weights sum to 1.0 but apply
// to mixed-scale inputs (rating runs 0-5), so the rating term dominates and
// scores routinely exceed 1.0. That scale mix ships as-is.
const (
	weightRating         = 0.4
	weightVerified       = 0.3
	weightCategory       = 0.2
	weightProximity      = 0.1
	partialCategoryMatch = 0.5
)

// ScoreContext carries the optional per-query inputs to Score.
type ScoreContext struct {
	PreferredCategory string
	// RewardLookup returns the accumulated session reward for a provider,
	// 0 when absent. Nil means no reward term.
	RewardLookup func(providerID string) float64
}

// Score computes the composite suitability score for a provider: weighted
// rating, verification and category terms, a proximity term from the
// distance buckets, and the unweighted session reward, rounded to one
// decimal as a whole. There is deliberately no upper clamp: reward is a
// bonus on top of the nominal scale, not a renormalized dimension.
func Score(p models.Provider, ctx ScoreContext) float64 {
	categoryMatch := partialCategoryMatch
	if ctx.PreferredCategory != "" && ctx.PreferredCategory != models.AllCategoriesSentinel &&
		p.Category == ctx.PreferredCategory {
		categoryMatch = 1.0
	}

	proximity := 1.0
	if p.Distance != nil {
		proximity = geo.DistanceFactor(*p.Distance, geo.DefaultMaxDistanceKm)
	}

	verified := 0.0
	if p.Verified {
		verified = 1.0
	}

	score := p.Rating*weightRating +
		verified*weightVerified +
		categoryMatch*weightCategory +
		proximity*weightProximity
	if ctx.RewardLookup != nil {
		score += ctx.RewardLookup(p.ID)
	}
	return roundScore(score)
}

func scoreComposite(rating, verified, categoryMatch, distanceFactor float64) float64 {
	return roundScore(rating*weightRating +
		verified*weightVerified +
		categoryMatch*weightCategory +
		distanceFactor*weightProximity)
}

func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// Badge rule thresholds.
const (
	highScoreThreshold   = 4.5
	fastResponseHours    = 5
	newProviderRating    = 3.5
	trustedAdvisorYears  = 10
	popularBookingCount  = 10
	highAvailabilitySlot = 5
)

// BadgesFor applies the fuzzy badge rules. Every rule fires independently,
// so a provider may carry several badges or none. bookingCount is the
// session booking tally for the provider, 0 when untracked.
func BadgesFor(p models.Provider, bookingCount int) []string {
	badges := []string{}
	if p.Score > highScoreThreshold {
		badges = append(badges, models.BadgeHighlyRecommended)
	}
	if p.ResponseTime < fastResponseHours {
		badges = append(badges, models.BadgeFastTrusted)
	}
	if p.Rating < newProviderRating || p.Experience < 1 {
		badges = append(badges, models.BadgeNewProvider)
	}
	if p.Verified && p.Experience > trustedAdvisorYears {
		badges = append(badges, models.BadgeTrustedAdvisor)
	}
	if bookingCount > popularBookingCount {
		badges = append(badges, models.BadgePopularChoice)
	}
	if p.AvailableSlots > highAvailabilitySlot {
		badges = append(badges, models.BadgeHighAvailability)
	}
	return badges
}
