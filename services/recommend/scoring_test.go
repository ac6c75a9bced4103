package recommend_test

import (
	"testing"

	"lexconnect/models"
	"lexconnect/services/recommend"

	"github.com/stretchr/testify/assert"
)

func TestScoreWeightedSum(t *testing.T) {
	p := models.Provider{
		ID:       "provider_Erode_1",
		Category: models.CategoryPropertyLaw,
		Rating:   4.0,
		Verified: true,
	}
	score := recommend.Score(p, recommend.ScoreContext{PreferredCategory: models.CategoryPropertyLaw})
	assert.InDelta(t, 2.2, score, 1e-9)
}

func TestScoreCategoryMismatchGetsPartialCredit(t *testing.T) {
	p := models.Provider{Category: models.CategoryFamilyLaw, Rating: 4.0, Verified: true}
	score := recommend.Score(p, recommend.ScoreContext{PreferredCategory: models.CategoryPropertyLaw})
	assert.InDelta(t, 2.1, score, 1e-9)
}

func TestScoreAllCategoriesSentinelIsPartial(t *testing.T) {
	p := models.Provider{Category: models.CategoryFamilyLaw, Rating: 4.0, Verified: true}
	score := recommend.Score(p, recommend.ScoreContext{PreferredCategory: models.AllCategoriesSentinel})
	assert.InDelta(t, 2.1, score, 1e-9)
}

func TestScoreProximityBuckets(t *testing.T) {
	near := 5.0
	far := 80.0
	base := models.Provider{Category: models.CategoryFamilyLaw, Rating: 4.0, Verified: true}

	nearP := base
	nearP.Distance = &near
	farP := base
	farP.Distance = &far

	nearScore := recommend.Score(nearP, recommend.ScoreContext{})
	farScore := recommend.Score(farP, recommend.ScoreContext{})

	assert.InDelta(t, 2.1, nearScore, 1e-9)
	assert.InDelta(t, 2.0, farScore, 1e-9)
}

func TestScoreUnverifiedLosesVerifiedTerm(t *testing.T) {
	p := models.Provider{Category: models.CategoryFamilyLaw, Rating: 4.0}
	score := recommend.Score(p, recommend.ScoreContext{})
	assert.InDelta(t, 1.8, score, 1e-9)
}

func TestScoreRoundsOnceOverFullSum(t *testing.T) {
	far := 70.0
	p := models.Provider{
		ID:       "p1",
		Category: models.CategoryCivilLaw,
		Rating:   4.6,
		Verified: true,
		Distance: &far,
	}
	rewards := map[string]float64{"p1": 0.05}
	score := recommend.Score(p, recommend.ScoreContext{
		PreferredCategory: models.CategoryCivilLaw,
		RewardLookup:      func(id string) float64 { return rewards[id] },
	})
	// 1.84 + 0.3 + 0.2 + 0.0 + 0.05 = 2.39, rounded once to 2.4. Rounding
	// the weighted sum before adding the reward would yield 2.3.
	assert.InDelta(t, 2.4, score, 1e-9)
}

func TestScoreRewardAddsWithoutClamp(t *testing.T) {
	p := models.Provider{ID: "p1", Category: models.CategoryCriminalLaw, Rating: 5.0, Verified: true}
	rewards := map[string]float64{"p1": 3.4}
	score := recommend.Score(p, recommend.ScoreContext{
		PreferredCategory: models.CategoryCriminalLaw,
		RewardLookup:      func(id string) float64 { return rewards[id] },
	})
	// 2.0 + 0.3 + 0.2 + 0.1 + 3.4 = 6.0, well past the nominal scale.
	assert.InDelta(t, 6.0, score, 1e-9)
}

func TestBadgesFireIndependently(t *testing.T) {
	p := models.Provider{
		Rating:       3.0,
		Experience:   0,
		Verified:     true,
		ResponseTime: 3,
	}
	badges := recommend.BadgesFor(p, 0)
	assert.Contains(t, badges, models.BadgeFastTrusted)
	assert.Contains(t, badges, models.BadgeNewProvider)
	assert.NotContains(t, badges, models.BadgeTrustedAdvisor)
	assert.NotContains(t, badges, models.BadgePopularChoice)
}

func TestBadgesPopularChoiceNeedsElevenBookings(t *testing.T) {
	p := models.Provider{Rating: 4.5, Experience: 5, ResponseTime: 10}
	assert.NotContains(t, recommend.BadgesFor(p, 10), models.BadgePopularChoice)
	assert.Contains(t, recommend.BadgesFor(p, 11), models.BadgePopularChoice)
}

func TestBadgesCanBeEmpty(t *testing.T) {
	p := models.Provider{Rating: 4.0, Experience: 5, ResponseTime: 10, AvailableSlots: 3}
	assert.Empty(t, recommend.BadgesFor(p, 0))
}
