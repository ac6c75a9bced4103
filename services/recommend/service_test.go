package recommend_test

import (
	"context"
	"testing"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
	"lexconnect/services/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *recommend.DefaultService {
	t.Helper()
	svc := recommend.NewDefaultService(session.NewMemoryStore(), 40, 42, 30*time.Minute)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestInitializeGeneratesPoolOnce(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first := make([]string, 0, len(svc.Pool()))
	for _, p := range svc.Pool() {
		first = append(first, p.ID)
	}

	require.NoError(t, svc.Initialize(ctx))

	second := make([]string, 0, len(svc.Pool()))
	for _, p := range svc.Pool() {
		second = append(second, p.ID)
	}
	assert.Equal(t, first, second)
}

func TestGetRecommendationsDistrictFilter(t *testing.T) {
	svc := newService(t)

	result, err := svc.GetRecommendations(context.Background(), models.Preferences{District: "Erode"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	assert.False(t, result.Broadened)
	for _, p := range result.Recommendations {
		assert.Equal(t, "Erode", p.District)
	}
}

func TestGetRecommendationsCategoryFilter(t *testing.T) {
	svc := newService(t)

	result, err := svc.GetRecommendations(context.Background(),
		models.Preferences{Category: models.CategoryFamilyLaw})
	require.NoError(t, err)
	for _, p := range result.Recommendations {
		assert.Equal(t, models.CategoryFamilyLaw, p.Category)
	}
}

func TestGetRecommendationsAllCategoriesSentinelKeepsEverything(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	all, err := svc.GetRecommendations(ctx, models.Preferences{Category: models.AllCategoriesSentinel})
	require.NoError(t, err)
	unfiltered, err := svc.GetRecommendations(ctx, models.Preferences{})
	require.NoError(t, err)
	assert.Len(t, all.Recommendations, len(unfiltered.Recommendations))
}

func TestGetRecommendationsMinRatingFilter(t *testing.T) {
	svc := newService(t)

	result, err := svc.GetRecommendations(context.Background(), models.Preferences{MinRating: 4.5})
	require.NoError(t, err)
	for _, p := range result.Recommendations {
		assert.GreaterOrEqual(t, p.Rating, 4.5)
	}
}

func TestGetRecommendationsSortedByScoreDescending(t *testing.T) {
	svc := newService(t)

	result, err := svc.GetRecommendations(context.Background(), models.Preferences{})
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	for i := 1; i < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			result.Recommendations[i-1].Score, result.Recommendations[i].Score)
	}
}

func TestGetRecommendationsAttachesDistance(t *testing.T) {
	svc := newService(t)

	loc := models.Coordinate{Lat: 11.3410, Lng: 77.7172} // Erode center
	result, err := svc.GetRecommendations(context.Background(), models.Preferences{
		Location:      &loc,
		MaxDistanceKm: 15,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	for _, p := range result.Recommendations {
		require.NotNil(t, p.Distance)
		assert.LessOrEqual(t, *p.Distance, 15.0)
	}
}

func TestGetRecommendationsBroadensUnknownDistrict(t *testing.T) {
	svc := newService(t)

	result, err := svc.GetRecommendations(context.Background(), models.Preferences{District: "Chennai"})
	require.NoError(t, err)
	assert.True(t, result.Broadened)
	assert.NotEmpty(t, result.Recommendations)
}

func TestRewardsRaiseRanking(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	base, err := svc.GetRecommendations(ctx, models.Preferences{})
	require.NoError(t, err)
	require.NotEmpty(t, base.Recommendations)
	last := base.Recommendations[len(base.Recommendations)-1]

	require.NoError(t, svc.UpdateReward(ctx, last.ID, 10.0))

	boosted, err := svc.GetRecommendations(ctx, models.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, last.ID, boosted.Recommendations[0].ID)
	assert.InDelta(t, 10.0, boosted.Recommendations[0].Reward, 1e-9)
	assert.Greater(t, boosted.Recommendations[0].Score, 5.0)
}

func TestUpdateRewardZeroUsesDefault(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := svc.Pool()[0].ID

	require.NoError(t, svc.UpdateReward(ctx, id, 0))
	assert.InDelta(t, recommend.DefaultRewardAmount, svc.Rewards.Get(ctx, id), 1e-9)
}

func TestGetSimilarProvidersExcludesTargetAndCaps(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	target := svc.Pool()[0]

	similar, err := svc.GetSimilarProviders(ctx, target.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(similar), 5)
	for _, p := range similar {
		assert.NotEqual(t, target.ID, p.ID)
	}
}

func TestGetSimilarProvidersUnknownIDIsEmpty(t *testing.T) {
	svc := newService(t)

	similar, err := svc.GetSimilarProviders(context.Background(), "provider_chennai_0")
	require.NoError(t, err)
	assert.Empty(t, similar)
}

func TestTrackInteractionBuildsProfileAndReward(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := svc.Pool()[0].ID

	err := svc.TrackInteraction(ctx, "user-1", models.InteractionViewProvider, map[string]string{
		"providerId": id,
		"category":   models.CategoryTaxation,
		"district":   "Salem",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.05, svc.Rewards.Get(ctx, id), 1e-9)

	profiles := map[string]*models.UserInteractionProfile{}
	require.NoError(t, session.GetJSON(ctx, svc.Store, "userInteractions", &profiles))
	profile := profiles["user-1"]
	require.NotNil(t, profile)
	assert.Equal(t, []string{id}, profile.ViewedProviders)
	assert.InDelta(t, 0.1, profile.CategoryPreferences[models.CategoryTaxation], 1e-9)
	assert.InDelta(t, 0.1, profile.DistrictPreferences["Salem"], 1e-9)
	require.Len(t, profile.InteractionHistory, 1)
	assert.Equal(t, models.InteractionViewProvider, profile.InteractionHistory[0].Type)
}

func TestTrackInteractionShareEarnsNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := svc.Pool()[0].ID

	err := svc.TrackInteraction(ctx, "user-1", models.InteractionShareProvider,
		map[string]string{"providerId": id})
	require.NoError(t, err)
	assert.Zero(t, svc.Rewards.Get(ctx, id))
}

func TestRecordBookingFeedsPopularChoiceBadge(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	target := svc.Pool()[0]

	for i := 0; i < 11; i++ {
		_, err := svc.RecordBooking(ctx, target.ID, "", models.BookingDetails{})
		require.NoError(t, err)
	}

	result, err := svc.GetRecommendations(ctx, models.Preferences{})
	require.NoError(t, err)
	var found bool
	for _, p := range result.Recommendations {
		if p.ID == target.ID {
			found = true
			assert.Contains(t, p.Badges, models.BadgePopularChoice)
		}
	}
	assert.True(t, found)
}

func TestGetProviderAvailability(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := svc.Pool()[0].ID

	slots, err := svc.GetProviderAvailability(ctx, id, 14)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, slot := range slots {
		assert.True(t, slot.Available)
		date, err := time.Parse("2006-01-02", slot.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Sunday, date.Weekday())

		clock, err := time.Parse("15:04", slot.Time)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, clock.Hour(), 10)
		assert.Less(t, clock.Hour(), 17)

		if i > 0 {
			prev := slots[i-1]
			assert.LessOrEqual(t, prev.Date+prev.Time, slot.Date+slot.Time)
		}
	}
}

func TestGetProviderAvailabilityLeavesPoolRecordAlone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	before := svc.Pool()[0]

	slots, err := svc.GetProviderAvailability(ctx, before.ID, 14)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	after, ok := svc.ProviderByID(ctx, before.ID)
	require.True(t, ok)
	assert.Equal(t, before.AvailableSlots, after.AvailableSlots)
	assert.LessOrEqual(t, after.AvailableSlots, 9)
}

func TestGetProviderAvailabilityUnknownProvider(t *testing.T) {
	svc := newService(t)

	slots, err := svc.GetProviderAvailability(context.Background(), "provider_chennai_99", 7)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
