package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
	"lexconnect/services/geo"
	"lexconnect/utils"

	"go.uber.org/zap"
)

// Session-store keys for engine state that outlives a single request.
const (
	interactionsKey   = "userInteractions"
	bookingHistoryKey = "bookingHistory"
)

const numClusters = 4

// DefaultService owns the provider pool and wires the generator, scoring,
// rewards and district index together. The pool is generated once per
// service instance and held for its lifetime; regenerating would produce
// different records at the same slots.
type DefaultService struct {
	Generator *Generator
	Rewards   *RewardStore
	Store     session.Store
	PoolSize  int
	TTL       time.Duration

	rand        *rand.Rand
	pool        []models.Provider
	initialized bool
}

// NewDefaultService builds the service. The seed drives both provider
// generation and the decorative cluster assignment.
func NewDefaultService(store session.Store, poolSize int, seed int64, ttl time.Duration) *DefaultService {
	return &DefaultService{
		Generator: NewGenerator(seed),
		Rewards:   NewRewardStore(store, ttl),
		Store:     store,
		PoolSize:  poolSize,
		TTL:       ttl,
		rand:      rand.New(rand.NewSource(seed + 1)),
	}
}

// Initialize primes the provider pool with reward and cluster annotations.
// Safe to call repeatedly: the pool is generated only once, annotations are
// refreshed every time. The cluster tag is assigned but never consulted for
// filtering; it decorates responses only.
func (s *DefaultService) Initialize(ctx context.Context) error {
	if !s.initialized {
		s.pool = s.Generator.Generate(s.PoolSize)
		s.initialized = true
	}
	rewards := s.Rewards.All(ctx)
	for i := range s.pool {
		s.pool[i].Reward = rewards[s.pool[i].ID]
		s.pool[i].Cluster = s.rand.Intn(numClusters)
	}
	return nil
}

func (s *DefaultService) ensureInitialized(ctx context.Context) {
	if !s.initialized {
		if err := s.Initialize(ctx); err != nil {
			utils.GetLogger().Warn("recommendation engine initialization failed", zap.Error(err))
		}
	}
}

// Pool exposes the current provider pool.
func (s *DefaultService) Pool() []models.Provider {
	return s.pool
}

// ProviderByID finds a provider in the pool.
func (s *DefaultService) ProviderByID(ctx context.Context, providerID string) (models.Provider, bool) {
	s.ensureInitialized(ctx)
	for _, p := range s.pool {
		if p.ID == providerID {
			return p, true
		}
	}
	return models.Provider{}, false
}

// ProviderOrFallback resolves a provider by ID, falling back to the first
// pool record when the ID is unknown so views never fail on a stale link.
func (s *DefaultService) ProviderOrFallback(ctx context.Context, providerID string) (models.Provider, bool) {
	if p, ok := s.ProviderByID(ctx, providerID); ok {
		return p, true
	}
	utils.GetLogger().Warn("provider not found, serving fallback record",
		zap.String("providerID", providerID))
	if len(s.pool) == 0 {
		return models.Provider{}, false
	}
	return s.pool[0], false
}

// GetRecommendations filters the pool by the given preferences, scores every
// survivor and returns them ranked. A district-scoped query with zero
// results is re-run without the district constraint, distance capped to
// 60 km, and flagged as broadened.
func (s *DefaultService) GetRecommendations(ctx context.Context, prefs models.Preferences) (Result, error) {
	s.ensureInitialized(ctx)

	ranked := s.rank(ctx, prefs)
	if len(ranked) == 0 && prefs.District != "" {
		broadened := prefs
		broadened.District = ""
		broadened.MaxDistanceKm = geo.DefaultMaxDistanceKm
		utils.GetLogger().Info("no providers in district, broadening search",
			zap.String("district", prefs.District))
		return Result{Recommendations: s.rank(ctx, broadened), Broadened: true}, nil
	}
	return Result{Recommendations: ranked}, nil
}

func (s *DefaultService) rank(ctx context.Context, prefs models.Preferences) []models.Provider {
	rewards := s.Rewards.All(ctx)
	history := s.loadBookingHistory(ctx)

	filtered := make([]models.Provider, 0, len(s.pool))
	for _, p := range s.pool {
		if prefs.District != "" && p.District != prefs.District {
			continue
		}
		if prefs.Category != "" && prefs.Category != models.AllCategoriesSentinel &&
			p.Category != prefs.Category {
			continue
		}
		if prefs.MinRating > 0 && p.Rating < prefs.MinRating {
			continue
		}
		if prefs.MinExperience > 0 && p.Experience < prefs.MinExperience {
			continue
		}
		if prefs.Location != nil {
			km := geo.DistanceKm(*prefs.Location, p.Location)
			p.Distance = &km
			if prefs.MaxDistanceKm > 0 && km > prefs.MaxDistanceKm {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	scoreCtx := ScoreContext{
		PreferredCategory: prefs.Category,
		RewardLookup:      func(id string) float64 { return rewards[id] },
	}
	for i := range filtered {
		filtered[i].Score = Score(filtered[i], scoreCtx)
		filtered[i].Reward = rewards[filtered[i].ID]
		filtered[i].Badges = BadgesFor(filtered[i], len(history[filtered[i].ID]))
	}

	// Stable sort keeps tie order deterministic.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})
	return filtered
}

const similarLimit = 5

// GetSimilarProviders ranks the rest of the pool by a small-integer
// similarity to the target: +3 same category, +2 same district, +1 rating
// within 0.5. The target itself is excluded; there is no minimum threshold,
// so in a small pool even similarity-0 providers can appear.
func (s *DefaultService) GetSimilarProviders(ctx context.Context, providerID string) ([]models.Provider, error) {
	s.ensureInitialized(ctx)

	target, ok := s.ProviderByID(ctx, providerID)
	if !ok {
		utils.GetLogger().Warn("similar providers requested for unknown provider",
			zap.String("providerID", providerID))
		return []models.Provider{}, nil
	}

	type scored struct {
		provider   models.Provider
		similarity int
	}
	candidates := make([]scored, 0, len(s.pool))
	for _, p := range s.pool {
		if p.ID == providerID {
			continue
		}
		similarity := 0
		if p.Category == target.Category {
			similarity += 3
		}
		if p.District == target.District {
			similarity += 2
		}
		if diff := p.Rating - target.Rating; diff <= 0.5 && diff >= -0.5 {
			similarity++
		}
		candidates = append(candidates, scored{provider: p, similarity: similarity})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	limit := similarLimit
	if len(candidates) < limit {
		limit = len(candidates)
	}
	similar := make([]models.Provider, 0, limit)
	for _, c := range candidates[:limit] {
		similar = append(similar, c.provider)
	}
	return similar, nil
}

// UpdateReward adds amount to a provider's session reward.
func (s *DefaultService) UpdateReward(ctx context.Context, providerID string, amount float64) error {
	if amount == 0 {
		amount = DefaultRewardAmount
	}
	if err := s.Rewards.Reward(ctx, providerID, amount); err != nil {
		return fmt.Errorf("failed to update reward for provider %s: %w", providerID, err)
	}
	return nil
}

// TrackInteraction records a telemetry event under the user's interaction
// profile and applies the reward table for the rewarded types. Unrecognized
// types are recorded but earn nothing.
func (s *DefaultService) TrackInteraction(ctx context.Context, userID, interactionType string, data map[string]string) error {
	profiles := s.loadInteractions(ctx)
	profile, ok := profiles[userID]
	if !ok || profile == nil {
		profile = models.NewUserInteractionProfile()
		profiles[userID] = profile
	}

	profile.InteractionHistory = append(profile.InteractionHistory, models.UserInteraction{
		Type:      interactionType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	if interactionType == models.InteractionViewProvider {
		if id := data["providerId"]; id != "" {
			profile.ViewedProviders = append(profile.ViewedProviders, id)
		}
		if category := data["category"]; category != "" {
			profile.CategoryPreferences[category] += 0.1
		}
		if district := data["district"]; district != "" {
			profile.DistrictPreferences[district] += 0.1
		}
	}

	if err := session.SetJSON(ctx, s.Store, interactionsKey, profiles, s.TTL); err != nil {
		return fmt.Errorf("failed to persist interactions: %w", err)
	}

	if amount, rewarded := RewardForInteraction(interactionType); rewarded {
		if id := data["providerId"]; id != "" {
			return s.UpdateReward(ctx, id, amount)
		}
	}
	return nil
}

// RecordBooking appends the booking to the provider's session history and
// tracks a booking interaction for the user. The history count feeds the
// "Popular Choice" badge.
func (s *DefaultService) RecordBooking(ctx context.Context, providerID, userID string, details models.BookingDetails) (models.BookingDetails, error) {
	details.ProviderID = providerID
	details.UserID = userID
	if details.CreatedAt == "" {
		details.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	history := s.loadBookingHistory(ctx)
	history[providerID] = append(history[providerID], details)
	if err := session.SetJSON(ctx, s.Store, bookingHistoryKey, history, s.TTL); err != nil {
		return details, fmt.Errorf("failed to persist booking history: %w", err)
	}

	if userID != "" {
		data := map[string]string{"providerId": providerID}
		if p, ok := s.ProviderByID(ctx, providerID); ok {
			data["category"] = p.Category
			data["district"] = p.District
		}
		if err := s.TrackInteraction(ctx, userID, models.InteractionBookProvider, data); err != nil {
			utils.GetLogger().Warn("failed to track booking interaction", zap.Error(err))
		}
	}
	return details, nil
}

// Availability generation bounds: consultations run 10:00 to 16:00 and a
// provider never opens more than 5 slots per day.
const (
	availabilityFirstHour = 10
	availabilityLastHour  = 17 // exclusive
	maxSlotsPerDay        = 5
)

// GetProviderAvailability synthesizes open slots for the next daysAhead
// days. Sundays have none, Saturdays run reduced, and more experienced
// providers open fewer slots, never fewer than one on a working day.
// An unknown provider yields an empty (not error) result.
func (s *DefaultService) GetProviderAvailability(ctx context.Context, providerID string, daysAhead int) ([]models.TimeSlot, error) {
	s.ensureInitialized(ctx)

	provider, ok := s.ProviderByID(ctx, providerID)
	if !ok {
		utils.GetLogger().Warn("availability requested for unknown provider",
			zap.String("providerID", providerID))
		return []models.TimeSlot{}, nil
	}
	if daysAhead <= 0 {
		daysAhead = 7
	}

	slotsPerDay := maxSlotsPerDay - provider.Experience/3
	if slotsPerDay < 1 {
		slotsPerDay = 1
	}

	slots := []models.TimeSlot{}
	now := time.Now()
	for day := 0; day < daysAhead; day++ {
		date := now.AddDate(0, 0, day)
		if date.Weekday() == time.Sunday {
			continue
		}
		daySlots := slotsPerDay
		if date.Weekday() == time.Saturday {
			daySlots -= 2
			if daySlots < 1 {
				daySlots = 1
			}
		}

		hours := make([]int, 0, availabilityLastHour-availabilityFirstHour)
		for h := availabilityFirstHour; h < availabilityLastHour; h++ {
			hours = append(hours, h)
		}
		s.rand.Shuffle(len(hours), func(i, j int) { hours[i], hours[j] = hours[j], hours[i] })
		if daySlots > len(hours) {
			daySlots = len(hours)
		}
		for _, hour := range hours[:daySlots] {
			slots = append(slots, models.TimeSlot{
				Date:      date.Format("2006-01-02"),
				Time:      fmt.Sprintf("%02d:00", hour),
				Available: true,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date == slots[j].Date {
			return slots[i].Time < slots[j].Time
		}
		return slots[i].Date < slots[j].Date
	})

	return slots, nil
}

func (s *DefaultService) loadInteractions(ctx context.Context) map[string]*models.UserInteractionProfile {
	profiles := map[string]*models.UserInteractionProfile{}
	if err := session.GetJSON(ctx, s.Store, interactionsKey, &profiles); err != nil &&
		!errors.Is(err, session.ErrNotFound) {
		utils.GetLogger().Warn("failed to load interactions, starting empty", zap.Error(err))
	}
	return profiles
}

func (s *DefaultService) loadBookingHistory(ctx context.Context) map[string][]models.BookingDetails {
	history := map[string][]models.BookingDetails{}
	if err := session.GetJSON(ctx, s.Store, bookingHistoryKey, &history); err != nil &&
		!errors.Is(err, session.ErrNotFound) {
		utils.GetLogger().Warn("failed to load booking history, starting empty", zap.Error(err))
	}
	return history
}
