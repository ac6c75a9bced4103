package recommend

import (
	"context"
	"errors"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
)

// rewardsKey is the session-store key holding the providerId -> reward map.
// The JSON layout matches previously persisted data.
const rewardsKey = "providerRewards"

// DefaultRewardAmount is applied when a reward event carries no amount.
const DefaultRewardAmount = 0.05

// Reward amounts per interaction type. Any other interaction is recorded
// for analytics but earns nothing.
var interactionRewards = map[string]float64{
	models.InteractionViewProvider: 0.05,
	models.InteractionSaveProvider: 0.10,
	models.InteractionStartBooking: 0.15,
}

// RewardStore accumulates session-scoped score bonuses per provider. Values
// only grow within a session and reset when the session store does.
type RewardStore struct {
	store session.Store
	ttl   time.Duration
}

// NewRewardStore builds a reward store on top of the session layer.
func NewRewardStore(store session.Store, ttl time.Duration) *RewardStore {
	return &RewardStore{store: store, ttl: ttl}
}

func (r *RewardStore) load(ctx context.Context) map[string]float64 {
	rewards := map[string]float64{}
	if err := session.GetJSON(ctx, r.store, rewardsKey, &rewards); err != nil &&
		!errors.Is(err, session.ErrNotFound) {
		return map[string]float64{}
	}
	return rewards
}

// Reward adds amount to the provider's accumulator.
func (r *RewardStore) Reward(ctx context.Context, providerID string, amount float64) error {
	rewards := r.load(ctx)
	rewards[providerID] += amount
	return session.SetJSON(ctx, r.store, rewardsKey, rewards, r.ttl)
}

// Get returns the accumulated reward for a provider, 0 when absent.
func (r *RewardStore) Get(ctx context.Context, providerID string) float64 {
	return r.load(ctx)[providerID]
}

// All returns the full providerId -> reward map.
func (r *RewardStore) All(ctx context.Context) map[string]float64 {
	return r.load(ctx)
}

// RewardForInteraction maps an interaction type to its reward amount.
// The second return is false for types that are tracked but not rewarded.
func RewardForInteraction(interactionType string) (float64, bool) {
	amount, ok := interactionRewards[interactionType]
	return amount, ok
}
