// Package session provides the session-scoped key-value layer backing
// provider rewards, user interactions, saved providers, booking sessions
// and the user profile. Values are stored as JSON so the layout stays
// compatible with previously persisted data.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("session: key not found")

// Store is the session-scoped key-value contract.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetJSON unmarshals the value stored at key into out. A missing key is
// reported as ErrNotFound with out left untouched.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// SetJSON marshals value and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw, ttl)
}
