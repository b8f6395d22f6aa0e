package cache

import (
	"time"
)

// Entry is one cached prediction with TTL metadata.
type Entry struct {
	// Key is the SHA-256 of the model identity and the canonical profile.
	Key string `json:"key"`

	// ModelID names the model that produced the prediction.
	ModelID string `json:"model_id"`

	// TonsPerYear is the cached prediction.
	TonsPerYear float64 `json:"tons_per_year"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(key, modelID string, tons float64, ttl time.Duration) Entry {
	now := time.Now().UTC()
	return Entry{
		Key:         key,
		ModelID:     modelID,
		TonsPerYear: tons,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiry time.
func (e Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e Entry) TimeUntilExpiration() time.Duration {
	return max(time.Until(e.ExpiresAt), 0)
}
