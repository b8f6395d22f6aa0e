// Package cache persists emissions predictions on disk with TTL expiration.
//
// Portfolio runs re-predict the same buildings often while thresholds or
// recommendations are tuned. Key features:
//   - One JSON file per prediction under ~/.greenpulse/cache/
//   - SHA-256 keys over the model identity and the building profile, so a
//     model reload never serves stale predictions
//   - Configurable TTL (default 24 hours) via config file, GREENPULSE_CACHE_TTL
//     or the --cache-ttl flag
//   - Cleanup of expired and corrupt entries
package cache
