// Package cache provides content-addressed caching of pack checkpoints
// (§4.10, C13): a serialized clone of an HB*-tree's module placements,
// keyed by a hash of the config seed and the perturbation sequence length
// (see Key). File-backed and
// Redis-backed implementations share one interface so `serve` instances
// can pick either a local cache or a shared one without touching callers.
//
// Grounded on the teacher's pkg/cache/{file,null,hash,errors}.go; the
// Redis-backed implementation completes the teacher's declared-but-unwired
// redis/go-redis dependency.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores and retrieves opaque checkpoint payloads keyed by string.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds a content-addressed checkpoint key from the driver's config
// seed and the number of perturbations applied so far, matching §3's
// "Checkpoint ... keyed by hash(config, perturbation sequence length)".
func Key(configSeed uint64, perturbationCount int) string {
	data, _ := json.Marshal([2]uint64{configSeed, uint64(perturbationCount)})
	return fmt.Sprintf("checkpoint:%s", Hash(data))
}

// Hash computes a SHA-256 hash of the input data, returned as a
// full-length hex string to avoid collisions.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
