package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/vrtu/musharaka/internal/calculations"
)

// Cache stores serialized projection responses.
// Get reports a miss as ok=false with a nil error; err is reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type projectionKey struct {
	Input            calculations.ProjectionInput `json:"input"`
	ConventionalRate float64                      `json:"conventionalRate"`
}

// ProjectionKey derives a stable cache key from the resolved input and comparison rate
func ProjectionKey(in calculations.ProjectionInput, conventionalRate float64) (string, error) {
	raw, err := json.Marshal(projectionKey{Input: in, ConventionalRate: conventionalRate})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return fmt.Sprintf("projection:%016x", xxhash.Sum64(raw)), nil
}
