package directory

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for directory sets, one set per kind.
const dirKeyPrefix = "dir:"

// Redis is the shared-deployment directory: kinds are redis sets maintained
// by an external loader. A kind containing the "*" marker is open, matching
// the memory implementation.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Exists checks set membership for key under kind.
func (r *Redis) Exists(ctx context.Context, kind, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	setKey := dirKeyPrefix + kind
	open, err := r.client.SIsMember(ctx, setKey, "*").Result()
	if err != nil {
		return false, fmt.Errorf("directory check %s: %w", kind, err)
	}
	if open {
		return true, nil
	}
	ok, err := r.client.SIsMember(ctx, setKey, key).Result()
	if err != nil {
		return false, fmt.Errorf("directory check %s: %w", kind, err)
	}
	return ok, nil
}

// Seed loads kind -> keys into redis sets. Used by deployments bootstrapping
// a shared directory and by integration tests.
func (r *Redis) Seed(ctx context.Context, seed map[string][]string) error {
	for kind, keys := range seed {
		if len(keys) == 0 {
			continue
		}
		members := make([]any, len(keys))
		for i, k := range keys {
			members[i] = k
		}
		if err := r.client.SAdd(ctx, dirKeyPrefix+kind, members...).Err(); err != nil {
			return fmt.Errorf("directory seed %s: %w", kind, err)
		}
	}
	return nil
}
