package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedPrefix = "session:revoked:"

// Store tracks revoked token ids in Redis. A nil store (no REDIS_ADDR
// configured) disables server-side revocation: logout then only clears the
// client-held token, matching the original demo behavior.
type Store struct {
	rdb *redis.Client
}

func New(addr string) *Store {
	if addr == "" {
		return nil
	}
	return &Store{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Revoke denylists a token id until its natural expiry.
func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, jti string) bool {
	if s == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		// Redis being down must not lock every tenant out.
		return false
	}
	return n > 0
}
