package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient builds a redis client for the session store.
func NewClient(addr, password string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
}

// SessionStore keeps the admin 2FA session token in redis so a restarted
// client session can skip re-verification while the token is still fresh.
// Keys are per user: twofa:session:{user_id}.
type SessionStore struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewSessionStore(client *goredis.Client, userID int64, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		key:    fmt.Sprintf("twofa:session:%d", userID),
		ttl:    ttl,
	}
}

// Get retrieves the cached session token; a miss is ("", nil).
func (s *SessionStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Set stores the session token with the configured TTL.
func (s *SessionStore) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, s.ttl).Err()
}

// Touch extends the TTL, call on admin activity.
func (s *SessionStore) Touch(ctx context.Context) error {
	return s.client.Expire(ctx, s.key, s.ttl).Err()
}

// Clear removes the session token.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
