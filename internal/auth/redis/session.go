package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/widyatama/shift-management/internal/auth"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions in Redis keyed by the opaque token, relying
// on key TTL for expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.Token, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, token string) (*auth.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	session.Token = token
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}
