package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore guarda sessões ativas no Redis, chave "session:{sid}" -> userID.
// Logout apaga a chave, então um JWT ainda válido deixa de ser aceito na hora.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

func sessionKey(sid string) string { return "session:" + sid }

func (s *SessionStore) Create(ctx context.Context, sid, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(sid), userID, ttl).Err()
}

// Alive diz se a sessão ainda existe (não expirou nem foi revogada).
func (s *SessionStore) Alive(ctx context.Context, sid string) (bool, error) {
	_, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKey(sid)).Err()
}
