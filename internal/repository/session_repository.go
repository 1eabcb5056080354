package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kysely-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// SessionTTL is the fixed expiry window, measured from the last renewal.
const SessionTTL = 2 * time.Hour

const sessionKeyPrefix = "kysely-session:"

// SessionRepository stores sessions in redis. Sessions never touch the
// document store.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, session models.Session) error {
	val, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, val, SessionTTL).Err()
}

// Get loads a session and slides its expiry forward by a full TTL.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (models.Session, error) {
	var session models.Session
	raw, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return session, models.ErrUnauthorized
	}
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal(raw, &session); err != nil {
		return session, err
	}
	if err := r.client.Expire(ctx, sessionKeyPrefix+sessionID, SessionTTL).Err(); err != nil {
		return session, err
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
