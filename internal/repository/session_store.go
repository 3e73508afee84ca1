package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"booktime/internal/session"
)

// SessionStore keeps the single active reading session per identity between
// HTTP calls. Put replaces any previous session, which is what enforces
// "at most one open reader per user".
type SessionStore interface {
	Get(ctx context.Context, identity string) (*session.Session, error)
	Put(ctx context.Context, identity string, s session.Session) error
	Clear(ctx context.Context, identity string) error
}

// sessionRedisStore holds each session as a redis hash under
// session:user:<identity>, TTL-bounded so abandoned readers expire.
type sessionRedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &sessionRedisStore{client: client, ttl: ttl}
}

func sessionKey(identity string) string {
	return fmt.Sprintf("session:user:%s", identity)
}

func (s *sessionRedisStore) Put(ctx context.Context, identity string, sess session.Session) error {
	key := sessionKey(identity)

	fields := map[string]any{
		"book_id":    sess.BookID,
		"title":      sess.Title,
		"page":       sess.Page,
		"page_count": sess.PageCount,
		"started_at": sess.StartedAt,
	}

	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *sessionRedisStore) Get(ctx context.Context, identity string) (*session.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil // no open reader
	}

	sess := &session.Session{Title: fields["title"]}
	sess.BookID, _ = strconv.ParseInt(fields["book_id"], 10, 64)
	sess.Page, _ = strconv.Atoi(fields["page"])
	sess.PageCount, _ = strconv.Atoi(fields["page_count"])
	sess.StartedAt, _ = strconv.ParseInt(fields["started_at"], 10, 64)
	return sess, nil
}

func (s *sessionRedisStore) Clear(ctx context.Context, identity string) error {
	return s.client.Del(ctx, sessionKey(identity)).Err()
}
