package redis

import (
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

const (
	sessionKeyPrefix     = "session:"
	sessionEventsChannel = "auth:session_events"
)

// SessionCache holds live sessions keyed by access token, expiring with the
// token itself.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func (c *SessionCache) Store(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	if err := c.client.Set(ctx, sessionKeyPrefix+session.AccessToken, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get resolves a token to its live session. Returns (nil, nil) when the
// token is unknown or expired.
func (c *SessionCache) Get(ctx context.Context, accessToken string) (*domain.Session, error) {
	data, err := c.client.Get(ctx, sessionKeyPrefix+accessToken).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (c *SessionCache) Delete(ctx context.Context, accessToken string) error {
	if err := c.client.Del(ctx, sessionKeyPrefix+accessToken).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SessionFeed carries session-change events over Redis pub/sub, so every
// process sees backend-pushed session changes.
type SessionFeed struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSessionFeed(client *redis.Client, log zerolog.Logger) *SessionFeed {
	return &SessionFeed{client: client, log: log}
}

func (f *SessionFeed) Publish(ctx context.Context, event ports.SessionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode session event: %w", err)
	}
	if err := f.client.Publish(ctx, sessionEventsChannel, data).Err(); err != nil {
		return fmt.Errorf("publish session event: %w", err)
	}
	return nil
}

// Subscribe registers a standing callback for session-change events. The
// returned function tears the subscription down.
func (f *SessionFeed) Subscribe(fn func(ports.SessionEvent)) func() {
	sub := f.client.Subscribe(context.Background(), sessionEventsChannel)

	go func() {
		for msg := range sub.Channel() {
			var event ports.SessionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				f.log.Warn().Err(err).Msg("malformed session event dropped")
				continue
			}
			fn(event)
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			f.log.Warn().Err(err).Msg("session feed unsubscribe failed")
		}
	}
}
