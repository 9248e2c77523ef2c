package session

import (
	"context"
	"fmt"
	"time"

	"storefront-web/internal/models"
	"storefront-web/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Preference field names. These match the keys the browser client stored
// and must stay stable so visitor preferences survive upgrades.
const (
	fieldToken       = "token"
	fieldStoreName   = "storeName"
	fieldLogo        = "logoPreview"
	fieldHeaderColor = "headerColor"
	fieldTemplateKey = "selectedTemplateKey"
)

const (
	loginRateLimitPeriod = time.Minute
	loginRateLimitCount  = 5
)

// Store keeps per-visitor session state (auth token plus store branding
// preferences) in one Redis hash per session id. Writes are
// last-write-wins; concurrent tabs are not synchronized.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore connects to Redis and verifies the connection.
func NewStore(addr, password string, db int, ttl time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Store{rdb: rdb, ttl: ttl, logger: util.GetLogger()}, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies the Redis connection for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// NewSessionID mints an opaque session identifier for the cookie.
func NewSessionID() string {
	return uuid.New().String()
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Branding loads the visitor's stored branding, applying defaults for
// any field never customized, and refreshes the session TTL.
func (s *Store) Branding(ctx context.Context, sid string) (models.StoreBranding, error) {
	values, err := s.rdb.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return models.DefaultBranding(), fmt.Errorf("failed to load session %s: %w", sid, err)
	}
	s.rdb.Expire(ctx, sessionKey(sid), s.ttl)

	branding := models.DefaultBranding()
	if v := values[fieldStoreName]; v != "" {
		branding.StoreName = v
	}
	if v := values[fieldLogo]; v != "" {
		branding.Logo = v
	}
	if v := values[fieldHeaderColor]; v != "" {
		branding.HeaderColor = v
	}
	if v := values[fieldTemplateKey]; v != "" {
		branding.TemplateKey = v
	}
	return branding, nil
}

// SaveBranding persists the visitor's store customization.
func (s *Store) SaveBranding(ctx context.Context, sid string, b models.StoreBranding) error {
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, sessionKey(sid), fieldStoreName, b.StoreName)
	pipe.HSet(ctx, sessionKey(sid), fieldLogo, b.Logo)
	pipe.HSet(ctx, sessionKey(sid), fieldHeaderColor, b.HeaderColor)
	pipe.HSet(ctx, sessionKey(sid), fieldTemplateKey, b.TemplateKey)
	pipe.Expire(ctx, sessionKey(sid), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save branding for session %s: %w", sid, err)
	}
	return nil
}

// SetTemplateKey switches the active storefront template.
func (s *Store) SetTemplateKey(ctx context.Context, sid, key string) error {
	if err := s.rdb.HSet(ctx, sessionKey(sid), fieldTemplateKey, key).Err(); err != nil {
		return fmt.Errorf("failed to store template key: %w", err)
	}
	s.rdb.Expire(ctx, sessionKey(sid), s.ttl)
	return nil
}

// Token returns the stored bearer token, empty when not authenticated.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	token, err := s.rdb.HGet(ctx, sessionKey(sid), fieldToken).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token for session %s: %w", sid, err)
	}
	return token, nil
}

// SetToken stores the bearer token obtained from login.
func (s *Store) SetToken(ctx context.Context, sid, token string) error {
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, sessionKey(sid), fieldToken, token)
	pipe.Expire(ctx, sessionKey(sid), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token for session %s: %w", sid, err)
	}
	return nil
}

// ClearToken drops the auth token on logout or upstream 401. Branding
// preferences are kept.
func (s *Store) ClearToken(ctx context.Context, sid string) error {
	if err := s.rdb.HDel(ctx, sessionKey(sid), fieldToken).Err(); err != nil {
		return fmt.Errorf("failed to clear token for session %s: %w", sid, err)
	}
	return nil
}

// AllowLogin rate-limits authentication attempts per client IP. Redis
// trouble fails open so a cache outage cannot lock everyone out.
func (s *Store) AllowLogin(ctx context.Context, ip string) bool {
	key := "rate_limit:login:" + ip

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("Login rate limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		s.rdb.Expire(ctx, key, loginRateLimitPeriod)
	}
	return count <= loginRateLimitCount
}
