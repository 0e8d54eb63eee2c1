package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/model"
)

// Token resolution errors. Both map to the same client-visible response;
// the distinction lives in the logs only.
var (
	ErrInvalidToken          = errors.New("session token is malformed")
	ErrExpiredOrUnknownToken = errors.New("session token is expired or unknown")
)

// tokenPattern is the required session token format: exactly 64 lowercase
// hex characters. Anything else is rejected before any store access.
var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidTokenFormat reports whether token matches the required format.
func ValidTokenFormat(token string) bool {
	return tokenPattern.MatchString(token)
}

// TokenService is the single authority resolving session tokens to
// identities. Resolution is read-only: tokens are issued and renewed by the
// external login flow.
type TokenService struct {
	sessions SessionStore
	cache    KeyCache
	log      zerolog.Logger
}

// NewTokenService creates a new TokenService.
func NewTokenService(sessions SessionStore, cache KeyCache, log zerolog.Logger) *TokenService {
	return &TokenService{
		sessions: sessions,
		cache:    cache,
		log:      log.With().Str("component", "token_service").Logger(),
	}
}

// Resolve validates a session token and returns the trusted identity bound
// to it. The format gate runs first so malformed or scanning input never
// touches Redis or PostgreSQL.
func (s *TokenService) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if !ValidTokenFormat(token) {
		s.log.Debug().Msg("Rejected malformed session token")
		return nil, ErrInvalidToken
	}

	key := config.CacheKey.SessionKey(token)

	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		if id, ok := parseCachedIdentity(val); ok {
			return id, nil
		}
		// Corrupt cache entry — fall through to the store.
		s.log.Warn().Msg("Dropped unparseable session cache entry")
		_ = s.cache.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		// Redis down degrades resolution to the store, never to a denial.
		s.log.Warn().Err(err).Msg("Session cache read failed")
	}

	id, expiresAt, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.log.Debug().Msg("Rejected expired or unknown session token")
			return nil, ErrExpiredOrUnknownToken
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	// Self-heal the cache with the session's remaining lifetime.
	if ttl := time.Until(expiresAt); ttl > 0 {
		if err := s.cache.Set(ctx, key, formatCachedIdentity(id), ttl).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Session cache write failed")
		}
	}

	return id, nil
}

// Cached identities are stored as "role:subject_id:classroom_id".

func formatCachedIdentity(id *model.Identity) string {
	return fmt.Sprintf("%s:%d:%d", id.Role, id.SubjectID, id.ClassroomID)
}

func parseCachedIdentity(val string) (*model.Identity, bool) {
	parts := strings.SplitN(val, ":", 3)
	if len(parts) != 3 {
		return nil, false
	}
	role := model.Role(parts[0])
	if role != model.RoleStudent && role != model.RoleTeacher {
		return nil, false
	}
	subjectID, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, false
	}
	classroomID, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, false
	}
	return &model.Identity{SubjectID: subjectID, ClassroomID: classroomID, Role: role}, true
}
