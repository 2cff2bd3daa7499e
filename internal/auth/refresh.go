package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound is returned when a refresh token is unknown,
// expired, or already revoked.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore holds server-issued refresh tokens keyed by their opaque
// value. Tokens are single-use: Consume removes the token it resolves.
type RefreshTokenStore interface {
	Issue(userID int, ttl time.Duration) (string, error)
	Consume(token string) (int, error)
	RevokeAll(userID int) error
}

// NewRefreshToken returns a random opaque token value.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshTokenStore keeps refresh tokens in Redis with a TTL, so they
// expire server-side without a cleanup loop.
type RedisRefreshTokenStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisRefreshTokenStore(rdb *redis.Client, ctx context.Context) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{rdb: rdb, ctx: ctx}
}

func (s *RedisRefreshTokenStore) Issue(userID int, ttl time.Duration) (string, error) {
	token, err := NewRefreshToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(s.ctx, refreshKeyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	_ = s.rdb.SAdd(s.ctx, fmt.Sprintf("%suser:%d", refreshKeyPrefix, userID), token).Err()
	return token, nil
}

func (s *RedisRefreshTokenStore) Consume(token string) (int, error) {
	userID, err := s.rdb.GetDel(s.ctx, refreshKeyPrefix+token).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	_ = s.rdb.SRem(s.ctx, fmt.Sprintf("%suser:%d", refreshKeyPrefix, userID), token).Err()
	return userID, nil
}

func (s *RedisRefreshTokenStore) RevokeAll(userID int) error {
	setKey := fmt.Sprintf("%suser:%d", refreshKeyPrefix, userID)
	tokens, err := s.rdb.SMembers(s.ctx, setKey).Result()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		_ = s.rdb.Del(s.ctx, refreshKeyPrefix+token).Err()
	}
	return s.rdb.Del(s.ctx, setKey).Err()
}

type memoryRefreshToken struct {
	userID    int
	expiresAt time.Time
}

// InMemoryRefreshTokenStore mirrors the Redis store for the test suites.
type InMemoryRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryRefreshToken
}

func NewInMemoryRefreshTokenStore() *InMemoryRefreshTokenStore {
	return &InMemoryRefreshTokenStore{tokens: map[string]memoryRefreshToken{}}
}

func (s *InMemoryRefreshTokenStore) Issue(userID int, ttl time.Duration) (string, error) {
	token, err := NewRefreshToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.tokens[token] = memoryRefreshToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *InMemoryRefreshTokenStore) Consume(token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.tokens, token)
		return 0, ErrRefreshTokenNotFound
	}
	delete(s.tokens, token)
	return entry.userID, nil
}

func (s *InMemoryRefreshTokenStore) RevokeAll(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, entry := range s.tokens {
		if entry.userID == userID {
			delete(s.tokens, token)
		}
	}
	return nil
}
