package redissvc

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisService bundles the shared client and its base context for the
// packages that keep state in Redis (refresh tokens, alert log).
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}
