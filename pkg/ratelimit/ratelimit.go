package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var ErrNilClient = errors.New("ratelimit: redis client is nil")

// Limiter решает, можно ли пропустить очередной запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisLimiter фиксированное окно на INCR + EXPIRE, общее для всех экземпляров сервиса
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil {
		return false, ErrNilClient
	}

	redisKey := "rate_limit:" + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: increment %s: %w", redisKey, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire %s: %w", redisKey, err)
		}
	}

	return count <= int64(l.limit), nil
}

// MemoryLimiter token bucket на ключ в памяти процесса
type MemoryLimiter struct {
	limiters sync.Map
	every    rate.Limit
	burst    int
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &MemoryLimiter{
		every: rate.Every(window / time.Duration(limit)),
		burst: limit,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	limiter, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.every, l.burst))
	return limiter.(*rate.Limiter).Allow(), nil
}

// FailoverLimiter использует primary (Redis), а при его ошибке переключается на fallback
// Раз в recheckAfter снова пробует primary
type FailoverLimiter struct {
	primary      Limiter
	fallback     Limiter
	logger       Logger
	recheckAfter time.Duration

	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverLimiter(primary, fallback Limiter, logger Logger) *FailoverLimiter {
	return &FailoverLimiter{
		primary:      primary,
		fallback:     fallback,
		logger:       logger,
		recheckAfter: time.Minute,
		now:          time.Now,
	}
}

func (l *FailoverLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.isDown.Load() && l.now().Sub(time.Unix(0, l.lastCheck.Load())) > l.recheckAfter {
		allowed, err := l.primary.Allow(ctx, key)
		if err == nil {
			l.isDown.Store(false)
			l.logger.Warn("RateLimit: primary limiter recovered")
			return allowed, nil
		}
		l.lastCheck.Store(l.now().UnixNano())
	}

	if !l.isDown.Load() {
		allowed, err := l.primary.Allow(ctx, key)
		if err == nil {
			return allowed, nil
		}
		l.logger.Error("RateLimit: primary limiter failed, falling back to memory: %v", err)
		l.isDown.Store(true)
		l.lastCheck.Store(l.now().UnixNano())
	}

	return l.fallback.Allow(ctx, key)
}
