package ridelock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrBusy блокировку поездки держит другой запрос
	ErrBusy = errors.New("ridelock: ride is locked by another request")
	// ErrUnavailable Redis недоступен, блокировку взять не удалось
	ErrUnavailable = errors.New("ridelock: lock backend unavailable")
)

const (
	keyPrefix      = "ridelock:"
	releaseTimeout = 2 * time.Second
)

// Options параметры распределенной блокировки
type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// Locker сериализует бронирования одной поездки между экземплярами сервиса (redsync)
type Locker struct {
	rs   *redsync.Redsync
	opts Options
}

// New создает Locker поверх go-redis клиента
func New(client redis.UniversalClient, opts Options) *Locker {
	if opts.Expiry <= 0 {
		opts.Expiry = 5 * time.Second
	}
	if opts.Tries <= 0 {
		opts.Tries = 20
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 50 * time.Millisecond
	}

	return &Locker{
		rs:   redsync.New(goredis.NewPool(client)),
		opts: opts,
	}
}

// WithRideLock выполняет fn, удерживая блокировку поездки rideID
func (l *Locker) WithRideLock(ctx context.Context, rideID string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(
		keyPrefix+rideID,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return classify(err)
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_, _ = mutex.UnlockContext(releaseCtx)
	}()

	return fn(ctx)
}

func classify(err error) error {
	var taken *redsync.ErrTaken
	if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
