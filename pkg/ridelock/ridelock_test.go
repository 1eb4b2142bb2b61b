package ridelock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, opts Options) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, opts), mr
}

func TestWithRideLockRunsAndReleases(t *testing.T) {
	locker, mr := newLocker(t, Options{Expiry: time.Second, Tries: 1})

	called := false
	err := locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error {
		called = true
		assert.True(t, mr.Exists(keyPrefix+"ride-1"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, mr.Exists(keyPrefix+"ride-1"))
}

func TestWithRideLockBusy(t *testing.T) {
	locker, _ := newLocker(t, Options{Expiry: 5 * time.Second, Tries: 1, RetryDelay: time.Millisecond})

	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	err := locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error {
		t.Error("second holder must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestWithRideLockDifferentRidesDoNotBlock(t *testing.T) {
	locker, _ := newLocker(t, Options{Expiry: 5 * time.Second, Tries: 1})

	err := locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error {
		return locker.WithRideLock(ctx, "ride-2", func(ctx context.Context) error { return nil })
	})

	assert.NoError(t, err)
}

func TestWithRideLockSerializes(t *testing.T) {
	locker, _ := newLocker(t, Options{Expiry: 5 * time.Second, Tries: 200, RetryDelay: 5 * time.Millisecond})

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestWithRideLockUnavailable(t *testing.T) {
	locker, mr := newLocker(t, Options{Expiry: time.Second, Tries: 1})
	mr.Close()

	err := locker.WithRideLock(context.Background(), "ride-1", func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrUnavailable)
}
