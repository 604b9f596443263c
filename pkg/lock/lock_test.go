package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeyedMutex_Exclusive(t *testing.T) {
	m := NewKeyedMutex()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := m.Acquire(context.Background(), "turf:a")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, m.Len(), "entries are dropped after release")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	m := NewKeyedMutex()

	releaseA, err := m.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := m.Acquire(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutex_ContextCancelled(t *testing.T) {
	m := NewKeyedMutex()

	release, err := m.Acquire(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Acquire(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()
	assert.Equal(t, 0, m.Len())
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	client, mock := redismock.NewClientMock()
	locker := NewRedisLocker(client, 10*time.Second, zap.NewNop(),
		WithTokenFunc(func() string { return "tok" }))

	mock.ExpectSetNX("lock:turf:a", "tok", 10*time.Second).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{"lock:turf:a"}, "tok").SetVal(int64(1))

	release, err := locker.Acquire(context.Background(), "turf:a")
	require.NoError(t, err)
	release()
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_RetriesUntilFree(t *testing.T) {
	client, mock := redismock.NewClientMock()
	locker := NewRedisLocker(client, 5*time.Second, zap.NewNop(),
		WithTokenFunc(func() string { return "tok" }),
		WithRetryInterval(time.Millisecond))

	mock.ExpectSetNX("lock:k", "tok", 5*time.Second).SetVal(false)
	mock.ExpectSetNX("lock:k", "tok", 5*time.Second).SetVal(true)

	_, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_GivesUpOnContext(t *testing.T) {
	client, mock := redismock.NewClientMock()
	locker := NewRedisLocker(client, 5*time.Second, zap.NewNop(),
		WithTokenFunc(func() string { return "tok" }),
		WithRetryInterval(time.Second))

	mock.ExpectSetNX("lock:k", "tok", 5*time.Second).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisLocker_BackendError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	locker := NewRedisLocker(client, 5*time.Second, zap.NewNop(),
		WithTokenFunc(func() string { return "tok" }))

	mock.ExpectSetNX("lock:k", "tok", 5*time.Second).SetErr(assert.AnError)

	_, err := locker.Acquire(context.Background(), "k")
	assert.ErrorIs(t, err, assert.AnError)
}
