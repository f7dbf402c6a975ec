package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// recoveryInterval is how often a downed cache is re-pinged until it
// answers again.
const recoveryInterval = time.Second

// Redis wraps a go-redis client with an availability flag and a bounded
// per-operation timeout. The flag is flipped down by failed operations and
// back up by connect events or the recovery probe, so callers can route
// around an outage without waiting on dead sockets and return once the
// server answers again.
type Redis struct {
	client     *goredis.Client
	available  atomic.Bool
	recovering atomic.Bool
	opTimeout  time.Duration

	// probeEvery is recoveryInterval except in tests.
	probeEvery time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// NewRedis creates a Redis store for the given address. The initial ping is
// best-effort: a cache that is down at startup only leaves the flag false
// and starts the recovery probe, it never fails construction.
func NewRedis(addr, password string, opTimeout time.Duration) *Redis {
	r := &Redis{
		opTimeout:  opTimeout,
		probeEvery: recoveryInterval,
		done:       make(chan struct{}),
	}

	r.client = goredis.NewClient(&goredis.Options{
		Addr:       addr,
		Password:   password,
		DB:         0,
		MaxRetries: 3,
		OnConnect: func(ctx context.Context, cn *goredis.Conn) error {
			r.available.Store(true)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if r.client.Ping(ctx).Err() == nil {
		r.available.Store(true)
	} else {
		r.markDown()
	}

	return r
}

// Available reports whether the last interaction with the cache succeeded.
func (r *Redis) Available() bool {
	return r.available.Load()
}

// Close stops the recovery probe and releases the underlying client.
func (r *Redis) Close() error {
	r.closeOnce.Do(func() { close(r.done) })
	return r.client.Close()
}

// markDown lowers the availability flag and ensures a recovery probe is
// running. go-redis reconnects lazily, on the next command; since callers
// stop issuing commands while the flag is down, something has to ping the
// server actively or the flag would stay down forever.
func (r *Redis) markDown() {
	r.available.Store(false)

	if !r.recovering.CompareAndSwap(false, true) {
		return
	}
	go func() {
		ticker := time.NewTicker(r.probeEvery)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				r.recovering.Store(false)
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
				err := r.client.Ping(ctx).Err()
				cancel()
				if err == nil {
					r.recovering.Store(false)
					r.available.Store(true)
					return
				}
			}
		}
	}()
}

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opTimeout)
}

// Get returns the value for key. ErrMiss distinguishes absence from
// infrastructure failure; any other error also marks the cache unavailable.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		r.markDown()
		return "", err
	}
	return val, nil
}

// Set stores value under key with ttl.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.markDown()
		return err
	}
	return nil
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.markDown()
		return err
	}
	return nil
}

// GetDelete atomically reads and removes key in a single GETDEL command,
// so concurrent consumers of the same key see at most one hit.
func (r *Redis) GetDelete(ctx context.Context, key string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		r.markDown()
		return "", err
	}
	return val, nil
}

// ErrMiss reports that a key is absent, as opposed to the cache being
// unreachable.
var ErrMiss = errors.New("cache miss")
