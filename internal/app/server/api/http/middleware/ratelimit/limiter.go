package ratelimit

import (
	"context"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

const sweepInterval = 5 * time.Minute

type Decision struct {
	Allowed   bool
	Count     int
	WindowEnd time.Time
}

// Limiter считает запросы по ключу в фиксированном окне.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) Decision
	Close() error
}

type Memory struct {
	mu      sync.Mutex
	entries map[string]state
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

type state struct {
	count     int
	windowEnd time.Time
}

func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]state),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.entries[key]
	if !ok || now.After(st.windowEnd) {
		st = state{count: 1, windowEnd: now.Add(window)}
		m.entries[key] = st
		return Decision{Allowed: true, Count: 1, WindowEnd: st.windowEnd}
	}
	if st.count >= limit {
		return Decision{Allowed: false, Count: st.count, WindowEnd: st.windowEnd}
	}
	st.count++
	m.entries[key] = st
	return Decision{Allowed: true, Count: st.count, WindowEnd: st.windowEnd}
}

func (m *Memory) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.cleanup(m.now())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Memory) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, st := range m.entries {
		if now.After(st.windowEnd) {
			delete(m.entries, key)
		}
	}
}

func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stopCh) })
	return nil
}

// Redis: общий для нескольких инстансов счётчик. При недоступности Redis запрос пропускается.
type Redis struct {
	client  redis.Cmdable
	closer  func() error
	log     *slog.Logger
	prefix  string
	timeout time.Duration
}

func NewRedis(ctx context.Context, addr, password string, db int, log *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return newRedis(client, client.Close, log), nil
}

func newRedis(client redis.Cmdable, closer func() error, log *slog.Logger) *Redis {
	return &Redis{
		client:  client,
		closer:  closer,
		log:     log.With("component", "redis_rate_limiter"),
		prefix:  "healthwatch:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	redisKey := r.prefix + key
	counter, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		r.log.Error("redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}
	// TTL < 0: ключ без срока (первый инкремент или прошлый EXPIRE не прошёл)
	ttl, err := r.client.TTL(ctx, redisKey).Result()
	if err != nil {
		r.log.Error("redis rate limiter error", "op", "ttl", "error", err)
		ttl = window
	}
	if ttl < 0 {
		if err := r.client.Expire(ctx, redisKey, window).Err(); err != nil {
			r.log.Error("redis rate limiter error", "op", "expire", "error", err)
		}
		ttl = window
	}

	return Decision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(ttl),
	}
}

func (r *Redis) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
