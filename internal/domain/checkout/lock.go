package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActionLocker serializes the two terminal checkout actions per session: at
// most one of {reserve, pay} may be in flight at a time. The lock is taken
// before any network call and released on completion or failure; the TTL is
// a backstop against a crashed holder, not a retry mechanism.
type ActionLocker interface {
	// Acquire takes the session's action slot. When the slot is busy it
	// reports false plus the action currently holding it.
	Acquire(ctx context.Context, sessionID, action string) (bool, string, error)

	// Release frees the slot only while the given action still holds it.
	// A release arriving after the TTL handed the slot to another action
	// is a no-op.
	Release(ctx context.Context, sessionID, action string) error
}

// releaseScript deletes the lock only while the stored holder matches the
// releasing action. KEYS[1] = lock key, ARGV[1] = action.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisActionLocker implements the lock with SET NX + TTL.
type RedisActionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisActionLocker(client *redis.Client, ttl time.Duration) *RedisActionLocker {
	return &RedisActionLocker{client: client, ttl: ttl}
}

func lockKey(sessionID string) string { return "checkout:lock:" + sessionID }

func (l *RedisActionLocker) Acquire(ctx context.Context, sessionID, action string) (bool, string, error) {
	ok, err := l.client.SetNX(ctx, lockKey(sessionID), action, l.ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("checkout lock acquire: %w", err)
	}
	if ok {
		return true, action, nil
	}

	current, err := l.client.Get(ctx, lockKey(sessionID)).Result()
	if err == redis.Nil {
		// Holder released between SetNX and Get; caller simply retries.
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("checkout lock acquire: %w", err)
	}
	return false, current, nil
}

func (l *RedisActionLocker) Release(ctx context.Context, sessionID, action string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey(sessionID)}, action).Err(); err != nil {
		return fmt.Errorf("checkout lock release: %w", err)
	}
	return nil
}

// MemoryActionLocker is the in-process fallback used when redis is not
// configured.
type MemoryActionLocker struct {
	mu    sync.Mutex
	ttl   time.Duration
	locks map[string]memoryLock
}

type memoryLock struct {
	action string
	taken  time.Time
}

func NewMemoryActionLocker(ttl time.Duration) *MemoryActionLocker {
	return &MemoryActionLocker{
		ttl:   ttl,
		locks: make(map[string]memoryLock),
	}
}

func (l *MemoryActionLocker) Acquire(ctx context.Context, sessionID, action string) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[sessionID]; ok {
		if l.ttl <= 0 || time.Since(held.taken) <= l.ttl {
			return false, held.action, nil
		}
	}
	l.locks[sessionID] = memoryLock{action: action, taken: time.Now()}
	return true, action, nil
}

func (l *MemoryActionLocker) Release(ctx context.Context, sessionID, action string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[sessionID]; ok && held.action == action {
		delete(l.locks, sessionID)
	}
	return nil
}
