package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

// State is the render state of a search session. Exactly one state holds at
// any time: before the first search, while a search is in flight, and once a
// result set (possibly empty) has been committed.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateResults   State = "results"
)

// Session is the per-browser search session snapshot. Rooms are the offers
// of the last committed search, in inventory order; they are replaced
// wholesale on every commit, never edited in place.
type Session struct {
	ID        string          `json:"id"`
	State     State           `json:"state"`
	Seq       int64           `json:"seq"`
	CheckIn   string          `json:"check_in,omitempty"`
	CheckOut  string          `json:"check_out,omitempty"`
	Adults    int             `json:"adults,omitempty"`
	Children  int             `json:"children,omitempty"`
	Rooms     []hotelapi.Room `json:"rooms,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Criteria rebuilds the validated criteria the committed results belong to.
func (s *Session) Criteria() (Criteria, error) {
	return ParseCriteria(s.CheckIn, s.CheckOut, s.Adults, s.Children)
}

// Room returns the offer with the given id from the committed result set.
func (s *Session) Room(id string) (hotelapi.Room, bool) {
	for _, room := range s.Rooms {
		if room.ID == id {
			return room, true
		}
	}
	return hotelapi.Room{}, false
}

// SessionStore persists search sessions. Begin/Complete/Fail implement the
// stale-response guard: every search gets a fresh sequence number and only
// the holder of the current sequence may commit, so a slow old search can
// never overwrite a newer one's results.
type SessionStore interface {
	// Get returns the session, or nil when none exists (an idle session).
	Get(ctx context.Context, id string) (*Session, error)

	// BeginSearch moves the session to the searching state and returns the
	// new sequence number, superseding any search still in flight.
	BeginSearch(ctx context.Context, id string) (int64, error)

	// CompleteSearch commits results for the given sequence. It reports
	// false without writing when the sequence is no longer current or the
	// session is gone.
	CompleteSearch(ctx context.Context, id string, seq int64, c Criteria, rooms []hotelapi.Room) (bool, error)

	// FailSearch returns the session to idle for the given sequence, again
	// only when the sequence is still current.
	FailSearch(ctx context.Context, id string, seq int64) (bool, error)
}

// commitScript applies a session write only while the caller's sequence is
// still the current one. KEYS[1] = seq key, KEYS[2] = session key,
// ARGV = {seq, payload, ttl seconds}.
var commitScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	redis.call('SET', KEYS[2], ARGV[2], 'EX', ARGV[3])
	redis.call('EXPIRE', KEYS[1], ARGV[3])
	return 1
end
return 0
`)

// RedisSessionStore keeps sessions in redis with a TTL. Abandoned sessions
// simply expire; a commit against an expired session is a silent discard.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return "search:session:" + id }
func seqKey(id string) string     { return "search:seq:" + id }

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store get: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session store get: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) BeginSearch(ctx context.Context, id string) (int64, error) {
	seq, err := s.client.Incr(ctx, seqKey(id)).Result()
	if err != nil {
		return 0, fmt.Errorf("session store begin: %w", err)
	}
	if err := s.client.Expire(ctx, seqKey(id), s.ttl).Err(); err != nil {
		return 0, fmt.Errorf("session store begin: %w", err)
	}

	sess := Session{
		ID:        id,
		State:     StateSearching,
		Seq:       seq,
		UpdatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(&sess)
	if err != nil {
		return 0, fmt.Errorf("session store begin: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), payload, s.ttl).Err(); err != nil {
		return 0, fmt.Errorf("session store begin: %w", err)
	}
	return seq, nil
}

func (s *RedisSessionStore) CompleteSearch(ctx context.Context, id string, seq int64, c Criteria, rooms []hotelapi.Room) (bool, error) {
	sess := Session{
		ID:        id,
		State:     StateResults,
		Seq:       seq,
		CheckIn:   c.CheckInString(),
		CheckOut:  c.CheckOutString(),
		Adults:    c.Adults,
		Children:  c.Children,
		Rooms:     rooms,
		UpdatedAt: time.Now().UTC(),
	}
	return s.commit(ctx, id, seq, &sess)
}

func (s *RedisSessionStore) FailSearch(ctx context.Context, id string, seq int64) (bool, error) {
	sess := Session{
		ID:        id,
		State:     StateIdle,
		Seq:       seq,
		UpdatedAt: time.Now().UTC(),
	}
	return s.commit(ctx, id, seq, &sess)
}

func (s *RedisSessionStore) commit(ctx context.Context, id string, seq int64, sess *Session) (bool, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return false, fmt.Errorf("session store commit: %w", err)
	}

	ttlSeconds := int64(s.ttl / time.Second)
	applied, err := commitScript.Run(ctx, s.client,
		[]string{seqKey(id), sessionKey(id)},
		strconv.FormatInt(seq, 10), payload, ttlSeconds,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("session store commit: %w", err)
	}
	return applied == 1, nil
}

// MemorySessionStore is the in-process fallback used when redis is not
// configured. Same supersede semantics, one mutex.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	seqs     map[string]int64
	sessions map[string]*Session
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		seqs:     make(map[string]int64),
		sessions: make(map[string]*Session),
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.expired(sess) {
		s.pruneLocked(id)
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *MemorySessionStore) BeginSearch(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqs[id]++
	seq := s.seqs[id]
	s.sessions[id] = &Session{
		ID:        id,
		State:     StateSearching,
		Seq:       seq,
		UpdatedAt: time.Now().UTC(),
	}
	return seq, nil
}

func (s *MemorySessionStore) CompleteSearch(ctx context.Context, id string, seq int64, c Criteria, rooms []hotelapi.Room) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(id, seq) {
		return false, nil
	}
	s.sessions[id] = &Session{
		ID:        id,
		State:     StateResults,
		Seq:       seq,
		CheckIn:   c.CheckInString(),
		CheckOut:  c.CheckOutString(),
		Adults:    c.Adults,
		Children:  c.Children,
		Rooms:     rooms,
		UpdatedAt: time.Now().UTC(),
	}
	return true, nil
}

func (s *MemorySessionStore) FailSearch(ctx context.Context, id string, seq int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(id, seq) {
		return false, nil
	}
	s.sessions[id] = &Session{
		ID:        id,
		State:     StateIdle,
		Seq:       seq,
		UpdatedAt: time.Now().UTC(),
	}
	return true, nil
}

// currentLocked reports whether seq is still the session's active sequence.
// An expired or missing session counts as a mismatch and is pruned, so a
// late commit against an abandoned session is a silent discard, matching
// the redis path where the seq key itself expires.
func (s *MemorySessionStore) currentLocked(id string, seq int64) bool {
	sess, ok := s.sessions[id]
	if !ok {
		s.pruneLocked(id)
		return false
	}
	if s.expired(sess) {
		s.pruneLocked(id)
		return false
	}
	return s.seqs[id] == seq
}

func (s *MemorySessionStore) pruneLocked(id string) {
	delete(s.sessions, id)
	delete(s.seqs, id)
}

func (s *MemorySessionStore) expired(sess *Session) bool {
	return s.ttl > 0 && time.Since(sess.UpdatedAt) > s.ttl
}
