package search

import (
	"context"
	"testing"
	"time"

	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

func TestMemoryStoreDiscardsCommitAfterExpiry(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)

	seq, err := store.BeginSearch(context.Background(), "s1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Let the session's TTL lapse before the search comes back.
	time.Sleep(25 * time.Millisecond)

	c := mustCriteria(t, "2025-03-10", "2025-03-12", 2, 0)
	applied, err := store.CompleteSearch(context.Background(), "s1", seq, c, []hotelapi.Room{{ID: "r1"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if applied {
		t.Fatal("a commit against an expired session must be discarded")
	}

	sess, err := store.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected no resurrected session, got %+v", sess)
	}
}

func TestMemoryStoreDiscardsFailureAfterExpiry(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)

	seq, err := store.BeginSearch(context.Background(), "s1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	applied, err := store.FailSearch(context.Background(), "s1", seq)
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if applied {
		t.Fatal("a failure write against an expired session must be discarded")
	}

	sess, err := store.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected no resurrected session, got %+v", sess)
	}
}

func TestMemoryStorePrunesExpiredEntries(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)

	seq, err := store.BeginSearch(context.Background(), "s1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	c := mustCriteria(t, "2025-03-10", "2025-03-12", 2, 0)
	if _, err := store.CompleteSearch(context.Background(), "s1", seq, c, nil); err != nil {
		t.Fatalf("complete: %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.sessions) != 0 || len(store.seqs) != 0 {
		t.Fatalf("expected expired entries pruned, got %d sessions and %d seqs",
			len(store.sessions), len(store.seqs))
	}
}
