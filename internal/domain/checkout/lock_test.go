package checkout

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLockerSerializesActions(t *testing.T) {
	l := NewMemoryActionLocker(time.Minute)

	ok, _, err := l.Acquire(context.Background(), "s1", ActionReserve)
	if err != nil || !ok {
		t.Fatalf("first acquire should succeed, got ok=%v err=%v", ok, err)
	}

	ok, current, err := l.Acquire(context.Background(), "s1", ActionPay)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok || current != ActionReserve {
		t.Fatalf("expected slot held by reserve, got ok=%v current=%q", ok, current)
	}

	if err := l.Release(context.Background(), "s1", ActionReserve); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _, err = l.Acquire(context.Background(), "s1", ActionPay)
	if err != nil || !ok {
		t.Fatalf("acquire after release should succeed, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryLockerLateReleaseDoesNotFreeNewHolder(t *testing.T) {
	l := NewMemoryActionLocker(10 * time.Millisecond)

	ok, _, err := l.Acquire(context.Background(), "s1", ActionReserve)
	if err != nil || !ok {
		t.Fatalf("first acquire should succeed, got ok=%v err=%v", ok, err)
	}

	// Let the first holder's TTL lapse; the slot goes to a new action.
	time.Sleep(25 * time.Millisecond)
	ok, _, err = l.Acquire(context.Background(), "s1", ActionPay)
	if err != nil || !ok {
		t.Fatalf("acquire after expiry should succeed, got ok=%v err=%v", ok, err)
	}

	// The original holder releasing late must not free the new lock.
	if err := l.Release(context.Background(), "s1", ActionReserve); err != nil {
		t.Fatalf("late release: %v", err)
	}

	ok, current, err := l.Acquire(context.Background(), "s1", ActionReserve)
	if err != nil {
		t.Fatalf("third acquire: %v", err)
	}
	if ok || current != ActionPay {
		t.Fatalf("expected slot still held by pay, got ok=%v current=%q", ok, current)
	}
}
