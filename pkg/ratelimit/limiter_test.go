package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitSpacesCalls(t *testing.T) {
	limiter := New("yahoo", 50)

	ctx := context.Background()
	start := time.Now()

	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	// Burst is 1, so calls after the first wait roughly 20ms each.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected calls to be spaced out, elapsed %v", elapsed)
	}
}

func TestWaitDisabled(t *testing.T) {
	limiter := New("newsapi", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// A disabled limiter never blocks.
	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}

func TestWaitCancelled(t *testing.T) {
	limiter := New("edgar", 0.1)

	ctx, cancel := context.WithCancel(context.Background())

	// Use up the single burst slot, then cancel before the next slot.
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("Expected error when context is cancelled")
	}
}

func TestName(t *testing.T) {
	limiter := New("yahoo", 2)
	if limiter.Name() != "yahoo" {
		t.Errorf("Expected name yahoo, got %s", limiter.Name())
	}
}
