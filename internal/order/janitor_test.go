package order

import (
	"context"
	"testing"
	"time"
)

func TestJanitorSweep(t *testing.T) {
	seed := []Order{
		{ID: 1, OrderID: "old", RestaurantID: "r-1", CreatedAt: baseTime.AddDate(0, 0, -90)},
		{ID: 2, OrderID: "new", RestaurantID: "r-1", CreatedAt: baseTime.AddDate(0, 0, -1)},
	}
	repo := NewInMemoryRepository(seed)
	svc := NewService(repo, newFakeRestaurants(), WithClock(func() time.Time { return baseTime }))

	j := NewJanitor(svc, time.Hour, 60)
	if n := j.sweep(context.Background()); n != 1 {
		t.Fatalf("expected 1 deleted, got %d", n)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 order left, got %d", repo.Len())
	}
}

func TestJanitorRun_StopsWithContext(t *testing.T) {
	repo := NewInMemoryRepository([]Order{{ID: 1, OrderID: "old", CreatedAt: baseTime.AddDate(-1, 0, 0)}})
	svc := NewService(repo, newFakeRestaurants(), WithClock(func() time.Time { return baseTime }))
	j := NewJanitor(svc, 5*time.Millisecond, 30)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for repo.Len() != 0 {
		select {
		case <-deadline:
			t.Fatalf("janitor never swept")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("janitor did not stop")
	}
}

func TestJanitorRun_DisabledReturnsImmediately(t *testing.T) {
	j := NewJanitor(nil, 0, 30)
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("disabled janitor returned %v", err)
	}
}
