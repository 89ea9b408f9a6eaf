package order

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{"pending": StatusPending, " Served ": StatusServed} {
		got, err := ParseStatus(raw)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v", raw, got, err)
		}
	}
	for _, raw := range []string{"", "approved", "rejected"} {
		if _, err := ParseStatus(raw); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseStatus(%q) should fail with ErrInvalidArgument, got %v", raw, err)
		}
	}
}

func TestParseStatusList(t *testing.T) {
	got, err := ParseStatusList("pending,served,pending")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !reflect.DeepEqual(got, []Status{StatusPending, StatusServed}) {
		t.Fatalf("unexpected statuses %v", got)
	}
	if got, err := ParseStatusList(""); err != nil || got != nil {
		t.Fatalf("empty filter should be nil, got %v %v", got, err)
	}
	if _, err := ParseStatusList("pending,cooking"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseRetentionDays(t *testing.T) {
	cases := map[string]int{"": 30, "abc": 30, "0": 30, "-": 30, "7": 7, " 45 ": 45, "10abc": 10, "+12": 12, "36500": 36500}
	for raw, want := range cases {
		got, err := ParseRetentionDays(raw)
		if err != nil || got != want {
			t.Errorf("ParseRetentionDays(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	for _, raw := range []string{"-1", "-5days", "36501", "9223372036854775807", "99999999999999999999"} {
		if _, err := ParseRetentionDays(raw); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseRetentionDays(%q): expected ErrInvalidArgument, got %v", raw, err)
		}
	}
}

func TestMemoryIdempotencyStore_Expires(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Minute)
	now := baseTime
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Remember(ctx, "k", "o-1"); err != nil {
		t.Fatalf("remember failed: %v", err)
	}
	store.Remember(ctx, "k", "o-2")
	if id, ok, _ := store.Lookup(ctx, "k"); !ok || id != "o-1" {
		t.Fatalf("expected first order to win, got %q %v", id, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Lookup(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestNewNotification_Flattens(t *testing.T) {
	ord := Order{
		OrderID:    "o-1",
		Customer:   Customer{Name: "Ann", Mobile: "081", Table: "A3", CustomerID: "c-1"},
		Items:      []Item{{ItemID: "x", Name: "Pizza", Price: 10, Quantity: 2, Total: 20}},
		TotalPrice: 20,
		Status:     StatusPending,
		OrderTime:  baseTime,
	}
	n := NewNotification(ord)
	want := Notification{
		OrderID: "o-1", CustomerName: "Ann", CustomerMobile: "081", Table: "A3",
		Items:      []NotificationItem{{Name: "Pizza", Quantity: 2, Total: 20}},
		TotalPrice: 20, Status: StatusPending, OrderTime: baseTime,
	}
	if !reflect.DeepEqual(n, want) {
		t.Fatalf("unexpected notification %+v", n)
	}
}
