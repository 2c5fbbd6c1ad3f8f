package mailing

import (
	"context"
	"errors"
	"testing"
)

func TestMemStore_AddAndGet(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	e, err := s.Add(ctx, "User@Example.com ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Email != "user@example.com" {
		t.Fatalf("email=%q want normalized", e.Email)
	}
	if e.ID == "" || e.SubscribedAt.IsZero() {
		t.Fatalf("identity missing: %+v", e)
	}

	got, ok, err := s.Get(ctx, "user@example.com")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != e.ID {
		t.Fatalf("id mismatch")
	}
}

func TestMemStore_RejectsDuplicates(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, "dup@example.com"); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := s.Add(ctx, "DUP@example.com")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err=%v want ErrDuplicateEmail", err)
	}

	// First entry untouched.
	got, ok, _ := s.Get(ctx, "dup@example.com")
	if !ok || got.Email != "dup@example.com" {
		t.Fatalf("original entry lost: %+v", got)
	}
}

func TestMemStore_GetUnknown(t *testing.T) {
	s := NewMemStore()

	if _, ok, _ := s.Get(context.Background(), "nobody@example.com"); ok {
		t.Fatalf("expected not found")
	}
}
