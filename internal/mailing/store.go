package mailing

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrDuplicateEmail = errors.New("email already subscribed")
	ErrInvalidEmail   = errors.New("invalid email address")
)

type Entry struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// Store persists mailing list subscriptions. Duplicates are rejected at
// write time, never overwritten.
type Store interface {
	Add(ctx context.Context, email string) (Entry, error)
	Get(ctx context.Context, email string) (Entry, bool, error)
	Ping(ctx context.Context) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
