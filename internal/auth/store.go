package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a publisher account allowed to push cards into the catalog.
type User struct {
	ID    string
	Email string
	Hash  []byte
}

type UserStore interface {
	Create(ctx context.Context, id, email, password string) error
	Verify(ctx context.Context, email, password string) (User, error)
	Ping(ctx context.Context) error
}
