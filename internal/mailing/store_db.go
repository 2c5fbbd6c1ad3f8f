package mailing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Add(ctx context.Context, email string) (Entry, error) {
	e := Entry{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		SubscribedAt: time.Now().UTC(),
	}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO mailing_list (id, email, subscribed_at)
			VALUES ($1, $2, $3)
		`, e.ID, e.Email, e.SubscribedAt)

		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *PostgresStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	var e Entry

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, email, subscribed_at
			FROM mailing_list
			WHERE email = $1
		`, normalizeEmail(email)).Scan(&e.ID, &e.Email, &e.SubscribedAt)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
