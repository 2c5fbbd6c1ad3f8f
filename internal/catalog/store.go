package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// FreshnessWindow is the maximum age of fetched data before the next
	// read attempts a refresh.
	FreshnessWindow = 5 * time.Minute

	fetchTimeout = 10 * time.Second
)

var ErrSlugExists = errors.New("slug already exists")

// Fetcher pulls the current card set from the external sheet. An error or an
// empty result both leave the store untouched; the distinction only matters
// for logging.
type Fetcher interface {
	FetchCards(ctx context.Context) ([]Card, error)
}

// Store holds the visible catalog: a fixed seed set, manually created cards,
// and the last successfully fetched batch. A non-empty fetch replaces the
// fetched slice wholesale; it is never mutated in place, so readers always
// see a complete snapshot.
type Store struct {
	log     *zap.Logger
	fetcher Fetcher

	mu        sync.RWMutex
	seed      []Card
	created   []Card
	fetched   []Card
	lastFetch time.Time

	refreshing atomic.Bool

	now func() time.Time
}

func NewStore(fetcher Fetcher, log *zap.Logger) *Store {
	return &Store{
		log:     log,
		fetcher: fetcher,
		seed:    seedCards(),
		now:     time.Now,
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

// refreshIfStale fetches a new batch when the last successful fetch is older
// than the freshness window. Only one caller fetches at a time; concurrent
// readers keep serving the previous snapshot. A failed or empty fetch leaves
// lastFetch untouched, so every subsequent read retries.
func (s *Store) refreshIfStale(ctx context.Context) {
	now := s.now()

	s.mu.RLock()
	stale := now.Sub(s.lastFetch) > FreshnessWindow
	s.mu.RUnlock()

	if !stale {
		return
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	cards, err := s.fetcher.FetchCards(ctx)
	if err != nil {
		s.log.Warn("sheet fetch failed, keeping previous snapshot", zap.Error(err))
		return
	}
	if len(cards) == 0 {
		s.log.Info("sheet fetch returned no rows, keeping previous snapshot")
		return
	}

	s.mu.Lock()
	s.fetched = cards
	s.lastFetch = now
	s.mu.Unlock()

	s.log.Info("catalog refreshed from sheet", zap.Int("cards", len(cards)))
}

// snapshot returns the visible card set: the fetched batch if one exists,
// otherwise the seed set plus manually created cards.
func (s *Store) snapshot() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.fetched) > 0 {
		out := make([]Card, len(s.fetched))
		copy(out, s.fetched)
		return out
	}

	out := make([]Card, 0, len(s.seed)+len(s.created))
	out = append(out, s.seed...)
	out = append(out, s.created...)
	return out
}

func (s *Store) List(ctx context.Context) []Card {
	s.refreshIfStale(ctx)
	return s.snapshot()
}

func (s *Store) ListByCategory(ctx context.Context, category string) []Card {
	s.refreshIfStale(ctx)

	all := s.snapshot()
	out := make([]Card, 0, len(all))
	for _, c := range all {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (Card, bool) {
	s.refreshIfStale(ctx)

	for _, c := range s.snapshot() {
		if c.Slug == slug {
			return c, true
		}
	}
	return Card{}, false
}

// Create validates and appends a card to the manually created bucket. Created
// cards share visibility with the seed set: they are shadowed while a fetched
// batch is present.
func (s *Store) Create(ctx context.Context, in CardInput) (Card, error) {
	if err := in.Validate(); err != nil {
		return Card{}, errors.Join(ErrInvalidCard, err)
	}

	c := in.Card()
	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.seed {
		if existing.Slug == c.Slug {
			return Card{}, ErrSlugExists
		}
	}
	for _, existing := range s.created {
		if existing.Slug == c.Slug {
			return Card{}, ErrSlugExists
		}
	}

	s.created = append(s.created, c)
	return c, nil
}
