package review

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is a two-tier lookup: an in-memory cache of materialized reviews in
// front of a document provider. A review is parsed and rendered once, on the
// first read of its slug.
type Store struct {
	provider Provider

	mu     sync.RWMutex
	bySlug map[string]Review

	now func() time.Time
}

func NewStore(provider Provider) *Store {
	return &Store{
		provider: provider,
		bySlug:   make(map[string]Review),
		now:      time.Now,
	}
}

func (s *Store) GetBySlug(slug string) (Review, bool, error) {
	s.mu.RLock()
	r, ok := s.bySlug[slug]
	s.mu.RUnlock()
	if ok {
		return r, true, nil
	}

	doc, found, err := s.provider.Load(slug)
	if err != nil {
		return Review{}, false, err
	}
	if !found {
		return Review{}, false, nil
	}

	r = Review{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       doc.Title,
		Content:     doc.Body,
		ContentHTML: renderHTML(doc.Body),
		CoverImage:  doc.CoverImage,
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another reader may have materialized the same slug in the meantime;
	// keep the first copy so repeated reads stay identical.
	if cached, ok := s.bySlug[slug]; ok {
		return cached, true, nil
	}
	s.bySlug[slug] = r
	return r, true, nil
}

// Create registers a review directly, bypassing the document provider.
func (s *Store) Create(slug, title, content, coverImage string) Review {
	r := Review{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       title,
		Content:     content,
		ContentHTML: renderHTML(content),
		CoverImage:  coverImage,
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	s.bySlug[slug] = r
	s.mu.Unlock()
	return r
}

func (s *Store) List() []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, 0, len(s.bySlug))
	for _, r := range s.bySlug {
		out = append(out, r)
	}
	return out
}
