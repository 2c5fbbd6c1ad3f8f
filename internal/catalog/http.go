package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DealBoard/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger
}

func (s *Server) ListHandler() http.HandlerFunc           { return s.list }
func (s *Server) ListByCategoryHandler() http.HandlerFunc { return s.listByCategory }
func (s *Server) GetBySlugHandler() http.HandlerFunc      { return s.getBySlug }
func (s *Server) CreateHandler() http.HandlerFunc         { return s.create }
func (s *Server) WebhookHandler() http.HandlerFunc        { return s.webhook }

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.List(r.Context()))
}

func (s *Server) listByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	kit.WriteJSON(w, http.StatusOK, s.Store.ListByCategory(r.Context(), category))
}

func (s *Server) getBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, ok := s.Store.GetBySlug(r.Context(), slug)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "card not found", map[string]any{"slug": slug})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in CardInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	c, err := s.Store.Create(r.Context(), in)
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, c)
}

// webhook accepts a batch of cards pushed from the sheet. Invalid rows are
// skipped with a log line; the batch itself never fails.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cards []CardInput `json:"cards"`
	}
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	accepted := 0
	for _, in := range req.Cards {
		if _, err := s.Store.Create(r.Context(), in); err != nil {
			if s.Log != nil {
				s.Log.Warn("webhook card rejected", zap.Error(err), zap.String("service", in.ServiceName))
			}
			continue
		}
		accepted++
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"accepted": accepted,
	})
}

func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidCard):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid card", map[string]any{"cause": err.Error()})
	case errors.Is(err, ErrSlugExists):
		kit.WriteError(w, r, http.StatusConflict, "slug already exists", nil)
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
