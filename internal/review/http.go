package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DealBoard/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger
}

func (s *Server) GetBySlugHandler() http.HandlerFunc { return s.getBySlug }

func (s *Server) getBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	rev, found, err := s.Store.GetBySlug(slug)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("load review failed", zap.Error(err), zap.String("slug", slug))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "review not found", map[string]any{"slug": slug})
		return
	}

	kit.WriteJSON(w, http.StatusOK, rev)
}
