package mailing

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"DealBoard/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

type subscribeReq struct {
	Email string `json:"email"`
}

func (s *Server) SubscribeHandler() http.HandlerFunc { return s.subscribe }

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid email address", nil)
		return
	}

	if _, err := s.Store.Add(r.Context(), email); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			kit.WriteError(w, r, http.StatusConflict, "email already subscribed", nil)
			return
		}
		if s.Log != nil {
			s.Log.Error("mailing list add failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("mailing list subscription", zap.String("email", email))
	}

	kit.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Successfully subscribed to mailing list",
	})
}
