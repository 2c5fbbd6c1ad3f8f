package track

import (
	"net/http"
	"strings"

	"DealBoard/pkg/kit"
)

type Server struct {
	Sink *Sink
}

type trackReq struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func (s *Server) TrackHandler() http.HandlerFunc { return s.track }

func (s *Server) track(w http.ResponseWriter, r *http.Request) {
	var req trackReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	// Any well-formed body is accepted, even with a blank event name; the
	// endpoint never pushes failures back into the client.
	s.Sink.Record(strings.TrimSpace(req.Event), req.Data)
	kit.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
