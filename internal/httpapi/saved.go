package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"holdco-backend/internal/auth"
	"holdco-backend/internal/model"
)

// principal resolves who owns a saved set: the authenticated user when a
// valid bearer token is present, otherwise the client-chosen device ID.
func principal(r *http.Request) string {
	if p := auth.FromContext(r.Context()); p != nil {
		return "user:" + p.UserID
	}
	if dev := r.Header.Get("X-Device-ID"); dev != "" {
		return "device:" + dev
	}
	return ""
}

func (s *Server) savedListHandler(w http.ResponseWriter, r *http.Request) {
	kindStr := mux.Vars(r)["kind"]
	if !model.ValidKind(kindStr) {
		writeError(w, http.StatusNotFound, "unknown catalog section")
		return
	}
	who := principal(r)
	if who == "" {
		writeError(w, http.StatusBadRequest, "missing X-Device-ID header or bearer token")
		return
	}

	ids, err := s.Saved.List(r.Context(), model.Kind(kindStr), who)
	if err != nil {
		log.Printf("saved list error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

func (s *Server) savedToggleHandler(w http.ResponseWriter, r *http.Request) {
	kindStr := mux.Vars(r)["kind"]
	if !model.ValidKind(kindStr) {
		writeError(w, http.StatusNotFound, "unknown catalog section")
		return
	}
	who := principal(r)
	if who == "" {
		writeError(w, http.StatusBadRequest, "missing X-Device-ID header or bearer token")
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if payload := s.decodeForm(w, r, "saved_toggle", &req); payload == nil {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	savedNow, err := s.Saved.Toggle(r.Context(), model.Kind(kindStr), who, req.ID)
	if err != nil {
		log.Printf("saved toggle error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "saved": savedNow})
}
