package httpapi

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"holdco-backend/internal/model"
)

const defaultDashboardLimit = 50

// dashboardLeadsHandler lists the newest leads of one kind for the
// internal dashboard. Requires a valid session.
func (s *Server) dashboardLeadsHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.LeadKind(mux.Vars(r)["kind"])
	switch kind {
	case model.LeadContact, model.LeadConsultation, model.LeadOffer,
		model.LeadEnrollment, model.LeadBooking:
	default:
		writeError(w, http.StatusNotFound, "unknown lead kind")
		return
	}

	limit := defaultDashboardLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	rows, err := s.Leads.Recent(r.Context(), kind, limit)
	if err != nil {
		log.Printf("dashboard: recent leads error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	if rows == nil {
		rows = []model.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}
