package httpapi

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"holdco-backend/internal/catalog"
	"holdco-backend/internal/model"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// catalogListHandler serves the filtered, sorted, paginated listing view
// for one catalog section. Filtering is a pure derivation over the
// current snapshot; the same query always yields the same page.
func (s *Server) catalogListHandler(w http.ResponseWriter, r *http.Request) {
	kindStr := mux.Vars(r)["kind"]
	if !model.ValidKind(kindStr) {
		writeError(w, http.StatusNotFound, "unknown catalog section")
		return
	}
	kind := model.Kind(kindStr)

	q := r.URL.Query()
	f := catalog.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     catalog.SortKey(q.Get("sort")),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil && v > 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	// A bucket label overrides explicit bounds; unknown labels disable
	// the price predicate rather than erroring.
	if b := q.Get("bucket"); b != "" {
		f.MinPrice, f.MaxPrice = catalog.Bucket(b)
	}

	limit := defaultPageSize
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= maxPageSize {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	filtered := catalog.Apply(s.Snap.Kind(kind), f)
	page, total := catalog.Page(filtered, limit, offset)

	// The category dropdown comes from the projected index when available,
	// so it reflects everything the projectors have seen, not just the
	// current snapshot.
	categories := catalog.Categories(s.Snap.Kind(kind))
	if s.Catalog != nil {
		if cats, err := s.Catalog.Categories(r.Context(), kind); err == nil && len(cats) > 0 {
			categories = cats
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":      page,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
		"categories": categories,
	})
}

// catalogDetailHandler serves one listing by ID. The projected shard is
// the fast path: ready-to-send JSON, no marshalling. A shard miss falls
// back to the snapshot; missing both ways is a JSON 404.
func (s *Server) catalogDetailHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kindStr, id := vars["kind"], vars["id"]
	if !model.ValidKind(kindStr) {
		writeError(w, http.StatusNotFound, "unknown catalog section")
		return
	}
	kind := model.Kind(kindStr)

	if s.Catalog != nil {
		data, err := s.Catalog.Shard(r.Context(), kind, id)
		if err != nil {
			log.Printf("shard read error for %s/%s: %v", kind, id, err)
		}
		if len(data) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	it, ok := s.Snap.Get(kind, id)
	if !ok {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// servicesHandler proxies the enterprise services list for the
// consultation form dropdown.
func (s *Server) servicesHandler(w http.ResponseWriter, r *http.Request) {
	svcs, err := s.Upstream.Services(r.Context())
	if err != nil {
		log.Printf("services fetch error: %v", err)
		writeError(w, http.StatusBadGateway, "services unavailable, try again")
		return
	}
	writeJSON(w, http.StatusOK, svcs)
}

// founderHandler proxies the founder profile.
func (s *Server) founderHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.Upstream.Founder(r.Context())
	if err != nil {
		log.Printf("founder fetch error: %v", err)
		writeError(w, http.StatusBadGateway, "profile unavailable, try again")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
