package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"holdco-backend/internal/auth"
	"holdco-backend/internal/booking"
	"holdco-backend/internal/catalog"
	"holdco-backend/internal/kstream"
	"holdco-backend/internal/model"
	"holdco-backend/internal/ratelimit"
	"holdco-backend/internal/upstream"
)

// LeadStore is the persistence surface the form handlers need. Satisfied
// by *leads.Store; tests substitute a fake.
type LeadStore interface {
	Insert(ctx context.Context, kind model.LeadKind, name, email string, payload []byte) (*model.Lead, error)
	Recent(ctx context.Context, kind model.LeadKind, limit int) ([]model.Lead, error)
}

// CatalogReader serves the Redis read models the projectors maintain.
// Satisfied by *projections.Reader; tests substitute a fake.
type CatalogReader interface {
	Shard(ctx context.Context, kind model.Kind, id string) ([]byte, error)
	Categories(ctx context.Context, kind model.Kind) ([]string, error)
}

// SavedStore holds the per-principal favorite sets. Satisfied by
// *saved.Store.
type SavedStore interface {
	Toggle(ctx context.Context, kind model.Kind, principal, id string) (bool, error)
	List(ctx context.Context, kind model.Kind, principal string) ([]string, error)
	Merge(ctx context.Context, kind model.Kind, deviceID, userID string) error
}

// Deduper guards against duplicate form submissions. Satisfied by
// *forms.Deduper.
type Deduper interface {
	Do(ctx context.Context, fingerprint string, fn func() (any, error)) (any, bool, error)
}

// Server carries the handler dependencies. Publish defaults to the Kafka
// producer; tests override it.
type Server struct {
	Snap     *catalog.Snapshot
	Catalog  CatalogReader
	Upstream *upstream.Client
	Leads    LeadStore
	Auth     *auth.Service
	Saved    SavedStore
	Booking  *booking.Stepper
	Dedupe   Deduper
	Publish  func(ctx context.Context, evt model.LeadAccepted) error
}

// NewServer wires the default publisher.
func NewServer() *Server {
	return &Server{Publish: kstream.PublishLeadAccepted}
}

// RegisterRoutes wires the full site API onto the router.
// gorilla/mux: method-based routing and URL pattern matching.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Catalog read path (public).
	api.HandleFunc("/catalog/{kind}", s.catalogListHandler).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{kind}/{id}", s.catalogDetailHandler).Methods(http.MethodGet)
	api.HandleFunc("/services", s.servicesHandler).Methods(http.MethodGet)
	api.HandleFunc("/founder", s.founderHandler).Methods(http.MethodGet)

	// Lead forms (public, rate limited).
	limiter := ratelimit.New()
	formsRouter := api.PathPrefix("").Subrouter()
	formsRouter.Use(limiter.Middleware)
	formsRouter.HandleFunc("/contact", s.contactHandler).Methods(http.MethodPost)
	formsRouter.HandleFunc("/consultation", s.consultationHandler).Methods(http.MethodPost)
	formsRouter.HandleFunc("/offers", s.offerHandler).Methods(http.MethodPost)
	formsRouter.HandleFunc("/enrollments", s.enrollmentHandler).Methods(http.MethodPost)
	formsRouter.HandleFunc("/bookings", s.bookingBeginHandler).Methods(http.MethodPost)
	formsRouter.HandleFunc("/bookings/{id}/payment", s.bookingPaymentHandler).Methods(http.MethodPost)

	// Authenticated property submission.
	api.Handle("/properties", auth.RequireAuth(http.HandlerFunc(s.propertySubmitHandler))).Methods(http.MethodPost)

	// Authenticated lead dashboard.
	api.Handle("/dashboard/leads/{kind}", auth.RequireAuth(http.HandlerFunc(s.dashboardLeadsHandler))).Methods(http.MethodGet)

	// Account flows.
	api.HandleFunc("/auth/signup", s.signupHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", s.verifyHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.loginHandler).Methods(http.MethodPost)
	api.Handle("/auth/password/change", auth.RequireAuth(http.HandlerFunc(s.changePasswordHandler))).Methods(http.MethodPost)
	api.HandleFunc("/auth/password/forgot", s.forgotPasswordHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/password/reset", s.resetPasswordHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/password/strength", s.passwordStrengthHandler).Methods(http.MethodPost)

	// Favorites. OptionalAuth: logged-in users get account-scoped sets,
	// anonymous clients are scoped by X-Device-ID.
	api.Handle("/saved/{kind}", auth.OptionalAuth(http.HandlerFunc(s.savedListHandler))).Methods(http.MethodGet)
	api.Handle("/saved/{kind}", auth.OptionalAuth(http.HandlerFunc(s.savedToggleHandler))).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
