package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"holdco-backend/internal/auth"
	"holdco-backend/internal/catalog"
	"holdco-backend/internal/model"
)

// fakeLeadStore records inserts in memory.
type fakeLeadStore struct {
	inserted []model.Lead
	fail     bool
}

func (f *fakeLeadStore) Insert(_ context.Context, kind model.LeadKind, name, email string, payload []byte) (*model.Lead, error) {
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	lead := model.Lead{
		ID: uuid.NewString(), Kind: kind, Name: name, Email: email,
		Payload: payload, CreatedAt: time.Now().UTC(),
	}
	f.inserted = append(f.inserted, lead)
	return &lead, nil
}

func (f *fakeLeadStore) Recent(_ context.Context, kind model.LeadKind, limit int) ([]model.Lead, error) {
	var out []model.Lead
	for i := len(f.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		if f.inserted[i].Kind == kind {
			out = append(out, f.inserted[i])
		}
	}
	return out, nil
}

// fakeDeduper mimics the fingerprint window: the first submission with a
// fingerprint runs, repeats are rejected, and a failed run releases the
// claim so the client can retry.
type fakeDeduper struct {
	seen map[string]bool
}

func (d *fakeDeduper) Do(_ context.Context, fp string, fn func() (any, error)) (any, bool, error) {
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	if d.seen[fp] {
		return nil, false, nil
	}
	v, err := fn()
	if err != nil {
		return nil, false, err
	}
	d.seen[fp] = true
	return v, true, nil
}

func newTestServer(t *testing.T) (*Server, *fakeLeadStore, *[]model.LeadAccepted, *mux.Router) {
	t.Helper()
	t.Setenv("REJECTIONS_DIR", t.TempDir())

	store := &fakeLeadStore{}
	published := []model.LeadAccepted{}

	snap := catalog.NewSnapshot()
	snap.Replace(model.KindEstates, []model.Listing{
		{ID: "p1", Kind: model.KindEstates, Title: "Lakeside Villa", Category: "Villa", Price: 1200000},
	})
	snap.Replace(model.KindResearch, []model.Listing{
		{ID: "c1", Kind: model.KindResearch, Title: "Agronomy 101", Category: "Agriculture", Price: 450},
	})

	srv := &Server{
		Snap:  snap,
		Leads: store,
		Publish: func(_ context.Context, evt model.LeadAccepted) error {
			published = append(published, evt)
			return nil
		},
	}
	r := mux.NewRouter()
	srv.RegisterRoutes(r)
	return srv, store, &published, r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestContactMissingFieldsBlocksSubmission(t *testing.T) {
	_, store, published, r := newTestServer(t)

	rec := postJSON(r, "/api/contact", `{"email":"ada@example.com"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if len(store.inserted) != 0 || len(*published) != 0 {
		t.Error("invalid submission reached the store or the queue")
	}

	var resp struct {
		Fields []struct{ Field string } `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %+v", resp.Fields)
	}
}

func TestContactAcceptedOnceRowOnceEvent(t *testing.T) {
	_, store, published, r := newTestServer(t)

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Question about villas"}`
	rec := postJSON(r, "/api/contact", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
	if len(*published) != 1 {
		t.Fatalf("published %d events, want 1", len(*published))
	}
	evt := (*published)[0]
	if evt.Kind != model.LeadContact || evt.Email != "ada@example.com" {
		t.Errorf("event = %+v", evt)
	}
	if evt.LeadID != store.inserted[0].ID {
		t.Error("event lead ID does not match the stored row")
	}
}

func TestOfferAgainstUnknownPropertyIs404(t *testing.T) {
	_, store, _, r := newTestServer(t)

	body := `{"property_id":"nope","name":"Ada","email":"ada@example.com","amount":100000}`
	rec := postJSON(r, "/api/offers", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(store.inserted) != 0 {
		t.Error("offer against unknown property was stored")
	}
}

func TestOfferAccepted(t *testing.T) {
	_, store, _, r := newTestServer(t)

	body := `{"property_id":"p1","name":"Ada","email":"ada@example.com","amount":1150000}`
	rec := postJSON(r, "/api/offers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(store.inserted) != 1 || store.inserted[0].Kind != model.LeadOffer {
		t.Errorf("inserted = %+v", store.inserted)
	}
}

func TestEnrollmentRequiresKnownCourse(t *testing.T) {
	_, _, _, r := newTestServer(t)

	rec := postJSON(r, "/api/enrollments", `{"course_id":"c1","name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("known course: status = %d", rec.Code)
	}
	rec = postJSON(r, "/api/enrollments", `{"course_id":"ghost","name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown course: status = %d", rec.Code)
	}
}

func TestStoreFailurePreservesRetry(t *testing.T) {
	_, store, published, r := newTestServer(t)
	store.fail = true

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"m"}`
	rec := postJSON(r, "/api/contact", body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if len(*published) != 0 {
		t.Error("failed insert still published an event")
	}

	// The client retries the same draft and succeeds.
	store.fail = false
	rec = postJSON(r, "/api/contact", body)
	if rec.Code != http.StatusCreated {
		t.Errorf("retry status = %d", rec.Code)
	}
}

func TestDuplicateSubmissionIs409(t *testing.T) {
	srv, store, published, r := newTestServer(t)
	srv.Dedupe = &fakeDeduper{}

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"m"}`
	if rec := postJSON(r, "/api/contact", body); rec.Code != http.StatusCreated {
		t.Fatalf("first submit: status = %d", rec.Code)
	}
	rec := postJSON(r, "/api/contact", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat submit: status = %d, want 409", rec.Code)
	}
	if len(store.inserted) != 1 || len(*published) != 1 {
		t.Errorf("duplicate reached the store or queue: %d rows, %d events",
			len(store.inserted), len(*published))
	}

	// A different payload is a new submission, not a duplicate.
	other := `{"name":"Bob","email":"bob@example.com","subject":"Hi","message":"m"}`
	if rec := postJSON(r, "/api/contact", other); rec.Code != http.StatusCreated {
		t.Errorf("distinct submit: status = %d", rec.Code)
	}
}

func TestDashboardLeadsRequiresAuth(t *testing.T) {
	_, _, _, r := newTestServer(t)

	// Contact lead on record first.
	rec := postJSON(r, "/api/contact", `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"m"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed lead: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/leads/contact", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	tok, err := auth.MintToken(&model.User{ID: "u1", Email: "staff@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/leads/contact", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	_, _, _, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "route not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
