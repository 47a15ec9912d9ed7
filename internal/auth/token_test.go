package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"holdco-backend/internal/model"
)

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &model.User{ID: "u-42", Email: "ada@example.com"}
	tok, err := MintToken(u)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	p, err := ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if p.UserID != "u-42" || p.Email != "ada@example.com" {
		t.Errorf("principal = %+v", p)
	}
}

func TestParseRejectsGarbageAndWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	u := &model.User{ID: "u-1", Email: "x@example.com"}
	tok, err := MintToken(u)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, err := ParseToken(tok); err == nil {
		t.Error("token signed with another secret was accepted")
	}
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestRequireAuthGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotPrincipal *Principal
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No token: 401, handler not reached.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d", rec.Code)
	}
	if gotPrincipal != nil {
		t.Error("handler ran without a token")
	}

	// Valid token: principal on context.
	tok, err := MintToken(&model.User{ID: "u-7", Email: "e@example.com"})
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status %d", rec.Code)
	}
	if gotPrincipal == nil || gotPrincipal.UserID != "u-7" {
		t.Errorf("principal = %+v", gotPrincipal)
	}
}
