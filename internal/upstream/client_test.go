package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"holdco-backend/internal/model"
)

func TestListingsSetsKindAndBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/agro/listings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.Listing{
			{ID: "x1", Title: "Organic Red Apples", Category: "Fruit", Price: 12.5},
		})
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "tok-123")
	items, err := c.Listings(context.Background(), model.KindAgro)
	if err != nil {
		t.Fatalf("Listings: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindAgro {
		t.Errorf("kind not stamped: %+v", items)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("authorization header = %q", gotAuth)
	}
}

func TestGetRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]model.Service{{ID: "s1", Name: "Trading"}})
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "")
	svcs, err := c.Services(context.Background())
	if err != nil {
		t.Fatalf("Services after retries: %v", err)
	}
	if len(svcs) != 1 || svcs[0].Name != "Trading" {
		t.Errorf("services = %+v", svcs)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "")
	_, err := c.Founder(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusNotFound {
		t.Errorf("status = %d", se.Status)
	}
}

func TestPostIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "")
	err := c.postJSON(context.Background(), "/api/contact", map[string]string{"a": "b"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("POST issued %d times, want exactly 1", n)
	}
}

func TestSubmitPropertyMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("title") != "Lakeside Villa" {
			t.Errorf("title = %q", r.FormValue("title"))
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		f.Close()
		if hdr.Filename != "villa.jpg" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "tok")
	sub := model.PropertySubmission{Title: "Lakeside Villa", Description: "d", Category: "Villa", Price: 1200000, Location: "Lakeview"}
	if err := c.SubmitProperty(context.Background(), sub, "villa.jpg", strings.NewReader("jpegdata")); err != nil {
		t.Fatalf("SubmitProperty: %v", err)
	}
}
