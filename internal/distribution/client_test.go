package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, "", nil))
	if _, err := client.ListUsers(context.Background()); err != nil {
		t.Fatalf("list users: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("authorization header = %q, want %q", gotAuth, "Bearer tok-1")
	}
}

func TestRequestOmitsBearerWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	if _, err := client.PublicApps(context.Background()); err != nil {
		t.Fatalf("public apps: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestRequestRefreshesOnceOn401(t *testing.T) {
	var refreshCalls, listCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode refresh body: %v", err)
		}
		if body.RefreshToken != "ref-old" {
			t.Errorf("refresh token = %q, want %q", body.RefreshToken, "ref-old")
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "tok-new", RefreshToken: "ref-new"})
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"items":[{"id":7,"email":"a@b.c","username":"a","role":"admin"}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := NewTokenSource(TokenPair{AccessToken: "tok-old", RefreshToken: "ref-old"}, "", nil)
	client := New(server.URL, nil).WithTokens(tokens)

	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != 7 {
		t.Fatalf("unexpected users: %+v", users)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := listCalls.Load(); got != 2 {
		t.Fatalf("list calls = %d, want 2", got)
	}
	if tokens.AccessToken() != "tok-new" {
		t.Fatalf("access token = %q, want rotated token", tokens.AccessToken())
	}
}

func TestRequestSecond401SurfacesUnauthenticated(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "tok-new", RefreshToken: "ref-new"})
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok", RefreshToken: "ref"}, "", nil))

	_, err := client.ListUsers(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want exactly 1", got)
	}
}

func TestRequestFailedRefreshSurfacesUnauthenticated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok", RefreshToken: "ref"}, "", nil))

	_, err := client.ListUsers(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequest401WithoutRefreshTokenDoesNotRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok"}, "", nil))

	_, err := client.ListUsers(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if got := refreshCalls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0", got)
	}
}

func TestRequestMapsForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok", RefreshToken: "ref"}, "", nil))
	_, err := client.ListUsers(context.Background())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequestDecodesErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"submission already decided"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok"}, "", nil))
	err := client.ApproveSubmission(context.Background(), 12)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", apiErr.StatusCode, http.StatusConflict)
	}
	if apiErr.Message != "submission already decided" {
		t.Fatalf("message = %q, want detail text", apiErr.Message)
	}
}

func TestRequestRetriesWithBody(t *testing.T) {
	var attempts atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "tok-new", RefreshToken: "ref-new"})
	})
	mux.HandleFunc("/api/admin/submissions/3/reject", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Note string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode retried body: %v", err)
		}
		if body.Note != "Nicht konform" {
			t.Errorf("note = %q, want %q", body.Note, "Nicht konform")
		}
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok", RefreshToken: "ref"}, "", nil))
	if err := client.RejectSubmission(context.Background(), 3, "Nicht konform"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Fatalf("attempts = %d, want 2", got)
	}
}

func TestContentTypeSetOnJSONBodies(t *testing.T) {
	var gotContentType string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/users/5/role", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"user":{"id":5,"role":"dev"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil).WithTokens(NewTokenSource(TokenPair{AccessToken: "tok"}, "", nil))
	if _, err := client.SetUserRole(context.Background(), 5, "dev"); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q, want application/json", gotContentType)
	}
}
