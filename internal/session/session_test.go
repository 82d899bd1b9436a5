package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/holdemhub/pokerclient/clients/pokerapi"
)

func TestLogin_InstallsTokenOnClient(t *testing.T) {
	var mu sync.Mutex
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "t0k",
				"user":  map[string]any{"id": 7, "username": "alice"},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
		}
	}))
	defer srv.Close()

	api := pokerapi.NewClient(srv.URL)
	sess, err := Login(context.Background(), api, "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.UserID != 7 || sess.Username != "alice" || sess.Token != "t0k" {
		t.Errorf("session = %+v", sess)
	}

	// subsequent calls on this client carry the bearer token
	if _, err := api.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if got := authHeaders[1]; got != "Bearer t0k" {
		t.Errorf("Authorization after login = %q, want %q", got, "Bearer t0k")
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	api := pokerapi.NewClient(srv.URL)
	if _, err := Login(context.Background(), api, "", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Login without username = %v, want ErrMissingCredentials", err)
	}
	if _, err := Login(context.Background(), api, "alice", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Login without password = %v, want ErrMissingCredentials", err)
	}
	if called {
		t.Error("missing credentials must be rejected before any network call")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	var mu sync.Mutex
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer srv.Close()

	api := pokerapi.NewClient(srv.URL)
	api.SetToken("t0k")
	sess := &Session{Token: "t0k", UserID: 7, Username: "alice"}

	if err := Logout(context.Background(), api, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sess.Token != "" {
		t.Errorf("session token = %q, want cleared", sess.Token)
	}

	if _, err := api.Logout(context.Background()); err != nil {
		t.Fatalf("second request: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if got := authHeaders[1]; got != "" {
		t.Errorf("Authorization after logout = %q, want empty", got)
	}
}
