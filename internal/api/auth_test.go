package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not carry a token, got Authorization %q", got)
		}

		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["email"] != "mario@asdcalcio.it" {
			t.Errorf("email = %q", creds["email"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "tok-123",
			"utente": {"id": 7, "nome": "Mario Rossi", "email": "mario@asdcalcio.it", "ruolo": "club", "club_id": 3}
		}`))
	}))
	defer server.Close()

	result, err := Login(context.Background(), server.URL, "mario@asdcalcio.it", "segreta")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-123" {
		t.Errorf("Token = %q", result.Token)
	}
	if result.User.Ruolo != "club" || result.User.ClubID != 3 {
		t.Errorf("User = %+v", result.User)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Credenziali non valide"}`))
	}))
	defer server.Close()

	_, err := Login(context.Background(), server.URL, "mario@asdcalcio.it", "sbagliata")
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if !IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}
