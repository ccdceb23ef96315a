package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// LoginUser is the identity block returned by the login endpoint.
type LoginUser struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Ruolo     string `json:"ruolo"` // admin, club or sponsor
	ClubID    int64  `json:"club_id,omitempty"`
	SponsorID int64  `json:"sponsor_id,omitempty"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"utente"`
}

// Login authenticates against the backend and returns the bearer token plus
// the user record. It is the only call made outside a role scope and without
// a token.
func Login(ctx context.Context, baseURL, email, password string) (*LoginResult, error) {
	c := NewClient(baseURL, "", "")

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, newParseError("failed to encode login request", err)
	}

	rawURL := strings.TrimRight(baseURL, "/") + "/auth/login"
	body, err := c.do(ctx, http.MethodPost, rawURL, strings.NewReader(string(payload)), "application/json")
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newParseError("failed to parse login response", err)
	}
	return &result, nil
}
