package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/holdemhub/pokerclient/clients/pokerapi"
	"github.com/holdemhub/pokerclient/internal/models"
)

// ErrMissingCredentials is returned before any network call when either
// field of the login form is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// Session is the authenticated identity for one client instance. It is
// passed explicitly to every component that needs it; there is no shared
// global holding auth state.
type Session struct {
	Token    string
	UserID   int64
	Username string
}

// Login authenticates against the backend and installs the bearer token on
// the given client, returning the session that now rides on it.
func Login(ctx context.Context, api *pokerapi.Client, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := api.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	api.SetToken(resp.Token)
	return &Session{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Username: resp.User.Username,
	}, nil
}

// Logout invalidates the session on the backend and clears the client's
// credential. The local session is unusable afterwards regardless of
// whether the backend call succeeded.
func Logout(ctx context.Context, api *pokerapi.Client, s *Session) error {
	_, err := api.Logout(ctx)
	api.SetToken("")
	s.Token = ""
	return err
}
