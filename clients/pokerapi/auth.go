package pokerapi

import (
	"context"
	"fmt"

	"github.com/holdemhub/pokerclient/internal/models"
)

// Login exchanges credentials for a bearer token and the user's profile.
// The token is not installed on the client; callers decide which client
// instances carry which session.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSON(ctx, LoginEndpoint, req, &resp); err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to log in: %w", err)
	}
	return resp, nil
}

// Logout invalidates the current session token on the backend.
func (c *Client) Logout(ctx context.Context) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, LogoutEndpoint, struct{}{}, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to log out: %w", err)
	}
	return resp, nil
}
