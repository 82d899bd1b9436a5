package pokerapi

import (
	"context"
	"fmt"

	"github.com/holdemhub/pokerclient/internal/models"
)

func (c *Client) GetUsers(ctx context.Context) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if err := c.getJSON(ctx, UsersEndpoint, &users); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (c *Client) GetUserProfile(ctx context.Context, userID int64) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.getJSON(ctx, userEndpoint(userID), &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return profile, nil
}

func (c *Client) UpdateUserProfile(ctx context.Context, userID int64, update models.UserProfileUpdate) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.putJSON(ctx, userEndpoint(userID), update, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return profile, nil
}

func (c *Client) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	var prefs models.Preferences
	if err := c.getJSON(ctx, preferencesEndpoint(userID), &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to get preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, userID int64, update models.PreferencesUpdate) (models.Preferences, error) {
	var prefs models.Preferences
	if err := c.putJSON(ctx, preferencesEndpoint(userID), update, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to update preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}

func (c *Client) GetFriends(ctx context.Context) ([]models.UserSummary, error) {
	var friends []models.UserSummary
	if err := c.getJSON(ctx, FriendsEndpoint, &friends); err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	return friends, nil
}

func (c *Client) SendFriendRequest(ctx context.Context, friendID int64) (models.MessageResponse, error) {
	return c.friendVerb(ctx, friendID, "request")
}

func (c *Client) AcceptFriendRequest(ctx context.Context, friendID int64) (models.MessageResponse, error) {
	return c.friendVerb(ctx, friendID, "accept")
}

func (c *Client) RejectFriendRequest(ctx context.Context, friendID int64) (models.MessageResponse, error) {
	return c.friendVerb(ctx, friendID, "reject")
}

func (c *Client) friendVerb(ctx context.Context, friendID int64, verb string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, friendEndpoint(friendID, verb), struct{}{}, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to %s friend %d: %w", verb, friendID, err)
	}
	return resp, nil
}
