package pokerapi

import (
	"context"
	"fmt"

	"github.com/holdemhub/pokerclient/internal/models"
)

func (c *Client) CreateGame(ctx context.Context, req models.GameCreationRequest) (models.Game, error) {
	var game models.Game
	if err := c.postJSON(ctx, GamesEndpoint, req, &game); err != nil {
		return models.Game{}, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

func (c *Client) GetPublicGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := c.getJSON(ctx, GamesEndpoint, &games); err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	return games, nil
}

func (c *Client) GetGameDetails(ctx context.Context, gameID int64) (models.Game, error) {
	var game models.Game
	if err := c.getJSON(ctx, gameEndpoint(gameID), &game); err != nil {
		return models.Game{}, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}
	return game, nil
}

// JoinGame registers the authenticated user as a participant. Password is
// required for private games and ignored for public ones. Joining a game the
// user already sits in is not an error on the backend.
func (c *Client) JoinGame(ctx context.Context, gameID int64, password string) (models.MessageResponse, error) {
	payload := struct {
		Password string `json:"password,omitempty"`
	}{Password: password}

	var resp models.MessageResponse
	if err := c.postJSON(ctx, gameSubEndpoint(gameID, "join"), payload, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to join game %d: %w", gameID, err)
	}
	return resp, nil
}

func (c *Client) SubmitGameAction(ctx context.Context, gameID int64, req models.GameActionRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, gameSubEndpoint(gameID, "action"), req, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to submit %s for game %d: %w", req.Action, gameID, err)
	}
	return resp, nil
}

func (c *Client) GetGameResults(ctx context.Context, gameID int64) (models.GameResults, error) {
	var results models.GameResults
	if err := c.getJSON(ctx, gameSubEndpoint(gameID, "results"), &results); err != nil {
		return models.GameResults{}, fmt.Errorf("failed to get results for game %d: %w", gameID, err)
	}
	return results, nil
}

func (c *Client) SpectateGame(ctx context.Context, gameID int64) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, gameSubEndpoint(gameID, "spectate"), struct{}{}, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to spectate game %d: %w", gameID, err)
	}
	return resp, nil
}

// GetWinProbability asks the backend to compute the viewer's win probability
// for the current hand. Pure delegation; no evaluation happens client-side.
func (c *Client) GetWinProbability(ctx context.Context, gameID int64) (models.ProbabilityResponse, error) {
	var resp models.ProbabilityResponse
	if err := c.getJSON(ctx, gameSubEndpoint(gameID, "probability"), &resp); err != nil {
		return models.ProbabilityResponse{}, fmt.Errorf("failed to get win probability for game %d: %w", gameID, err)
	}
	return resp, nil
}

// StartBetting moves a READY game into its first betting phase. Host only.
func (c *Client) StartBetting(ctx context.Context, gameID int64) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, gameSubEndpoint(gameID, "start-betting"), struct{}{}, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to start betting for game %d: %w", gameID, err)
	}
	return resp, nil
}

// NewRound resets a concluded hand into a fresh READY game. Host only.
func (c *Client) NewRound(ctx context.Context, gameID int64) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, gameSubEndpoint(gameID, "newround"), struct{}{}, &resp); err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to start new round for game %d: %w", gameID, err)
	}
	return resp, nil
}

// LeaveGame removes the authenticated user's participation.
func (c *Client) LeaveGame(ctx context.Context, gameID int64) (models.MessageResponse, error) {
	var resp models.MessageResponse
	raw, err := c.Delete(ctx, gameSubEndpoint(gameID, "join"))
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to leave game %d: %w", gameID, err)
	}
	if err := decode(raw, &resp); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// DeleteGame tears the game down on the backend. Host only.
func (c *Client) DeleteGame(ctx context.Context, gameID int64) (models.MessageResponse, error) {
	var resp models.MessageResponse
	raw, err := c.Delete(ctx, gameEndpoint(gameID))
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("failed to delete game %d: %w", gameID, err)
	}
	if err := decode(raw, &resp); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}
