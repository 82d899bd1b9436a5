package lobby

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/holdemhub/pokerclient/internal/models"
)

var (
	// ErrPasswordRequired is returned before any network call when a
	// private room is joined or created without a password.
	ErrPasswordRequired = errors.New("a password is required for private games")

	// ErrInvalidStakes is returned when blinds or the start credit do not
	// form a playable configuration.
	ErrInvalidStakes = errors.New("blinds must be positive and the small blind lower than the big blind")

	// ErrInvalidSeatCount is returned for out-of-range table sizes.
	ErrInvalidSeatCount = errors.New("a table seats between 2 and 10 players")

	// ErrRoomNotJoinable is returned when the selected room is not
	// accepting players.
	ErrRoomNotJoinable = errors.New("this room is not accepting players")
)

// API is the slice of the poker backend the lobby needs. Satisfied by
// *pokerapi.Client.
type API interface {
	GetPublicGames(ctx context.Context) ([]models.Game, error)
	CreateGame(ctx context.Context, req models.GameCreationRequest) (models.Game, error)
	JoinGame(ctx context.Context, gameID int64, password string) (models.MessageResponse, error)
}

// Room is the compact listing entry shown in the browser.
type Room struct {
	ID         int64
	Public     bool
	Players    int
	MaxPlayers int
	Status     models.GameStatus
}

// Joinable reports whether new players are currently accepted. Only rooms
// still waiting for players can be joined.
func (r Room) Joinable() bool {
	return r.Status == models.GameStatusWaiting
}

// Service provides room browsing, creation and joining on top of the
// backend. All validation runs locally before any network round-trip.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Rooms lists the public games currently open on the backend.
func (s *Service) Rooms(ctx context.Context) ([]Room, error) {
	games, err := s.api.GetPublicGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms := make([]Room, 0, len(games))
	for _, g := range games {
		rooms = append(rooms, Room{
			ID:         g.ID,
			Public:     g.IsPublic,
			Players:    g.NumberOfPlayers,
			MaxPlayers: g.MaximalPlayers,
			Status:     g.GameStatus,
		})
	}
	return rooms, nil
}

// ValidateCreation checks a room configuration without contacting the
// backend.
func ValidateCreation(req models.GameCreationRequest) error {
	if !req.IsPublic && req.Password == "" {
		return ErrPasswordRequired
	}
	if req.SmallBlind <= 0 || req.BigBlind <= 0 || req.SmallBlind >= req.BigBlind {
		return ErrInvalidStakes
	}
	if req.StartCredit <= 0 {
		return ErrInvalidStakes
	}
	if req.MaximalPlayers < 2 || req.MaximalPlayers > 10 {
		return ErrInvalidSeatCount
	}
	return nil
}

// Create validates the configuration and creates the room.
func (s *Service) Create(ctx context.Context, req models.GameCreationRequest) (models.Game, error) {
	if err := ValidateCreation(req); err != nil {
		return models.Game{}, err
	}

	game, err := s.api.CreateGame(ctx, req)
	if err != nil {
		return models.Game{}, fmt.Errorf("create room: %w", err)
	}

	log.Info().
		Int64("game_id", game.ID).
		Bool("public", game.IsPublic).
		Int("max_players", game.MaximalPlayers).
		Msg("created room")
	return game, nil
}

// Join validates joinability and the password requirement locally, then
// registers the user with the room.
func (s *Service) Join(ctx context.Context, room Room, password string) error {
	if !room.Joinable() {
		return ErrRoomNotJoinable
	}
	if !room.Public && password == "" {
		return ErrPasswordRequired
	}

	if _, err := s.api.JoinGame(ctx, room.ID, password); err != nil {
		return fmt.Errorf("join room %d: %w", room.ID, err)
	}
	return nil
}
