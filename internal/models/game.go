package models

// GameStatus defines the lifecycle phase of a game.
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "WAITING"
	GameStatusReady    GameStatus = "READY"
	GameStatusPreflop  GameStatus = "PREFLOP"
	GameStatusFlop     GameStatus = "FLOP"
	GameStatusTurn     GameStatus = "TURN"
	GameStatusRiver    GameStatus = "RIVER"
	GameStatusShowdown GameStatus = "SHOWDOWN"
	GameStatusGameover GameStatus = "GAMEOVER"
)

// Betting reports whether the game is in an active betting phase,
// i.e. a phase where currentPlayerId is meaningful and actions are accepted.
func (s GameStatus) Betting() bool {
	switch s {
	case GameStatusWaiting, GameStatusReady, GameStatusGameover:
		return false
	}
	return true
}

// PlayerAction defines the action a player takes on their turn.
type PlayerAction string

const (
	ActionCheck PlayerAction = "CHECK"
	ActionBet   PlayerAction = "BET"
	ActionCall  PlayerAction = "CALL"
	ActionRaise PlayerAction = "RAISE"
	ActionFold  PlayerAction = "FOLD"
)

// RequiresAmount reports whether the action must carry a positive amount.
func (a PlayerAction) RequiresAmount() bool {
	return a == ActionBet || a == ActionRaise
}

// Player is one seat at the table as reported by the backend. Hand is
// populated only for the viewing user, or for everyone after a showdown.
type Player struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"userId"`
	Username   string       `json:"username"`
	GameID     int64        `json:"gameId"`
	Credit     int64        `json:"credit"`
	Hand       []string     `json:"hand"`
	CurrentBet int64        `json:"currentBet"`
	HasFolded  bool         `json:"hasFolded"`
	HasActed   bool         `json:"hasActed"`
	LastAction PlayerAction `json:"lastAction,omitempty"`
}

// Game is a full point-in-time snapshot of server-held game state.
type Game struct {
	ID              int64      `json:"id"`
	CreatorID       int64      `json:"creatorId"`
	IsPublic        bool       `json:"isPublic"`
	MaximalPlayers  int        `json:"maximalPlayers"`
	StartCredit     int64      `json:"startCredit"`
	SmallBlind      int64      `json:"smallBlind"`
	BigBlind        int64      `json:"bigBlind"`
	GameStatus      GameStatus `json:"gameStatus"`
	Pot             int64      `json:"pot"`
	CallAmount      int64      `json:"callAmount"`
	SmallBlindIndex int        `json:"smallBlindIndex"`
	NumberOfPlayers int        `json:"numberOfPlayers"`
	CommunityCards  []int      `json:"communityCards"`
	Players         []Player   `json:"players"`
	CurrentPlayerID int64      `json:"currentPlayerId"`
}

// PlayerByUserID returns the seat owned by the given user, or nil.
func (g *Game) PlayerByUserID(userID int64) *Player {
	for i := range g.Players {
		if g.Players[i].UserID == userID {
			return &g.Players[i]
		}
	}
	return nil
}

// CurrentPlayer returns the seat whose turn it is, or nil outside betting phases.
func (g *Game) CurrentPlayer() *Player {
	if !g.GameStatus.Betting() {
		return nil
	}
	for i := range g.Players {
		if g.Players[i].ID == g.CurrentPlayerID {
			return &g.Players[i]
		}
	}
	return nil
}

// GameCreationRequest is the payload for creating a new game room.
// Password is required when IsPublic is false.
type GameCreationRequest struct {
	CreatorID      int64  `json:"creatorId"`
	IsPublic       bool   `json:"isPublic"`
	Password       string `json:"password,omitempty"`
	SmallBlind     int64  `json:"smallBlind"`
	BigBlind       int64  `json:"bigBlind"`
	StartCredit    int64  `json:"startCredit"`
	MaximalPlayers int    `json:"maximalPlayers"`
}

// GameActionRequest is the payload for submitting a betting action.
type GameActionRequest struct {
	UserID int64        `json:"userId"`
	Action PlayerAction `json:"action"`
	Amount int64        `json:"amount,omitempty"`
}

// GameStatistics holds aggregate stats reported with a hand's results.
type GameStatistics struct {
	ParticipationRate float64 `json:"participationRate"`
	PotsWon           int     `json:"potsWon"`
}

// GameResults is the immutable outcome of one concluded hand. The winner's
// Hand here may be more complete than what the plain game fetch reveals.
type GameResults struct {
	Winner      Player         `json:"winner"`
	WinningHand string         `json:"winningHand"`
	Statistics  GameStatistics `json:"statistics"`
}

// ProbabilityResponse carries the backend-computed win probability.
type ProbabilityResponse struct {
	Probability float64 `json:"probability"`
}
