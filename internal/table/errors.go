package table

import "errors"

var (
	// ErrClosed is returned for any operation after the view was torn down.
	ErrClosed = errors.New("table view closed")

	// ErrNotYourTurn is returned locally, without contacting the authority,
	// when the viewer tries to act outside their turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNotBettingPhase is returned when the game is not in a phase that
	// accepts actions.
	ErrNotBettingPhase = errors.New("game is not in a betting phase")

	// ErrNoPendingAction is returned when Submit is called with nothing
	// selected.
	ErrNoPendingAction = errors.New("no action selected")

	// ErrAmountRequired is returned when BET or RAISE is selected without a
	// positive amount.
	ErrAmountRequired = errors.New("bet amount must be a positive number")

	// ErrSubmissionInFlight is returned when a submission is attempted while
	// another one has not yet resolved.
	ErrSubmissionInFlight = errors.New("an action is already being submitted")

	// ErrNotHost is returned when a non-host viewer invokes a host control.
	ErrNotHost = errors.New("only the game creator can do that")

	// ErrNotEnoughPlayers is returned when betting is started with fewer
	// than two participants.
	ErrNotEnoughPlayers = errors.New("at least two players are required")

	// ErrWrongStatus is returned when a host control does not apply to the
	// game's current phase.
	ErrWrongStatus = errors.New("game is not in the right phase")
)
