package table

import (
	"time"

	"github.com/holdemhub/pokerclient/internal/models"
)

// TimerState tracks the viewer's turn countdown.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerArmed
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerArmed:
		return "armed"
	case TimerExpired:
		return "expired"
	default:
		return "idle"
	}
}

// View is the merged, render-ready picture of one table: the latest snapshot
// from the authority, reconciled with cached hand results, plus the local
// state the synchronizer owns (turn countdown, pending selection, notices).
type View struct {
	Game    models.Game
	Results *models.GameResults

	// YourTurn is true when the viewer's seat is the current player and the
	// game is in an active betting phase.
	YourTurn bool
	// TurnDeadline is the instant the turn countdown expires. Zero unless
	// the timer is armed.
	TurnDeadline time.Time
	Timer        TimerState

	// PendingAction is the locally selected, not-yet-submitted action.
	// Empty when nothing is selected.
	PendingAction models.PlayerAction
	PendingAmount int64

	// Notice is a transient, user-visible error message. It clears itself
	// after a fixed display duration.
	Notice string
}

// ViewerSeat returns the viewer's own player entry in the snapshot, or nil
// when the viewer has no seat (e.g. spectating or not yet joined).
func (v *View) ViewerSeat(userID int64) *models.Player {
	return v.Game.PlayerByUserID(userID)
}

// TimeRemaining reports how long the viewer has left to act at the given
// instant. Zero when the timer is not armed or the deadline has passed.
func (v *View) TimeRemaining(now time.Time) time.Duration {
	if v.Timer != TimerArmed || v.TurnDeadline.IsZero() {
		return 0
	}
	remaining := v.TurnDeadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
