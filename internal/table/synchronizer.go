package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/holdemhub/pokerclient/clients"
	"github.com/holdemhub/pokerclient/internal/models"
	"github.com/holdemhub/pokerclient/internal/session"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultTurnTimeout  = 30 * time.Second
	DefaultNoticeTTL    = 5 * time.Second
	DefaultLeaveGrace   = 2 * time.Second
)

// GameAPI is the slice of the poker backend the synchronizer needs. It is
// satisfied by *pokerapi.Client.
type GameAPI interface {
	JoinGame(ctx context.Context, gameID int64, password string) (models.MessageResponse, error)
	SpectateGame(ctx context.Context, gameID int64) (models.MessageResponse, error)
	GetGameDetails(ctx context.Context, gameID int64) (models.Game, error)
	GetGameResults(ctx context.Context, gameID int64) (models.GameResults, error)
	SubmitGameAction(ctx context.Context, gameID int64, req models.GameActionRequest) (models.MessageResponse, error)
	StartBetting(ctx context.Context, gameID int64) (models.MessageResponse, error)
	NewRound(ctx context.Context, gameID int64) (models.MessageResponse, error)
	LeaveGame(ctx context.Context, gameID int64) (models.MessageResponse, error)
	DeleteGame(ctx context.Context, gameID int64) (models.MessageResponse, error)
}

// Config tunes one synchronizer. Zero values fall back to the defaults above.
type Config struct {
	PollInterval time.Duration
	TurnTimeout  time.Duration
	NoticeTTL    time.Duration
	LeaveGrace   time.Duration

	// JoinPassword is sent with the join call; empty for public games.
	JoinPassword string

	// Spectate registers the viewer as an observer instead of a player.
	// Spectators get the same polled view but never hold a seat, so turn
	// gating rejects every action locally.
	Spectate bool

	// Prefs selects the action synthesized when the turn timer expires:
	// CALL when AutoCall is set, FOLD otherwise.
	Prefs models.Preferences

	// Clock defaults to the real clock; tests inject a fake one.
	Clock clockwork.Clock
}

// turnKey identifies one turn of one betting phase. Re-arming the countdown
// is keyed on it so the timer never spans a turn or phase change.
type turnKey struct {
	playerID int64
	status   models.GameStatus
	board    int
}

// Synchronizer keeps a best-effort local mirror of one live game: it joins
// the game exactly once, polls the authority on a fixed cadence, reconciles
// each snapshot into the local view, gates action submission by turn
// ownership, and folds on the viewer's behalf when the turn countdown runs
// out. It never computes game semantics itself; the next poll after any
// action is the sole source of truth.
type Synchronizer struct {
	api        GameAPI
	gameID     int64
	viewer     *session.Session
	cfg        Config
	clock      clockwork.Clock
	instanceID string

	mu          sync.Mutex
	view        View
	results     *models.GameResults
	joined      bool
	loopRunning bool
	closed      bool
	submitting  bool
	fatalErr    error
	noticeGen   int

	// turn timer bookkeeping; the clockwork timer itself is only touched
	// from the run loop (and from Start before the loop exists)
	turnTimer  clockwork.Timer
	timerState TimerState
	armKey     turnKey
	expiredKey *turnKey

	updates   chan View
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	doneOnce  sync.Once
}

// New builds a synchronizer for one mounted table view. Call Start to join
// the game and begin polling, and Close when the view unmounts.
func New(api GameAPI, viewer *session.Session, gameID int64, cfg Config) *Synchronizer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = DefaultNoticeTTL
	}
	if cfg.LeaveGrace <= 0 {
		cfg.LeaveGrace = DefaultLeaveGrace
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Synchronizer{
		api:        api,
		gameID:     gameID,
		viewer:     viewer,
		cfg:        cfg,
		clock:      clock,
		instanceID: uuid.New().String()[:8],
		updates:    make(chan View, 1),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start joins the game, performs the first snapshot fetch and launches the
// poll loop. The join call fires exactly once per synchronizer no matter how
// often Start is invoked. A join failure is fatal for this view: Done is
// signalled immediately and no poll loop starts.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.joined {
		s.mu.Unlock()
		return nil
	}
	s.joined = true
	s.mu.Unlock()

	var err error
	if s.cfg.Spectate {
		_, err = s.api.SpectateGame(ctx, s.gameID)
	} else {
		_, err = s.api.JoinGame(ctx, s.gameID, s.cfg.JoinPassword)
	}
	if err != nil {
		err = fmt.Errorf("join game %d: %w", s.gameID, err)
		log.Warn().Err(err).
			Str("instance", s.instanceID).
			Int64("game_id", s.gameID).
			Msg("join failed, leaving table view")
		s.fail(err)
		return err
	}

	log.Info().
		Str("instance", s.instanceID).
		Int64("game_id", s.gameID).
		Int64("user_id", s.viewer.UserID).
		Bool("spectate", s.cfg.Spectate).
		Msg("joined game")

	game, err := s.api.GetGameDetails(ctx, s.gameID)
	switch {
	case err == nil:
		s.apply(game)
	case clients.IsUnauthorized(err) || clients.IsNotFound(err):
		s.fail(fmt.Errorf("fetch game %d: %w", s.gameID, err))
		return err
	default:
		// transient; the poll cadence is the natural retry
		s.mu.Lock()
		s.setNoticeLocked(err)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.loopRunning = true
	s.mu.Unlock()
	go s.run(ctx)
	return nil
}

// run is the poll loop. Ticks execute synchronously in this goroutine, so a
// slow fetch can never overlap with the next one.
func (s *Synchronizer) run(ctx context.Context) {
	defer s.finish()

	ticker := s.clock.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.Chan():
			if fatal := s.tick(ctx); fatal {
				// let the UI show the error briefly before signalling leave
				select {
				case <-s.clock.After(s.cfg.LeaveGrace):
				case <-s.quit:
				case <-ctx.Done():
				}
				return
			}
		case <-s.timerChan():
			s.turnExpired(ctx)
		}
	}
}

func (s *Synchronizer) timerChan() <-chan time.Time {
	if s.turnTimer == nil {
		return nil
	}
	return s.turnTimer.Chan()
}

// tick fetches the latest snapshot, fetches and caches results on the first
// GAMEOVER observation, drops the cache once a new round has started, and
// reconciles everything into the view. It reports whether the failure was
// fatal for this view.
func (s *Synchronizer) tick(ctx context.Context) (fatal bool) {
	game, err := s.api.GetGameDetails(ctx, s.gameID)
	if err != nil {
		if clients.IsUnauthorized(err) || clients.IsNotFound(err) {
			log.Warn().Err(err).
				Str("instance", s.instanceID).
				Int64("game_id", s.gameID).
				Msg("game gone, leaving table view")
			s.fail(fmt.Errorf("fetch game %d: %w", s.gameID, err))
			return true
		}
		s.mu.Lock()
		if !s.closed {
			s.setNoticeLocked(err)
		}
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	closed := s.closed
	cached := s.results
	s.mu.Unlock()
	if closed {
		return false
	}

	if game.GameStatus == models.GameStatusGameover && cached == nil {
		results, err := s.api.GetGameResults(ctx, s.gameID)
		if err != nil {
			s.mu.Lock()
			if !s.closed {
				s.setNoticeLocked(err)
			}
			s.mu.Unlock()
		} else {
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				return false
			}
			s.results = &results
			s.mu.Unlock()
			log.Debug().
				Str("instance", s.instanceID).
				Int64("game_id", s.gameID).
				Str("winning_hand", results.WinningHand).
				Msg("cached hand results")
		}
	} else if game.GameStatus != models.GameStatusGameover && cached != nil {
		// a new round started on the authority; the old results are stale
		s.mu.Lock()
		s.results = nil
		s.mu.Unlock()
	}

	s.apply(game)
	return false
}

// apply reconciles a fresh snapshot into the view and updates the turn
// timer. Responses that arrive after Close are discarded here.
func (s *Synchronizer) apply(game models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	next := reconcile(s.view, game, s.results)

	seat := next.Game.PlayerByUserID(s.viewer.UserID)
	next.YourTurn = seat != nil &&
		next.Game.GameStatus.Betting() &&
		next.Game.CurrentPlayerID == seat.ID

	key := turnKey{
		playerID: game.CurrentPlayerID,
		status:   game.GameStatus,
		board:    len(game.CommunityCards),
	}

	switch {
	case !next.YourTurn:
		s.disarmLocked(&next)
	case s.timerState == TimerArmed && key == s.armKey:
		// same turn, countdown keeps running
		next.Timer = TimerArmed
		next.TurnDeadline = s.view.TurnDeadline
	case s.expiredKey != nil && key == *s.expiredKey:
		// already folded for this turn; stay idle until the turn changes
		next.Timer = TimerIdle
		next.TurnDeadline = time.Time{}
	default:
		s.armLocked(&next, key)
	}

	s.view = next
	s.publishLocked()
}

func (s *Synchronizer) armLocked(v *View, key turnKey) {
	if s.turnTimer != nil {
		stopAndDrainTimer(s.turnTimer)
	}
	s.turnTimer = s.clock.NewTimer(s.cfg.TurnTimeout)
	s.timerState = TimerArmed
	s.armKey = key
	s.expiredKey = nil
	v.Timer = TimerArmed
	v.TurnDeadline = s.clock.Now().Add(s.cfg.TurnTimeout)

	log.Debug().
		Str("instance", s.instanceID).
		Int64("game_id", s.gameID).
		Dur("timeout", s.cfg.TurnTimeout).
		Msg("turn timer armed")
}

func (s *Synchronizer) disarmLocked(v *View) {
	if s.turnTimer != nil {
		stopAndDrainTimer(s.turnTimer)
		s.turnTimer = nil
	}
	s.timerState = TimerIdle
	s.expiredKey = nil
	v.Timer = TimerIdle
	v.TurnDeadline = time.Time{}
}

// turnExpired synthesizes the timeout action through the normal submission
// path: FOLD, or CALL when the viewer's preferences ask for it. Amount is
// always zero; the authority computes the call.
func (s *Synchronizer) turnExpired(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.timerState != TimerArmed {
		s.mu.Unlock()
		return
	}
	expired := s.armKey
	s.turnTimer = nil
	s.timerState = TimerExpired
	s.expiredKey = &expired
	s.view.Timer = TimerExpired
	s.view.TurnDeadline = time.Time{}
	s.publishLocked()
	s.mu.Unlock()

	action := models.ActionFold
	if s.cfg.Prefs.AutoCall {
		action = models.ActionCall
	}

	log.Info().
		Str("instance", s.instanceID).
		Int64("game_id", s.gameID).
		Str("action", string(action)).
		Msg("turn timed out, submitting automatic action")

	if err := s.submit(ctx, action, 0); err != nil {
		log.Warn().Err(err).
			Str("instance", s.instanceID).
			Int64("game_id", s.gameID).
			Msg("automatic action rejected")
	}

	s.mu.Lock()
	if s.timerState == TimerExpired {
		s.timerState = TimerIdle
		s.view.Timer = TimerIdle
		s.publishLocked()
	}
	s.mu.Unlock()
}

// SelectAction records the viewer's chosen action and amount without
// contacting the authority. BET and RAISE require a positive amount; the
// amount is discarded for everything else.
func (s *Synchronizer) SelectAction(action models.PlayerAction, amount int64) error {
	if action.RequiresAmount() && amount <= 0 {
		return ErrAmountRequired
	}
	if !action.RequiresAmount() {
		amount = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.view.PendingAction = action
	s.view.PendingAmount = amount
	s.publishLocked()
	return nil
}

// Submit sends the pending selection to the authority. The selection is
// cleared on success and kept for retry on failure. The local view is never
// mutated optimistically; the next poll reflects the action's effect.
func (s *Synchronizer) Submit(ctx context.Context) error {
	s.mu.Lock()
	action := s.view.PendingAction
	amount := s.view.PendingAmount
	s.mu.Unlock()

	if action == "" {
		return ErrNoPendingAction
	}
	return s.submit(ctx, action, amount)
}

// submit is the single submission path shared by manual actions and the
// turn-timeout action. It enforces turn gating and allows at most one
// in-flight submission; violations are rejected locally without any
// network call.
func (s *Synchronizer) submit(ctx context.Context, action models.PlayerAction, amount int64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if !s.view.Game.GameStatus.Betting() {
		s.mu.Unlock()
		return ErrNotBettingPhase
	}
	seat := s.view.Game.PlayerByUserID(s.viewer.UserID)
	if seat == nil || s.view.Game.CurrentPlayerID != seat.ID {
		s.mu.Unlock()
		return ErrNotYourTurn
	}
	s.submitting = true
	s.mu.Unlock()

	req := models.GameActionRequest{
		UserID: s.viewer.UserID,
		Action: action,
		Amount: amount,
	}
	_, err := s.api.SubmitGameAction(ctx, s.gameID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		// the pending selection stays intact so the user can retry
		s.setNoticeLocked(err)
		return err
	}
	s.view.PendingAction = ""
	s.view.PendingAmount = 0
	s.publishLocked()
	return nil
}

// StartBetting moves a READY game into its first betting phase. Host only,
// and only with at least two seated players. Preconditions are checked
// locally before the call.
func (s *Synchronizer) StartBetting(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	game := s.view.Game
	s.mu.Unlock()

	if game.CreatorID != s.viewer.UserID {
		return ErrNotHost
	}
	if game.GameStatus != models.GameStatusReady {
		return ErrWrongStatus
	}
	if len(game.Players) < 2 {
		return ErrNotEnoughPlayers
	}

	if _, err := s.api.StartBetting(ctx, s.gameID); err != nil {
		s.mu.Lock()
		s.setNoticeLocked(err)
		s.mu.Unlock()
		return err
	}
	return nil
}

// NewRound asks the authority to reset a concluded hand into a fresh READY
// game. On success the cached results are dropped so the next poll starts
// the new hand with a clean view.
func (s *Synchronizer) NewRound(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	game := s.view.Game
	s.mu.Unlock()

	if game.CreatorID != s.viewer.UserID {
		return ErrNotHost
	}
	if game.GameStatus != models.GameStatusGameover {
		return ErrWrongStatus
	}

	if _, err := s.api.NewRound(ctx, s.gameID); err != nil {
		s.mu.Lock()
		s.setNoticeLocked(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.results = nil
	s.view.Results = nil
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Leave tears down the viewer's participation best-effort: the host deletes
// the game, seated players leave their seat and spectators just stop
// watching. Failures are logged, never blocking; the view is closed
// regardless.
func (s *Synchronizer) Leave(ctx context.Context) {
	s.mu.Lock()
	host := s.view.Game.CreatorID == s.viewer.UserID
	closed := s.closed
	s.mu.Unlock()

	if !closed && !s.cfg.Spectate {
		var err error
		if host {
			_, err = s.api.DeleteGame(ctx, s.gameID)
		} else {
			_, err = s.api.LeaveGame(ctx, s.gameID)
		}
		if err != nil {
			log.Warn().Err(err).
				Str("instance", s.instanceID).
				Int64("game_id", s.gameID).
				Bool("host", host).
				Msg("best-effort game teardown failed")
		}
	}

	s.Close()
}

// Close tears the view down: polling and the turn timer stop, and any
// network response still in flight is discarded instead of applied.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		joined := s.joined
		s.mu.Unlock()
		close(s.quit)
		if !joined {
			// no loop was ever started; signal done ourselves
			s.doneOnce.Do(func() { close(s.done) })
		}
	})
}

// fail records a fatal-for-view error. Done is signalled by the run loop
// after the leave grace, or immediately when no loop is running.
func (s *Synchronizer) fail(err error) {
	s.mu.Lock()
	if s.fatalErr == nil {
		s.fatalErr = err
	}
	s.view.Notice = userMessage(err)
	s.publishLocked()
	running := s.loopRunning
	s.closed = true
	s.mu.Unlock()

	if !running {
		s.doneOnce.Do(func() { close(s.done) })
	}
}

func (s *Synchronizer) finish() {
	s.mu.Lock()
	s.closed = true
	if s.turnTimer != nil {
		stopAndDrainTimer(s.turnTimer)
		s.turnTimer = nil
	}
	s.mu.Unlock()
	s.doneOnce.Do(func() { close(s.done) })
}

// setNoticeLocked surfaces a transient error and schedules it to clear
// after the notice TTL. A newer notice supersedes the pending clear.
func (s *Synchronizer) setNoticeLocked(err error) {
	s.noticeGen++
	gen := s.noticeGen
	s.view.Notice = userMessage(err)
	s.publishLocked()

	go func() {
		select {
		case <-s.clock.After(s.cfg.NoticeTTL):
		case <-s.quit:
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.noticeGen != gen {
			return
		}
		s.view.Notice = ""
		s.publishLocked()
	}()
}

// publishLocked pushes the current view to the updates channel, replacing
// any unread previous value so a slow consumer only ever sees the latest.
func (s *Synchronizer) publishLocked() {
	v := s.view
	select {
	case s.updates <- v:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- v:
		default:
		}
	}
}

// Updates delivers merged views as they change. Only the latest unread view
// is retained.
func (s *Synchronizer) Updates() <-chan View {
	return s.updates
}

// Done is closed when the view should be left, either because Close was
// called or because a fatal-for-view error occurred.
func (s *Synchronizer) Done() <-chan struct{} {
	return s.done
}

// Err returns the fatal-for-view error, if any, once Done is closed.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatalErr
}

// Snapshot returns a copy of the current merged view.
func (s *Synchronizer) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func userMessage(err error) string {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
