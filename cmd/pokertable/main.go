package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/holdemhub/pokerclient/clients/pokerapi"
	"github.com/holdemhub/pokerclient/internal/lobby"
	"github.com/holdemhub/pokerclient/internal/models"
	"github.com/holdemhub/pokerclient/internal/session"
	"github.com/holdemhub/pokerclient/internal/table"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := pokerapi.NewClient(cfg.API.BaseURL)
	api.SetTimeout(time.Duration(cfg.API.TimeoutSec) * time.Second)

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hold", pterm.FgLightGreen.ToStyle()),
		putils.LettersFromStringWithStyle("em", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	sess, err := promptLogin(ctx, api)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	pterm.Success.Printfln("Logged in as %s", sess.Username)

	runMenu(ctx, api, sess, cfg)

	if err := session.Logout(context.Background(), api, sess); err != nil {
		log.Debug().Err(err).Msg("logout failed")
	}
}

func promptLogin(ctx context.Context, api *pokerapi.Client) (*session.Session, error) {
	for {
		username, _ := pterm.DefaultInteractiveTextInput.Show("Username")
		password, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")

		sess, err := session.Login(ctx, api, username, password)
		if err == nil {
			return sess, nil
		}
		if errors.Is(err, session.ErrMissingCredentials) {
			pterm.Warning.Println("Both username and password are required.")
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		pterm.Error.Printfln("Login failed: %v", err)
	}
}

func runMenu(ctx context.Context, api *pokerapi.Client, sess *session.Session, cfg *Config) {
	svc := lobby.NewService(api)

	for ctx.Err() == nil {
		choice, _ := pterm.DefaultInteractiveSelect.WithOptions([]string{
			"Browse rooms",
			"Create a room",
			"Players",
			"Friends",
			"My profile",
			"Quit",
		}).Show("Lobby")

		switch choice {
		case "Browse rooms":
			browseRooms(ctx, svc, api, sess, cfg)
		case "Create a room":
			createRoom(ctx, svc, api, sess, cfg)
		case "Players":
			showPlayers(ctx, api)
		case "Friends":
			showFriends(ctx, api)
		case "My profile":
			showProfile(ctx, api, sess)
		default:
			return
		}
	}
}

func browseRooms(ctx context.Context, svc *lobby.Service, api *pokerapi.Client, sess *session.Session, cfg *Config) {
	rooms, err := svc.Rooms(ctx)
	if err != nil {
		pterm.Error.Printfln("Could not load rooms: %v", err)
		return
	}
	if len(rooms) == 0 {
		pterm.Info.Println("No rooms available right now.")
		return
	}

	options := make([]string, 0, len(rooms)+1)
	for _, r := range rooms {
		visibility := "public"
		if !r.Public {
			visibility = "private"
		}
		options = append(options, fmt.Sprintf("Game #%d  %d/%d players  %s  (%s)",
			r.ID, r.Players, r.MaxPlayers, r.Status, visibility))
	}
	options = append(options, "Back")

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Rooms")
	for i, opt := range options[:len(rooms)] {
		if opt != choice {
			continue
		}
		room := rooms[i]
		if !room.Joinable() {
			// running games can still be watched
			ok, _ := pterm.DefaultInteractiveConfirm.Show("This room is already playing. Spectate?")
			if ok {
				runTable(ctx, api, sess, cfg, room.ID, tableOptions{spectate: true})
			}
			return
		}
		password := ""
		if !room.Public {
			password, _ = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Room password")
		}
		if err := svc.Join(ctx, room, password); err != nil {
			pterm.Error.Printfln("Could not join: %v", err)
			return
		}
		runTable(ctx, api, sess, cfg, room.ID, tableOptions{password: password})
		return
	}
}

func createRoom(ctx context.Context, svc *lobby.Service, api *pokerapi.Client, sess *session.Session, cfg *Config) {
	public, _ := pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show("Public room?")
	password := ""
	if !public {
		password, _ = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Room password")
	}
	smallBlind := promptInt("Small blind", 5)
	bigBlind := promptInt("Big blind", 10)
	startCredit := promptInt("Start credit", 1000)
	maxPlayers := promptInt("Max players", 6)

	game, err := svc.Create(ctx, models.GameCreationRequest{
		CreatorID:      sess.UserID,
		IsPublic:       public,
		Password:       password,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		StartCredit:    startCredit,
		MaximalPlayers: int(maxPlayers),
	})
	if err != nil {
		pterm.Error.Printfln("Could not create room: %v", err)
		return
	}

	pterm.Success.Printfln("Created game #%d", game.ID)
	runTable(ctx, api, sess, cfg, game.ID, tableOptions{password: password})
}

func showPlayers(ctx context.Context, api *pokerapi.Client) {
	users, err := api.GetUsers(ctx)
	if err != nil {
		pterm.Error.Printfln("Could not load players: %v", err)
		return
	}

	data := pterm.TableData{{"Username", "Online", "Member since"}}
	for _, u := range users {
		online := "no"
		if u.Online {
			online = "yes"
		}
		data = append(data, []string{u.Username, online, u.CreatedAt})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showFriends(ctx context.Context, api *pokerapi.Client) {
	friends, err := api.GetFriends(ctx)
	if err != nil {
		pterm.Error.Printfln("Could not load friends: %v", err)
		return
	}
	if len(friends) == 0 {
		pterm.Info.Println("No friends yet.")
	} else {
		data := pterm.TableData{{"Username", "Online"}}
		for _, f := range friends {
			online := "no"
			if f.Online {
				online = "yes"
			}
			data = append(data, []string{f.Username, online})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	if ok, _ := pterm.DefaultInteractiveConfirm.Show("Send a friend request?"); !ok {
		return
	}
	users, err := api.GetUsers(ctx)
	if err != nil {
		pterm.Error.Printfln("Could not load players: %v", err)
		return
	}
	options := make([]string, 0, len(users)+1)
	for _, u := range users {
		options = append(options, u.Username)
	}
	options = append(options, "Back")
	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Player")
	for _, u := range users {
		if u.Username != choice {
			continue
		}
		if _, err := api.SendFriendRequest(ctx, u.ID); err != nil {
			pterm.Error.Printfln("Could not send request: %v", err)
		} else {
			pterm.Success.Printfln("Friend request sent to %s", u.Username)
		}
		return
	}
}

func showProfile(ctx context.Context, api *pokerapi.Client, sess *session.Session) {
	profile, err := api.GetUserProfile(ctx, sess.UserID)
	if err != nil {
		pterm.Error.Printfln("Could not load profile: %v", err)
		return
	}

	data := pterm.TableData{
		{"Username", profile.Username},
		{"Display name", profile.DisplayName},
		{"Experience", string(profile.ExperienceLevel)},
		{"Member since", profile.CreatedAt},
	}
	_ = pterm.DefaultTable.WithData(data).Render()

	prefs, err := api.GetPreferences(ctx, sess.UserID)
	if err != nil {
		return
	}
	autoCall := "fold"
	if prefs.AutoCall {
		autoCall = "call"
	}
	pterm.Info.Printfln("On turn timeout you currently %s.", autoCall)
	if ok, _ := pterm.DefaultInteractiveConfirm.Show("Toggle the timeout action?"); !ok {
		return
	}
	next := !prefs.AutoCall
	if _, err := api.UpdatePreferences(ctx, sess.UserID, models.PreferencesUpdate{AutoCall: &next}); err != nil {
		pterm.Error.Printfln("Could not update preferences: %v", err)
	}
}

type tableOptions struct {
	password string
	spectate bool
}

// runTable mounts one table view: it joins the game, renders every merged
// view the synchronizer publishes, and routes the viewer's actions and host
// controls back through it. Returning unmounts the view.
func runTable(ctx context.Context, api *pokerapi.Client, sess *session.Session, cfg *Config, gameID int64, opts tableOptions) {
	// best effort; the timeout action falls back to FOLD
	prefs, err := api.GetPreferences(ctx, sess.UserID)
	if err != nil {
		log.Debug().Err(err).Msg("could not load preferences")
	}

	sync := table.New(api, sess, gameID, table.Config{
		PollInterval: cfg.pollInterval(),
		TurnTimeout:  cfg.turnTimeout(),
		JoinPassword: opts.password,
		Spectate:     opts.spectate,
		Prefs:        prefs,
	})
	if err := sync.Start(ctx); err != nil {
		pterm.Error.Printfln("Could not enter game #%d: %v", gameID, err)
		return
	}
	defer sync.Close()

	area, err := pterm.DefaultArea.WithFullscreen().Start()
	if err != nil {
		log.Error().Err(err).Msg("failed to start render area")
		sync.Leave(context.Background())
		return
	}
	defer area.Stop()

	var promptedTurn, promptedStart, promptedRound bool

	for {
		select {
		case <-ctx.Done():
			sync.Leave(context.Background())
			return
		case <-sync.Done():
			if err := sync.Err(); err != nil {
				pterm.Error.Printfln("Leaving table: %v", err)
			}
			return
		case v := <-sync.Updates():
			area.Update(renderTable(v, sess.UserID, time.Now()))

			if !v.YourTurn {
				promptedTurn = false
			}
			if v.Game.GameStatus != models.GameStatusReady {
				promptedStart = false
			}
			if v.Game.GameStatus != models.GameStatusGameover {
				promptedRound = false
			}

			host := v.Game.CreatorID == sess.UserID

			switch {
			case v.YourTurn && v.Timer == table.TimerArmed && !promptedTurn:
				promptedTurn = true
				promptTurn(ctx, sync, api, gameID, v)
			case host && v.Game.GameStatus == models.GameStatusReady && len(v.Game.Players) >= 2 && !promptedStart:
				promptedStart = true
				if ok, _ := pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show("Start betting?"); ok {
					if err := sync.StartBetting(ctx); err != nil {
						pterm.Error.Printfln("Could not start betting: %v", err)
					}
				}
			case host && v.Game.GameStatus == models.GameStatusGameover && !promptedRound:
				promptedRound = true
				if ok, _ := pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show("Deal a new round?"); ok {
					if err := sync.NewRound(ctx); err != nil {
						pterm.Error.Printfln("Could not start a new round: %v", err)
					}
				} else {
					sync.Leave(ctx)
				}
			}
		}
	}
}

func promptTurn(ctx context.Context, sync *table.Synchronizer, api *pokerapi.Client, gameID int64, v table.View) {
	if prob, err := api.GetWinProbability(ctx, gameID); err == nil {
		pterm.Info.Printfln("Estimated win probability: %.0f%%", prob.Probability*100)
	}

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions([]string{
		"check", "call", "fold", "bet", "raise", "wait",
	}).Show(fmt.Sprintf("Your turn (to call: %d)", v.Game.CallAmount))

	var action models.PlayerAction
	switch choice {
	case "check":
		action = models.ActionCheck
	case "call":
		action = models.ActionCall
	case "fold":
		action = models.ActionFold
	case "bet":
		action = models.ActionBet
	case "raise":
		action = models.ActionRaise
	default:
		return
	}

	var amount int64
	if action.RequiresAmount() {
		amount = promptInt("Amount", v.Game.CallAmount)
	}

	if err := sync.SelectAction(action, amount); err != nil {
		pterm.Error.Printfln("Invalid action: %v", err)
		return
	}
	if err := sync.Submit(ctx); err != nil {
		pterm.Error.Printfln("Action rejected: %v", err)
	}
}

func promptInt(prompt string, fallback int64) int64 {
	raw, _ := pterm.DefaultInteractiveTextInput.WithDefaultValue(strconv.FormatInt(fallback, 10)).Show(prompt)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
