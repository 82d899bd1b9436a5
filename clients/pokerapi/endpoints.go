package pokerapi

import "fmt"

const (
	// Auth
	LoginEndpoint  = "/auth/login"
	LogoutEndpoint = "/auth/logout"

	// Collections
	UsersEndpoint   = "/users"
	FriendsEndpoint = "/friends"
	GamesEndpoint   = "/games"

	// Headers
	AuthorizationHeader = "Authorization"
)

func userEndpoint(userID int64) string {
	return fmt.Sprintf("%s/%d", UsersEndpoint, userID)
}

func preferencesEndpoint(userID int64) string {
	return fmt.Sprintf("%s/%d/preferences", UsersEndpoint, userID)
}

func friendEndpoint(friendID int64, verb string) string {
	return fmt.Sprintf("%s/%d/%s", FriendsEndpoint, friendID, verb)
}

func gameEndpoint(gameID int64) string {
	return fmt.Sprintf("%s/%d", GamesEndpoint, gameID)
}

func gameSubEndpoint(gameID int64, sub string) string {
	return fmt.Sprintf("%s/%d/%s", GamesEndpoint, gameID, sub)
}
