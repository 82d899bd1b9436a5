package table

import "github.com/holdemhub/pokerclient/internal/models"

// reconcile merges a freshly fetched snapshot with the previously cached
// results into a new view. The snapshot wins for every field except the
// winner's hand: while the game stays concluded, the results fetch is the
// more complete source for it, so the cached winner's cards are written over
// whatever the plain game fetch returned.
//
// reconcile is pure; it never issues network calls and never mutates its
// inputs.
func reconcile(prev View, game models.Game, results *models.GameResults) View {
	next := prev
	next.Game = game
	next.Results = results

	if results != nil && game.GameStatus == models.GameStatusGameover {
		// the snapshot's player slice is shared with the caller; copy it
		// before writing the winner's hand into it
		players := make([]models.Player, len(game.Players))
		copy(players, game.Players)
		next.Game.Players = players
		for i := range next.Game.Players {
			if next.Game.Players[i].ID != results.Winner.ID {
				continue
			}
			hand := make([]string, len(results.Winner.Hand))
			copy(hand, results.Winner.Hand)
			next.Game.Players[i].Hand = hand
		}
	}

	return next
}
