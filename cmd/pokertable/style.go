package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/holdemhub/pokerclient/internal/table"
)

var cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var suitSymbols = map[byte]string{
	'C': "♣",
	'D': "♦",
	'H': "♥",
	'S': "♠",
}

// formatCardCode renders a 0..51 community card code: rank = code mod 13,
// suit = code div 13 in clubs/diamonds/hearts/spades order.
func formatCardCode(code int) string {
	if code < 0 || code > 51 {
		return "??"
	}
	suits := []string{"♣", "♦", "♥", "♠"}
	return cardRanks[code%13] + suits[code/13]
}

// formatCard renders a hand card string like "AS" or "10H" with a suit
// symbol.
func formatCard(card string) string {
	if len(card) < 2 {
		return card
	}
	suit, ok := suitSymbols[card[len(card)-1]]
	if !ok {
		return card
	}
	return card[:len(card)-1] + suit
}

func formatCards(codes []int) string {
	if len(codes) == 0 {
		return pterm.Gray("(none)")
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = formatCardCode(c)
	}
	return strings.Join(parts, "  ")
}

func formatHand(hand []string) string {
	if len(hand) == 0 {
		return pterm.Gray("🂠 🂠")
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = formatCard(c)
	}
	return strings.Join(parts, "  ")
}

// renderTable produces the full-screen picture of the current view.
func renderTable(v table.View, viewerID int64, now time.Time) string {
	var b strings.Builder

	board := pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|TABLE|")).
		WithTitleTopCenter().
		WithLeftPadding(4).
		WithRightPadding(4).
		Sprintf("%s\n\nPot: %s    To call: %d    Phase: %s",
			formatCards(v.Game.CommunityCards),
			pterm.LightGreen(fmt.Sprintf("$%d", v.Game.Pot)),
			v.Game.CallAmount,
			v.Game.GameStatus,
		)
	b.WriteString(board)
	b.WriteString("\n")

	for _, p := range v.Game.Players {
		marker := "  "
		if v.Game.GameStatus.Betting() && p.ID == v.Game.CurrentPlayerID {
			marker = pterm.LightCyan("▶ ")
		}
		name := p.Username
		if p.UserID == viewerID {
			name = pterm.LightGreen(name + " (you)")
		}
		status := ""
		if p.HasFolded {
			status = pterm.Gray(" folded")
		} else if p.LastAction != "" {
			status = pterm.Gray(fmt.Sprintf(" %s", strings.ToLower(string(p.LastAction))))
		}
		b.WriteString(fmt.Sprintf("%s%-24s $%-7d bet %-6d %s  %s\n",
			marker, name, p.Credit, p.CurrentBet, formatHand(p.Hand), status))
	}

	if v.Results != nil {
		b.WriteString("\n")
		b.WriteString(pterm.DefaultBox.
			WithTitle(pterm.LightYellow("|WINNER|")).
			WithTitleTopCenter().
			WithLeftPadding(4).
			WithRightPadding(4).
			Sprintf("%s wins with %s\n%s",
				v.Results.Winner.Username,
				pterm.LightMagenta(v.Results.WinningHand),
				formatHand(v.Results.Winner.Hand),
			))
		b.WriteString("\n")
	}

	if v.Timer == table.TimerArmed {
		remaining := v.TimeRemaining(now).Round(time.Second)
		b.WriteString(pterm.LightCyan(fmt.Sprintf("\nYour turn: %s to act\n", remaining)))
	}

	if v.Notice != "" {
		b.WriteString("\n")
		b.WriteString(pterm.LightRed(v.Notice))
		b.WriteString("\n")
	}

	return b.String()
}
