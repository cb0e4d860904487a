package game

import (
	"fmt"
	"strings"
	"time"
)

type PlayerSummary struct {
	Name        string `json:"name"`
	PrizesTaken int    `json:"prizes_taken"`
	Knockouts   int    `json:"knockouts"`
	DeckCount   int    `json:"deck_count"`
	HandSize    int    `json:"hand_size"`
	Mulligans   int    `json:"mulligans"`
}

// BattleSummary is the end-of-battle report.
type BattleSummary struct {
	BattleID string           `json:"battle_id"`
	Winner   string           `json:"winner,omitempty"`
	Loser    string           `json:"loser,omitempty"`
	Result   string           `json:"result"`
	Turns    int              `json:"turns"`
	Duration time.Duration    `json:"duration_ns"`
	Players  [2]PlayerSummary `json:"players"`
}

// Duration returns how long the battle ran, or has been running.
func (e *Engine) Duration() time.Duration {
	if e.StartedAt.IsZero() {
		return 0
	}
	end := e.EndedAt
	if end.IsZero() {
		end = e.clock()
	}
	return end.Sub(e.StartedAt)
}

// Summary reports the outcome and per-player statistics.
func (e *Engine) Summary() BattleSummary {
	s := BattleSummary{
		BattleID: e.ID,
		Result:   e.Result,
		Turns:    e.Turn,
		Duration: e.Duration(),
	}
	if w := e.Winner(); w != nil {
		s.Winner = w.Name
		s.Loser = e.Players[1-w.Seat].Name
	}
	for i, p := range e.Players {
		s.Players[i] = PlayerSummary{
			Name:        p.Name,
			PrizesTaken: p.PrizesTaken,
			Knockouts:   p.Knockouts,
			DeckCount:   p.Deck.Len(),
			HandSize:    len(p.Hand),
			Mulligans:   p.Mulligans,
		}
	}
	return s
}

func (s BattleSummary) String() string {
	var sb strings.Builder
	result := s.Result
	if result == "" {
		result = "in progress"
	}
	fmt.Fprintf(&sb, "Battle %s: %s after %d turns (%s)\n", s.BattleID, result, s.Turns, s.Duration.Round(time.Millisecond))
	for _, p := range s.Players {
		fmt.Fprintf(&sb, "  %-12s prizes %d  knockouts %d  deck %d  hand %d\n",
			p.Name, p.PrizesTaken, p.Knockouts, p.DeckCount, p.HandSize)
	}
	return sb.String()
}
