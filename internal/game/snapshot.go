package game

import (
	"github.com/samber/lo"
)

// CardView is the read-only view of a Pokémon in play.
type CardView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          EnergyType        `json:"type"`
	Stage         Stage             `json:"stage"`
	MaxHP         int               `json:"max_hp"`
	CurrentHP     int               `json:"current_hp"`
	Energies      []EnergyType      `json:"attached_energies"`
	Statuses      []StatusCondition `json:"status_conditions"`
	DamageCounter int               `json:"damage_counter"`
	Attacks       []string          `json:"attacks"`
	Tools         []string          `json:"tools,omitempty"`
}

// PlayerSnapshot is one player's public state. Hand is only filled for the viewing player.
type PlayerSnapshot struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name"`
	HandCount            int                     `json:"hand_count"`
	DeckCount            int                     `json:"deck_count"`
	PrizeCount           int                     `json:"prize_count"`
	DiscardCount         int                     `json:"discard_count"`
	ActivePokemon        *CardView               `json:"active_pokemon"`
	Bench                [MaxBenchSize]*CardView `json:"bench"`
	HasDrawn             bool                    `json:"has_drawn"`
	HasAttacked          bool                    `json:"has_attacked"`
	EnergyPlayedThisTurn bool                    `json:"energy_played_this_turn"`
	Hand                 []string                `json:"hand,omitempty"`
}

// Snapshot is a value copy of the battle state, safe to serialize and hand to other goroutines.
type Snapshot struct {
	BattleID        string                    `json:"battle_id"`
	BattleState     BattleState               `json:"battle_state"`
	CurrentPhase    Phase                     `json:"current_phase"`
	TurnNumber      int                       `json:"turn_number"`
	CurrentPlayerID string                    `json:"current_player_id"`
	WinnerID        *string                   `json:"winner_id"`
	Result          string                    `json:"result,omitempty"`
	Stadium         string                    `json:"stadium,omitempty"`
	PlayerSnapshots map[string]PlayerSnapshot `json:"player_snapshots"`
}

// Snapshot returns the public state with every hand hidden.
func (e *Engine) Snapshot() Snapshot {
	return e.SnapshotFor(-1)
}

// SnapshotFor returns the public state plus the hand of the player in seat viewer.
func (e *Engine) SnapshotFor(viewer int) Snapshot {
	s := Snapshot{
		BattleID:        e.ID,
		BattleState:     e.State,
		CurrentPhase:    e.Phase,
		TurnNumber:      e.Turn,
		CurrentPlayerID: e.Current().ID,
		Result:          e.Result,
		PlayerSnapshots: make(map[string]PlayerSnapshot, len(e.Players)),
	}
	if w := e.Winner(); w != nil {
		id := w.ID
		s.WinnerID = &id
	}
	if e.Stadium != nil {
		s.Stadium = e.Stadium.Name
	}
	for _, p := range e.Players {
		s.PlayerSnapshots[p.ID] = snapshotPlayer(p, p.Seat == viewer)
	}
	return s
}

func snapshotPlayer(p *Player, withHand bool) PlayerSnapshot {
	ps := PlayerSnapshot{
		ID:                   p.ID,
		Name:                 p.Name,
		HandCount:            len(p.Hand),
		DeckCount:            p.Deck.Len(),
		PrizeCount:           len(p.Prizes),
		DiscardCount:         len(p.Discard),
		ActivePokemon:        ViewOf(p.Active),
		HasDrawn:             p.HasDrawn,
		HasAttacked:          p.HasAttacked,
		EnergyPlayedThisTurn: p.EnergyPlayedThisTurn,
	}
	for i, ip := range p.Bench {
		ps.Bench[i] = ViewOf(ip)
	}
	if withHand {
		ps.Hand = lo.Map(p.Hand, func(c *Card, _ int) string { return c.Name })
	}
	return ps
}

// ViewOf returns the view of a Pokémon in play, or nil.
func ViewOf(ip *InPlayCard) *CardView {
	if ip == nil {
		return nil
	}
	pk := ip.Pokemon()
	return &CardView{
		ID:            ip.Card.ID,
		Name:          ip.Name(),
		Type:          pk.Type,
		Stage:         pk.Stage,
		MaxHP:         ip.MaxHP(),
		CurrentHP:     ip.CurrentHP,
		Energies:      ip.EnergyTypes(),
		Statuses:      append([]StatusCondition(nil), ip.Statuses...),
		DamageCounter: ip.DamageCounter,
		Attacks:       lo.Map(pk.Attacks, func(a Attack, _ int) string { return a.Name }),
		Tools:         lo.Map(ip.Tools, func(c *Card, _ int) string { return c.Name }),
	}
}
