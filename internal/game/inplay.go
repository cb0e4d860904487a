package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Attachment is one unit of energy attached to a Pokémon. Card is nil when the
// energy card was not basic and went straight to the discard pile.
type Attachment struct {
	Type EnergyType
	Card *Card
}

// InPlayCard is a Pokémon on the field (active or bench) with its runtime state.
type InPlayCard struct {
	Card          *Card
	CurrentHP     int
	Attached      []Attachment
	Tools         []*Card
	Statuses      []StatusCondition // ordered set
	DamageCounter int
	Zone          Zone
	Effects       map[string]int // keys prefixed "turn_" are cleared when the owner's turn starts
}

// NewInPlayCard wraps a Pokémon card at full HP. Panics on non-Pokémon cards.
func NewInPlayCard(c *Card) *InPlayCard {
	p := c.Pokemon()
	if p == nil {
		panic(fmt.Sprintf("card %q is not a Pokémon", c.Name))
	}
	return &InPlayCard{
		Card:      c,
		CurrentHP: p.HP,
		Effects:   make(map[string]int),
	}
}

func (ip *InPlayCard) Pokemon() *Pokemon { return ip.Card.Pokemon() }
func (ip *InPlayCard) Name() string      { return ip.Card.Name }
func (ip *InPlayCard) MaxHP() int        { return ip.Pokemon().HP }

// TakeDamage applies weakness (multiplied, floored) then resistance (flat, floored at zero),
// clamps HP at zero and returns the damage actually dealt. A source of TypeNone skips both.
func (ip *InPlayCard) TakeDamage(base int, source EnergyType) int {
	dmg := ip.DamageFrom(base, source)
	ip.CurrentHP = max(0, ip.CurrentHP-dmg)
	ip.DamageCounter += dmg
	return dmg
}

// DamageFrom computes the damage base would deal after weakness and resistance without applying it.
func (ip *InPlayCard) DamageFrom(base int, source EnergyType) int {
	dmg := max(base, 0)
	if source == TypeNone {
		return dmg
	}
	p := ip.Pokemon()
	if p.Weakness != nil && p.Weakness.Type == source {
		dmg = int(float64(dmg) * p.Weakness.multiplier())
	}
	if p.Resistance != nil && p.Resistance.Type == source {
		dmg = max(0, dmg-p.Resistance.reduction())
	}
	return dmg
}

// Heal restores up to amount HP, never above max, and returns the amount healed.
func (ip *InPlayCard) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := ip.CurrentHP
	ip.CurrentHP = min(ip.MaxHP(), ip.CurrentHP+amount)
	healed := ip.CurrentHP - before
	ip.DamageCounter = max(0, ip.DamageCounter-healed)
	return healed
}

func (ip *InPlayCard) IsKnockedOut() bool {
	return ip.CurrentHP <= 0
}

// EnergyTypes returns the attached energy types in attachment order.
func (ip *InPlayCard) EnergyTypes() []EnergyType {
	return lo.Map(ip.Attached, func(a Attachment, _ int) EnergyType { return a.Type })
}

// CostSatisfied checks an energy cost against the attached energy. Every non-colorless
// requirement must be met by energy of that exact type; colorless is paid by anything left.
func (ip *InPlayCard) CostSatisfied(cost []EnergyType) bool {
	need := lo.CountValues(cost)
	have := lo.CountValues(ip.EnergyTypes())
	for t, n := range need {
		if t == TypeColorless {
			continue
		}
		if have[t] < n {
			return false
		}
	}
	return len(ip.Attached) >= len(cost)
}

// CanAttack reports whether attack i exists, its cost is paid and no condition blocks it.
func (ip *InPlayCard) CanAttack(i int) bool {
	attacks := ip.Pokemon().Attacks
	if i < 0 || i >= len(attacks) {
		return false
	}
	if ip.actionBlocked() {
		return false
	}
	return ip.CostSatisfied(attacks[i].Cost)
}

// CanRetreat reports whether enough energy is attached to pay the retreat cost.
func (ip *InPlayCard) CanRetreat() bool {
	if ip.actionBlocked() {
		return false
	}
	return len(ip.Attached) >= ip.Pokemon().RetreatCost
}

func (ip *InPlayCard) actionBlocked() bool {
	return lo.ContainsBy(ip.Statuses, StatusCondition.blocksAction)
}

// AttachEnergy records one energy unit. card may be nil for non-basic energy.
func (ip *InPlayCard) AttachEnergy(t EnergyType, card *Card) {
	ip.Attached = append(ip.Attached, Attachment{Type: t, Card: card})
}

// RemoveEnergies detaches the first n energies (first found) and returns them.
func (ip *InPlayCard) RemoveEnergies(n int) []Attachment {
	n = min(n, len(ip.Attached))
	removed := append([]Attachment(nil), ip.Attached[:n]...)
	ip.Attached = append([]Attachment(nil), ip.Attached[n:]...)
	return removed
}

// AddStatus adds a condition if not already present.
func (ip *InPlayCard) AddStatus(s StatusCondition) {
	if !ip.HasStatus(s) {
		ip.Statuses = append(ip.Statuses, s)
	}
}

func (ip *InPlayCard) RemoveStatus(s StatusCondition) {
	ip.Statuses = lo.Without(ip.Statuses, s)
}

func (ip *InPlayCard) HasStatus(s StatusCondition) bool {
	return lo.Contains(ip.Statuses, s)
}

// AttachTool attaches a Pokémon tool card.
func (ip *InPlayCard) AttachTool(c *Card) {
	ip.Tools = append(ip.Tools, c)
}

// clearTurnEffects drops all turn-scoped effect keys.
func (ip *InPlayCard) clearTurnEffects() {
	for k := range ip.Effects {
		if strings.HasPrefix(k, "turn_") {
			delete(ip.Effects, k)
		}
	}
}

// attachedCards returns every physical card riding on this Pokémon.
func (ip *InPlayCard) attachedCards() []*Card {
	cards := lo.FilterMap(ip.Attached, func(a Attachment, _ int) (*Card, bool) {
		return a.Card, a.Card != nil
	})
	return append(cards, ip.Tools...)
}

func (ip *InPlayCard) String() string {
	return fmt.Sprintf("%s %d/%d HP", ip.Name(), ip.CurrentHP, ip.MaxHP())
}
