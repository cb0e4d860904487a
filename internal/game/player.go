package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// Target names one of a player's Pokémon in play.
type Target struct {
	Zone  Zone `json:"zone"`
	Index int  `json:"index"` // bench index; ignored for the active spot
}

// ActiveTarget targets the active Pokémon.
func ActiveTarget() Target { return Target{Zone: ZoneActive} }

// BenchTarget targets the i-th benched Pokémon.
func BenchTarget(i int) Target { return Target{Zone: ZoneBench, Index: i} }

func (t Target) String() string {
	switch t.Zone {
	case ZoneActive:
		return "active"
	case ZoneBench:
		return fmt.Sprintf("bench %d", t.Index+1)
	default:
		return "none"
	}
}

// Player represents one player's entire state.
type Player struct {
	ID   string
	Name string
	Seat int

	Deck    *Deck
	Hand    []*Card
	Active  *InPlayCard
	Bench   []*InPlayCard
	Prizes  []*Card
	Discard []*Card

	HasDrawn                bool
	HasAttacked             bool
	EnergyPlayedThisTurn    bool
	SupporterPlayedThisTurn bool

	PrizesTaken int
	Knockouts   int
	Mulligans   int
}

// NewPlayer creates a player with its own copy of deck.
func NewPlayer(id, name string, seat int, deck *Deck) *Player {
	return &Player{ID: id, Name: name, Seat: seat, Deck: deck.Clone()}
}

// DrawCards moves up to n cards from the deck to the hand, stopping early on an empty deck.
func (p *Player) DrawCards(n int) []*Card {
	drawn := p.Deck.DrawN(n)
	p.Hand = append(p.Hand, drawn...)
	return drawn
}

// DrawOne moves the top deck card into the hand for the turn draw.
func (p *Player) DrawOne() (*Card, bool) {
	c, ok := p.Deck.Draw()
	if !ok {
		return nil, false
	}
	p.Hand = append(p.Hand, c)
	p.HasDrawn = true
	return c, true
}

func (p *Player) ShuffleDeck(rng *rand.Rand) { p.Deck.Shuffle(rng) }

// DealPrizes sets aside the top n deck cards as prizes.
func (p *Player) DealPrizes(n int) {
	p.Prizes = p.Deck.DrawN(n)
}

// ReturnHandToDeck puts the whole hand on the bottom of the deck.
func (p *Player) ReturnHandToDeck() {
	for _, c := range p.Hand {
		p.Deck.PutOnBottom(c)
	}
	p.Hand = nil
}

// ReturnPrizesToDeck puts the prize cards back on the bottom of the deck.
func (p *Player) ReturnPrizesToDeck() {
	for _, c := range p.Prizes {
		p.Deck.PutOnBottom(c)
	}
	p.Prizes = nil
}

// DeckHasBasic reports whether a basic Pokémon is left in the deck.
func (p *Player) DeckHasBasic() bool {
	return len(p.Deck.BasicPokemon()) > 0
}

// Mulligan returns the hand to the deck and counts the redraw.
func (p *Player) Mulligan() int {
	p.ReturnHandToDeck()
	p.Mulligans++
	return p.Mulligans
}

func (p *Player) DiscardCard(c *Card) {
	p.Discard = append(p.Discard, c)
}

// CureActive removes every special condition from the active Pokémon and returns them.
func (p *Player) CureActive() []StatusCondition {
	if p.Active == nil {
		return nil
	}
	cured := p.Active.Statuses
	p.Active.Statuses = nil
	return cured
}

func (p *Player) MarkAttacked()        { p.HasAttacked = true }
func (p *Player) MarkSupporterPlayed() { p.SupporterPlayedThisTurn = true }
func (p *Player) RecordKnockout()      { p.Knockouts++ }

// HandCard returns the card at a hand index.
func (p *Player) HandCard(i int) (*Card, error) {
	if i < 0 || i >= len(p.Hand) {
		return nil, violation(ErrInvalidIndex, "hand index %d (hand has %d cards)", i, len(p.Hand))
	}
	return p.Hand[i], nil
}

func (p *Player) removeFromHand(i int) *Card {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
	return c
}

// Resolve finds the Pokémon a target refers to.
func (p *Player) Resolve(t Target) (*InPlayCard, error) {
	switch t.Zone {
	case ZoneActive:
		if p.Active == nil {
			return nil, violation(ErrNotInZone, "no active Pokémon")
		}
		return p.Active, nil
	case ZoneBench:
		if t.Index < 0 || t.Index >= len(p.Bench) {
			return nil, violation(ErrNotInZone, "no Pokémon on bench slot %d", t.Index+1)
		}
		return p.Bench[t.Index], nil
	default:
		return nil, violation(ErrNotInZone, "target %s", t)
	}
}

// InPlay returns the active Pokémon followed by the bench.
func (p *Player) InPlay() []*InPlayCard {
	if p.Active == nil {
		return append([]*InPlayCard(nil), p.Bench...)
	}
	return append([]*InPlayCard{p.Active}, p.Bench...)
}

// TargetOf returns the target naming ip, if ip belongs to this player.
func (p *Player) TargetOf(ip *InPlayCard) (Target, bool) {
	if ip == nil {
		return Target{}, false
	}
	if p.Active == ip {
		return ActiveTarget(), true
	}
	if idx := lo.IndexOf(p.Bench, ip); idx >= 0 {
		return BenchTarget(idx), true
	}
	return Target{}, false
}

// PlayToActive puts a basic Pokémon from hand into the empty active spot.
func (p *Player) PlayToActive(handIdx int) (*InPlayCard, error) {
	c, err := p.HandCard(handIdx)
	if err != nil {
		return nil, err
	}
	if !c.IsBasicPokemon() {
		return nil, violation(ErrNotBasic, "%s", c.Name)
	}
	if p.Active != nil {
		return nil, violation(ErrActiveOccupied, "%s is already active", p.Active.Name())
	}
	p.removeFromHand(handIdx)
	ip := NewInPlayCard(c)
	ip.Zone = ZoneActive
	p.Active = ip
	return ip, nil
}

// PlayToBench puts a basic Pokémon from hand onto the bench.
func (p *Player) PlayToBench(handIdx int) (*InPlayCard, error) {
	c, err := p.HandCard(handIdx)
	if err != nil {
		return nil, err
	}
	if !c.IsBasicPokemon() {
		return nil, violation(ErrNotBasic, "%s", c.Name)
	}
	if len(p.Bench) >= MaxBenchSize {
		return nil, violation(ErrBenchFull, "%d Pokémon benched", len(p.Bench))
	}
	p.removeFromHand(handIdx)
	ip := NewInPlayCard(c)
	ip.Zone = ZoneBench
	p.Bench = append(p.Bench, ip)
	return ip, nil
}

// Evolve replaces the target with the evolution card from hand, keeping current HP,
// energy, special conditions and tools. The pre-evolution card goes to the discard pile.
func (p *Player) Evolve(handIdx int, t Target) (*InPlayCard, error) {
	c, err := p.HandCard(handIdx)
	if err != nil {
		return nil, err
	}
	evo := c.Pokemon()
	if evo == nil || evo.Stage == StageBasic {
		return nil, violation(ErrCannotEvolve, "%s is not an evolution card", c.Name)
	}
	target, err := p.Resolve(t)
	if err != nil {
		return nil, err
	}
	if evo.EvolvesFrom != target.Name() {
		return nil, violation(ErrCannotEvolve, "%s evolves from %s, not %s", c.Name, evo.EvolvesFrom, target.Name())
	}
	p.removeFromHand(handIdx)

	next := NewInPlayCard(c)
	next.Zone = target.Zone
	next.DamageCounter = target.DamageCounter
	next.CurrentHP = min(target.CurrentHP, next.MaxHP())
	next.Attached = target.Attached
	next.Statuses = target.Statuses
	next.Tools = target.Tools
	next.Effects = target.Effects

	if t.Zone == ZoneActive {
		p.Active = next
	} else {
		p.Bench[t.Index] = next
	}
	p.Discard = append(p.Discard, target.Card)
	return next, nil
}

// AttachEnergy attaches an energy card from hand to one of the player's Pokémon.
// Basic energy stays attached as a card; other energy adds its type and is discarded.
func (p *Player) AttachEnergy(handIdx int, t Target) (*InPlayCard, error) {
	if p.EnergyPlayedThisTurn {
		return nil, violation(ErrEnergyAlreadyPlayed, "")
	}
	c, err := p.HandCard(handIdx)
	if err != nil {
		return nil, err
	}
	e := c.Energy()
	if e == nil {
		return nil, violation(ErrWrongCardKind, "%s is not an energy card", c.Name)
	}
	target, err := p.Resolve(t)
	if err != nil {
		return nil, err
	}
	p.removeFromHand(handIdx)
	if e.IsBasic {
		target.AttachEnergy(e.EnergyType, c)
	} else {
		target.AttachEnergy(e.EnergyType, nil)
		p.Discard = append(p.Discard, c)
	}
	p.EnergyPlayedThisTurn = true
	return target, nil
}

// Retreat swaps the active Pokémon with a benched one, discarding energy to pay the cost.
// Returns the Pokémon that retreated and the energy paid.
func (p *Player) Retreat(benchIdx int) (*InPlayCard, []Attachment, error) {
	if p.Active == nil {
		return nil, nil, violation(ErrNoActive, "")
	}
	if benchIdx < 0 || benchIdx >= len(p.Bench) {
		return nil, nil, violation(ErrNotInZone, "no Pokémon on bench slot %d", benchIdx+1)
	}
	old := p.Active
	if old.actionBlocked() {
		return nil, nil, violation(ErrStatusBlocked, "%s cannot retreat", old.Name())
	}
	if !old.CanRetreat() {
		return nil, nil, violation(ErrInsufficientEnergy, "%s needs %d energy to retreat, has %d",
			old.Name(), old.Pokemon().RetreatCost, len(old.Attached))
	}
	paid := old.RemoveEnergies(old.Pokemon().RetreatCost)
	for _, a := range paid {
		if a.Card != nil {
			p.Discard = append(p.Discard, a.Card)
		}
	}
	incoming := p.Bench[benchIdx]
	incoming.Zone = ZoneActive
	old.Zone = ZoneBench
	p.Bench[benchIdx] = old
	p.Active = incoming
	return old, paid, nil
}

// Promote moves a benched Pokémon into the empty active spot.
func (p *Player) Promote(benchIdx int) (*InPlayCard, error) {
	if p.Active != nil {
		return nil, violation(ErrActiveOccupied, "%s is already active", p.Active.Name())
	}
	if benchIdx < 0 || benchIdx >= len(p.Bench) {
		return nil, violation(ErrNotInZone, "no Pokémon on bench slot %d", benchIdx+1)
	}
	ip := p.Bench[benchIdx]
	p.Bench = append(p.Bench[:benchIdx:benchIdx], p.Bench[benchIdx+1:]...)
	ip.Zone = ZoneActive
	p.Active = ip
	return ip, nil
}

// removeFromPlay takes a Pokémon off the field and discards it with everything attached.
func (p *Player) removeFromPlay(ip *InPlayCard) {
	if p.Active == ip {
		p.Active = nil
	} else {
		p.Bench = lo.Without(p.Bench, ip)
	}
	p.Discard = append(p.Discard, ip.Card)
	p.Discard = append(p.Discard, ip.attachedCards()...)
	ip.Zone = ZoneNone
}

// DiscardHand moves the whole hand to the discard pile and returns how many cards moved.
func (p *Player) DiscardHand() int {
	n := len(p.Hand)
	p.Discard = append(p.Discard, p.Hand...)
	p.Hand = nil
	return n
}

// TakePrize moves the top prize card into the hand.
func (p *Player) TakePrize() (*Card, bool) {
	if len(p.Prizes) == 0 {
		return nil, false
	}
	c := p.Prizes[0]
	p.Prizes = p.Prizes[1:]
	p.Hand = append(p.Hand, c)
	p.PrizesTaken++
	return c, true
}

// ResetTurnFlags clears the per-turn flags and turn-scoped effects.
func (p *Player) ResetTurnFlags() {
	p.HasDrawn = false
	p.HasAttacked = false
	p.EnergyPlayedThisTurn = false
	p.SupporterPlayedThisTurn = false
	for _, ip := range p.InPlay() {
		ip.clearTurnEffects()
	}
}

// BasicPokemonInHand returns the hand indices holding basic Pokémon.
func (p *Player) BasicPokemonInHand() []int {
	var idx []int
	for i, c := range p.Hand {
		if c.IsBasicPokemon() {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasValidActive reports whether the active Pokémon exists and is not knocked out.
func (p *Player) HasValidActive() bool {
	return p.Active != nil && !p.Active.IsKnockedOut()
}

// AvailableForActive returns the benched Pokémon that could be promoted.
func (p *Player) AvailableForActive() []*InPlayCard {
	return lo.Filter(p.Bench, func(ip *InPlayCard, _ int) bool { return !ip.IsKnockedOut() })
}

func (p *Player) String() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("P%d", p.Seat+1)
}
