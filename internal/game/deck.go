package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// Deck is an ordered pile of cards. Index 0 is the top.
type Deck struct {
	Name  string
	Cards []*Card
}

// NewDeck creates a deck holding the given cards in order.
func NewDeck(name string, cards []*Card) *Deck {
	return &Deck{Name: name, Cards: append([]*Card(nil), cards...)}
}

func (d *Deck) Len() int {
	return len(d.Cards)
}

func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}

// Shuffle permutes the deck uniformly using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (card *Card, ok bool) {
	if len(d.Cards) == 0 {
		return nil, false
	}
	card = d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// DrawN draws up to n cards, stopping early if the deck runs out.
func (d *Deck) DrawN(n int) []*Card {
	var drawn []*Card
	for range n {
		c, ok := d.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, c)
	}
	return drawn
}

// Peek returns up to n cards from the top without removing them.
func (d *Deck) Peek(n int) []*Card {
	n = min(max(n, 0), len(d.Cards))
	return append([]*Card(nil), d.Cards[:n]...)
}

func (d *Deck) PutOnTop(c *Card) {
	d.Cards = append([]*Card{c}, d.Cards...)
}

func (d *Deck) PutOnBottom(c *Card) {
	d.Cards = append(d.Cards, c)
}

// Count returns how many copies of the card id are in the deck.
func (d *Deck) Count(id string) int {
	return lo.CountBy(d.Cards, func(c *Card) bool { return c.ID == id })
}

// AddCard appends a card if the deck is not full and the copy limit allows it.
func (d *Deck) AddCard(c *Card) error {
	if len(d.Cards) >= MaxDeckSize {
		return fmt.Errorf("deck %q already has %d cards", d.Name, MaxDeckSize)
	}
	if !c.IsBasicEnergy() && d.Count(c.ID) >= MaxCopies {
		return fmt.Errorf("deck %q already has %d copies of %s", d.Name, MaxCopies, c.Name)
	}
	d.Cards = append(d.Cards, c)
	return nil
}

// RemoveCard removes the first card with the given id.
func (d *Deck) RemoveCard(id string) bool {
	_, idx, ok := lo.FindIndexOf(d.Cards, func(c *Card) bool { return c.ID == id })
	if !ok {
		return false
	}
	d.Cards = append(d.Cards[:idx], d.Cards[idx+1:]...)
	return true
}

// Search returns every card matching the predicate, in deck order.
func (d *Deck) Search(match func(*Card) bool) []*Card {
	return lo.Filter(d.Cards, func(c *Card, _ int) bool { return match(c) })
}

// BasicPokemon returns the basic Pokémon in the deck.
func (d *Deck) BasicPokemon() []*Card {
	return d.Search((*Card).IsBasicPokemon)
}

// DeckSummary counts a deck's contents by kind.
type DeckSummary struct {
	Total        int            `json:"total"`
	Pokemon      int            `json:"pokemon"`
	Trainers     int            `json:"trainers"`
	Energy       int            `json:"energy"`
	BasicPokemon int            `json:"basic_pokemon"`
	ByID         map[string]int `json:"by_id"`
}

func (d *Deck) Summary() DeckSummary {
	kinds := lo.CountValuesBy(d.Cards, (*Card).Kind)
	return DeckSummary{
		Total:        len(d.Cards),
		Pokemon:      kinds[KindPokemon],
		Trainers:     kinds[KindTrainer],
		Energy:       kinds[KindEnergy],
		BasicPokemon: len(d.BasicPokemon()),
		ByID:         lo.CountValuesBy(d.Cards, func(c *Card) string { return c.ID }),
	}
}

// Validate returns every construction rule the deck breaks. Empty means valid.
func (d *Deck) Validate() []string {
	var problems []string
	if n := len(d.Cards); n < MinDeckSize || n > MaxDeckSize {
		problems = append(problems, fmt.Sprintf("deck has %d cards, must have %d-%d", n, MinDeckSize, MaxDeckSize))
	}
	if !lo.ContainsBy(d.Cards, func(c *Card) bool { return c.Kind() == KindPokemon }) {
		problems = append(problems, "deck has no Pokémon")
	}
	counted := lo.CountValuesBy(lo.Reject(d.Cards, func(c *Card, _ int) bool { return c.IsBasicEnergy() }),
		func(c *Card) string { return c.ID })
	for _, c := range lo.UniqBy(d.Cards, func(c *Card) string { return c.ID }) {
		if n := counted[c.ID]; n > MaxCopies {
			problems = append(problems, fmt.Sprintf("%d copies of %s (max %d)", n, c.Name, MaxCopies))
		}
	}
	return problems
}

// IsValid reports whether the deck meets construction rules, with the reasons if not.
func (d *Deck) IsValid() (bool, []string) {
	problems := d.Validate()
	return len(problems) == 0, problems
}

// Clone returns an independent copy. Card templates are shared since they are immutable.
func (d *Deck) Clone() *Deck {
	return NewDeck(d.Name, d.Cards)
}
