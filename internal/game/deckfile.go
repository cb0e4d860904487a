package game

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. ID is preferred; Name is a fallback.
type CardEntry struct {
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Count int    `yaml:"count"`
}

func (e CardEntry) key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// ReadDeckFile reads and parses a YAML deck file.
func ReadDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	return ParseDeckFile(data)
}

// ParseDeckFile parses YAML deck file contents.
func ParseDeckFile(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// Build resolves the entry's cards through the catalog.
func (e DeckEntry) Build(cat *Catalog) (*Deck, error) {
	var cards []*Card
	for _, entry := range e.Cards {
		card, err := cat.Lookup(entry.key())
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", e.Name, err)
		}
		for range entry.Count {
			cards = append(cards, card)
		}
	}
	return NewDeck(e.Name, cards), nil
}

// Deck returns the Nth deck (1-indexed).
func (df DeckFile) Deck(n int, cat *Catalog) (*Deck, error) {
	if n < 1 || n > len(df.Decks) {
		return nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1].Build(cat)
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, cat *Catalog) (*Deck, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}
	return df.Deck(n, cat)
}

// EntryOf serializes a deck back into id/count form, keeping first-seen order.
func EntryOf(d *Deck) DeckEntry {
	counts := lo.CountValuesBy(d.Cards, func(c *Card) string { return c.ID })
	unique := lo.UniqBy(d.Cards, func(c *Card) string { return c.ID })
	return DeckEntry{
		Name: d.Name,
		Cards: lo.Map(unique, func(c *Card, _ int) CardEntry {
			return CardEntry{ID: c.ID, Count: counts[c.ID]}
		}),
	}
}

// MarshalDeckFile encodes decks as a YAML deck file.
func MarshalDeckFile(decks ...*Deck) ([]byte, error) {
	df := DeckFile{Decks: lo.Map(decks, func(d *Deck, _ int) DeckEntry { return EntryOf(d) })}
	return yaml.Marshal(df)
}
