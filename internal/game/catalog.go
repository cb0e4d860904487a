package game

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CardFile is the top-level YAML structure of a card catalog file.
type CardFile struct {
	Cards []CardDef `yaml:"cards"`
}

// CardDef is the flat, serializable form of a card. Which fields apply depends on Kind.
type CardDef struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Kind   string `yaml:"kind" json:"kind"` // pokemon, trainer or energy
	Rarity Rarity `yaml:"rarity,omitempty" json:"rarity"`

	Type        EnergyType  `yaml:"type,omitempty" json:"type,omitempty"`
	HP          int         `yaml:"hp,omitempty" json:"hp,omitempty"`
	Attacks     []Attack    `yaml:"attacks,omitempty" json:"attacks,omitempty"`
	Weakness    *Weakness   `yaml:"weakness,omitempty" json:"weakness,omitempty"`
	Resistance  *Resistance `yaml:"resistance,omitempty" json:"resistance,omitempty"`
	RetreatCost int         `yaml:"retreat_cost,omitempty" json:"retreat_cost,omitempty"`
	Stage       Stage       `yaml:"stage,omitempty" json:"stage,omitempty"`
	EvolvesFrom string      `yaml:"evolves_from,omitempty" json:"evolves_from,omitempty"`
	Ability     *Ability    `yaml:"ability,omitempty" json:"ability,omitempty"`

	TrainerKind TrainerKind `yaml:"trainer_kind,omitempty" json:"trainer_kind,omitempty"`
	Effects     []string    `yaml:"effects,omitempty" json:"effects,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`

	Basic *bool `yaml:"basic,omitempty" json:"basic,omitempty"`
}

// ToCard validates the definition and builds the card template.
func (d CardDef) ToCard() (*Card, error) {
	if d.ID == "" || d.Name == "" {
		return nil, fmt.Errorf("card definition needs an id and a name (got id=%q name=%q)", d.ID, d.Name)
	}
	card := &Card{ID: d.ID, Name: d.Name, Rarity: d.Rarity}
	switch strings.ToLower(d.Kind) {
	case "pokemon":
		if d.HP <= 0 {
			return nil, fmt.Errorf("card %s: hp must be positive", d.ID)
		}
		if d.Type == TypeNone {
			return nil, fmt.Errorf("card %s: pokemon needs a type", d.ID)
		}
		if d.Stage != StageBasic && d.EvolvesFrom == "" {
			return nil, fmt.Errorf("card %s: %s pokemon needs evolves_from", d.ID, d.Stage)
		}
		card.Variant = &Pokemon{
			Type:        d.Type,
			HP:          d.HP,
			Attacks:     d.Attacks,
			Weakness:    d.Weakness,
			Resistance:  d.Resistance,
			RetreatCost: d.RetreatCost,
			Stage:       d.Stage,
			EvolvesFrom: d.EvolvesFrom,
			Ability:     d.Ability,
			Description: d.Description,
		}
	case "trainer":
		card.Variant = &Trainer{
			TrainerKind: d.TrainerKind,
			Description: d.Description,
			Effects:     d.Effects,
		}
	case "energy":
		if d.Type == TypeNone {
			return nil, fmt.Errorf("card %s: energy needs a type", d.ID)
		}
		basic := true
		if d.Basic != nil {
			basic = *d.Basic
		}
		card.Variant = &Energy{EnergyType: d.Type, IsBasic: basic}
	default:
		return nil, fmt.Errorf("card %s: unknown kind %q", d.ID, d.Kind)
	}
	return card, nil
}

// DefOf flattens a card back into its serializable definition.
func DefOf(c *Card) CardDef {
	d := CardDef{ID: c.ID, Name: c.Name, Kind: c.Kind().String(), Rarity: c.Rarity}
	switch v := c.Variant.(type) {
	case *Pokemon:
		d.Type = v.Type
		d.HP = v.HP
		d.Attacks = v.Attacks
		d.Weakness = v.Weakness
		d.Resistance = v.Resistance
		d.RetreatCost = v.RetreatCost
		d.Stage = v.Stage
		d.EvolvesFrom = v.EvolvesFrom
		d.Ability = v.Ability
		d.Description = v.Description
	case *Trainer:
		d.TrainerKind = v.TrainerKind
		d.Effects = v.Effects
		d.Description = v.Description
	case *Energy:
		d.Type = v.EnergyType
		basic := v.IsBasic
		d.Basic = &basic
	}
	return d
}

// Catalog resolves card ids to card templates.
type Catalog struct {
	cards map[string]*Card
}

// NewCatalog returns a catalog holding the built-in cards.
func NewCatalog() *Catalog {
	cat := &Catalog{cards: make(map[string]*Card, len(CardRegistry))}
	for id, ctor := range CardRegistry {
		cat.cards[id] = ctor()
	}
	return cat
}

// LoadCatalog returns the built-in catalog extended with the cards in a YAML file.
// Cards in the file replace built-ins with the same id.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card catalog: %w", err)
	}
	cat := NewCatalog()
	if err := cat.LoadYAML(data); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadYAML adds every card defined in a YAML card file.
func (cat *Catalog) LoadYAML(data []byte) error {
	var cf CardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parse card YAML: %w", err)
	}
	for _, def := range cf.Cards {
		card, err := def.ToCard()
		if err != nil {
			return err
		}
		cat.Add(card)
	}
	return nil
}

func (cat *Catalog) Add(c *Card) {
	cat.cards[c.ID] = c
}

// Lookup finds a card by id, falling back to a case-insensitive name match.
func (cat *Catalog) Lookup(key string) (*Card, error) {
	if c, ok := cat.cards[key]; ok {
		return c, nil
	}
	for _, c := range cat.Cards() {
		if strings.EqualFold(c.Name, key) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("card not found in catalog: %q", key)
}

// Cards returns every card sorted by id.
func (cat *Catalog) Cards() []*Card {
	cards := make([]*Card, 0, len(cat.cards))
	for _, c := range cat.cards {
		cards = append(cards, c)
	}
	slices.SortFunc(cards, func(a, b *Card) int { return strings.Compare(a.ID, b.ID) })
	return cards
}
