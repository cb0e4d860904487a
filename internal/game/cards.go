package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CardKind discriminates the three card variants.
type CardKind int

const (
	KindPokemon CardKind = iota
	KindTrainer
	KindEnergy
)

func (k CardKind) String() string {
	switch k {
	case KindPokemon:
		return "pokemon"
	case KindTrainer:
		return "trainer"
	case KindEnergy:
		return "energy"
	default:
		return "unknown"
	}
}

// Card is an immutable card template. Exactly one variant is set.
type Card struct {
	ID      string
	Name    string
	Rarity  Rarity
	Variant Variant
}

// Variant is implemented only by *Pokemon, *Trainer and *Energy.
type Variant interface {
	Kind() CardKind
	variant()
}

// Attack is one attack printed on a Pokémon card.
type Attack struct {
	Name        string       `yaml:"name" json:"name"`
	Cost        []EnergyType `yaml:"cost" json:"cost"`
	Damage      int          `yaml:"damage" json:"damage"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Effects     []string     `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// Weakness multiplies incoming damage of the given type.
type Weakness struct {
	Type       EnergyType `yaml:"type" json:"type"`
	Multiplier float64    `yaml:"multiplier,omitempty" json:"multiplier"`
}

// Resistance subtracts a flat amount from incoming damage of the given type.
type Resistance struct {
	Type      EnergyType `yaml:"type" json:"type"`
	Reduction int        `yaml:"reduction" json:"reduction"`
}

// Ability is a passive ability. The engine does not resolve abilities; they are carried for display.
type Ability struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Kind        string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Effects     []string `yaml:"effects,omitempty" json:"effects,omitempty"`
}

const (
	DefaultWeaknessMultiplier = 2.0
	DefaultResistance         = 20
)

type Pokemon struct {
	Type        EnergyType
	HP          int
	Attacks     []Attack
	Weakness    *Weakness
	Resistance  *Resistance
	RetreatCost int
	Stage       Stage
	EvolvesFrom string
	Ability     *Ability
	Description string
}

type Trainer struct {
	TrainerKind TrainerKind
	Description string
	Effects     []string
}

type Energy struct {
	EnergyType EnergyType
	IsBasic    bool
}

func (*Pokemon) Kind() CardKind { return KindPokemon }
func (*Trainer) Kind() CardKind { return KindTrainer }
func (*Energy) Kind() CardKind  { return KindEnergy }

func (*Pokemon) variant() {}
func (*Trainer) variant() {}
func (*Energy) variant()  {}

// Kind returns the card's variant kind.
func (c *Card) Kind() CardKind {
	return c.Variant.Kind()
}

// Pokemon returns the Pokémon variant, or nil.
func (c *Card) Pokemon() *Pokemon {
	p, _ := c.Variant.(*Pokemon)
	return p
}

// Trainer returns the Trainer variant, or nil.
func (c *Card) Trainer() *Trainer {
	t, _ := c.Variant.(*Trainer)
	return t
}

// Energy returns the Energy variant, or nil.
func (c *Card) Energy() *Energy {
	e, _ := c.Variant.(*Energy)
	return e
}

// IsBasicPokemon reports whether the card can be put into play directly.
func (c *Card) IsBasicPokemon() bool {
	p := c.Pokemon()
	return p != nil && p.Stage == StageBasic
}

// IsBasicEnergy reports whether the card is a basic energy, exempt from the copy limit.
func (c *Card) IsBasicEnergy() bool {
	e := c.Energy()
	return e != nil && e.IsBasic
}

func (c *Card) String() string {
	switch v := c.Variant.(type) {
	case *Pokemon:
		return fmt.Sprintf("%s (%s, %d HP)", c.Name, v.Type.Title(), v.HP)
	case *Trainer:
		return fmt.Sprintf("%s (%s)", c.Name, v.TrainerKind)
	case *Energy:
		return c.Name
	default:
		return c.Name
	}
}

// multiplier returns the configured multiplier, falling back to the default.
func (w *Weakness) multiplier() float64 {
	if w.Multiplier <= 0 {
		return DefaultWeaknessMultiplier
	}
	return w.Multiplier
}

func (r *Resistance) reduction() int {
	return max(0, r.Reduction)
}

// resistanceFields has Resistance's fields without its decode methods.
type resistanceFields Resistance

// UnmarshalYAML fills in the default reduction when a card file leaves it out.
// An explicit zero is kept.
func (r *Resistance) UnmarshalYAML(node *yaml.Node) error {
	v := resistanceFields{Reduction: DefaultResistance}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*r = Resistance(v)
	return nil
}

func (r *Resistance) UnmarshalJSON(b []byte) error {
	v := resistanceFields{Reduction: DefaultResistance}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Resistance(v)
	return nil
}

// Tag helpers. Effect tags are plain strings like "burn", "heal_30" or "draw_2".

// tagAmount parses "<prefix>_N" and returns N.
func tagAmount(tag, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(tag, prefix+"_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DrawAmount returns the number of cards a trainer's draw effect yields (0 if none).
func (t *Trainer) DrawAmount() int {
	total := 0
	for _, tag := range t.Effects {
		if n, ok := tagAmount(tag, "draw"); ok {
			total += n
		}
		if n, ok := tagAmount(tag, "shuffle_hand_draw"); ok {
			total += n
		}
	}
	return total
}

// HealAmount returns the trainer's heal amount (0 if none).
func (t *Trainer) HealAmount() int {
	for _, tag := range t.Effects {
		if n, ok := tagAmount(tag, "heal"); ok {
			return n
		}
	}
	return 0
}

// NeedsTarget reports whether playing the trainer requires choosing one of your Pokémon.
func (t *Trainer) NeedsTarget() bool {
	return t.TrainerKind == TrainerTool || t.HealAmount() > 0
}

// typeEffectiveness holds advisory multipliers between attacking and defending types.
// Damage resolution only uses printed weakness and resistance; the AI ranks attacks with this.
var typeEffectiveness = map[EnergyType]map[EnergyType]float64{
	TypeFire:     {TypeGrass: 2.0, TypeMetal: 2.0, TypeWater: 0.5, TypeFire: 0.5, TypeDragon: 0.5},
	TypeWater:    {TypeFire: 2.0, TypeFighting: 2.0, TypeWater: 0.5, TypeGrass: 0.5, TypeDragon: 0.5},
	TypeGrass:    {TypeWater: 2.0, TypeFighting: 2.0, TypeFire: 0.5, TypeGrass: 0.5, TypeMetal: 0.5, TypeDragon: 0.5},
	TypeElectric: {TypeWater: 2.0, TypeElectric: 0.5, TypeGrass: 0.5, TypeDragon: 0.5},
	TypePsychic:  {TypeFighting: 2.0, TypePoison: 2.0, TypePsychic: 0.5, TypeMetal: 0.5},
	TypeFighting: {TypeNormal: 2.0, TypeDarkness: 2.0, TypeMetal: 2.0, TypePsychic: 0.5, TypeFairy: 0.5},
	TypeDarkness: {TypePsychic: 2.0, TypeFighting: 0.5, TypeDarkness: 0.5, TypeFairy: 0.5},
	TypeMetal:    {TypeFairy: 2.0, TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeMetal: 0.5},
	TypeFairy:    {TypeFighting: 2.0, TypeDragon: 2.0, TypeDarkness: 2.0, TypeFire: 0.5, TypeMetal: 0.5},
	TypeDragon:   {TypeDragon: 2.0, TypeMetal: 0.5, TypeFairy: 0.0},
}

// TypeEffectiveness returns the advisory multiplier for attacking into defending (1.0 if neutral).
func TypeEffectiveness(attacking, defending EnergyType) float64 {
	if row, ok := typeEffectiveness[attacking]; ok {
		if m, ok := row[defending]; ok {
			return m
		}
	}
	return 1.0
}
