package game

import (
	"fmt"
	"slices"
	"strings"
)

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"charmander":      Charmander,
	"charmeleon":      Charmeleon,
	"charizard":       Charizard,
	"squirtle":        Squirtle,
	"wartortle":       Wartortle,
	"bulbasaur":       Bulbasaur,
	"ivysaur":         Ivysaur,
	"pikachu":         Pikachu,
	"raichu":          Raichu,
	"machop":          Machop,
	"abra":            Abra,
	"jigglypuff":      Jigglypuff,
	"fire-energy":     func() *Card { return BasicEnergy(TypeFire) },
	"water-energy":    func() *Card { return BasicEnergy(TypeWater) },
	"grass-energy":    func() *Card { return BasicEnergy(TypeGrass) },
	"electric-energy": func() *Card { return BasicEnergy(TypeElectric) },
	"psychic-energy":  func() *Card { return BasicEnergy(TypePsychic) },
	"fighting-energy": func() *Card { return BasicEnergy(TypeFighting) },
	"recycle-energy":  RecycleEnergy,
	"professor-oak":   ProfessorOak,
	"bill":            Bill,
	"potion":          Potion,
	"full-heal":       FullHeal,
	"pluspower":       PlusPower,
	"pokemon-center":  PokemonCenter,
}

// LookupCard looks up a card by id (or display name) and returns a new instance.
func LookupCard(key string) (*Card, error) {
	if ctor, ok := CardRegistry[key]; ok {
		return ctor(), nil
	}
	for _, id := range RegistryIDs() {
		c := CardRegistry[id]()
		if strings.EqualFold(c.Name, key) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("card not found in registry: %q", key)
}

// MustLookupCard is LookupCard for static card lists. Panics if the card is not found.
func MustLookupCard(key string) *Card {
	c, err := LookupCard(key)
	if err != nil {
		panic(err)
	}
	return c
}

// RegistryIDs returns the built-in card ids in sorted order.
func RegistryIDs() []string {
	ids := make([]string, 0, len(CardRegistry))
	for id := range CardRegistry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// --- Built-in cards ---

func pokemonCard(id, name string, rarity Rarity, p *Pokemon) *Card {
	return &Card{ID: id, Name: name, Rarity: rarity, Variant: p}
}

func cost(types ...EnergyType) []EnergyType { return types }

func Charmander() *Card {
	return pokemonCard("charmander", "Charmander", RarityCommon, &Pokemon{
		Type: TypeFire,
		HP:   50,
		Attacks: []Attack{
			{Name: "Scratch", Cost: cost(TypeColorless), Damage: 10},
			{Name: "Ember", Cost: cost(TypeFire, TypeColorless), Damage: 30, Effects: []string{"burn"},
				Description: "The Defending Pokémon is now Burned."},
		},
		Weakness:    &Weakness{Type: TypeWater, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

func Charmeleon() *Card {
	return pokemonCard("charmeleon", "Charmeleon", RarityUncommon, &Pokemon{
		Type: TypeFire,
		HP:   80,
		Attacks: []Attack{
			{Name: "Slash", Cost: cost(TypeColorless, TypeColorless), Damage: 30},
			{Name: "Flamethrower", Cost: cost(TypeFire, TypeFire, TypeColorless), Damage: 60},
		},
		Weakness:    &Weakness{Type: TypeWater, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageOne,
		EvolvesFrom: "Charmander",
	})
}

func Charizard() *Card {
	return pokemonCard("charizard", "Charizard", RarityRare, &Pokemon{
		Type: TypeFire,
		HP:   120,
		Attacks: []Attack{
			{Name: "Fire Spin", Cost: cost(TypeFire, TypeFire, TypeFire, TypeFire), Damage: 100},
		},
		Weakness:    &Weakness{Type: TypeWater, Multiplier: 2},
		Resistance:  &Resistance{Type: TypeFighting, Reduction: 30},
		RetreatCost: 3,
		Stage:       StageTwo,
		EvolvesFrom: "Charmeleon",
		Ability:     &Ability{Name: "Blaze", Kind: "passive", Description: "Charizard's tail flame never goes out."},
	})
}

func Squirtle() *Card {
	return pokemonCard("squirtle", "Squirtle", RarityCommon, &Pokemon{
		Type: TypeWater,
		HP:   50,
		Attacks: []Attack{
			{Name: "Bubble", Cost: cost(TypeWater), Damage: 10, Effects: []string{"paralysis"},
				Description: "The Defending Pokémon is now Paralyzed."},
			{Name: "Water Gun", Cost: cost(TypeWater, TypeColorless), Damage: 20},
		},
		Weakness:    &Weakness{Type: TypeElectric, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

func Wartortle() *Card {
	return pokemonCard("wartortle", "Wartortle", RarityUncommon, &Pokemon{
		Type: TypeWater,
		HP:   70,
		Attacks: []Attack{
			{Name: "Bite", Cost: cost(TypeColorless, TypeColorless), Damage: 20},
			{Name: "Hydro Splash", Cost: cost(TypeWater, TypeWater, TypeColorless), Damage: 50},
		},
		Weakness:    &Weakness{Type: TypeElectric, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageOne,
		EvolvesFrom: "Squirtle",
	})
}

func Bulbasaur() *Card {
	return pokemonCard("bulbasaur", "Bulbasaur", RarityCommon, &Pokemon{
		Type: TypeGrass,
		HP:   40,
		Attacks: []Attack{
			{Name: "Leech Seed", Cost: cost(TypeGrass, TypeGrass), Damage: 20, Effects: []string{"heal_10"},
				Description: "Heal 10 damage from Bulbasaur."},
		},
		Weakness:    &Weakness{Type: TypeFire, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

func Ivysaur() *Card {
	return pokemonCard("ivysaur", "Ivysaur", RarityUncommon, &Pokemon{
		Type: TypeGrass,
		HP:   60,
		Attacks: []Attack{
			{Name: "Vine Whip", Cost: cost(TypeGrass, TypeColorless, TypeColorless), Damage: 30},
			{Name: "Poisonpowder", Cost: cost(TypeGrass, TypeGrass, TypeGrass), Damage: 20, Effects: []string{"poison"},
				Description: "The Defending Pokémon is now Poisoned."},
		},
		Weakness:    &Weakness{Type: TypeFire, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageOne,
		EvolvesFrom: "Bulbasaur",
	})
}

func Pikachu() *Card {
	return pokemonCard("pikachu", "Pikachu", RarityCommon, &Pokemon{
		Type: TypeElectric,
		HP:   40,
		Attacks: []Attack{
			{Name: "Gnaw", Cost: cost(TypeColorless), Damage: 10},
			{Name: "Thunder Jolt", Cost: cost(TypeElectric, TypeColorless), Damage: 30},
		},
		Weakness:    &Weakness{Type: TypeFighting, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

func Raichu() *Card {
	return pokemonCard("raichu", "Raichu", RarityRare, &Pokemon{
		Type: TypeElectric,
		HP:   80,
		Attacks: []Attack{
			{Name: "Agility", Cost: cost(TypeElectric, TypeColorless, TypeColorless), Damage: 20},
			{Name: "Thunder", Cost: cost(TypeElectric, TypeElectric, TypeElectric, TypeColorless), Damage: 60},
		},
		Weakness:    &Weakness{Type: TypeFighting, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageOne,
		EvolvesFrom: "Pikachu",
	})
}

func Machop() *Card {
	return pokemonCard("machop", "Machop", RarityCommon, &Pokemon{
		Type: TypeFighting,
		HP:   50,
		Attacks: []Attack{
			{Name: "Low Kick", Cost: cost(TypeFighting), Damage: 20},
		},
		Weakness:    &Weakness{Type: TypePsychic, Multiplier: 2},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

func Abra() *Card {
	return pokemonCard("abra", "Abra", RarityCommon, &Pokemon{
		Type: TypePsychic,
		HP:   30,
		Attacks: []Attack{
			{Name: "Psyshock", Cost: cost(TypePsychic), Damage: 10, Effects: []string{"confusion"},
				Description: "The Defending Pokémon is now Confused."},
		},
		Weakness:    &Weakness{Type: TypePsychic, Multiplier: 2},
		RetreatCost: 0,
		Stage:       StageBasic,
	})
}

func Jigglypuff() *Card {
	return pokemonCard("jigglypuff", "Jigglypuff", RarityCommon, &Pokemon{
		Type: TypeColorless,
		HP:   60,
		Attacks: []Attack{
			{Name: "Sing", Cost: cost(TypeColorless), Damage: 0, Effects: []string{"sleep"},
				Description: "The Defending Pokémon is now Asleep."},
			{Name: "Pound", Cost: cost(TypeColorless, TypeColorless), Damage: 20},
		},
		Weakness:    &Weakness{Type: TypeFighting, Multiplier: 2},
		Resistance:  &Resistance{Type: TypePsychic, Reduction: 20},
		RetreatCost: 1,
		Stage:       StageBasic,
	})
}

// BasicEnergy builds a basic energy card of the given type.
func BasicEnergy(t EnergyType) *Card {
	return &Card{
		ID:      t.String() + "-energy",
		Name:    t.Title() + " Energy",
		Rarity:  RarityCommon,
		Variant: &Energy{EnergyType: t, IsBasic: true},
	}
}

func RecycleEnergy() *Card {
	return &Card{
		ID:      "recycle-energy",
		Name:    "Recycle Energy",
		Rarity:  RarityUncommon,
		Variant: &Energy{EnergyType: TypeColorless},
	}
}

func ProfessorOak() *Card {
	return &Card{ID: "professor-oak", Name: "Professor Oak", Rarity: RarityUncommon, Variant: &Trainer{
		TrainerKind: TrainerSupporter,
		Description: "Discard your hand, then draw 7 cards.",
		Effects:     []string{"discard_hand", "draw_7"},
	}}
}

func Bill() *Card {
	return &Card{ID: "bill", Name: "Bill", Rarity: RarityCommon, Variant: &Trainer{
		TrainerKind: TrainerItem,
		Description: "Draw 2 cards.",
		Effects:     []string{"draw_2"},
	}}
}

func Potion() *Card {
	return &Card{ID: "potion", Name: "Potion", Rarity: RarityCommon, Variant: &Trainer{
		TrainerKind: TrainerItem,
		Description: "Heal 20 damage from one of your Pokémon.",
		Effects:     []string{"heal_20"},
	}}
}

func FullHeal() *Card {
	return &Card{ID: "full-heal", Name: "Full Heal", Rarity: RarityUncommon, Variant: &Trainer{
		TrainerKind: TrainerItem,
		Description: "Your Active Pokémon recovers from all Special Conditions.",
		Effects:     []string{"cure_status"},
	}}
}

func PlusPower() *Card {
	return &Card{ID: "pluspower", Name: "PlusPower", Rarity: RarityUncommon, Variant: &Trainer{
		TrainerKind: TrainerTool,
		Description: "Attacks of the Pokémon this card is attached to do 10 more damage.",
		Effects:     []string{"damage_bonus_10"},
	}}
}

func PokemonCenter() *Card {
	return &Card{ID: "pokemon-center", Name: "Pokémon Center", Rarity: RarityUncommon, Variant: &Trainer{
		TrainerKind: TrainerStadium,
		Description: "At the end of each turn, heal 10 damage from each Active Pokémon.",
		Effects:     []string{"heal_active_10"},
	}}
}
