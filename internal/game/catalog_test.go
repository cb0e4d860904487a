package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const customCards = `
cards:
  - id: vulpix
    name: Vulpix
    kind: pokemon
    rarity: common
    type: fire
    hp: 50
    stage: basic
    retreat_cost: 1
    weakness: { type: water }
    attacks:
      - name: Confuse Ray
        cost: [fire]
        damage: 10
        effects: [confusion]
  - id: ninetales
    name: Ninetales
    kind: pokemon
    type: Fire
    hp: 80
    stage: stage1
    evolves_from: Vulpix
    attacks:
      - name: Fire Blast
        cost: [fire, fire, colorless]
        damage: 70
  - id: double-colorless
    name: Double Colorless Energy
    kind: energy
    type: colorless
    basic: false
  - id: switch
    name: Switch
    kind: trainer
    trainer_kind: item
    effects: [switch]
`

func TestCatalogLoadsYAML(t *testing.T) {
	cat := NewCatalog()
	if err := cat.LoadYAML([]byte(customCards)); err != nil {
		t.Fatal(err)
	}

	vulpix, err := cat.Lookup("vulpix")
	if err != nil {
		t.Fatal(err)
	}
	p := vulpix.Pokemon()
	if p == nil || p.Type != TypeFire || p.HP != 50 || !vulpix.IsBasicPokemon() {
		t.Fatalf("unexpected Vulpix %+v", p)
	}
	if p.Weakness == nil || p.Weakness.Type != TypeWater || p.Weakness.multiplier() != DefaultWeaknessMultiplier {
		t.Errorf("expected default water weakness, got %+v", p.Weakness)
	}
	if !reflect.DeepEqual(p.Attacks[0].Effects, []string{"confusion"}) {
		t.Errorf("unexpected effects %v", p.Attacks[0].Effects)
	}

	// lookup falls back to case-insensitive names
	nine, err := cat.Lookup("NINETALES")
	if err != nil {
		t.Fatal(err)
	}
	if nine.Pokemon().Stage != StageOne {
		t.Errorf("expected stage 1, got %s", nine.Pokemon().Stage)
	}
	if want := []EnergyType{TypeFire, TypeFire, TypeColorless}; !reflect.DeepEqual(nine.Pokemon().Attacks[0].Cost, want) {
		t.Errorf("cost = %v, want %v", nine.Pokemon().Attacks[0].Cost, want)
	}

	dce, err := cat.Lookup("double-colorless")
	if err != nil {
		t.Fatal(err)
	}
	if dce.IsBasicEnergy() {
		t.Error("Double Colorless Energy is not basic")
	}

	sw, err := cat.Lookup("switch")
	if err != nil {
		t.Fatal(err)
	}
	if sw.Trainer().TrainerKind != TrainerItem {
		t.Errorf("expected an item, got %s", sw.Trainer().TrainerKind)
	}

	if _, err := cat.Lookup("pikachu"); err != nil {
		t.Errorf("built-ins should still resolve: %v", err)
	}
}

func TestCatalogRejectsBadDefinitions(t *testing.T) {
	tests := map[string]string{
		"missing hp":     "cards: [{id: x, name: X, kind: pokemon, type: fire}]",
		"unknown type":   "cards: [{id: x, name: X, kind: pokemon, type: plasma, hp: 10}]",
		"no evolves":     "cards: [{id: x, name: X, kind: pokemon, type: fire, hp: 10, stage: stage1}]",
		"unknown kind":   "cards: [{id: x, name: X, kind: relic}]",
		"missing id":     "cards: [{name: X, kind: trainer}]",
		"untyped energy": "cards: [{id: x, name: X, kind: energy}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if err := NewCatalog().LoadYAML([]byte(doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestResistanceReductionDefaultsOnlyWhenMissing(t *testing.T) {
	const doc = `
cards:
  - { id: geodude, name: Geodude, kind: pokemon, type: fighting, hp: 50, resistance: { type: electric } }
  - { id: onix, name: Onix, kind: pokemon, type: fighting, hp: 90, resistance: { type: electric, reduction: 0 } }
  - { id: golem, name: Golem, kind: pokemon, type: fighting, hp: 100, resistance: { type: electric, reduction: 30 } }
`
	cat := NewCatalog()
	if err := cat.LoadYAML([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	for id, want := range map[string]int{"geodude": 20, "onix": 0, "golem": 30} {
		c, err := cat.Lookup(id)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Pokemon().Resistance.reduction(); got != want {
			t.Errorf("%s: reduction = %d, want %d", id, got, want)
		}
	}

	onix, _ := cat.Lookup("onix")
	if dealt := NewInPlayCard(onix).TakeDamage(30, TypeElectric); dealt != 30 {
		t.Errorf("zero resistance should not reduce damage, dealt %d", dealt)
	}

	// the same rule holds for JSON definitions
	var r Resistance
	if err := json.Unmarshal([]byte(`{"type":"electric"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Reduction != DefaultResistance {
		t.Errorf("JSON default reduction = %d, want %d", r.Reduction, DefaultResistance)
	}
	if err := json.Unmarshal([]byte(`{"type":"electric","reduction":0}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Reduction != 0 || r.Type != TypeElectric {
		t.Errorf("explicit zero lost: %+v", r)
	}

	// DefOf keeps an explicit zero through a YAML round trip
	data, err := yaml.Marshal(CardFile{Cards: []CardDef{DefOf(onix)}})
	if err != nil {
		t.Fatal(err)
	}
	back := NewCatalog()
	if err := back.LoadYAML(data); err != nil {
		t.Fatal(err)
	}
	again, _ := back.Lookup("onix")
	if got := again.Pokemon().Resistance.reduction(); got != 0 {
		t.Errorf("round trip reduction = %d, want 0", got)
	}
}

func TestDefOfRoundTripsBuiltins(t *testing.T) {
	for _, id := range RegistryIDs() {
		c := MustLookupCard(id)
		back, err := DefOf(c).ToCard()
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		if !reflect.DeepEqual(c, back) {
			t.Errorf("%s: round trip changed the card\n got %+v\nwant %+v", id, back, c)
		}
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(customCards), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Lookup("Vulpix"); err != nil {
		t.Error(err)
	}

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read card catalog") {
		t.Errorf("expected a read error, got %v", err)
	}
}

func TestRepositoryDecksAreValid(t *testing.T) {
	df, err := ReadDeckFile("../../decks.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(df.Decks) == 0 {
		t.Fatal("no decks in decks.yaml")
	}

	cat := NewCatalog()
	for i := range df.Decks {
		d, err := df.Deck(i+1, cat)
		if err != nil {
			t.Fatal(err)
		}
		if ok, problems := d.IsValid(); !ok {
			t.Errorf("%s: %v", d.Name, problems)
		}
		if len(d.BasicPokemon()) == 0 {
			t.Errorf("%s has no basic Pokémon", d.Name)
		}
	}

	if _, err := df.Deck(len(df.Decks)+1, cat); err == nil {
		t.Error("expected an error past the last deck")
	}
}

func TestDeckFileRoundTrip(t *testing.T) {
	d := NewDeck("Mixed", cards("pikachu", "pikachu", "bill", "electric-energy", "pikachu"))
	data, err := MarshalDeckFile(d)
	if err != nil {
		t.Fatal(err)
	}

	df, err := ParseDeckFile(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(df.Decks) != 1 {
		t.Fatalf("expected 1 deck, got %d", len(df.Decks))
	}
	want := []CardEntry{
		{ID: "pikachu", Count: 3},
		{ID: "bill", Count: 1},
		{ID: "electric-energy", Count: 1},
	}
	if !reflect.DeepEqual(df.Decks[0].Cards, want) {
		t.Errorf("entries = %v, want %v", df.Decks[0].Cards, want)
	}

	back, err := df.Deck(1, NewCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 5 || back.Count("pikachu") != 3 {
		t.Errorf("expected 5 cards with 3 Pikachu, got %d / %d", back.Len(), back.Count("pikachu"))
	}
}

func TestDeckEntryByName(t *testing.T) {
	df, err := ParseDeckFile([]byte("decks:\n  - name: Names\n    cards:\n      - { name: Abra, count: 2 }\n      - { name: nope, count: 1 }\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = df.Deck(1, NewCatalog())
	if err == nil || !strings.Contains(err.Error(), `card not found in catalog: "nope"`) {
		t.Errorf("expected a lookup error for nope, got %v", err)
	}
}
