package game

import (
	"slices"
	"strings"
	"testing"
)

func TestShufflePreservesCards(t *testing.T) {
	d := NewDeck("mixed", padTo(cards("pikachu", "squirtle", "bill", "potion", "abra"), 40))
	before := d.Summary()

	d.Shuffle(NewRand(1))
	after := d.Summary()

	if after.Total != before.Total || len(after.ByID) != len(before.ByID) {
		t.Fatalf("shuffle changed the deck: %+v -> %+v", before, after)
	}
	for id, n := range before.ByID {
		if after.ByID[id] != n {
			t.Errorf("%s: %d copies before, %d after", id, n, after.ByID[id])
		}
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	ids := func(seed int64) []string {
		d := NewDeck("d", padTo(cards("pikachu", "squirtle", "bill", "potion", "abra", "machop"), 20))
		d.Shuffle(NewRand(seed))
		var out []string
		for _, c := range d.Cards {
			out = append(out, c.ID)
		}
		return out
	}
	if !slices.Equal(ids(5), ids(5)) {
		t.Error("same seed should give the same order")
	}
}

func TestDrawFromTop(t *testing.T) {
	d := NewDeck("d", cards("pikachu", "bill", "abra"))
	c, ok := d.Draw()
	if !ok || c.ID != "pikachu" {
		t.Fatalf("expected Pikachu from the top, got %v", c)
	}
	drawn := d.DrawN(5)
	if len(drawn) != 2 || !d.IsEmpty() {
		t.Errorf("expected DrawN to stop at the bottom, got %d cards", len(drawn))
	}
	if _, ok := d.Draw(); ok {
		t.Error("drawing from an empty deck should fail")
	}
}

func TestPutOnTopAndBottom(t *testing.T) {
	d := NewDeck("d", cards("bill"))
	d.PutOnTop(Abra())
	d.PutOnBottom(Machop())
	if got := d.Peek(3); got[0].ID != "abra" || got[2].ID != "machop" {
		t.Errorf("unexpected order %v", got)
	}
	if got := d.Peek(10); len(got) != 3 {
		t.Errorf("Peek should cap at the deck size, got %d", len(got))
	}
}

func TestAddCardEnforcesLimits(t *testing.T) {
	d := NewDeck("d", nil)
	for i := 0; i < MaxCopies; i++ {
		if err := d.AddCard(Bill()); err != nil {
			t.Fatalf("copy %d: %v", i+1, err)
		}
	}
	if err := d.AddCard(Bill()); err == nil {
		t.Error("expected the fifth Bill to be rejected")
	}
	for d.Len() < MaxDeckSize {
		if err := d.AddCard(BasicEnergy(TypeWater)); err != nil {
			t.Fatalf("basic energy has no copy limit: %v", err)
		}
	}
	if err := d.AddCard(BasicEnergy(TypeWater)); err == nil {
		t.Error("expected a full deck to reject cards")
	}
}

func TestRemoveCard(t *testing.T) {
	d := NewDeck("d", cards("bill", "abra", "bill"))
	if !d.RemoveCard("bill") || d.Count("bill") != 1 || d.Len() != 2 {
		t.Errorf("expected one Bill removed, deck now %v", d.Cards)
	}
	if d.RemoveCard("pikachu") {
		t.Error("removing a missing card should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		deck *Deck
		want []string
	}{
		{"valid", NewDeck("ok", padTo(cards("pikachu"), MinDeckSize)), nil},
		{"too small", NewDeck("small", padTo(cards("pikachu"), MinDeckSize-1)), []string{"19 cards"}},
		{"too large", NewDeck("large", padTo(cards("pikachu"), MaxDeckSize+1)), []string{"61 cards"}},
		{"no pokemon", NewDeck("energy", padTo(nil, MinDeckSize)), []string{"no Pokémon"}},
		{"copies", NewDeck("copies", padTo(cards("abra", "abra", "abra", "abra", "abra"), MinDeckSize)), []string{"5 copies of Abra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.deck.Validate()
			if len(problems) != len(tt.want) {
				t.Fatalf("expected %d problems, got %v", len(tt.want), problems)
			}
			for i, want := range tt.want {
				if !strings.Contains(problems[i], want) {
					t.Errorf("problem %q does not mention %q", problems[i], want)
				}
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := NewDeck("d", cards("pikachu", "bill"))
	c := d.Clone()
	c.Draw()
	if d.Len() != 2 || c.Len() != 1 {
		t.Errorf("clone shares state: original %d, clone %d", d.Len(), c.Len())
	}
}

func TestDeckSummary(t *testing.T) {
	d := NewDeck("d", cards("pikachu", "raichu", "bill", "potion", "electric-energy", "electric-energy"))
	s := d.Summary()
	if s.Pokemon != 2 || s.Trainers != 2 || s.Energy != 2 || s.BasicPokemon != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}
