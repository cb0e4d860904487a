package game

import (
	"errors"
	"testing"
)

func newHandPlayer(ids ...string) *Player {
	p := NewPlayer("p", "Misty", 0, NewDeck("", nil))
	p.Hand = cards(ids...)
	return p
}

func TestBenchLimit(t *testing.T) {
	p := newHandPlayer("squirtle", "abra", "abra", "machop", "machop", "pikachu", "pikachu")
	if _, err := p.PlayToActive(0); err != nil {
		t.Fatal(err)
	}
	if _, err := p.PlayToActive(0); !errors.Is(err, ErrActiveOccupied) {
		t.Errorf("expected ErrActiveOccupied, got %v", err)
	}
	for i := 0; i < MaxBenchSize; i++ {
		if _, err := p.PlayToBench(0); err != nil {
			t.Fatalf("bench %d: %v", i+1, err)
		}
	}
	if _, err := p.PlayToBench(0); !errors.Is(err, ErrBenchFull) {
		t.Errorf("expected ErrBenchFull, got %v", err)
	}
	if len(p.Hand) != 1 {
		t.Errorf("rejected play should keep the card in hand, hand=%d", len(p.Hand))
	}
}

func TestPlayRequiresBasic(t *testing.T) {
	p := newHandPlayer("wartortle", "bill")
	if _, err := p.PlayToActive(0); !errors.Is(err, ErrNotBasic) {
		t.Errorf("expected ErrNotBasic, got %v", err)
	}
	if _, err := p.PlayToBench(1); !errors.Is(err, ErrNotBasic) {
		t.Errorf("expected ErrNotBasic for a trainer, got %v", err)
	}
}

func TestTargets(t *testing.T) {
	p := newHandPlayer("squirtle", "abra")
	if _, err := p.Resolve(ActiveTarget()); !errors.Is(err, ErrNotInZone) {
		t.Errorf("expected ErrNotInZone with no active, got %v", err)
	}
	active, _ := p.PlayToActive(0)
	benched, _ := p.PlayToBench(0)

	if got, _ := p.TargetOf(benched); got != BenchTarget(0) {
		t.Errorf("expected bench 0, got %s", got)
	}
	if got, _ := p.TargetOf(active); got != ActiveTarget() {
		t.Errorf("expected active, got %s", got)
	}
	if _, ok := p.TargetOf(NewInPlayCard(Abra())); ok {
		t.Error("a Pokémon not in play has no target")
	}
	if _, err := p.Resolve(BenchTarget(3)); !errors.Is(err, ErrNotInZone) {
		t.Errorf("expected ErrNotInZone, got %v", err)
	}
	if got := len(p.InPlay()); got != 2 {
		t.Errorf("expected 2 Pokémon in play, got %d", got)
	}
}

func TestNonBasicEnergyIsDiscarded(t *testing.T) {
	p := newHandPlayer("machop", "recycle-energy")
	if _, err := p.PlayToActive(0); err != nil {
		t.Fatal(err)
	}
	ip, err := p.AttachEnergy(0, ActiveTarget())
	if err != nil {
		t.Fatal(err)
	}
	if len(ip.Attached) != 1 || ip.Attached[0].Card != nil || ip.Attached[0].Type != TypeColorless {
		t.Errorf("expected one colorless unit without a card, got %v", ip.Attached)
	}
	if len(p.Discard) != 1 {
		t.Errorf("expected the energy card discarded, got %v", p.Discard)
	}
}

func TestPromoteAndRemoveFromPlay(t *testing.T) {
	p := newHandPlayer("squirtle", "abra", "water-energy")
	active, _ := p.PlayToActive(0)
	if _, err := p.AttachEnergy(1, ActiveTarget()); err != nil {
		t.Fatal(err)
	}
	p.PlayToBench(0)

	p.removeFromPlay(active)
	if p.Active != nil || active.Zone != ZoneNone {
		t.Fatal("expected the active spot empty")
	}
	if len(p.Discard) != 2 {
		t.Errorf("expected Squirtle and its energy discarded, got %v", p.Discard)
	}
	promoted, err := p.Promote(0)
	if err != nil || promoted.Name() != "Abra" || len(p.Bench) != 0 {
		t.Errorf("expected Abra promoted, got %v %v", promoted, err)
	}
}

func TestTakePrize(t *testing.T) {
	p := newHandPlayer()
	p.Prizes = cards("bill")
	if c, ok := p.TakePrize(); !ok || c.ID != "bill" || len(p.Hand) != 1 || p.PrizesTaken != 1 {
		t.Errorf("expected Bill taken into hand, got %v", c)
	}
	if _, ok := p.TakePrize(); ok {
		t.Error("no prizes left to take")
	}
}

func TestPlayerOwnsZoneChanges(t *testing.T) {
	p := NewPlayer("p", "Misty", 0, NewDeck("", cards("squirtle", "bill", "potion", "abra", "water-energy", "machop")))
	p.DealPrizes(2)
	if len(p.Prizes) != 2 || p.Deck.Len() != 4 {
		t.Fatalf("expected 2 prizes and 4 cards left, got %d / %d", len(p.Prizes), p.Deck.Len())
	}

	c, ok := p.DrawOne()
	if !ok || c.Name != "Potion" || !p.HasDrawn || len(p.Hand) != 1 {
		t.Fatalf("DrawOne = %v %v, drawn=%v hand=%d", c, ok, p.HasDrawn, len(p.Hand))
	}
	p.DrawCards(2)
	last := p.Hand[len(p.Hand)-1]

	if n := p.Mulligan(); n != 1 || len(p.Hand) != 0 || p.Deck.Len() != 4 {
		t.Errorf("Mulligan = %d, hand=%d deck=%d", n, len(p.Hand), p.Deck.Len())
	}
	if bottom := p.Deck.Cards[p.Deck.Len()-1]; bottom != last {
		t.Errorf("expected the hand on the bottom of the deck, got %s last", bottom.Name)
	}

	p.ReturnPrizesToDeck()
	if len(p.Prizes) != 0 || p.Deck.Len() != 6 || !p.DeckHasBasic() {
		t.Errorf("expected prizes back in the deck, prizes=%d deck=%d", len(p.Prizes), p.Deck.Len())
	}

	p.DiscardCard(MustLookupCard("bill"))
	if len(p.Discard) != 1 {
		t.Errorf("expected 1 discarded card, got %d", len(p.Discard))
	}

	if cured := p.CureActive(); cured != nil {
		t.Errorf("nothing to cure without an active Pokémon, got %v", cured)
	}
	p.Hand = cards("squirtle")
	if _, err := p.PlayToActive(0); err != nil {
		t.Fatal(err)
	}
	p.Active.AddStatus(StatusPoisoned)
	p.Active.AddStatus(StatusConfused)
	if cured := p.CureActive(); len(cured) != 2 || len(p.Active.Statuses) != 0 {
		t.Errorf("CureActive = %v, left %v", cured, p.Active.Statuses)
	}

	p.MarkAttacked()
	p.MarkSupporterPlayed()
	p.RecordKnockout()
	if !p.HasAttacked || !p.SupporterPlayedThisTurn || p.Knockouts != 1 {
		t.Error("turn flags and knockout count not recorded")
	}
	p.ResetTurnFlags()
	if p.HasAttacked || p.SupporterPlayedThisTurn {
		t.Error("ResetTurnFlags left flags set")
	}
}
