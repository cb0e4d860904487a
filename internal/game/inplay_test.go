package game

import (
	"testing"
)

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name     string
		card     *Card
		base     int
		source   EnergyType
		wantDmg  int
		wantHP   int
		knockout bool
	}{
		{"neutral", Pikachu(), 20, TypeFire, 20, 20, false},
		{"weakness doubles", Squirtle(), 10, TypeElectric, 20, 30, false},
		{"resistance subtracts", Charizard(), 40, TypeFighting, 10, 110, false},
		{"resistance floors at zero", Jigglypuff(), 10, TypePsychic, 0, 60, false},
		{"hp clamps at zero", Charmander(), 30, TypeWater, 60, 0, true},
		{"no type skips weakness", Squirtle(), 30, TypeNone, 30, 20, false},
		{"negative base is zero", Abra(), -10, TypePsychic, 0, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := NewInPlayCard(tt.card)
			if got := ip.DamageFrom(tt.base, tt.source); got != tt.wantDmg {
				t.Errorf("DamageFrom = %d, want %d", got, tt.wantDmg)
			}
			got := ip.TakeDamage(tt.base, tt.source)
			if got != tt.wantDmg || ip.CurrentHP != tt.wantHP || ip.DamageCounter != tt.wantDmg {
				t.Errorf("TakeDamage = %d (HP %d, counter %d), want %d (HP %d)",
					got, ip.CurrentHP, ip.DamageCounter, tt.wantDmg, tt.wantHP)
			}
			if ip.IsKnockedOut() != tt.knockout {
				t.Errorf("IsKnockedOut = %v, want %v", ip.IsKnockedOut(), tt.knockout)
			}
		})
	}
}

func TestHealCapsAtMaxHP(t *testing.T) {
	ip := NewInPlayCard(Charmander())
	ip.TakeDamage(20, TypeNone)

	if healed := ip.Heal(50); healed != 20 {
		t.Errorf("expected to heal 20, healed %d", healed)
	}
	if ip.CurrentHP != 50 || ip.DamageCounter != 0 {
		t.Errorf("expected full HP and no damage, got %d HP %d damage", ip.CurrentHP, ip.DamageCounter)
	}
	if healed := ip.Heal(10); healed != 0 {
		t.Errorf("healing a full Pokémon should do nothing, healed %d", healed)
	}
	if healed := ip.Heal(-5); healed != 0 {
		t.Errorf("negative heal should do nothing, healed %d", healed)
	}
}

func TestCostSatisfied(t *testing.T) {
	flamethrower := []EnergyType{TypeFire, TypeFire, TypeColorless}
	tests := []struct {
		name     string
		attached []EnergyType
		want     bool
	}{
		{"exact", []EnergyType{TypeFire, TypeFire, TypeFire}, true},
		{"colorless paid by any", []EnergyType{TypeFire, TypeWater, TypeFire}, true},
		{"missing a fire", []EnergyType{TypeFire, TypeWater, TypeWater}, false},
		{"too few", []EnergyType{TypeFire, TypeFire}, false},
		{"colorless energy pays colorless", []EnergyType{TypeColorless, TypeFire, TypeFire}, true},
		{"none", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := NewInPlayCard(Charmeleon())
			for _, e := range tt.attached {
				ip.AttachEnergy(e, nil)
			}
			if got := ip.CostSatisfied(flamethrower); got != tt.want {
				t.Errorf("CostSatisfied(%v) = %v, want %v", tt.attached, got, tt.want)
			}
		})
	}
}

func TestStatusesBlockActions(t *testing.T) {
	ip := NewInPlayCard(Pikachu())
	ip.AttachEnergy(TypeElectric, nil)
	if !ip.CanAttack(0) || !ip.CanRetreat() {
		t.Fatal("expected Pikachu able to attack and retreat")
	}

	ip.AddStatus(StatusConfused)
	ip.AddStatus(StatusConfused)
	if len(ip.Statuses) != 1 {
		t.Errorf("conditions should not stack, got %v", ip.Statuses)
	}
	if !ip.CanAttack(0) {
		t.Error("confusion does not block attacking outright")
	}

	for _, s := range []StatusCondition{StatusAsleep, StatusParalyzed, StatusFrozen} {
		ip.AddStatus(s)
		if ip.CanAttack(0) || ip.CanRetreat() {
			t.Errorf("%s should block attacking and retreating", s)
		}
		ip.RemoveStatus(s)
	}
	if !ip.CanAttack(0) {
		t.Error("expected attacks allowed again")
	}
}

func TestRemoveEnergies(t *testing.T) {
	ip := NewInPlayCard(Charizard())
	fire := BasicEnergy(TypeFire)
	ip.AttachEnergy(TypeFire, fire)
	ip.AttachEnergy(TypeColorless, nil)
	ip.AttachEnergy(TypeFire, fire)

	removed := ip.RemoveEnergies(2)
	if len(removed) != 2 || removed[0].Type != TypeFire || removed[1].Type != TypeColorless {
		t.Errorf("expected the first two energies removed, got %v", removed)
	}
	if len(ip.Attached) != 1 {
		t.Errorf("expected 1 energy left, got %d", len(ip.Attached))
	}
	if removed := ip.RemoveEnergies(5); len(removed) != 1 {
		t.Errorf("expected removal capped at what is attached, got %d", len(removed))
	}
}

func TestTurnEffectsClear(t *testing.T) {
	ip := NewInPlayCard(Abra())
	ip.Effects["turn_no_retreat"] = 1
	ip.Effects["evolved_on"] = 3
	ip.clearTurnEffects()
	if _, ok := ip.Effects["turn_no_retreat"]; ok {
		t.Error("turn_ effects should clear")
	}
	if ip.Effects["evolved_on"] != 3 {
		t.Error("other effects should persist")
	}
}

func TestNewInPlayCardRejectsNonPokemon(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an energy card")
		}
	}()
	NewInPlayCard(BasicEnergy(TypeFire))
}
