package game

import (
	"fmt"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// Attack uses the active Pokémon's attack i against the opponent's active Pokémon.
func (e *Engine) Attack(i int) error {
	return e.AttackTarget(i, ActiveTarget())
}

// AttackTarget uses attack i against one of the opponent's Pokémon. It is allowed once
// per turn during the main phase when the attack's energy cost is met.
func (e *Engine) AttackTarget(i int, target Target) error {
	const action = "attack"
	if err := e.requirePhase(action, PhaseMain); err != nil {
		return err
	}
	p, opp := e.Current(), e.Opponent()
	if p.HasAttacked {
		return e.reject(action, violation(ErrAlreadyAttacked, ""))
	}
	attacker := p.Active
	if attacker == nil {
		return e.reject(action, violation(ErrNoActive, ""))
	}
	attacks := attacker.Pokemon().Attacks
	if i < 0 || i >= len(attacks) {
		return e.reject(action, violation(ErrInvalidIndex, "%s has no attack %d", attacker.Name(), i))
	}
	atk := attacks[i]
	if attacker.actionBlocked() {
		return e.reject(action, violation(ErrStatusBlocked, "%s is %s", attacker.Name(), attacker.Statuses[0]))
	}
	if !attacker.CostSatisfied(atk.Cost) {
		return e.reject(action, violation(ErrInsufficientEnergy, "%s needs %v", atk.Name, atk.Cost))
	}
	defender, err := opp.Resolve(target)
	if err != nil {
		return e.reject(action, err)
	}

	e.Phase = PhaseAttack
	p.MarkAttacked()
	e.log(log.NewAttackDeclareEvent(e.Turn, e.Phase.String(), e.actor(p), attacker.Name(), atk.Name, defender.Name()))

	if attacker.HasStatus(StatusConfused) && !e.coinFlip(p, attacker.Name()+" confusion") {
		dealt := attacker.TakeDamage(ConfusionDamage, TypeNone)
		e.log(log.NewDamageEvent(e.Turn, e.Phase.String(), e.actor(p), attacker.Name(), dealt, attacker.CurrentHP,
			"(hurt itself in confusion)"))
		if attacker.IsKnockedOut() {
			e.knockout(p, attacker)
		}
		e.backToMain()
		return nil
	}

	base := atk.Damage
	if base > 0 {
		base += damageBonus(attacker)
	}
	dealt := defender.TakeDamage(base, attacker.Pokemon().Type)
	e.log(log.NewDamageEvent(e.Turn, e.Phase.String(), e.actor(p), defender.Name(), dealt, defender.CurrentHP,
		damageNote(defender, attacker.Pokemon().Type)))
	e.diag.V(2).Info("damage", "attack", atk.Name, "base", base, "dealt", dealt, "defender_hp", defender.CurrentHP)

	if defender.IsKnockedOut() {
		e.knockout(opp, defender)
		if e.Finished() {
			return nil
		}
	}
	e.applyAttackEffects(p, attacker, defender, atk)
	e.backToMain()
	return nil
}

func (e *Engine) backToMain() {
	if !e.Finished() {
		e.Phase = PhaseMain
	}
}

// applyAttackEffects resolves an attack's effect tags. Special conditions land only on a
// defender still in play; heal_N heals the attacker.
func (e *Engine) applyAttackEffects(p *Player, attacker, defender *InPlayCard, atk Attack) {
	for _, tag := range atk.Effects {
		if status, ok := statusFromTag[tag]; ok {
			if defender.Zone == ZoneNone {
				continue
			}
			defender.AddStatus(status)
			e.log(log.NewStatusAppliedEvent(e.Turn, e.Phase.String(), e.actor(p), defender.Name(), status.String()))
			continue
		}
		if n, ok := tagAmount(tag, "heal"); ok {
			if attacker.Zone == ZoneNone {
				continue
			}
			healed := attacker.Heal(n)
			e.log(log.NewHealEvent(e.Turn, e.Phase.String(), e.actor(p), attacker.Name(), healed))
			continue
		}
		e.diag.V(1).Info("unhandled attack effect", "attack", atk.Name, "effect", tag)
	}
}

// damageBonus sums damage_bonus_N tags on attached tools.
func damageBonus(ip *InPlayCard) int {
	bonus := 0
	for _, tool := range ip.Tools {
		for _, tag := range tool.Trainer().Effects {
			if n, ok := tagAmount(tag, "damage_bonus"); ok {
				bonus += n
			}
		}
	}
	return bonus
}

func damageNote(defender *InPlayCard, source EnergyType) string {
	p := defender.Pokemon()
	switch {
	case p.Weakness != nil && p.Weakness.Type == source:
		return fmt.Sprintf("(weak to %s)", source.Title())
	case p.Resistance != nil && p.Resistance.Type == source:
		return fmt.Sprintf("(resists %s)", source.Title())
	default:
		return ""
	}
}

// knockout removes a knocked-out Pokémon, awards a prize to the owner's opponent,
// checks for a winner and promotes the first benched Pokémon if the active spot emptied.
func (e *Engine) knockout(owner *Player, ip *InPlayCard) {
	taker := e.Players[1-owner.Seat]
	wasActive := owner.Active == ip
	e.log(log.NewKnockoutEvent(e.Turn, e.Phase.String(), e.actor(owner), ip.Name()))
	owner.removeFromPlay(ip)
	taker.RecordKnockout()
	if _, ok := taker.TakePrize(); ok {
		e.log(log.NewPrizeTakenEvent(e.Turn, e.Phase.String(), e.actor(taker), len(taker.Prizes)))
	}

	e.checkWin()
	if e.Finished() || !wasActive {
		return
	}
	if len(owner.AvailableForActive()) == 0 {
		e.endBattle(taker, fmt.Sprintf("%s has no Pokémon left in play", owner))
		return
	}
	promoted, err := owner.Promote(0)
	if err != nil {
		e.diag.Error(err, "promote after knockout")
		return
	}
	e.log(log.NewPromoteEvent(e.Turn, e.Phase.String(), e.actor(owner), promoted.Name()))
}

// tickStatuses resolves between-turn special conditions on every Pokémon a player has in
// play. Poison always hurts; burn, sleep and freeze flip a coin; paralysis wears off at the
// end of its owner's own turn. Knockouts are handled one Pokémon at a time.
func (e *Engine) tickStatuses(p *Player) {
	for _, ip := range p.InPlay() {
		if e.Finished() {
			return
		}
		if ip.Zone == ZoneNone || len(ip.Statuses) == 0 {
			continue
		}
		e.tickPokemon(p, ip)
		if ip.IsKnockedOut() {
			e.knockout(p, ip)
		}
	}
}

func (e *Engine) tickPokemon(p *Player, ip *InPlayCard) {
	phase := e.Phase.String()
	for _, s := range append([]StatusCondition(nil), ip.Statuses...) {
		switch s {
		case StatusPoisoned:
			dealt := ip.TakeDamage(PoisonDamage, TypeNone)
			e.log(log.NewStatusDamageEvent(e.Turn, phase, e.actor(p), ip.Name(), s.String(), dealt))
		case StatusBurned:
			if e.coinFlip(p, ip.Name()+" burn") {
				ip.RemoveStatus(s)
				e.log(log.NewStatusClearedEvent(e.Turn, phase, e.actor(p), ip.Name(), s.String()))
			} else {
				dealt := ip.TakeDamage(BurnDamage, TypeNone)
				e.log(log.NewStatusDamageEvent(e.Turn, phase, e.actor(p), ip.Name(), s.String(), dealt))
			}
		case StatusAsleep, StatusFrozen:
			if e.coinFlip(p, fmt.Sprintf("%s %s", ip.Name(), s)) {
				ip.RemoveStatus(s)
				e.log(log.NewStatusClearedEvent(e.Turn, phase, e.actor(p), ip.Name(), s.String()))
			}
		case StatusParalyzed:
			if p.Seat == e.current {
				ip.RemoveStatus(s)
				e.log(log.NewStatusClearedEvent(e.Turn, phase, e.actor(p), ip.Name(), s.String()))
			}
		}
	}
}

// applyStadium resolves the stadium in play at the end of each turn.
func (e *Engine) applyStadium() {
	if e.Stadium == nil {
		return
	}
	owner := e.Players[e.StadiumOwner]
	for _, tag := range e.Stadium.Trainer().Effects {
		n, ok := tagAmount(tag, "heal_active")
		if !ok {
			continue
		}
		for _, p := range e.Players {
			if p.Active == nil || p.Active.DamageCounter == 0 {
				continue
			}
			if healed := p.Active.Heal(n); healed > 0 {
				e.log(log.NewHealEvent(e.Turn, e.Phase.String(), e.actor(owner), p.Active.Name(), healed))
			}
		}
	}
}
