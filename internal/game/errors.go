package game

import (
	"errors"
	"fmt"
	"strings"
)

// Rule violation codes. Match them with errors.Is.
var (
	ErrWrongPhase          = errors.New("action not allowed in this phase")
	ErrBattleFinished      = errors.New("battle is finished")
	ErrAlreadyAttacked     = errors.New("already attacked this turn")
	ErrEnergyAlreadyPlayed = errors.New("energy already attached this turn")
	ErrSupporterPlayed     = errors.New("supporter already played this turn")
	ErrInsufficientEnergy  = errors.New("not enough energy attached")
	ErrStatusBlocked       = errors.New("special condition prevents this action")
	ErrInvalidIndex        = errors.New("no card at that index")
	ErrNotInZone           = errors.New("target is not in play")
	ErrBenchFull           = errors.New("bench is full")
	ErrActiveOccupied      = errors.New("active spot is occupied")
	ErrNotBasic            = errors.New("card is not a basic Pokémon")
	ErrCannotEvolve        = errors.New("card does not evolve from the target")
	ErrWrongCardKind       = errors.New("card cannot be played this way")
	ErrNoActive            = errors.New("no active Pokémon")
	ErrTargetRequired      = errors.New("this card needs a target")
	ErrNotYourTurn         = errors.New("not this player's turn")
)

// RuleViolation is returned when an action is illegal. The engine state is unchanged.
type RuleViolation struct {
	Code   error
	Reason string
}

func (v *RuleViolation) Error() string {
	if v.Reason == "" {
		return v.Code.Error()
	}
	return fmt.Sprintf("%s: %s", v.Code, v.Reason)
}

func (v *RuleViolation) Unwrap() error {
	return v.Code
}

func violation(code error, format string, args ...any) *RuleViolation {
	return &RuleViolation{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// IsRuleViolation reports whether err is an illegal-action rejection.
func IsRuleViolation(err error) bool {
	var v *RuleViolation
	return errors.As(err, &v)
}

// DeckError reports why a deck failed validation during setup.
type DeckError struct {
	Player     string
	Violations []string
}

func (e *DeckError) Error() string {
	return fmt.Sprintf("deck for %s is invalid: %s", e.Player, strings.Join(e.Violations, "; "))
}
