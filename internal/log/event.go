package log

import "time"

// EventType enumerates all observable battle events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventSetup
	EventShuffle
	EventMulligan
	EventDraw
	EventPlayPokemon
	EventEvolve
	EventAttachEnergy
	EventPlayTrainer
	EventStadium
	EventRetreat
	EventAttackDeclare
	EventDamage
	EventHeal
	EventStatusApplied
	EventStatusDamage
	EventStatusCleared
	EventCoinFlip
	EventKnockout
	EventPrizeTaken
	EventPromote
	EventDiscard
	EventRuleViolation
	EventWin
	EventNoContest // battle stopped without a winner (turn limit)
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventSetup:
		return "Setup"
	case EventShuffle:
		return "Shuffle"
	case EventMulligan:
		return "Mulligan"
	case EventDraw:
		return "Draw"
	case EventPlayPokemon:
		return "PlayPokemon"
	case EventEvolve:
		return "Evolve"
	case EventAttachEnergy:
		return "AttachEnergy"
	case EventPlayTrainer:
		return "PlayTrainer"
	case EventStadium:
		return "Stadium"
	case EventRetreat:
		return "Retreat"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDamage:
		return "Damage"
	case EventHeal:
		return "Heal"
	case EventStatusApplied:
		return "StatusApplied"
	case EventStatusDamage:
		return "StatusDamage"
	case EventStatusCleared:
		return "StatusCleared"
	case EventCoinFlip:
		return "CoinFlip"
	case EventKnockout:
		return "Knockout"
	case EventPrizeTaken:
		return "PrizeTaken"
	case EventPromote:
		return "Promote"
	case EventDiscard:
		return "Discard"
	case EventRuleViolation:
		return "RuleViolation"
	case EventWin:
		return "Win"
	case EventNoContest:
		return "NoContest"
	default:
		return "Unknown"
	}
}

// Actor identifies the player an event is attributed to.
type Actor struct {
	Seat int    // 0 or 1
	Name string // display name; empty falls back to "P1"/"P2"
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq        int       // monotonic sequence number
	Timestamp  time.Time // wall-clock time the engine recorded it
	Turn       int       // which turn (1-based, 0 during setup)
	Phase      string    // current phase name (e.g. "Main Phase")
	Player     int       // acting player (0 or 1)
	PlayerName string    // acting player's display name
	Type       EventType // event type
	Card       string    // card name (if applicable)
	Details    string    // human-readable detail string
}
