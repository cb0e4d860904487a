package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory ---

type MemoryLogger struct {
	mu     sync.RWMutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

// Events returns a copy of every event logged so far.
func (l *MemoryLogger) Events() []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]GameEvent(nil), l.events...)
}

// EventsSince returns the events with a sequence number greater than seq.
func (l *MemoryLogger) EventsSince(seq int) []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, e := range l.events {
		if e.Seq > seq {
			return append([]GameEvent(nil), l.events[i:]...)
		}
	}
	return nil
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

func (a Actor) String() string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("P%d", a.Seat+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 14 chars for alignment
	for len(phase) < 14 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func event(turn int, phase string, who Actor, t EventType, card, details string) GameEvent {
	return GameEvent{
		Turn:       turn,
		Phase:      phase,
		Player:     who.Seat,
		PlayerName: who.Name,
		Type:       t,
		Card:       card,
		Details:    details,
	}
}

func NewPhaseChangeEvent(turn int, phase string, who Actor) GameEvent {
	return event(turn, phase, who, EventPhaseChange, "", fmt.Sprintf("Phase → %s", phase))
}

func NewTurnEvent(turn int, who Actor) GameEvent {
	return event(turn, "Draw Phase", who, EventNewTurn, "", fmt.Sprintf("=== Turn %d (%s) ===", turn, who))
}

func NewSetupEvent(phase string, who Actor, details string) GameEvent {
	return event(0, phase, who, EventSetup, "", details)
}

func NewShuffleEvent(turn int, phase string, who Actor) GameEvent {
	return event(turn, phase, who, EventShuffle, "", fmt.Sprintf("%s shuffled their deck", who))
}

func NewMulliganEvent(phase string, who Actor, attempt int) GameEvent {
	return event(0, phase, who, EventMulligan, "",
		fmt.Sprintf("%s has no basic Pokémon and mulligans (attempt %d)", who, attempt))
}

func NewDrawEvent(turn int, phase string, who Actor, cardName string) GameEvent {
	return event(turn, phase, who, EventDraw, cardName, fmt.Sprintf("%s draws %s", who, cardName))
}

func NewDrawCountEvent(turn int, phase string, who Actor, count int, reason string) GameEvent {
	return event(turn, phase, who, EventDraw, "", fmt.Sprintf("%s draws %d card(s) (%s)", who, count, reason))
}

func NewPlayPokemonEvent(turn int, phase string, who Actor, cardName, zone string) GameEvent {
	return event(turn, phase, who, EventPlayPokemon, cardName, fmt.Sprintf("%s puts %s on the %s", who, cardName, zone))
}

func NewEvolveEvent(turn int, phase string, who Actor, from, to string) GameEvent {
	return event(turn, phase, who, EventEvolve, to, fmt.Sprintf("%s evolves %s into %s", who, from, to))
}

func NewAttachEnergyEvent(turn int, phase string, who Actor, energyName, target string) GameEvent {
	return event(turn, phase, who, EventAttachEnergy, energyName,
		fmt.Sprintf("%s attaches %s to %s", who, energyName, target))
}

func NewPlayTrainerEvent(turn int, phase string, who Actor, cardName string) GameEvent {
	return event(turn, phase, who, EventPlayTrainer, cardName, fmt.Sprintf("%s plays %s", who, cardName))
}

func NewStadiumEvent(turn int, phase string, who Actor, cardName, replaced string) GameEvent {
	details := fmt.Sprintf("%s puts %s into play", who, cardName)
	if replaced != "" {
		details += fmt.Sprintf(" (replacing %s)", replaced)
	}
	return event(turn, phase, who, EventStadium, cardName, details)
}

func NewRetreatEvent(turn int, phase string, who Actor, retreated, promoted string, energyPaid int) GameEvent {
	return event(turn, phase, who, EventRetreat, retreated,
		fmt.Sprintf("%s retreats %s (discarding %d energy), %s is now active", who, retreated, energyPaid, promoted))
}

func NewAttackDeclareEvent(turn int, phase string, who Actor, attacker, attack, defender string) GameEvent {
	return event(turn, phase, who, EventAttackDeclare, attacker,
		fmt.Sprintf("%s's %s uses %s on %s", who, attacker, attack, defender))
}

func NewDamageEvent(turn int, phase string, who Actor, target string, amount, hpLeft int, note string) GameEvent {
	details := fmt.Sprintf("%s takes %d damage (%d HP left)", target, amount, hpLeft)
	if note != "" {
		details += " " + note
	}
	return event(turn, phase, who, EventDamage, target, details)
}

func NewHealEvent(turn int, phase string, who Actor, target string, amount int) GameEvent {
	return event(turn, phase, who, EventHeal, target, fmt.Sprintf("%s heals %d HP", target, amount))
}

func NewStatusAppliedEvent(turn int, phase string, who Actor, target, status string) GameEvent {
	return event(turn, phase, who, EventStatusApplied, target, fmt.Sprintf("%s is now %s", target, status))
}

func NewStatusDamageEvent(turn int, phase string, who Actor, target, status string, amount int) GameEvent {
	return event(turn, phase, who, EventStatusDamage, target,
		fmt.Sprintf("%s takes %d damage from being %s", target, amount, status))
}

func NewStatusClearedEvent(turn int, phase string, who Actor, target, status string) GameEvent {
	return event(turn, phase, who, EventStatusCleared, target, fmt.Sprintf("%s is no longer %s", target, status))
}

func NewCoinFlipEvent(turn int, phase string, who Actor, reason string, heads bool) GameEvent {
	side := "tails"
	if heads {
		side = "heads"
	}
	return event(turn, phase, who, EventCoinFlip, "", fmt.Sprintf("Coin flip for %s: %s", reason, side))
}

func NewKnockoutEvent(turn int, phase string, who Actor, cardName string) GameEvent {
	return event(turn, phase, who, EventKnockout, cardName, fmt.Sprintf("%s's %s is knocked out", who, cardName))
}

func NewPrizeTakenEvent(turn int, phase string, who Actor, remaining int) GameEvent {
	return event(turn, phase, who, EventPrizeTaken, "",
		fmt.Sprintf("%s takes a prize card (%d left)", who, remaining))
}

func NewPromoteEvent(turn int, phase string, who Actor, cardName string) GameEvent {
	return event(turn, phase, who, EventPromote, cardName,
		fmt.Sprintf("%s promotes %s to the active spot", who, cardName))
}

func NewDiscardEvent(turn int, phase string, who Actor, cardName string) GameEvent {
	return event(turn, phase, who, EventDiscard, cardName, fmt.Sprintf("%s discards %s", who, cardName))
}

func NewRuleViolationEvent(turn int, phase string, who Actor, action, reason string) GameEvent {
	return event(turn, phase, who, EventRuleViolation, "", fmt.Sprintf("%s cannot %s: %s", who, action, reason))
}

func NewWinEvent(turn int, phase string, winner Actor, reason string) GameEvent {
	return event(turn, phase, winner, EventWin, "", fmt.Sprintf("%s wins! (%s)", winner, reason))
}

func NewNoContestEvent(turn int, phase string, reason string) GameEvent {
	return event(turn, phase, Actor{Seat: -1, Name: "-"}, EventNoContest, "", fmt.Sprintf("Battle ends without a winner (%s)", reason))
}
