package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// PlayerSpec describes one participant at construction time.
type PlayerSpec struct {
	ID   string
	Name string
	Deck *Deck
}

// Config holds configuration for creating a new battle engine.
type Config struct {
	Seed        int64           // RNG seed (0 for random)
	Logger      log.EventLogger // battle event sink (defaults to a MemoryLogger)
	Diag        logr.Logger     // diagnostics (defaults to the package logger)
	Clock       func() time.Time
	NoShuffle   bool // skip shuffles (for deterministic tests)
	FirstPlayer int  // 0 picks at random; 1 or 2 forces that seat to go first
}

// Engine owns the whole battle state and enforces the rules. It is not safe for
// concurrent use; callers serialize access.
type Engine struct {
	ID      string
	Players [2]*Player
	State   BattleState
	Phase   Phase
	Turn    int
	Result  string

	FirstSeat    int
	Stadium      *Card
	StadiumOwner int

	StartedAt time.Time
	EndedAt   time.Time

	current     int
	winner      int
	rng         *rand.Rand
	logger      log.EventLogger
	diag        logr.Logger
	clock       func() time.Time
	noShuffle   bool
	firstPlayer int
}

// NewEngine creates a battle between two players. Nothing is dealt until Setup.
func NewEngine(p1, p2 PlayerSpec, cfg Config) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		if s, err := NewSeed(); err == nil {
			seed = s
		} else {
			seed = time.Now().UnixNano()
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	diag := cfg.Diag
	if diag.GetSink() == nil {
		diag = internalLogger
	}

	e := &Engine{
		ID:          uuid.NewString(),
		State:       BattleWaiting,
		Phase:       PhaseSetup,
		winner:      -1,
		rng:         NewRand(seed),
		logger:      logger,
		clock:       clock,
		noShuffle:   cfg.NoShuffle,
		firstPlayer: cfg.FirstPlayer,
	}
	e.diag = diag.WithValues("battle", e.ID)
	for seat, spec := range []PlayerSpec{p1, p2} {
		id := spec.ID
		if id == "" {
			id = fmt.Sprintf("player%d", seat+1)
		}
		if seat == 1 && id == e.Players[0].ID {
			// snapshots are keyed by id
			id = fmt.Sprintf("%s-%d", id, seat+1)
			e.diag.V(1).Info("duplicate player id renamed", "id", id)
		}
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("P%d", seat+1)
		}
		deck := spec.Deck
		if deck == nil {
			deck = NewDeck("", nil)
		}
		e.Players[seat] = NewPlayer(id, name, seat, deck)
	}
	return e
}

// --- Accessors ---

func (e *Engine) Current() *Player  { return e.Players[e.current] }
func (e *Engine) Opponent() *Player { return e.Players[1-e.current] }
func (e *Engine) CurrentSeat() int  { return e.current }

// Finished reports whether the battle has ended.
func (e *Engine) Finished() bool { return e.State == BattleFinished }

// WinnerSeat returns the winning seat, or -1 if there is none (yet).
func (e *Engine) WinnerSeat() int { return e.winner }

// Winner returns the winning player, or nil.
func (e *Engine) Winner() *Player {
	if e.winner < 0 {
		return nil
	}
	return e.Players[e.winner]
}

// Events returns the event log so far.
func (e *Engine) Events() []log.GameEvent { return e.logger.Events() }

// Logger exposes the event sink.
func (e *Engine) Logger() log.EventLogger { return e.logger }

// coinFlip logs and returns a fair flip, true on heads.
func (e *Engine) coinFlip(who *Player, reason string) bool {
	heads := e.rng.IntN(2) == 0
	e.log(log.NewCoinFlipEvent(e.Turn, e.Phase.String(), e.actor(who), reason, heads))
	return heads
}

// --- Setup ---

// Setup validates both decks, deals prizes and opening hands, places each player's
// first basic Pokémon in the active spot and picks who goes first.
func (e *Engine) Setup() error {
	if e.State != BattleWaiting {
		return fmt.Errorf("battle %s already set up", e.ID)
	}
	for _, p := range e.Players {
		problems := p.Deck.Validate()
		if len(p.Deck.BasicPokemon()) == 0 {
			problems = append(problems, "deck has no basic Pokémon")
		}
		if len(problems) > 0 {
			return &DeckError{Player: p.String(), Violations: problems}
		}
	}

	e.State = BattleInProgress
	e.Phase = PhaseSetup
	e.StartedAt = e.clock()

	for _, p := range e.Players {
		if err := e.dealOpening(p); err != nil {
			e.State = BattleWaiting
			return err
		}
	}

	switch e.firstPlayer {
	case 1, 2:
		e.FirstSeat = e.firstPlayer - 1
	default:
		e.FirstSeat = e.rng.IntN(2)
	}
	e.current = e.FirstSeat
	e.Turn = 1
	e.Phase = PhaseDraw
	e.log(log.NewSetupEvent(e.Phase.String(), e.actor(e.Current()),
		fmt.Sprintf("%s goes first", e.Current())))
	e.diag.V(1).Info("battle set up", "first", e.Current().Name)
	return nil
}

func (e *Engine) shuffle(p *Player) {
	if e.noShuffle {
		return
	}
	p.ShuffleDeck(e.rng)
	e.log(log.NewShuffleEvent(e.Turn, e.Phase.String(), e.actor(p)))
}

// dealOpening shuffles, sets prizes, draws the opening hand (mulliganing until it holds a
// basic Pokémon) and puts the first basic into the active spot.
func (e *Engine) dealOpening(p *Player) error {
	e.shuffle(p)
	p.DealPrizes(PrizeCount)
	p.DrawCards(InitialHandSize)

	for len(p.BasicPokemonInHand()) == 0 {
		if p.Mulligans >= MaxMulligans {
			return fmt.Errorf("%s could not draw a basic Pokémon after %d mulligans", p, p.Mulligans)
		}
		e.log(log.NewMulliganEvent(e.Phase.String(), e.actor(p), p.Mulligan()))
		if !p.DeckHasBasic() {
			// every basic ended up in the prizes
			p.ReturnPrizesToDeck()
			e.shuffle(p)
			p.DealPrizes(PrizeCount)
		} else {
			e.shuffle(p)
		}
		p.DrawCards(InitialHandSize)
	}

	ip, err := p.PlayToActive(p.BasicPokemonInHand()[0])
	if err != nil {
		return err
	}
	e.log(log.NewPlayPokemonEvent(e.Turn, e.Phase.String(), e.actor(p), ip.Name(), ZoneActive.String()))
	return nil
}

// --- Turn flow ---

// StartTurn resets the current player's turn flags, performs the turn draw and enters
// the main phase. The first player skips the draw on turn 1. An empty deck loses.
func (e *Engine) StartTurn() error {
	if err := e.requirePhase("start a turn", PhaseDraw); err != nil {
		return err
	}
	p := e.Current()
	p.ResetTurnFlags()
	e.log(log.NewTurnEvent(e.Turn, e.actor(p)))

	if !(e.Turn == 1 && e.current == e.FirstSeat) {
		card, ok := p.DrawOne()
		if !ok {
			e.endBattle(e.Opponent(), "deck-out")
			return nil
		}
		e.log(log.NewDrawEvent(e.Turn, e.Phase.String(), e.actor(p), card.Name))
	}

	e.Phase = PhaseMain
	e.log(log.NewPhaseChangeEvent(e.Turn, e.Phase.String(), e.actor(p)))
	return nil
}

// EndTurn resolves between-turn effects, passes the turn and starts the next one.
func (e *Engine) EndTurn() error {
	if err := e.requirePhase("end the turn", PhaseMain); err != nil {
		return err
	}
	e.Phase = PhaseEnd
	e.log(log.NewPhaseChangeEvent(e.Turn, e.Phase.String(), e.actor(e.Current())))

	e.applyStadium()
	for _, p := range []*Player{e.Current(), e.Opponent()} {
		e.tickStatuses(p)
		if e.Finished() {
			return nil
		}
	}

	e.current = 1 - e.current
	e.Turn++
	e.Phase = PhaseDraw
	return e.StartTurn()
}

// Concede ends the battle in favor of the other seat.
func (e *Engine) Concede(seat int) error {
	if e.Finished() {
		return violation(ErrBattleFinished, "")
	}
	if seat < 0 || seat > 1 {
		return fmt.Errorf("invalid seat %d", seat)
	}
	e.endBattle(e.Players[1-seat], "concede")
	return nil
}

// StopNoContest ends the battle without a winner.
func (e *Engine) StopNoContest(reason string) {
	if e.Finished() {
		return
	}
	e.State = BattleFinished
	e.Phase = PhaseFinished
	e.EndedAt = e.clock()
	e.winner = -1
	e.Result = fmt.Sprintf("No winner (%s)", reason)
	e.log(log.NewNoContestEvent(e.Turn, e.Phase.String(), reason))
}

// --- Card play ---

// PlayCard plays the card at handIdx. Basic Pokémon go to the active spot if it is
// empty, otherwise to the bench; evolutions and energy go onto target; trainers resolve
// their effects (healing and tools use target).
func (e *Engine) PlayCard(handIdx int, target Target) error {
	const action = "play a card"
	if err := e.requirePhase(action, PhaseMain); err != nil {
		return err
	}
	p := e.Current()
	card, err := p.HandCard(handIdx)
	if err != nil {
		return e.reject(action, err)
	}

	switch v := card.Variant.(type) {
	case *Pokemon:
		if v.Stage == StageBasic {
			return e.playBasic(p, handIdx)
		}
		before, err := p.Resolve(target)
		if err != nil {
			return e.reject("evolve "+card.Name, err)
		}
		after, err := p.Evolve(handIdx, target)
		if err != nil {
			return e.reject("evolve "+card.Name, err)
		}
		e.log(log.NewEvolveEvent(e.Turn, e.Phase.String(), e.actor(p), before.Name(), after.Name()))
		return nil
	case *Energy:
		ip, err := p.AttachEnergy(handIdx, target)
		if err != nil {
			return e.reject("attach "+card.Name, err)
		}
		e.log(log.NewAttachEnergyEvent(e.Turn, e.Phase.String(), e.actor(p), card.Name, ip.Name()))
		return nil
	case *Trainer:
		return e.playTrainer(p, handIdx, v, target)
	default:
		return e.reject(action, violation(ErrWrongCardKind, "%s", card.Name))
	}
}

func (e *Engine) playBasic(p *Player, handIdx int) error {
	var (
		ip  *InPlayCard
		err error
	)
	if p.Active == nil {
		ip, err = p.PlayToActive(handIdx)
	} else {
		ip, err = p.PlayToBench(handIdx)
	}
	if err != nil {
		return e.reject("play a Pokémon", err)
	}
	e.log(log.NewPlayPokemonEvent(e.Turn, e.Phase.String(), e.actor(p), ip.Name(), ip.Zone.String()))
	return nil
}

func (e *Engine) playTrainer(p *Player, handIdx int, t *Trainer, target Target) error {
	card := p.Hand[handIdx]
	action := "play " + card.Name
	if t.TrainerKind == TrainerSupporter && p.SupporterPlayedThisTurn {
		return e.reject(action, violation(ErrSupporterPlayed, ""))
	}
	var ip *InPlayCard
	if t.NeedsTarget() {
		var err error
		if ip, err = p.Resolve(target); err != nil {
			return e.reject(action, violation(ErrTargetRequired, "%v", err))
		}
	}

	p.removeFromHand(handIdx)
	e.log(log.NewPlayTrainerEvent(e.Turn, e.Phase.String(), e.actor(p), card.Name))

	switch t.TrainerKind {
	case TrainerStadium:
		replaced := ""
		if e.Stadium != nil {
			replaced = e.Stadium.Name
			e.Players[e.StadiumOwner].DiscardCard(e.Stadium)
		}
		e.Stadium = card
		e.StadiumOwner = p.Seat
		e.log(log.NewStadiumEvent(e.Turn, e.Phase.String(), e.actor(p), card.Name, replaced))
		return nil
	case TrainerTool:
		ip.AttachTool(card)
		return nil
	}

	e.resolveTrainerEffects(p, card, t, ip)
	if t.TrainerKind == TrainerSupporter {
		p.MarkSupporterPlayed()
	}
	p.DiscardCard(card)
	return nil
}

// resolveTrainerEffects applies item and supporter effect tags in printed order.
func (e *Engine) resolveTrainerEffects(p *Player, card *Card, t *Trainer, target *InPlayCard) {
	for _, tag := range t.Effects {
		if n, ok := tagAmount(tag, "draw"); ok {
			drawn := p.DrawCards(n)
			e.log(log.NewDrawCountEvent(e.Turn, e.Phase.String(), e.actor(p), len(drawn), card.Name))
			continue
		}
		if n, ok := tagAmount(tag, "shuffle_hand_draw"); ok {
			p.ReturnHandToDeck()
			e.shuffle(p)
			drawn := p.DrawCards(n)
			e.log(log.NewDrawCountEvent(e.Turn, e.Phase.String(), e.actor(p), len(drawn), card.Name))
			continue
		}
		if n, ok := tagAmount(tag, "heal"); ok {
			if target != nil {
				healed := target.Heal(n)
				e.log(log.NewHealEvent(e.Turn, e.Phase.String(), e.actor(p), target.Name(), healed))
			}
			continue
		}
		switch tag {
		case "discard_hand":
			for _, c := range p.Hand {
				e.log(log.NewDiscardEvent(e.Turn, e.Phase.String(), e.actor(p), c.Name))
			}
			p.DiscardHand()
		case "cure_status":
			for _, s := range p.CureActive() {
				e.log(log.NewStatusClearedEvent(e.Turn, e.Phase.String(), e.actor(p), p.Active.Name(), s.String()))
			}
		default:
			e.diag.V(1).Info("unhandled trainer effect", "card", card.ID, "effect", tag)
		}
	}
}

// --- Retreat ---

// Retreat swaps the active Pokémon with the benched one at benchIdx, paying the retreat cost.
func (e *Engine) Retreat(benchIdx int) error {
	const action = "retreat"
	if err := e.requirePhase(action, PhaseMain); err != nil {
		return err
	}
	p := e.Current()
	old, paid, err := p.Retreat(benchIdx)
	if err != nil {
		return e.reject(action, err)
	}
	e.log(log.NewRetreatEvent(e.Turn, e.Phase.String(), e.actor(p), old.Name(), p.Active.Name(), len(paid)))
	return nil
}

// --- Battle end ---

func (e *Engine) endBattle(winner *Player, reason string) {
	if e.Finished() {
		return
	}
	e.State = BattleFinished
	e.Phase = PhaseFinished
	e.EndedAt = e.clock()
	e.winner = winner.Seat
	e.Result = fmt.Sprintf("%s wins (%s)", winner, reason)
	e.log(log.NewWinEvent(e.Turn, e.Phase.String(), e.actor(winner), reason))
	e.diag.Info("battle finished", "winner", winner.Name, "reason", reason, "turns", e.Turn)
}

// checkWin ends the battle if either player has met a win condition.
func (e *Engine) checkWin() {
	if e.Finished() {
		return
	}
	for _, p := range []*Player{e.Current(), e.Opponent()} {
		if len(p.Prizes) == 0 {
			e.endBattle(p, "took all prize cards")
			return
		}
	}
	for _, p := range []*Player{e.Current(), e.Opponent()} {
		if !p.HasValidActive() && len(p.AvailableForActive()) == 0 {
			e.endBattle(e.Players[1-p.Seat], fmt.Sprintf("%s has no Pokémon left in play", p))
			return
		}
	}
}

// --- Guards and logging ---

// requirePhase rejects actions outside the given phase or after the battle ended.
func (e *Engine) requirePhase(action string, phase Phase) error {
	if e.Finished() {
		return e.reject(action, violation(ErrBattleFinished, ""))
	}
	if e.State != BattleInProgress || e.Phase != phase {
		return e.reject(action, violation(ErrWrongPhase, "%s requires %s, battle is in %s", action, phase, e.Phase))
	}
	return nil
}

// reject records a rule violation as a no-op event and returns err unchanged.
func (e *Engine) reject(action string, err error) error {
	var v *RuleViolation
	if errors.As(err, &v) {
		e.log(log.NewRuleViolationEvent(e.Turn, e.Phase.String(), e.actor(e.Current()), action, v.Error()))
		e.diag.V(1).Info("rule violation", "action", action, "reason", v.Error())
	}
	return err
}

func (e *Engine) actor(p *Player) log.Actor {
	return log.Actor{Seat: p.Seat, Name: p.Name}
}

func (e *Engine) log(ev log.GameEvent) {
	ev.Timestamp = e.clock()
	e.logger.Log(ev)
}
