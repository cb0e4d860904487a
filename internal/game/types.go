package game

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// --- Enums ---

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDraw
	PhaseMain
	PhaseAttack
	PhaseEnd
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseDraw:
		return "Draw Phase"
	case PhaseMain:
		return "Main Phase"
	case PhaseAttack:
		return "Attack Phase"
	case PhaseEnd:
		return "End Phase"
	case PhaseFinished:
		return "Finished"
	default:
		return "None"
	}
}

// MarshalText keeps snapshots readable.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type BattleState int

const (
	BattleWaiting BattleState = iota
	BattleInProgress
	BattleFinished
	BattlePaused
)

func (s BattleState) String() string {
	switch s {
	case BattleWaiting:
		return "waiting"
	case BattleInProgress:
		return "in_progress"
	case BattleFinished:
		return "finished"
	case BattlePaused:
		return "paused"
	default:
		return "unknown"
	}
}

func (s BattleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EnergyType is both a Pokémon's type and the type of an energy unit.
type EnergyType int

const (
	TypeNone EnergyType = iota
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypePsychic
	TypeFighting
	TypeDarkness
	TypeMetal
	TypeFairy
	TypeDragon
	TypeNormal
	TypeColorless
	TypePoison
)

var energyTypeNames = map[EnergyType]string{
	TypeFire:      "fire",
	TypeWater:     "water",
	TypeGrass:     "grass",
	TypeElectric:  "electric",
	TypePsychic:   "psychic",
	TypeFighting:  "fighting",
	TypeDarkness:  "darkness",
	TypeMetal:     "metal",
	TypeFairy:     "fairy",
	TypeDragon:    "dragon",
	TypeNormal:    "normal",
	TypeColorless: "colorless",
	TypePoison:    "poison",
}

// AllEnergyTypes lists every real type in declaration order.
var AllEnergyTypes = []EnergyType{
	TypeFire, TypeWater, TypeGrass, TypeElectric, TypePsychic, TypeFighting, TypeDarkness,
	TypeMetal, TypeFairy, TypeDragon, TypeNormal, TypeColorless, TypePoison,
}

// String returns the lowercase identifier used in deck and catalog files.
func (t EnergyType) String() string {
	if name, ok := energyTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Title returns the display name ("Fire", "Colorless").
func (t EnergyType) Title() string {
	return cases.Title(language.English).String(t.String())
}

func (t EnergyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EnergyType) UnmarshalText(b []byte) error {
	parsed, err := ParseEnergyType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseEnergyType accepts any casing of a type name.
func ParseEnergyType(s string) (EnergyType, error) {
	lower := cases.Lower(language.English).String(s)
	for t, name := range energyTypeNames {
		if name == lower {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown energy type %q", s)
}

type Stage int

const (
	StageBasic Stage = iota
	StageOne
	StageTwo
)

func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "basic"
	case StageOne:
		return "stage1"
	case StageTwo:
		return "stage2"
	default:
		return fmt.Sprintf("stage%d", int(s))
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	switch string(b) {
	case "basic", "":
		*s = StageBasic
	case "stage1":
		*s = StageOne
	case "stage2":
		*s = StageTwo
	default:
		var n int
		if _, err := fmt.Sscanf(string(b), "stage%d", &n); err != nil || n < 0 {
			return fmt.Errorf("unknown evolution stage %q", string(b))
		}
		*s = Stage(n)
	}
	return nil
}

type TrainerKind int

const (
	TrainerItem TrainerKind = iota
	TrainerSupporter
	TrainerStadium
	TrainerTool
)

func (k TrainerKind) String() string {
	switch k {
	case TrainerItem:
		return "item"
	case TrainerSupporter:
		return "supporter"
	case TrainerStadium:
		return "stadium"
	case TrainerTool:
		return "tool"
	default:
		return "unknown"
	}
}

func (k TrainerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TrainerKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "item":
		*k = TrainerItem
	case "supporter":
		*k = TrainerSupporter
	case "stadium":
		*k = TrainerStadium
	case "tool":
		*k = TrainerTool
	default:
		return fmt.Errorf("unknown trainer kind %q", string(b))
	}
	return nil
}

type StatusCondition int

const (
	StatusBurned StatusCondition = iota + 1
	StatusPoisoned
	StatusParalyzed
	StatusAsleep
	StatusConfused
	StatusFrozen
)

func (s StatusCondition) String() string {
	switch s {
	case StatusBurned:
		return "burned"
	case StatusPoisoned:
		return "poisoned"
	case StatusParalyzed:
		return "paralyzed"
	case StatusAsleep:
		return "asleep"
	case StatusConfused:
		return "confused"
	case StatusFrozen:
		return "frozen"
	default:
		return "none"
	}
}

func (s StatusCondition) Title() string {
	return cases.Title(language.English).String(s.String())
}

func (s StatusCondition) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// blocksAction reports whether the condition stops the Pokémon from attacking or retreating.
func (s StatusCondition) blocksAction() bool {
	return s == StatusAsleep || s == StatusParalyzed || s == StatusFrozen
}

// statusFromTag maps attack effect tags to conditions.
var statusFromTag = map[string]StatusCondition{
	"burn":      StatusBurned,
	"poison":    StatusPoisoned,
	"paralysis": StatusParalyzed,
	"sleep":     StatusAsleep,
	"confusion": StatusConfused,
	"freeze":    StatusFrozen,
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityPromo
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityPromo:
		return "promo"
	default:
		return "unknown"
	}
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(b []byte) error {
	for cand := RarityCommon; cand <= RarityPromo; cand++ {
		if cand.String() == string(b) {
			*r = cand
			return nil
		}
	}
	if len(b) == 0 {
		*r = RarityCommon
		return nil
	}
	return fmt.Errorf("unknown rarity %q", string(b))
}

type Zone int

const (
	ZoneNone Zone = iota
	ZoneActive
	ZoneBench
)

func (z Zone) String() string {
	switch z {
	case ZoneActive:
		return "active"
	case ZoneBench:
		return "bench"
	default:
		return "none"
	}
}

// --- Constants ---

const (
	MinDeckSize     = 20
	MaxDeckSize     = 60
	MaxCopies       = 4
	MaxBenchSize    = 5
	PrizeCount      = 3
	InitialHandSize = 7
	MaxMulligans    = 100
	ConfusionDamage = 30
	PoisonDamage    = 10
	BurnDamage      = 20
)
