package casino

import "fmt"

// Street is a dealing phase of a hand.
type Street uint8

const (
	Pocket Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"Pocket", "Flop", "Turn", "River"}

func (s Street) String() string {
	if int(s) < len(streetNames) {
		return streetNames[s]
	}
	return fmt.Sprintf("Street(%d)", s)
}

// Round is one of the eight betting sub-rounds. Each street has a bet round,
// in which every active player acts, followed by a call round, in which
// players still short of the current bet get one chance to match it.
type Round uint8

const (
	PocketBet Round = iota
	PocketCall
	FlopBet
	FlopCall
	TurnBet
	TurnCall
	RiverBet
	RiverCall
)

// NumRounds is the number of betting sub-rounds in a hand.
const NumRounds = 8

type roundInfo struct {
	name   string
	street Street
	call   bool
}

var rounds = [NumRounds]roundInfo{
	PocketBet:  {"POCKET_BET", Pocket, false},
	PocketCall: {"POCKET_CALL", Pocket, true},
	FlopBet:    {"FLOP_BET", Flop, false},
	FlopCall:   {"FLOP_CALL", Flop, true},
	TurnBet:    {"TURN_BET", Turn, false},
	TurnCall:   {"TURN_CALL", Turn, true},
	RiverBet:   {"RIVER_BET", River, false},
	RiverCall:  {"RIVER_CALL", River, true},
}

// Rounds lists every round in play order.
func Rounds() []Round {
	return []Round{PocketBet, PocketCall, FlopBet, FlopCall, TurnBet, TurnCall, RiverBet, RiverCall}
}

// Street returns the street the round belongs to.
func (r Round) Street() Street { return rounds[r].street }

// IsCall reports whether r is a call round.
func (r Round) IsCall() bool { return rounds[r].call }

// Valid reports whether r names one of the eight rounds.
func (r Round) Valid() bool { return int(r) < NumRounds }

func (r Round) String() string {
	if r.Valid() {
		return rounds[r].name
	}
	return fmt.Sprintf("Round(%d)", r)
}

// Stage is a step of the per-hand state machine. Stages run strictly in
// declaration order and none is revisited.
type Stage uint8

const (
	StagePocketBet Stage = iota
	StagePocketCall
	StageFlopDeal
	StageFlopBet
	StageFlopCall
	StageTurnDeal
	StageTurnBet
	StageTurnCall
	StageRiverDeal
	StageRiverBet
	StageRiverCall
	StageResolution
)

type stageInfo struct {
	name  string
	round Round
	bets  bool // round is meaningful
	deal  int  // board cards dealt after one burn card
}

var stages = [...]stageInfo{
	StagePocketBet:  {name: "POCKET_BET", round: PocketBet, bets: true},
	StagePocketCall: {name: "POCKET_CALL", round: PocketCall, bets: true},
	StageFlopDeal:   {name: "FLOP_DEAL", deal: 3},
	StageFlopBet:    {name: "FLOP_BET", round: FlopBet, bets: true},
	StageFlopCall:   {name: "FLOP_CALL", round: FlopCall, bets: true},
	StageTurnDeal:   {name: "TURN_DEAL", deal: 1},
	StageTurnBet:    {name: "TURN_BET", round: TurnBet, bets: true},
	StageTurnCall:   {name: "TURN_CALL", round: TurnCall, bets: true},
	StageRiverDeal:  {name: "RIVER_DEAL", deal: 1},
	StageRiverBet:   {name: "RIVER_BET", round: RiverBet, bets: true},
	StageRiverCall:  {name: "RIVER_CALL", round: RiverCall, bets: true},
	StageResolution: {name: "RESOLUTION"},
}

// Round returns the betting round run in this stage. ok is false for deal
// stages and resolution.
func (s Stage) Round() (r Round, ok bool) {
	return stages[s].round, stages[s].bets
}

// DealCount returns how many board cards the stage deals, 0 for non-deal
// stages.
func (s Stage) DealCount() int { return stages[s].deal }

func (s Stage) String() string {
	if int(s) < len(stages) {
		return stages[s].name
	}
	return fmt.Sprintf("Stage(%d)", s)
}
