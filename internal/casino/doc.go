// Package casino implements the betting engine for one hand of the
// simplified Hold'em played by the tournament.
//
// # Hand flow
//
// Every player posts the ante and receives two pocket cards. The hand then
// moves through a fixed sequence of stages that never repeats:
//
//	POCKET_BET, POCKET_CALL,
//	FLOP_DEAL, FLOP_BET, FLOP_CALL,
//	TURN_DEAL, TURN_BET, TURN_CALL,
//	RIVER_DEAL, RIVER_BET, RIVER_CALL,
//	RESOLUTION
//
// In a bet round every active player acts once in seat order and may raise.
// In the following call round only players below the current bet are asked,
// and they may match it or fold; raises are not reopened. Deal stages burn a
// card before dealing the board.
//
// # All-in cap
//
// The first player to commit their whole bankroll fixes the cap at their
// total. From then on nobody's commitment may exceed it: any excess is
// refunded on the spot, so every active player ends each call round level
// with the current bet.
//
// # Resolution
//
// The pot is foldCash + numStillIn × currentBet. A lone survivor takes it;
// otherwise the best seven card hands split it evenly and the first winner in
// seat order takes the remainder. A hand that ends with nobody active is
// voided and all contributions are returned.
//
// # Strategies
//
// Players act through the Strategy interface. A decision the engine cannot
// accept, such as a check while behind the current bet, is recorded as an
// anomaly and the player is folded.
//
//	engine := casino.NewEngine(randutil.New(42), logger, casino.WithAnte(50))
//	out, err := engine.PlayHand(players)
package casino
