// Package blackjack implements the rules of blackjack: hand values with
// soft/hard ace accounting, the per-hand action state machine, the
// stage-level action gate, and payouts including side bets.
//
// Every function is pure. Hands are values; a transition returns a new Hand
// and never edits its inputs, so split hands can be processed in any order
// or concurrently.
//
// # Basic Usage
//
//	player, _ := blackjack.ParseCards("8h 8s")
//	dealer, _ := blackjack.ParseCards("6c")
//	h, _ := blackjack.AfterDeal(player, dealer, 10)
//	if h.Actions.Split && blackjack.IsActionAllowed(blackjack.ActionSplit, blackjack.StagePlayerTurnRight) {
//	    // split...
//	}
//
// Randomness only enters through Shuffle and NewShoe, which take an
// explicit *rand.Rand:
//
//	shoe := blackjack.NewShoe(rand.New(rand.NewPCG(1, 2)), 6)
package blackjack
