// Package game implements a single No-Limit Texas Hold'em table: seat
// accounts, the betting and phase state machine, side-pot allocation and the
// read-only views handed to decision makers.
//
// The Engine is a synchronous, turn-based state machine. It holds no locks;
// a host that shares an Engine between goroutines must serialise every call.
// A typical host loop looks like:
//
//	eng.StartNewHand()
//	for eng.Phase() != game.Showdown && eng.Phase() != game.Finished {
//		for !eng.IsRoundComplete() {
//			seat := eng.CurrentPlayer()
//			d := decide(eng.View(seat, 20))
//			if err := eng.ProcessAction(seat, d.Action, d.Amount); err != nil {
//				_ = eng.ProcessAction(seat, game.Fold, 0)
//			}
//		}
//		eng.AdvanceToNextPhase()
//	}
//	result, _ := eng.ConductShowdown()
package game
