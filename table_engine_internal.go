package shanghai

import (
	"fmt"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

func (te *tableEngine) isRoundActive() bool {
	return te.table != nil && te.table.State.Status == TableStateStatus_TableRoundActive
}

// validateTurnAction checks the shared preconditions of current-turn actions.
// A false return means the action is a silent no-op.
func (te *tableEngine) validateTurnAction(action, playerID string, phase TurnPhase) bool {
	if !te.isRoundActive() {
		te.rejectAction(action, playerID, "round not active")
		return false
	}
	if !te.table.IsCurrentTurn(playerID) {
		te.rejectAction(action, playerID, "not current turn")
		return false
	}
	if te.table.State.TurnPhase != phase {
		te.rejectAction(action, playerID, fmt.Sprintf("turn phase is %s", te.table.State.TurnPhase))
		return false
	}
	return true
}

// rejectAction records a silently ignored action for audit and leaves state
// untouched. It always returns nil so callers can return it directly.
func (te *tableEngine) rejectAction(action, playerID, reason string) error {
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("player_id", playerID),
		zap.String("reason", reason),
	}
	if te.table != nil {
		fields = append(fields, zap.String("table_id", te.table.ID))
	}
	te.options.Logger.Debug("action ignored", fields...)
	return nil
}

// drawFromDiscard moves the discard top into the current player's hand and
// advances them to the playing phase. Taking the discard while a buy is
// pending counts as the current player's implicit denial of that buy.
// Lock must be held.
func (te *tableEngine) drawFromDiscard(playerID string) {
	top, ok := te.DiscardTopPop()
	if !ok {
		te.rejectAction("DrawFromDiscard", playerID, "discard pile empty")
		return
	}

	if te.table.State.PendingBuy != "" {
		te.table.State.PendingBuy = ""
	}

	player := te.table.CurrentPlayer()
	player.Hand = append(player.Hand, top)
	te.table.State.TurnPhase = TurnPhase_Playing

	te.emitAnimationEvent(AnimationType_DrawDiscard, playerID, &top)
	te.emitEvent("DrawFromDiscard", playerID)
	te.broadcastState()
}

// executeBuy is shared by the instant path of RequestBuy and the allowed
// path of ResolveBuyRequest. Atomically: pop the discard top, draw two
// penalty cards, append all three to the buyer's hand and burn one buy.
// If the deck cannot cover both penalty draws the discard pop is rolled
// back and nothing is mutated. Lock must be held.
func (te *tableEngine) executeBuy(playerID string) {
	playerIdx := te.table.FindPlayerIdx(playerID)
	if playerIdx == UnsetValue {
		te.rejectAction("ExecuteBuy", playerID, "player not found")
		return
	}
	player := te.table.State.PlayerStates[playerIdx]
	if player.BuysRemaining <= 0 {
		te.rejectAction("ExecuteBuy", playerID, "no buys remaining")
		return
	}

	card, ok := te.DiscardTopPop()
	if !ok {
		te.rejectAction("ExecuteBuy", playerID, "discard pile empty")
		return
	}
	if te.table.State.Deck.Remaining() < 2 {
		// roll back the pop, never leave a partial mutation
		te.table.State.DiscardPile = append(te.table.State.DiscardPile, card)
		te.rejectAction("ExecuteBuy", playerID, "deck exhausted")
		return
	}

	penalty1, _ := te.table.State.Deck.Draw()
	penalty2, _ := te.table.State.Deck.Draw()
	player.Hand = append(player.Hand, card, penalty1, penalty2)
	player.BuysRemaining--
	te.table.State.PendingBuy = ""

	te.emitAnimationEvent(AnimationType_Buy, playerID, &card)
	te.emitEvent("ExecuteBuy", playerID)
	te.broadcastState()
}

// DiscardTopPop removes and returns the discard top. Lock must be held.
func (te *tableEngine) DiscardTopPop() (Card, bool) {
	pile := te.table.State.DiscardPile
	if len(pile) == 0 {
		return Card{}, false
	}
	top := pile[len(pile)-1]
	te.table.State.DiscardPile = pile[:len(pile)-1]
	return top, true
}

// endRound settles the round after a player went out: every remaining hand
// scores against its holder and no further actions are accepted.
// Lock must be held.
func (te *tableEngine) endRound() {
	te.table.State.Status = TableStateStatus_TableRoundEnded
	te.table.State.PendingBuy = ""

	for _, player := range te.table.State.PlayerStates {
		player.Score += player.HandScore()
	}

	scores := funk.Map(te.table.State.PlayerStates, func(player *TablePlayerState) PlayerScore {
		return PlayerScore{
			PlayerID:   player.PlayerID,
			PlayerName: player.PlayerName,
			Score:      player.Score,
		}
	}).([]PlayerScore)

	te.emitEvent("EndRound", "")
	te.broadcastState()
	te.onRoundEnded(te.table, scores)
}

func sameCardMultiset(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Card]int, len(a))
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}
