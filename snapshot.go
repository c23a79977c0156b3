package shanghai

import "github.com/thoas/go-funk"

// PlayerPublicState is what every participant may see of a player. Hand is
// only populated once the round has ended and all hands become visible.
type PlayerPublicState struct {
	PlayerID      string   `json:"player_id"`
	PlayerName    string   `json:"player_name"`
	HandCount     int      `json:"hand_count"`
	Melds         [][]Card `json:"melds"`
	IsDown        bool     `json:"is_down"`
	Score         int      `json:"score"`
	BuysRemaining int      `json:"buys_remaining"`
	Hand          []Card   `json:"hand,omitempty"`
}

// PlayerSnapshot is the personalized view broadcast to one player after
// every committed mutation. Only the recipient's own hand is included;
// PendingBuy carries no requester identity, that goes to the current-turn
// player via BuyRequestPrompt.
type PlayerSnapshot struct {
	Round       int                 `json:"round"`
	Contract    Contract            `json:"contract"`
	DiscardTop  *Card               `json:"discard_top"`
	Players     []PlayerPublicState `json:"players"`
	CurrentTurn string              `json:"current_turn"`
	TurnPhase   TurnPhase           `json:"turn_phase"`
	DeckCount   int                 `json:"deck_count"`
	Hand        []Card              `json:"hand"`
	PendingBuy  bool                `json:"pending_buy"`
}

// BuyRequestPrompt is delivered to the current-turn player when a steal
// attempt needs their consent.
type BuyRequestPrompt struct {
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name"`
	Card          Card   `json:"card"`
}

// AnimationEvent is a purely advisory presentation hint, not authoritative
// state.
type AnimationEvent struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	Card     *Card  `json:"card,omitempty"`
}

type PlayerScore struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
}

// PlayerSnapshot builds the personalized view for one recipient.
func (t Table) PlayerSnapshot(playerID string) *PlayerSnapshot {
	roundEnded := t.State.Status == TableStateStatus_TableRoundEnded

	snapshot := &PlayerSnapshot{
		Round:      t.Meta.Round,
		Contract:   t.State.Contract,
		TurnPhase:  t.State.TurnPhase,
		DeckCount:  t.State.Deck.Remaining(),
		PendingBuy: t.State.PendingBuy != "",
		Players: funk.Map(t.State.PlayerStates, func(player *TablePlayerState) PlayerPublicState {
			public := PlayerPublicState{
				PlayerID:      player.PlayerID,
				PlayerName:    player.PlayerName,
				HandCount:     len(player.Hand),
				Melds:         player.Melds,
				IsDown:        player.IsDown,
				Score:         player.Score,
				BuysRemaining: player.BuysRemaining,
			}
			if roundEnded {
				public.Hand = copyCards(player.Hand)
			}
			return public
		}).([]PlayerPublicState),
	}

	if top, ok := t.DiscardTop(); ok {
		snapshot.DiscardTop = &top
	}
	if current := t.CurrentPlayer(); current != nil {
		snapshot.CurrentTurn = current.PlayerID
	}
	if idx := t.FindPlayerIdx(playerID); idx != UnsetValue {
		snapshot.Hand = copyCards(t.State.PlayerStates[idx].Hand)
	}
	return snapshot
}

func copyCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
