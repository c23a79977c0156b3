package shanghai

import (
	"encoding/json"
	"time"

	"github.com/thoas/go-funk"
)

type TableStateStatus string

const (
	TableStateStatus_TableCreated     TableStateStatus = "table_created"     // 桌次已建立
	TableStateStatus_TableRoundActive TableStateStatus = "table_round_active" // 本局進行中
	TableStateStatus_TableRoundEnded  TableStateStatus = "table_round_ended"  // 本局已結束
	TableStateStatus_TableClosed      TableStateStatus = "table_closed"       // 桌次已關閉
)

type TurnPhase string

const (
	TurnPhase_AwaitingDraw TurnPhase = "awaiting_draw" // 等待當前玩家摸牌
	TurnPhase_Playing      TurnPhase = "playing"       // 當前玩家已摸牌, 可組牌/棄牌
)

type Table struct {
	ID           string      `json:"id"`
	Meta         TableMeta   `json:"meta"`
	State        *TableState `json:"state"`
	UpdateAt     int64       `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64       `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

type TableMeta struct {
	TournamentID string `json:"tournament_id"`
	Round        int    `json:"round"`          // 1..TotalRounds, picks the contract
	NumDecks     int    `json:"num_decks"`      // deck multiplier
	HandSize     int    `json:"hand_size"`      // cards dealt per player
	BuysPerRound int    `json:"buys_per_round"` // buy allowance per round
}

type TableState struct {
	Status           TableStateStatus    `json:"status"`
	StartAt          int64               `json:"start_at"` // 開局時間 (Seconds)
	Contract         Contract            `json:"contract"`
	Deck             *Deck               `json:"-"`
	DiscardPile      []Card              `json:"discard_pile"` // top = last element
	DealerIndex      int                 `json:"dealer_index"`
	CurrentTurnIndex int                 `json:"current_turn_index"`
	TurnPhase        TurnPhase           `json:"turn_phase"`
	PendingBuy       string              `json:"pending_buy"` // requester player ID, empty when idle
	PlayerStates     []*TablePlayerState `json:"player_states"`
}

type TablePlayerState struct {
	PlayerID      string   `json:"player_id"`
	PlayerName    string   `json:"player_name"`
	Hand          []Card   `json:"hand"` // order is player-significant
	Melds         [][]Card `json:"melds"`
	IsDown        bool     `json:"is_down"`
	Score         int      `json:"score"` // cumulative across rounds
	BuysRemaining int      `json:"buys_remaining"`
}

// HandScore 結算時剩餘手牌的總分
func (ps TablePlayerState) HandScore() int {
	score := 0
	for _, c := range ps.Hand {
		score += c.Score()
	}
	return score
}

// Setters
func (t *Table) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

// Table Getters
func (t Table) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Table) FindPlayerIdx(playerID string) int {
	for idx, player := range t.State.PlayerStates {
		if player.PlayerID == playerID {
			return idx
		}
	}
	return UnsetValue
}

func (t Table) CurrentPlayer() *TablePlayerState {
	if t.State.CurrentTurnIndex == UnsetValue {
		return nil
	}
	return t.State.PlayerStates[t.State.CurrentTurnIndex]
}

func (t Table) IsCurrentTurn(playerID string) bool {
	current := t.CurrentPlayer()
	return current != nil && current.PlayerID == playerID
}

// DiscardTop returns the top of the discard pile; only the top card is ever
// inspected or taken.
func (t Table) DiscardTop() (Card, bool) {
	if len(t.State.DiscardPile) == 0 {
		return Card{}, false
	}
	return t.State.DiscardPile[len(t.State.DiscardPile)-1], true
}

func (t Table) DownPlayers() []*TablePlayerState {
	return funk.Filter(t.State.PlayerStates, func(player *TablePlayerState) bool {
		return player.IsDown
	}).([]*TablePlayerState)
}

// TotalCards counts every card owned by the table: hands, table melds, the
// discard pile and the remaining deck. For any reachable state this must
// equal NumDecks * CardsPerDeck.
func (t Table) TotalCards() int {
	total := t.State.Deck.Remaining() + len(t.State.DiscardPile)
	for _, player := range t.State.PlayerStates {
		total += len(player.Hand)
		for _, meld := range player.Melds {
			total += len(meld)
		}
	}
	return total
}
