package shanghai

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

var (
	ErrTableInvalidCreateSetting = errors.New("table: invalid create table setting")
	ErrTableNotCreated           = errors.New("table: table has not been created")
	ErrTableRoundAlreadyActive   = errors.New("table: round is already active")
	ErrTableMeldNotMatchContract = errors.New("table: meld does not satisfy contract")
)

type TableEngineOpt func(*tableEngine)

type TableEngine interface {
	// Events
	OnTableUpdated(fn func(*Table))                          // 桌次更新事件監聽器
	OnSnapshotUpdated(fn func(string, *PlayerSnapshot))      // 玩家個人視角快照監聽器
	OnBuyRequested(fn func(string, *BuyRequestPrompt))       // 買牌請求監聽器 (通知當前回合玩家)
	OnAnimationEvent(fn func(*AnimationEvent))               // 動畫提示事件監聽器
	OnMeldRejected(fn func(string, string))                  // 組牌不符合約監聽器
	OnRoundEnded(fn func(*Table, []PlayerScore))             // 本局結束監聽器

	// Table Actions
	GetTable() *Table                                 // 取得桌次
	CreateTable(setting TableSetting) (*Table, error) // 建立桌
	StartRound() error                                // 開始本局
	CloseTable() error                                // 關閉桌

	// Player Actions
	DrawCard(playerID string) error                        // 從牌堆摸牌
	DrawFromDiscard(playerID string) error                 // 從棄牌堆摸牌
	RequestBuy(playerID string) error                      // 請求買牌
	ResolveBuyRequest(playerID string, allowed bool) error // 回應買牌請求
	DiscardCard(playerID string, handIndex int) error      // 棄牌
	Meld(playerID string, groups [][]int) error            // 組牌落地
	ReorderHand(playerID string, newHand []Card) error     // 重新排列手牌
}

type tableEngine struct {
	lock              sync.Mutex
	options           *TableEngineOptions
	table             *Table
	onTableUpdated    func(*Table)
	onSnapshotUpdated func(string, *PlayerSnapshot)
	onBuyRequested    func(string, *BuyRequestPrompt)
	onAnimationEvent  func(*AnimationEvent)
	onMeldRejected    func(string, string)
	onRoundEnded      func(*Table, []PlayerScore)
}

func NewTableEngine(options *TableEngineOptions, opts ...TableEngineOpt) TableEngine {
	callbacks := NewTableEngineCallbacks()
	te := &tableEngine{
		options:           options,
		onTableUpdated:    callbacks.OnTableUpdated,
		onSnapshotUpdated: callbacks.OnSnapshotUpdated,
		onBuyRequested:    callbacks.OnBuyRequested,
		onAnimationEvent:  callbacks.OnAnimationEvent,
		onMeldRejected:    callbacks.OnMeldRejected,
		onRoundEnded:      callbacks.OnRoundEnded,
	}

	for _, opt := range opts {
		opt(te)
	}

	return te
}

func WithLogger(logger *zap.Logger) TableEngineOpt {
	return func(te *tableEngine) {
		te.options.Logger = logger
	}
}

func (te *tableEngine) OnTableUpdated(fn func(*Table)) {
	te.onTableUpdated = fn
}

func (te *tableEngine) OnSnapshotUpdated(fn func(string, *PlayerSnapshot)) {
	te.onSnapshotUpdated = fn
}

func (te *tableEngine) OnBuyRequested(fn func(string, *BuyRequestPrompt)) {
	te.onBuyRequested = fn
}

func (te *tableEngine) OnAnimationEvent(fn func(*AnimationEvent)) {
	te.onAnimationEvent = fn
}

func (te *tableEngine) OnMeldRejected(fn func(string, string)) {
	te.onMeldRejected = fn
}

func (te *tableEngine) OnRoundEnded(fn func(*Table, []PlayerScore)) {
	te.onRoundEnded = fn
}

func (te *tableEngine) GetTable() *Table {
	return te.table
}

func (te *tableEngine) CreateTable(setting TableSetting) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	// validate setting
	if len(setting.JoinPlayers) < MinTablePlayerCount || len(setting.JoinPlayers) > MaxTablePlayerCount {
		return nil, ErrTableInvalidCreateSetting
	}
	if _, ok := ContractByRound(setting.Round); !ok {
		return nil, ErrTableInvalidCreateSetting
	}
	seen := make(map[string]bool)
	for _, joinPlayer := range setting.JoinPlayers {
		if joinPlayer.PlayerID == "" || seen[joinPlayer.PlayerID] {
			return nil, ErrTableInvalidCreateSetting
		}
		seen[joinPlayer.PlayerID] = true
	}

	tableID := setting.TableID
	if tableID == "" {
		tableID = uuid.New().String()
	}

	contract, _ := ContractByRound(setting.Round)
	table := &Table{
		ID: tableID,
		Meta: TableMeta{
			TournamentID: setting.TournamentID,
			Round:        setting.Round,
			NumDecks:     te.options.NumDecks,
			HandSize:     te.options.HandSize,
			BuysPerRound: te.options.BuysPerRound,
		},
		State: &TableState{
			Status:           TableStateStatus_TableCreated,
			StartAt:          UnsetValue,
			Contract:         contract,
			Deck:             NewDeck(te.options.NumDecks),
			DiscardPile:      make([]Card, 0),
			DealerIndex:      setting.DealerIndex,
			CurrentTurnIndex: UnsetValue,
			TurnPhase:        TurnPhase_AwaitingDraw,
			PendingBuy:       "",
			PlayerStates: funk.Map(setting.JoinPlayers, func(p JoinPlayer) *TablePlayerState {
				return &TablePlayerState{
					PlayerID:      p.PlayerID,
					PlayerName:    p.PlayerName,
					Hand:          make([]Card, 0),
					Melds:         make([][]Card, 0),
					IsDown:        false,
					Score:         p.Score,
					BuysRemaining: te.options.BuysPerRound,
				}
			}).([]*TablePlayerState),
		},
	}
	te.table = table

	te.emitEvent("CreateTable", "")
	return te.table, nil
}

/*
StartRound 開始本局
  - 建立並洗勻新牌堆、翻開一張棄牌、輪替莊家、發牌、重設買牌額度
  - DealerIndex 為 UnsetValue 時隨機選莊; 同一引擎重複開局時莊家順移一位
*/
func (te *tableEngine) StartRound() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return ErrTableNotCreated
	}
	if te.table.State.Status == TableStateStatus_TableRoundActive {
		return ErrTableRoundAlreadyActive
	}

	state := te.table.State
	playerCount := len(state.PlayerStates)

	// Step 1: fresh deck
	deck := NewDeck(te.table.Meta.NumDecks)
	deck.Shuffle()
	state.Deck = deck

	// Step 2: seed the discard pile
	seed, _ := deck.Draw()
	state.DiscardPile = []Card{seed}

	// Step 3: rotate dealer
	if state.DealerIndex == UnsetValue {
		state.DealerIndex = rand.Intn(playerCount)
	} else if state.Status == TableStateStatus_TableRoundEnded {
		state.DealerIndex = (state.DealerIndex + 1) % playerCount
	}

	// Step 4 & 5: player after dealer starts, in the draw phase
	state.CurrentTurnIndex = (state.DealerIndex + 1) % playerCount
	state.TurnPhase = TurnPhase_AwaitingDraw
	state.PendingBuy = ""
	state.Status = TableStateStatus_TableRoundActive
	te.table.State.StartAt = time.Now().Unix()

	// Step 6 & 7: deal hands in player order, reset round state
	for _, player := range state.PlayerStates {
		player.Hand = make([]Card, 0, te.table.Meta.HandSize)
		player.Melds = make([][]Card, 0)
		player.IsDown = false
		player.BuysRemaining = te.table.Meta.BuysPerRound
		for i := 0; i < te.table.Meta.HandSize; i++ {
			card, _ := deck.Draw()
			player.Hand = append(player.Hand, card)
		}
	}

	// Step 8: emit full state
	te.emitEvent("StartRound", "")
	te.broadcastState()
	return nil
}

func (te *tableEngine) CloseTable() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return ErrTableNotCreated
	}
	te.table.State.Status = TableStateStatus_TableClosed

	te.emitEvent("CloseTable", "")
	return nil
}

func (te *tableEngine) DrawCard(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.validateTurnAction("DrawCard", playerID, TurnPhase_AwaitingDraw) {
		return nil
	}
	if te.table.State.PendingBuy != "" {
		// a pending buy must be resolved before drawing from the deck
		return te.rejectAction("DrawCard", playerID, "buy pending")
	}

	card, ok := te.table.State.Deck.Draw()
	if !ok {
		return te.rejectAction("DrawCard", playerID, "deck exhausted")
	}

	player := te.table.CurrentPlayer()
	player.Hand = append(player.Hand, card)
	te.table.State.TurnPhase = TurnPhase_Playing

	te.emitAnimationEvent(AnimationType_Draw, playerID, nil)
	te.emitEvent("DrawCard", playerID)
	te.broadcastState()
	return nil
}

func (te *tableEngine) DrawFromDiscard(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.validateTurnAction("DrawFromDiscard", playerID, TurnPhase_AwaitingDraw) {
		return nil
	}
	te.drawFromDiscard(playerID)
	return nil
}

func (te *tableEngine) RequestBuy(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.isRoundActive() {
		return te.rejectAction("RequestBuy", playerID, "round not active")
	}
	// only a player who is NOT the current turn holder may buy
	if te.table.IsCurrentTurn(playerID) {
		return te.rejectAction("RequestBuy", playerID, "current turn holder")
	}
	playerIdx := te.table.FindPlayerIdx(playerID)
	if playerIdx == UnsetValue {
		return te.rejectAction("RequestBuy", playerID, "player not found")
	}

	// Case 1: the current player has already drawn from the deck, so the
	// discard is open and the buy executes immediately.
	if te.table.State.TurnPhase == TurnPhase_Playing {
		if len(te.table.State.DiscardPile) == 0 {
			return te.rejectAction("RequestBuy", playerID, "discard pile empty")
		}
		te.executeBuy(playerID)
		return nil
	}

	// Case 2: a steal attempt before the current player has drawn needs the
	// current player's consent.
	if te.table.State.PendingBuy != "" {
		return te.rejectAction("RequestBuy", playerID, "buy already pending")
	}
	if te.table.State.PlayerStates[playerIdx].BuysRemaining <= 0 {
		return te.rejectAction("RequestBuy", playerID, "no buys remaining")
	}
	top, ok := te.table.DiscardTop()
	if !ok {
		return te.rejectAction("RequestBuy", playerID, "discard pile empty")
	}

	te.table.State.PendingBuy = playerID

	// prompt the current-turn player to decide
	requester := te.table.State.PlayerStates[playerIdx]
	te.onBuyRequested(te.table.CurrentPlayer().PlayerID, &BuyRequestPrompt{
		RequesterID:   requester.PlayerID,
		RequesterName: requester.PlayerName,
		Card:          top,
	})

	// broadcast so everyone else locks their buy buttons
	te.emitEvent("RequestBuy", playerID)
	te.broadcastState()
	return nil
}

func (te *tableEngine) ResolveBuyRequest(playerID string, allowed bool) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.isRoundActive() {
		return te.rejectAction("ResolveBuyRequest", playerID, "round not active")
	}
	if !te.table.IsCurrentTurn(playerID) {
		return te.rejectAction("ResolveBuyRequest", playerID, "not current turn")
	}
	if te.table.State.PendingBuy == "" {
		return te.rejectAction("ResolveBuyRequest", playerID, "no buy pending")
	}

	// clear first, so re-entry during the follow-up is a no-op
	buyerID := te.table.State.PendingBuy
	te.table.State.PendingBuy = ""

	if allowed {
		// the current player's own turn phase is unaffected; they still must
		// draw, but the discard top is about to be taken
		te.executeBuy(buyerID)
	} else {
		// denial forces the current player to take the discard themselves
		te.drawFromDiscard(playerID)
	}
	return nil
}

func (te *tableEngine) DiscardCard(playerID string, handIndex int) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.validateTurnAction("DiscardCard", playerID, TurnPhase_Playing) {
		return nil
	}

	player := te.table.CurrentPlayer()
	if handIndex < 0 || handIndex >= len(player.Hand) {
		return te.rejectAction("DiscardCard", playerID, "hand index out of range")
	}

	card := player.Hand[handIndex]
	player.Hand = append(player.Hand[:handIndex], player.Hand[handIndex+1:]...)
	te.table.State.DiscardPile = append(te.table.State.DiscardPile, card)

	te.emitAnimationEvent(AnimationType_Discard, playerID, &card)

	// going out ends the round
	if len(player.Hand) == 0 {
		te.endRound()
		return nil
	}

	te.table.State.CurrentTurnIndex = (te.table.State.CurrentTurnIndex + 1) % len(te.table.State.PlayerStates)
	te.table.State.TurnPhase = TurnPhase_AwaitingDraw

	te.emitEvent("DiscardCard", playerID)
	te.broadcastState()
	return nil
}

func (te *tableEngine) Meld(playerID string, groups [][]int) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.validateTurnAction("Meld", playerID, TurnPhase_Playing) {
		return nil
	}

	player := te.table.CurrentPlayer()

	// resolve hand indexes to cards; all groups index the same hand ordering
	seen := make(map[int]bool)
	proposed := make([][]Card, 0, len(groups))
	allIndexes := make([]int, 0)
	for _, group := range groups {
		cards := make([]Card, 0, len(group))
		for _, idx := range group {
			if idx < 0 || idx >= len(player.Hand) {
				return te.rejectAction("Meld", playerID, "hand index out of range")
			}
			if seen[idx] {
				return te.rejectAction("Meld", playerID, "duplicate hand index")
			}
			seen[idx] = true
			cards = append(cards, player.Hand[idx])
			allIndexes = append(allIndexes, idx)
		}
		proposed = append(proposed, cards)
	}

	if !te.table.State.Contract.Validate(proposed) {
		te.onMeldRejected(playerID, MeldRejectReason_Contract)
		return ErrTableMeldNotMatchContract
	}

	// remove melded cards in descending index order to avoid shift errors
	sort.Sort(sort.Reverse(sort.IntSlice(allIndexes)))
	for _, idx := range allIndexes {
		player.Hand = append(player.Hand[:idx], player.Hand[idx+1:]...)
	}

	player.Melds = append(player.Melds, proposed...)
	player.IsDown = true

	// turn phase is unchanged, the player may still discard
	te.emitEvent("Meld", playerID)
	te.broadcastState()
	return nil
}

func (te *tableEngine) ReorderHand(playerID string, newHand []Card) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.isRoundActive() {
		return te.rejectAction("ReorderHand", playerID, "round not active")
	}
	playerIdx := te.table.FindPlayerIdx(playerID)
	if playerIdx == UnsetValue {
		return te.rejectAction("ReorderHand", playerID, "player not found")
	}

	player := te.table.State.PlayerStates[playerIdx]
	if !sameCardMultiset(player.Hand, newHand) {
		// cheating attempt or desync, keep the original order
		te.options.Logger.Warn("hand reorder content mismatch",
			zap.String("table_id", te.table.ID),
			zap.String("player_id", playerID),
		)
		return nil
	}

	player.Hand = copyCards(newHand)

	te.emitEvent("ReorderHand", playerID)
	te.broadcastState()
	return nil
}
