package actor

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weedbox/shanghai"
)

func newBotTable(t *testing.T, playerCount int) (shanghai.TableEngine, []string) {
	playerIDs := make([]string, 0, playerCount)
	joinPlayers := make([]shanghai.JoinPlayer, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		playerID := fmt.Sprintf("bot_%d", i+1)
		playerIDs = append(playerIDs, playerID)
		joinPlayers = append(joinPlayers, shanghai.JoinPlayer{
			PlayerID:   playerID,
			PlayerName: playerID,
		})
	}

	engine := shanghai.NewTableEngine(shanghai.NewTableEngineOptions())
	_, err := engine.CreateTable(shanghai.TableSetting{
		TableID:     "bot_table",
		Round:       1,
		DealerIndex: 0,
		JoinPlayers: joinPlayers,
	})
	require.Nil(t, err)
	return engine, playerIDs
}

func TestBotRunner_SynchronousPump(t *testing.T) {
	engine, playerIDs := newBotTable(t, 4)

	bots := make(map[string]*BotRunner, len(playerIDs))
	for i, playerID := range playerIDs {
		bot := NewBotRunner(engine, playerID)
		bot.SetRand(rand.New(rand.NewSource(int64(i + 1))))
		bots[playerID] = bot
	}

	require.Nil(t, engine.StartRound())

	table := engine.GetTable()
	totalCards := table.Meta.NumDecks * shanghai.CardsPerDeck
	actedTurns := map[string]bool{}

	for step := 0; step < 200; step++ {
		if table.State.Status != shanghai.TableStateStatus_TableRoundActive {
			break
		}

		currentID := table.CurrentPlayer().PlayerID
		actedTurns[currentID] = true

		// throw in an occasional spectator buy to exercise the consent path
		if step%10 == 9 {
			for _, playerID := range playerIDs {
				if playerID != currentID {
					engine.RequestBuy(playerID)
					break
				}
			}
		}

		bots[currentID].Act(table.PlayerSnapshot(currentID))
		assert.Equal(t, totalCards, table.TotalCards(), "card conservation at step %d", step)
	}

	// every seat got the turn, and play actually moved cards
	assert.Equal(t, 4, len(actedTurns))
	assert.True(t, len(table.State.DiscardPile) > 1)
}

func TestBotRunner_IgnoresForeignTurns(t *testing.T) {
	engine, playerIDs := newBotTable(t, 4)
	require.Nil(t, engine.StartRound())

	table := engine.GetTable()
	currentID := table.CurrentPlayer().PlayerID

	// a bot handed someone else's snapshot does nothing
	var other string
	for _, playerID := range playerIDs {
		if playerID != currentID {
			other = playerID
			break
		}
	}
	bot := NewBotRunner(engine, other)
	bot.Act(table.PlayerSnapshot(currentID))

	assert.Equal(t, shanghai.TurnPhase_AwaitingDraw, table.State.TurnPhase)
	assert.Equal(t, currentID, table.CurrentPlayer().PlayerID)
}

func TestGroup_AutoPlay(t *testing.T) {
	engine, playerIDs := newBotTable(t, 4)

	group := NewGroup()
	for i, playerID := range playerIDs {
		bot := NewBotRunner(engine, playerID)
		bot.SetRand(rand.New(rand.NewSource(int64(100 + i))))
		group.Add(bot)
	}
	group.Bind(engine)

	var mu sync.Mutex
	var once sync.Once
	discards := 0
	done := make(chan struct{})
	engine.OnAnimationEvent(func(event *shanghai.AnimationEvent) {
		if event.Type != shanghai.AnimationType_Discard {
			return
		}
		mu.Lock()
		discards++
		reached := discards >= 10
		mu.Unlock()
		if reached {
			once.Do(func() { close(done) })
		}
	})

	group.StartAll()
	require.Nil(t, engine.StartRound())

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("bots failed to reach 10 discards in time")
	}

	group.StopAll()
	time.Sleep(300 * time.Millisecond) // let any in-flight action settle

	table := engine.GetTable()
	assert.Equal(t, table.Meta.NumDecks*shanghai.CardsPerDeck, table.TotalCards())
}
