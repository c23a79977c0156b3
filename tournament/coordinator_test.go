package tournament

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weedbox/shanghai"
)

func newTestCoordinator(t *testing.T, playerCount int) Coordinator {
	options := NewCoordinatorOptions()
	options.TournamentID = "t"
	options.Rand = rand.New(rand.NewSource(1))

	c := NewCoordinator(options)
	for i := 0; i < playerCount; i++ {
		err := c.Join(fmt.Sprintf("player_%d", i+1), fmt.Sprintf("Player %d", i+1))
		require.Nil(t, err)
	}
	return c
}

// finishRound makes every active table's current player go out immediately.
func finishRound(t *testing.T, c Coordinator) {
	t.Helper()
	for _, tableID := range c.TableIDs() {
		engine, err := c.GetTableEngine(tableID)
		require.Nil(t, err)

		table := engine.GetTable()
		if table.State.Status != shanghai.TableStateStatus_TableRoundActive {
			continue
		}
		current := table.CurrentPlayer()
		current.Hand = []shanghai.Card{shanghai.NewCard(shanghai.Suit_Hearts, shanghai.Rank_Three)}
		require.Nil(t, engine.DiscardCard(current.PlayerID, 0))
	}
}

func TestCoordinator_JoinLeave(t *testing.T) {
	options := NewCoordinatorOptions()
	options.MaxPlayers = 2
	c := NewCoordinator(options)

	assert.Nil(t, c.Join("a", "A"))
	assert.Equal(t, ErrCoordinatorDuplicatePlayer, c.Join("a", "A again"))
	assert.Nil(t, c.Join("b", "B"))
	assert.Equal(t, ErrCoordinatorPoolFull, c.Join("c", "C"))

	assert.Equal(t, ErrCoordinatorPlayerNotFound, c.Leave("missing"))
	assert.Nil(t, c.Leave("a"))
	assert.Equal(t, 1, len(c.Players()))
	assert.Equal(t, "b", c.Players()[0].PlayerID)
}

func TestCoordinator_StartRoundValidation(t *testing.T) {
	c := newTestCoordinator(t, 4)

	// fewer than five players can never start
	assert.Equal(t, ErrCoordinatorNotEnoughPlayers, c.StartRound([]int{4}, RandomizerType_Normal))

	c = newTestCoordinator(t, 10)

	// per-table bounds
	assert.Equal(t, ErrCoordinatorInvalidTableSize, c.StartRound([]int{4, 6}, RandomizerType_Normal))
	assert.Equal(t, ErrCoordinatorInvalidTableSize, c.StartRound([]int{13}, RandomizerType_Normal))

	// seat total must match the pool exactly
	assert.Equal(t, ErrCoordinatorSizeMismatch, c.StartRound([]int{5}, RandomizerType_Normal))
	assert.Equal(t, ErrCoordinatorSizeMismatch, c.StartRound([]int{6, 6}, RandomizerType_Normal))

	// rejected configurations leave the coordinator untouched
	assert.Equal(t, RoomStatus_Lobby, c.Status())
	assert.Equal(t, 0, c.CurrentRound())
	assert.Equal(t, 0, len(c.TableIDs()))
}

func TestCoordinator_StartRound(t *testing.T) {
	c := newTestCoordinator(t, 10)

	var roomEvents []RoomStatus
	c.OnRoomStatusUpdated(func(status RoomStatus, round int) {
		roomEvents = append(roomEvents, status)
	})

	assert.Nil(t, c.StartRound([]int{5, 5}, RandomizerType_Normal))
	assert.Equal(t, RoomStatus_RoundActive, c.Status())
	assert.Equal(t, 1, c.CurrentRound())
	assert.Equal(t, []RoomStatus{RoomStatus_RoundActive}, roomEvents)

	tableIDs := c.TableIDs()
	assert.Equal(t, 2, len(tableIDs))

	seated := map[string]bool{}
	for _, tableID := range tableIDs {
		engine, err := c.GetTableEngine(tableID)
		assert.Nil(t, err)

		table := engine.GetTable()
		assert.Equal(t, shanghai.TableStateStatus_TableRoundActive, table.State.Status)
		assert.Equal(t, 1, table.Meta.Round)
		assert.Equal(t, 5, len(table.State.PlayerStates))
		for _, player := range table.State.PlayerStates {
			assert.False(t, seated[player.PlayerID], "player seated twice")
			seated[player.PlayerID] = true
			assert.Equal(t, shanghai.DefaultHandSize, len(player.Hand))
		}
	}
	assert.Equal(t, 10, len(seated))

	// tablemates got one pairing recorded, others none
	engine, _ := c.GetTableEngine(tableIDs[0])
	mates := engine.GetTable().State.PlayerStates
	assert.Equal(t, 1, c.PairCount(mates[0].PlayerID, mates[1].PlayerID))

	// a second start while the round runs is refused
	assert.Equal(t, ErrCoordinatorRoundInProgress, c.StartRound([]int{5, 5}, RandomizerType_Normal))

	_, err := c.GetTableEngine("missing")
	assert.Equal(t, ErrCoordinatorTableNotFound, err)
}

func TestCoordinator_IntermissionFlow(t *testing.T) {
	c := newTestCoordinator(t, 10)

	var tableEvents []string
	c.OnTableStatusUpdated(func(tableID string, status RoomStatus, round int) {
		assert.Equal(t, RoomStatus_IntermissionLocal, status)
		tableEvents = append(tableEvents, tableID)
	})

	require.Nil(t, c.StartRound([]int{5, 5}, RandomizerType_Normal))

	// finishing one of two tables leaves the round active
	tableIDs := c.TableIDs()
	engine, err := c.GetTableEngine(tableIDs[0])
	require.Nil(t, err)
	current := engine.GetTable().CurrentPlayer()
	current.Hand = []shanghai.Card{shanghai.NewCard(shanghai.Suit_Clubs, shanghai.Rank_Four)}
	require.Nil(t, engine.DiscardCard(current.PlayerID, 0))

	assert.Equal(t, RoomStatus_RoundActive, c.Status())
	assert.Equal(t, []string{tableIDs[0]}, tableEvents)
	assert.Equal(t, ErrCoordinatorNotIntermission, c.StartNextRound())

	// the last table finishing flips the whole tournament to intermission
	finishRound(t, c)
	assert.Equal(t, RoomStatus_IntermissionGlobal, c.Status())
	assert.Equal(t, 2, len(tableEvents))

	// scores fed back into the pool: somebody was left holding cards
	total := 0
	for _, p := range c.Players() {
		total += p.Score
	}
	assert.True(t, total > 0)
}

func TestCoordinator_FullTournament(t *testing.T) {
	c := newTestCoordinator(t, 10)

	var ended []shanghai.PlayerScore
	c.OnTournamentEnded(func(scores []shanghai.PlayerScore) {
		ended = scores
	})

	require.Nil(t, c.StartRound([]int{5, 5}, RandomizerType_RoundRobin))
	finishRound(t, c)

	for round := 2; round <= shanghai.TotalRounds(); round++ {
		require.Nil(t, c.StartNextRound())
		assert.Equal(t, round, c.CurrentRound())
		assert.Equal(t, RoomStatus_RoundActive, c.Status())

		// each table plays the contract of the current round
		for _, tableID := range c.TableIDs() {
			engine, err := c.GetTableEngine(tableID)
			require.Nil(t, err)
			assert.Equal(t, round, engine.GetTable().State.Contract.Index)
		}
		finishRound(t, c)
		assert.Equal(t, RoomStatus_IntermissionGlobal, c.Status())
	}

	// advancing past the final round ends the tournament
	require.Nil(t, c.StartNextRound())
	assert.Equal(t, RoomStatus_Ended, c.Status())
	assert.Equal(t, 10, len(ended))

	// no further rounds or joins
	assert.Equal(t, ErrCoordinatorEnded, c.StartNextRound())
	assert.Equal(t, ErrCoordinatorEnded, c.StartRound([]int{5, 5}, RandomizerType_Normal))
	assert.Equal(t, ErrCoordinatorEnded, c.Join("late", "Late"))

	// ended scores match the pool's cumulative totals
	byID := map[string]int{}
	for _, p := range c.Players() {
		byID[p.PlayerID] = p.Score
	}
	for _, s := range ended {
		assert.Equal(t, byID[s.PlayerID], s.Score)
	}
}

func TestCoordinator_ScoreCarryBetweenRounds(t *testing.T) {
	c := newTestCoordinator(t, 10)

	require.Nil(t, c.StartRound([]int{5, 5}, RandomizerType_Normal))
	finishRound(t, c)

	carried := map[string]int{}
	for _, p := range c.Players() {
		carried[p.PlayerID] = p.Score
	}

	require.Nil(t, c.StartNextRound())

	// round 2 tables are seeded with each player's cumulative score
	for _, tableID := range c.TableIDs() {
		engine, err := c.GetTableEngine(tableID)
		require.Nil(t, err)
		for _, player := range engine.GetTable().State.PlayerStates {
			assert.Equal(t, carried[player.PlayerID], player.Score)
		}
	}
}
