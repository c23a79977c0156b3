package tournament

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/weedbox/shanghai"
)

func (c *coordinator) findPlayerIdx(playerID string) int {
	for idx, player := range c.players {
		if player.PlayerID == playerID {
			return idx
		}
	}
	return UnsetValue
}

func (c *coordinator) cumulativeScores() []shanghai.PlayerScore {
	return funk.Map(c.players, func(p *PoolPlayer) shanghai.PlayerScore {
		return shanghai.PlayerScore{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Score:      p.Score,
		}
	}).([]shanghai.PlayerScore)
}

func (c *coordinator) rand() *rand.Rand {
	if c.options.Rand == nil {
		c.options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c.options.Rand
}

// startRound does the actual chunking and table construction. Lock must be
// held; nothing is mutated until every configuration check has passed.
func (c *coordinator) startRound(tableSizes []int, randomizer RandomizerType) error {
	if len(c.players) < MinPoolSize {
		return ErrCoordinatorNotEnoughPlayers
	}

	totalSeats := 0
	for _, size := range tableSizes {
		if size < MinTableSize || size > MaxTableSize {
			return ErrCoordinatorInvalidTableSize
		}
		totalSeats += size
	}
	if totalSeats != len(c.players) {
		return ErrCoordinatorSizeMismatch
	}

	if c.round == 0 {
		c.round = 1
	}

	// choose the pool ordering
	poolIDs := funk.Map(c.players, func(p *PoolPlayer) string {
		return p.PlayerID
	}).([]string)

	if randomizer == RandomizerType_RoundRobin && c.round > 1 {
		poolIDs = MinimizePairings(poolIDs, tableSizes, c.pairHistory, c.options.PairingTrials, c.rand())
	} else {
		c.rand().Shuffle(len(poolIDs), func(i, j int) {
			poolIDs[i], poolIDs[j] = poolIDs[j], poolIDs[i]
		})
	}

	byID := make(map[string]*PoolPlayer, len(c.players))
	for _, player := range c.players {
		byID[player.PlayerID] = player
	}

	c.activeSizes = append([]int(nil), tableSizes...)
	c.activeRandomizer = randomizer
	c.finishedTables = 0
	c.engines = make(map[string]shanghai.TableEngine, len(tableSizes))
	c.tableIDs = make([]string, 0, len(tableSizes))

	offset := 0
	for tableIdx, size := range tableSizes {
		chunk := poolIDs[offset : offset+size]
		offset += size

		c.pairHistory.Record(chunk)

		tableID := fmt.Sprintf("%s_table_%d", c.options.TournamentID, tableIdx)
		engine := c.newTableEngine(tableID, chunk, byID)
		c.engines[tableID] = engine
		c.tableIDs = append(c.tableIDs, tableID)
	}

	for _, tableID := range c.tableIDs {
		if err := c.engines[tableID].StartRound(); err != nil {
			return err
		}
	}

	c.status = RoomStatus_RoundActive
	c.options.Logger.Info("tournament round started",
		zap.String("tournament_id", c.options.TournamentID),
		zap.Int("round", c.round),
		zap.Ints("table_sizes", tableSizes),
		zap.String("randomizer", string(randomizer)),
	)
	c.onRoomStatusUpdated(RoomStatus_RoundActive, c.round)
	return nil
}

// newTableEngine builds one table for the current round, seeded with the
// chunk's carried-over cumulative scores and wired for round-end
// aggregation. Lock must be held.
func (c *coordinator) newTableEngine(tableID string, chunk []string, byID map[string]*PoolPlayer) shanghai.TableEngine {
	engineOptions := c.options.EngineOptions
	if engineOptions == nil {
		engineOptions = shanghai.NewTableEngineOptions()
		engineOptions.Logger = c.options.Logger
	}

	engine := shanghai.NewTableEngine(engineOptions)
	if cb := c.options.EngineCallbacks; cb != nil {
		engine.OnTableUpdated(cb.OnTableUpdated)
		engine.OnSnapshotUpdated(cb.OnSnapshotUpdated)
		engine.OnBuyRequested(cb.OnBuyRequested)
		engine.OnAnimationEvent(cb.OnAnimationEvent)
		engine.OnMeldRejected(cb.OnMeldRejected)
	}

	embedderRoundEnded := func(*shanghai.Table, []shanghai.PlayerScore) {}
	if cb := c.options.EngineCallbacks; cb != nil && cb.OnRoundEnded != nil {
		embedderRoundEnded = cb.OnRoundEnded
	}
	engine.OnRoundEnded(func(table *shanghai.Table, scores []shanghai.PlayerScore) {
		embedderRoundEnded(table, scores)
		c.handleTableRoundEnded(tableID, table)
	})

	setting := shanghai.TableSetting{
		TableID:      tableID,
		TournamentID: c.options.TournamentID,
		Round:        c.round,
		DealerIndex:  shanghai.UnsetValue,
		JoinPlayers: funk.Map(chunk, func(playerID string) shanghai.JoinPlayer {
			player := byID[playerID]
			return shanghai.JoinPlayer{
				PlayerID:   player.PlayerID,
				PlayerName: player.PlayerName,
				Score:      player.Score,
			}
		}).([]shanghai.JoinPlayer),
	}

	// chunk sizes were validated against the engine's table bounds already
	if _, err := engine.CreateTable(setting); err != nil {
		c.options.Logger.Error("create table failed",
			zap.String("table_id", tableID),
			zap.Error(err),
		)
	}
	return engine
}

// handleTableRoundEnded aggregates one table's round completion: every table
// signals independently, and the whole tournament flips to intermission only
// once the last one has ended.
func (c *coordinator) handleTableRoundEnded(tableID string, table *shanghai.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// carry table scores back into the persistent pool
	for _, ps := range table.State.PlayerStates {
		if idx := c.findPlayerIdx(ps.PlayerID); idx != UnsetValue {
			c.players[idx].Score = ps.Score
		}
	}

	c.finishedTables++
	c.onTableStatusUpdated(tableID, RoomStatus_IntermissionLocal, c.round)

	if c.finishedTables >= len(c.engines) {
		c.status = RoomStatus_IntermissionGlobal
		c.onRoomStatusUpdated(RoomStatus_IntermissionGlobal, c.round)
	}
}
